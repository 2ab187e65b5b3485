package driven

// ConfigStore provides dot-notation access to persisted configuration,
// e.g. "googledrive.cache_dir". Typed getters return the zero value
// when a key is missing or holds a different type.
type ConfigStore interface {
	// Get returns the raw value and whether the key exists.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Set stores a value and persists the configuration immediately.
	Set(key string, value any) error

	// Save persists the current configuration.
	Save() error

	// Load re-reads configuration from storage.
	Load() error

	// Path returns the location of the configuration file.
	Path() string
}
