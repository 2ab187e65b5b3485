package driving

import "github.com/custodia-labs/driveimg/internal/core/domain"

// SettingsService reads and writes resolver configuration.
type SettingsService interface {
	// Get returns the stored settings, with defaults for unset keys.
	Get() (domain.Settings, error)

	// Save validates and persists settings.
	Save(settings domain.Settings) error
}
