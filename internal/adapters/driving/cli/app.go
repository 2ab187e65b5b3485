package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/driveimg/internal/adapters/driven/config/file"
	"github.com/custodia-labs/driveimg/internal/adapters/driven/imaging"
	"github.com/custodia-labs/driveimg/internal/adapters/driven/storage/filecache"
	"github.com/custodia-labs/driveimg/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/driveimg/internal/connectors/google"
	"github.com/custodia-labs/driveimg/internal/connectors/google/drive"
	"github.com/custodia-labs/driveimg/internal/core/domain"
	"github.com/custodia-labs/driveimg/internal/core/ports/driving"
	"github.com/custodia-labs/driveimg/internal/core/services"
	"github.com/custodia-labs/driveimg/internal/logger"
	"github.com/custodia-labs/driveimg/internal/rewriters"
)

// app bundles the services a command needs.
type app struct {
	settings domain.Settings
	resolver driving.ImageResolver
	rewrite  driving.DocumentRewriteService
	cache    driving.CacheService
	close    func() error
}

// Close releases the metadata store.
func (a *app) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// newApp builds the services for a command. Tests replace it.
var newApp = buildApp

func buildApp(cmd *cobra.Command) (*app, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.NewStore(opts.configDir)
	if err != nil {
		return nil, fmt.Errorf("opening metadata store: %w", err)
	}
	origins := store.OriginStore()

	cache := filecache.New(settings.CacheDir)
	connector := drive.NewConnector(google.CredentialsFromEnv(settings.ServiceAccountPath), drive.DefaultConfig())
	resolver := services.NewImageResolverService(connector, cache, imaging.NewTrimmer(), origins, settings)

	logger.Debug("cli: cache=%s types=%v trim=%v", cache.Root(), settings.SupportedMimeTypes, settings.TrimImages)

	return &app{
		settings: settings,
		resolver: resolver,
		rewrite:  services.NewRewriteService(resolver, rewriters.DefaultRegistry()),
		cache:    services.NewCacheService(cache, origins),
		close:    store.Close,
	}, nil
}

// loadSettings reads config.toml and applies flag overrides.
// Precedence: --supported-type, then --builder, then the config file.
func loadSettings(cmd *cobra.Command) (domain.Settings, error) {
	cfgStore, err := file.NewConfigStore(opts.configDir)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("loading config: %w", err)
	}

	settings, err := services.NewSettingsService(cfgStore).Get()
	if err != nil {
		return domain.Settings{}, err
	}

	if opts.cacheDir != "" {
		settings.CacheDir = opts.cacheDir
	}
	if opts.builder != "" {
		b := domain.Builder(opts.builder)
		if !b.IsValid() {
			return domain.Settings{}, fmt.Errorf("%w: unknown builder %q", domain.ErrInvalidInput, opts.builder)
		}
		settings.SupportedMimeTypes = b.SupportedMimeTypes()
	}
	if len(opts.supportedTypes) > 0 {
		settings.SupportedMimeTypes = opts.supportedTypes
	}
	if cmd.Flags().Changed("trim") {
		settings.TrimImages = opts.trim
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// withApp builds the app, runs fn, and closes the app.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) (err error) {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()
	return fn(cmd.Context(), a)
}
