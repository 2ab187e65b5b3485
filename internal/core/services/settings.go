package services

import (
	"fmt"

	"github.com/custodia-labs/driveimg/internal/core/domain"
	"github.com/custodia-labs/driveimg/internal/core/ports/driven"
	"github.com/custodia-labs/driveimg/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyServiceAccount = "googledrive.service_account"
	keyTrimImages     = "googledrive.trim_images"
	keyCacheDir       = "googledrive.cache_dir"
	keySupportedTypes = "googledrive.supported_mime_types"
)

// SettingsService maps domain.Settings onto a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves settings. Unset keys take their default values.
func (s *SettingsService) Get() (domain.Settings, error) {
	settings := domain.DefaultSettings()

	settings.ServiceAccountPath = s.configStore.GetString(keyServiceAccount)
	settings.TrimImages = s.configStore.GetBool(keyTrimImages)
	if dir := s.configStore.GetString(keyCacheDir); dir != "" {
		settings.CacheDir = dir
	}
	if types := s.configStore.GetStringSlice(keySupportedTypes); len(types) > 0 {
		settings.SupportedMimeTypes = types
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("%s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if settings.ServiceAccountPath != "" {
		if err := s.configStore.Set(keyServiceAccount, settings.ServiceAccountPath); err != nil {
			return fmt.Errorf("save service_account: %w", err)
		}
	}
	if err := s.configStore.Set(keyTrimImages, settings.TrimImages); err != nil {
		return fmt.Errorf("save trim_images: %w", err)
	}
	if err := s.configStore.Set(keyCacheDir, settings.CacheDir); err != nil {
		return fmt.Errorf("save cache_dir: %w", err)
	}
	if err := s.configStore.Set(keySupportedTypes, settings.SupportedMimeTypes); err != nil {
		return fmt.Errorf("save supported_mime_types: %w", err)
	}
	return nil
}
