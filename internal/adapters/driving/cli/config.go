package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/driveimg/internal/adapters/driven/config/file"
	"github.com/custodia-labs/driveimg/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialise the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write config.toml with the effective settings",
	Long: `Write the effective settings, including any flag overrides, to
<config-dir>/config.toml so later runs pick them up.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	account := settings.ServiceAccountPath
	if account == "" {
		account = "(unset)"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "service_account:      %s\n", account)
	fmt.Fprintf(out, "trim_images:          %t\n", settings.TrimImages)
	fmt.Fprintf(out, "cache_dir:            %s\n", settings.CacheDir)
	fmt.Fprintf(out, "supported_mime_types: %s\n", strings.Join(settings.SupportedMimeTypes, ", "))
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	store, err := file.NewConfigStore(opts.configDir)
	if err != nil {
		return err
	}
	if err := services.NewSettingsService(store).Save(settings); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", store.Path())
	return nil
}
