// Package cli implements the driveimg command line.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/driveimg/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// globalOptions holds the persistent flags.
type globalOptions struct {
	configDir      string
	cacheDir       string
	builder        string
	supportedTypes []string
	trim           bool
	verbose        bool
}

var opts globalOptions

var rootCmd = &cobra.Command{
	Use:   "driveimg",
	Short: "Cache Google Drive images for documentation builds",
	Long: `driveimg replaces Google Drive and Google Drawings image links in
documents with local copies, downloading each image only when the remote
file has changed since it was cached.

Credentials come from the GOOGLE_DRIVE_SERVICE_ACCOUNT_KEY environment
variable (the JSON key itself) or from googledrive.service_account in
.driveimg/config.toml (a path to the key file).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(opts.verbose)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configDir, "config-dir", "", "configuration and metadata directory (default .driveimg)")
	flags.StringVar(&opts.cacheDir, "cache-dir", "", "image cache directory (overrides googledrive.cache_dir)")
	flags.StringVarP(&opts.builder, "builder", "b", "", "output format whose image types to prefer: html or latex")
	flags.StringArrayVar(&opts.supportedTypes, "supported-type", nil, "MIME type the output can embed (repeatable)")
	flags.BoolVar(&opts.trim, "trim", false, "crop uniform borders from downloaded images")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug output")
}

// Execute runs the root command. Interrupts cancel in-flight requests.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		rootCmd.PrintErrln("Error:", err)
		return err
	}
	return nil
}
