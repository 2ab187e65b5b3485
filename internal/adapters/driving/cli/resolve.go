package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <url>",
	Short: "Download one Drive image into the cache",
	Long: `Resolve a Google Drive or Google Drawings URL to a cached local file
and print its path and MIME type, separated by a tab.

Accepted URL forms:
  https://drive.google.com/open?id=<id>
  https://docs.google.com/drawings/d/<id>/edit`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		res, err := a.resolver.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", res.Path, res.Image.TargetMimeType)
		return nil
	})
}
