package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/driveimg/internal/core/ports/driving"
	"github.com/custodia-labs/driveimg/internal/logger"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite <file>...",
	Short: "Replace Drive image links in documents with cached files",
	Long: `Rewrite Markdown, HTML and reStructuredText documents so that Google
Drive and Google Drawings image links point at local copies in the cache.

Images are downloaded only when the remote file is newer than the cached
copy. Links that cannot be resolved are left unchanged and reported.

Examples:
  driveimg rewrite docs/*.md
  driveimg rewrite --builder latex --dry-run paper.rst
  driveimg rewrite --watch docs/index.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRewrite,
}

var rewriteFlags struct {
	dryRun bool
	jobs   int
	watch  bool
}

func init() {
	rewriteCmd.Flags().BoolVarP(&rewriteFlags.dryRun, "dry-run", "n", false, "resolve images without modifying documents")
	rewriteCmd.Flags().IntVarP(&rewriteFlags.jobs, "jobs", "j", 4, "documents to process in parallel")
	rewriteCmd.Flags().BoolVarP(&rewriteFlags.watch, "watch", "w", false, "rewrite again whenever a document changes")
	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, args []string) error {
	rwOpts := driving.RewriteOptions{DryRun: rewriteFlags.dryRun, Jobs: rewriteFlags.jobs}

	return withApp(cmd, func(ctx context.Context, a *app) error {
		reports, err := a.rewrite.RewriteFiles(ctx, args, rwOpts)
		printReports(cmd.OutOrStdout(), reports, rwOpts.DryRun)
		if err != nil || !rewriteFlags.watch {
			return err
		}

		w, err := newDocumentWatcher(args)
		if err != nil {
			return err
		}
		logger.Info("Watching %d document(s); press Ctrl-C to stop", len(args))

		return w.run(ctx, func(ctx context.Context, changed []string) error {
			reports, err := a.rewrite.RewriteFiles(ctx, changed, rwOpts)
			printReports(cmd.OutOrStdout(), reports, rwOpts.DryRun)
			return err
		})
	})
}
