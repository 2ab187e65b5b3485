package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and prune the image cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached images and their Drive URLs",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove cached images not used by the most recent run",
	Args:  cobra.NoArgs,
	RunE:  runCachePrune,
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheList(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		origins, err := a.cache.List(ctx)
		if err != nil {
			return err
		}
		if len(origins) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Cache is empty.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tMIME\tRESOLVED\tSOURCE")
		for _, o := range origins {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.Path, o.MimeType, o.ResolvedAt.Local().Format(time.DateTime), o.SourceURL)
		}
		return w.Flush()
	})
}

func runCachePrune(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		removed, err := a.cache.Prune(ctx)
		for _, path := range removed {
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", path)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d file(s).\n", len(removed))
		return nil
	})
}
