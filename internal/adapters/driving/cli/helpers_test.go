package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/driveimg/internal/core/domain"
	"github.com/custodia-labs/driveimg/internal/core/ports/driving"
)

// mockResolver is a mock implementation of driving.ImageResolver.
type mockResolver struct {
	res *domain.Resolution
	err error
}

func (m *mockResolver) Resolve(_ context.Context, _ string) (*domain.Resolution, error) {
	return m.res, m.err
}

// mockRewriteService records the last call.
type mockRewriteService struct {
	reports []*domain.RewriteReport
	err     error
	paths   []string
	opts    driving.RewriteOptions
}

func (m *mockRewriteService) RewriteFile(
	ctx context.Context, path string, opts driving.RewriteOptions,
) (*domain.RewriteReport, error) {
	reports, err := m.RewriteFiles(ctx, []string{path}, opts)
	if len(reports) == 0 {
		return nil, err
	}
	return reports[0], err
}

func (m *mockRewriteService) RewriteFiles(
	_ context.Context, paths []string, opts driving.RewriteOptions,
) ([]*domain.RewriteReport, error) {
	m.paths = paths
	m.opts = opts
	return m.reports, m.err
}

// mockCacheService is a mock implementation of driving.CacheService.
type mockCacheService struct {
	origins []domain.Origin
	removed []string
	err     error
}

func (m *mockCacheService) List(_ context.Context) ([]domain.Origin, error) {
	return m.origins, m.err
}

func (m *mockCacheService) Prune(_ context.Context) ([]string, error) {
	return m.removed, m.err
}

// useApp makes commands run against a.
func useApp(t *testing.T, a *app) {
	t.Helper()
	original := newApp
	newApp = func(*cobra.Command) (*app, error) { return a, nil }
	t.Cleanup(func() { newApp = original })
}

// execute runs the root command with fresh flag values and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags restores every flag to its default, since cobra keeps
// parsed values between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
