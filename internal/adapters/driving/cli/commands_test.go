package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/driveimg/internal/core/domain"
)

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"resolve", "rewrite", "cache", "config", "mcp", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestResolveCmd(t *testing.T) {
	useApp(t, &app{resolver: &mockResolver{res: &domain.Resolution{
		Path:  "_images/googledrive/ABC123.png",
		Image: domain.ResolvedImage{TargetMimeType: domain.MimeTypePNG},
	}}})

	out, err := execute(t, "resolve", "https://docs.google.com/drawings/d/ABC123/edit")

	require.NoError(t, err)
	assert.Equal(t, "_images/googledrive/ABC123.png\timage/png\n", out)
}

func TestResolveCmd_Error(t *testing.T) {
	useApp(t, &app{resolver: &mockResolver{err: &domain.NotFoundError{FileID: "X", Trashed: true}}})

	_, err := execute(t, "resolve", "https://drive.google.com/open?id=X")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveCmd_RequiresURL(t *testing.T) {
	_, err := execute(t, "resolve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestRewriteCmd(t *testing.T) {
	rewrite := &mockRewriteService{reports: []*domain.RewriteReport{{
		Document: "docs/a.md",
		Changed:  true,
		References: []domain.ReferenceResult{
			{Status: domain.ReferenceFetched},
			{Status: domain.ReferenceNotFound},
		},
	}}}
	useApp(t, &app{rewrite: rewrite})

	out, err := execute(t, "rewrite", "--dry-run", "--jobs", "2", "docs/a.md")

	require.NoError(t, err)
	assert.Equal(t, []string{"docs/a.md"}, rewrite.paths)
	assert.True(t, rewrite.opts.DryRun)
	assert.Equal(t, 2, rewrite.opts.Jobs)
	assert.Equal(t, "docs/a.md: would rewrite (1 fetched, 1 not found)\n", out)
}

func TestRewriteCmd_DefaultJobs(t *testing.T) {
	rewrite := &mockRewriteService{}
	useApp(t, &app{rewrite: rewrite})

	_, err := execute(t, "rewrite", "a.md", "b.md")

	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "b.md"}, rewrite.paths)
	assert.False(t, rewrite.opts.DryRun)
	assert.Equal(t, 4, rewrite.opts.Jobs)
}

func TestRewriteCmd_ConfigurationError(t *testing.T) {
	useApp(t, &app{rewrite: &mockRewriteService{err: domain.ErrConfiguration}})

	_, err := execute(t, "rewrite", "a.md")

	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestRewriteCmd_RequiresFiles(t *testing.T) {
	_, err := execute(t, "rewrite")

	assert.Error(t, err)
}

func TestCacheListCmd(t *testing.T) {
	useApp(t, &app{cache: &mockCacheService{origins: []domain.Origin{{
		Path:       ".driveimg/images/googledrive/A.png",
		MimeType:   domain.MimeTypePNG,
		SourceURL:  "https://drive.google.com/open?id=A",
		ResolvedAt: time.Now(),
	}}}})

	out, err := execute(t, "cache", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, ".driveimg/images/googledrive/A.png")
	assert.Contains(t, out, "https://drive.google.com/open?id=A")
}

func TestCacheListCmd_Empty(t *testing.T) {
	useApp(t, &app{cache: &mockCacheService{}})

	out, err := execute(t, "cache", "list")

	require.NoError(t, err)
	assert.Equal(t, "Cache is empty.\n", out)
}

func TestCachePruneCmd(t *testing.T) {
	useApp(t, &app{cache: &mockCacheService{removed: []string{"a.png", "b.png"}}})

	out, err := execute(t, "cache", "prune")

	require.NoError(t, err)
	assert.Equal(t, "removed a.png\nremoved b.png\nPruned 2 file(s).\n", out)
}

func TestCachePruneCmd_Error(t *testing.T) {
	useApp(t, &app{cache: &mockCacheService{removed: []string{"a.png"}, err: errors.New("permission denied")}})

	out, err := execute(t, "cache", "prune")

	assert.ErrorContains(t, err, "permission denied")
	assert.Contains(t, out, "removed a.png")
}

func TestWithApp_ClosesApp(t *testing.T) {
	closed := false
	useApp(t, &app{
		cache: &mockCacheService{},
		close: func() error { closed = true; return nil },
	})

	_, err := execute(t, "cache", "list")

	require.NoError(t, err)
	assert.True(t, closed)
}

func TestConfigCmds(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "--config-dir", dir, "--builder", "latex", "--trim", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "config.toml"))

	out, err = execute(t, "--config-dir", dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "trim_images:          true")
	assert.Contains(t, out, "supported_mime_types: application/pdf, image/png, image/jpeg")
	assert.Contains(t, out, "service_account:      (unset)")
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[googledrive]
cache_dir = "from-config"
trim_images = true
supported_mime_types = ["image/png"]
`), 0o600))

	tests := []struct {
		name      string
		args      []string
		wantTypes []string
		wantCache string
		wantTrim  bool
		wantErr   error
	}{
		{
			name:      "config values",
			wantTypes: []string{domain.MimeTypePNG},
			wantCache: "from-config",
			wantTrim:  true,
		},
		{
			name:      "builder overrides config",
			args:      []string{"--builder", "latex"},
			wantTypes: domain.BuilderLaTeX.SupportedMimeTypes(),
			wantCache: "from-config",
			wantTrim:  true,
		},
		{
			name:      "supported-type overrides builder",
			args:      []string{"--builder", "latex", "--supported-type", "image/gif", "--supported-type", "image/svg+xml"},
			wantTypes: []string{domain.MimeTypeGIF, domain.MimeTypeSVG},
			wantCache: "from-config",
			wantTrim:  true,
		},
		{
			name:      "flags override cache and trim",
			args:      []string{"--cache-dir", "flag-cache", "--trim=false"},
			wantTypes: []string{domain.MimeTypePNG},
			wantCache: "flag-cache",
			wantTrim:  false,
		},
		{
			name:    "unknown builder",
			args:    []string{"--builder", "epub"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "type without extension",
			args:    []string{"--supported-type", "image/x-icon"},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(rootCmd)
			args := append([]string{"--config-dir", dir}, tt.args...)
			require.NoError(t, rootCmd.ParseFlags(args))

			settings, err := loadSettings(rootCmd)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTypes, settings.SupportedMimeTypes)
			assert.Equal(t, tt.wantCache, settings.CacheDir)
			assert.Equal(t, tt.wantTrim, settings.TrimImages)
		})
	}
}

func TestBuildApp(t *testing.T) {
	dir := t.TempDir()
	resetFlags(rootCmd)
	require.NoError(t, rootCmd.ParseFlags([]string{"--config-dir", dir, "--cache-dir", filepath.Join(dir, "images")}))

	a, err := buildApp(rootCmd)
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.resolver)
	assert.NotNil(t, a.rewrite)
	assert.NotNil(t, a.cache)
	_, err = os.Stat(filepath.Join(dir, "metadata.db"))
	assert.NoError(t, err)

	origins, err := a.cache.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, origins)
}
