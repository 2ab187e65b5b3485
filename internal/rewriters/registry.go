package rewriters

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/driveimg/internal/core/ports/driven"
	"github.com/custodia-labs/driveimg/internal/rewriters/html"
	"github.com/custodia-labs/driveimg/internal/rewriters/markdown"
	"github.com/custodia-labs/driveimg/internal/rewriters/rst"
)

// Ensure Registry implements the interface.
var _ driven.RewriterRegistry = (*Registry)(nil)

// Registry maps file extensions to rewriters.
type Registry struct {
	mu    sync.RWMutex
	byExt map[string]driven.DocumentRewriter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]driven.DocumentRewriter)}
}

// DefaultRegistry returns a registry with the Markdown, HTML and reStructuredText rewriters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(rst.New())
	return r
}

// Register adds a rewriter. Later registrations win for shared extensions.
func (r *Registry) Register(rw driven.DocumentRewriter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range rw.Extensions() {
		r.byExt[strings.ToLower(ext)] = rw
	}
}

// For returns the rewriter for path, or nil if none handles its extension.
func (r *Registry) For(path string) driven.DocumentRewriter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byExt[strings.ToLower(filepath.Ext(path))]
}
