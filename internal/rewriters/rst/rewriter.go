// Package rst finds and rewrites image and figure directives in
// reStructuredText documents.
package rst

import (
	"regexp"

	"github.com/custodia-labs/driveimg/internal/core/ports/driven"
)

// Ensure Rewriter implements the interface.
var _ driven.DocumentRewriter = (*Rewriter)(nil)

// .. image:: <uri>   and   .. figure:: <uri>
var directivePattern = regexp.MustCompile(`(?m)^[ \t]*\.\.[ \t]+(?:image|figure)::[ \t]+(\S+)[ \t]*$`)

// Rewriter handles .rst and .rest files.
type Rewriter struct{}

// New creates a reStructuredText rewriter.
func New() *Rewriter {
	return &Rewriter{}
}

// Name returns the rewriter name.
func (r *Rewriter) Name() string {
	return "rst"
}

// Extensions returns the handled file extensions.
func (r *Rewriter) Extensions() []string {
	return []string{".rst", ".rest"}
}

// References returns directive URIs in document order.
func (r *Rewriter) References(content []byte) []string {
	var refs []string
	for _, m := range directivePattern.FindAllSubmatch(content, -1) {
		refs = append(refs, string(m[1]))
	}
	return refs
}

// Replace substitutes directive URIs found in replacements.
func (r *Rewriter) Replace(content []byte, replacements map[string]string) []byte {
	if len(replacements) == 0 {
		return content
	}
	out := make([]byte, 0, len(content))
	last := 0
	for _, m := range directivePattern.FindAllSubmatchIndex(content, -1) {
		repl, ok := replacements[string(content[m[2]:m[3]])]
		if !ok {
			continue
		}
		out = append(out, content[last:m[2]]...)
		out = append(out, repl...)
		last = m[3]
	}
	return append(out, content[last:]...)
}
