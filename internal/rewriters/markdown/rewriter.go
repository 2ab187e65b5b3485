// Package markdown finds and rewrites image references in Markdown documents.
package markdown

import (
	"regexp"
	"slices"

	"github.com/custodia-labs/driveimg/internal/core/ports/driven"
)

// Ensure Rewriter implements the interface.
var _ driven.DocumentRewriter = (*Rewriter)(nil)

var (
	// ![alt](url "title") with an optional <...> wrapper around the URL.
	imagePattern = regexp.MustCompile(`!\[[^\]]*\]\(\s*<?([^)\s>]+)>?(?:\s+(?:"[^"]*"|'[^']*'))?\s*\)`)

	// Inline HTML <img src="url">.
	imgTagPattern = regexp.MustCompile(`(?i)<img\b[^>]*?\bsrc\s*=\s*["']([^"']+)["']`)

	// Fenced code blocks are left alone.
	fencePattern = regexp.MustCompile("(?ms)^[ \t]*```.*?^[ \t]*```[^\n]*$|^[ \t]*~~~.*?^[ \t]*~~~[^\n]*$")
)

// Rewriter handles .md and .markdown files.
type Rewriter struct{}

// New creates a Markdown rewriter.
func New() *Rewriter {
	return &Rewriter{}
}

// Name returns the rewriter name.
func (r *Rewriter) Name() string {
	return "markdown"
}

// Extensions returns the handled file extensions.
func (r *Rewriter) Extensions() []string {
	return []string{".md", ".markdown"}
}

// References returns image URIs in document order, outside fenced code blocks.
func (r *Rewriter) References(content []byte) []string {
	var refs []string
	eachProse(content, func(seg []byte) {
		refs = append(refs, findURLs(seg)...)
	})
	return refs
}

// Replace substitutes image URIs found in replacements. Everything else,
// including code blocks and non-image links, is copied unchanged.
func (r *Rewriter) Replace(content []byte, replacements map[string]string) []byte {
	if len(replacements) == 0 {
		return content
	}
	out := make([]byte, 0, len(content))
	last := 0
	for _, fence := range fencePattern.FindAllIndex(content, -1) {
		out = append(out, replaceURLs(content[last:fence[0]], replacements)...)
		out = append(out, content[fence[0]:fence[1]]...)
		last = fence[1]
	}
	return append(out, replaceURLs(content[last:], replacements)...)
}

func eachProse(content []byte, fn func([]byte)) {
	last := 0
	for _, fence := range fencePattern.FindAllIndex(content, -1) {
		fn(content[last:fence[0]])
		last = fence[1]
	}
	fn(content[last:])
}

type span struct {
	start, end int
}

// urlSpans returns the byte ranges of every image URI in seg, ordered by offset.
func urlSpans(seg []byte) []span {
	var spans []span
	for _, p := range []*regexp.Regexp{imagePattern, imgTagPattern} {
		for _, m := range p.FindAllSubmatchIndex(seg, -1) {
			spans = append(spans, span{m[2], m[3]})
		}
	}
	slices.SortFunc(spans, func(a, b span) int { return a.start - b.start })
	return spans
}

func findURLs(seg []byte) []string {
	spans := urlSpans(seg)
	urls := make([]string, 0, len(spans))
	for _, s := range spans {
		urls = append(urls, string(seg[s.start:s.end]))
	}
	return urls
}

func replaceURLs(seg []byte, replacements map[string]string) []byte {
	out := make([]byte, 0, len(seg))
	last := 0
	for _, s := range urlSpans(seg) {
		repl, ok := replacements[string(seg[s.start:s.end])]
		if !ok {
			continue
		}
		out = append(out, seg[last:s.start]...)
		out = append(out, repl...)
		last = s.end
	}
	return append(out, seg[last:]...)
}
