// Package html finds and rewrites <img> references in HTML documents.
//
// References are discovered with a real HTML parser so that comments,
// scripts and attribute-like text are ignored. Replacement is done on the
// raw bytes of each <img> tag's src attribute so the rest of the markup,
// including whitespace and attribute order, is preserved.
package html

import (
	"bytes"
	stdhtml "html"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/driveimg/internal/core/ports/driven"
	"github.com/custodia-labs/driveimg/internal/logger"
)

// Ensure Rewriter implements the interface.
var _ driven.DocumentRewriter = (*Rewriter)(nil)

var (
	imgTagPattern  = regexp.MustCompile(`(?is)<img\b[^>]*>`)
	srcAttrPattern = regexp.MustCompile(`(?is)(\ssrc\s*=\s*)(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`)
)

// Rewriter handles .html and .htm files.
type Rewriter struct{}

// New creates an HTML rewriter.
func New() *Rewriter {
	return &Rewriter{}
}

// Name returns the rewriter name.
func (r *Rewriter) Name() string {
	return "html"
}

// Extensions returns the handled file extensions.
func (r *Rewriter) Extensions() []string {
	return []string{".html", ".htm"}
}

// References returns the src of every <img> element in document order.
func (r *Rewriter) References(content []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		logger.Debug("html: parse failed: %v", err)
		return nil
	}

	var refs []string
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && src != "" {
			refs = append(refs, src)
		}
	})
	return refs
}

// Replace rewrites img src values that appear in replacements.
// Keys are unescaped URIs as returned by References.
func (r *Rewriter) Replace(content []byte, replacements map[string]string) []byte {
	if len(replacements) == 0 {
		return content
	}
	return imgTagPattern.ReplaceAllFunc(content, func(tag []byte) []byte {
		m := srcAttrPattern.FindSubmatchIndex(tag)
		if m == nil {
			return tag
		}

		// Exactly one of the three value groups participates.
		start, end := -1, -1
		for g := 2; g <= 4; g++ {
			if m[2*g] >= 0 {
				start, end = m[2*g], m[2*g+1]
				break
			}
		}
		if start < 0 {
			return tag
		}

		repl, ok := replacements[stdhtml.UnescapeString(string(tag[start:end]))]
		if !ok {
			return tag
		}

		out := make([]byte, 0, len(tag)+len(repl))
		out = append(out, tag[:start]...)
		out = append(out, stdhtml.EscapeString(repl)...)
		return append(out, tag[end:]...)
	})
}
