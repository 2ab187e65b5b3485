package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/driveimg/internal/core/domain"
)

// Summary colours.
var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#A6E3A1")
	colorWarning = lipgloss.Color("#F9E2AF")
	colorError   = lipgloss.Color("#F38BA8")
	colorMuted   = lipgloss.Color("#6C7086")
)

// summaryStyles colours the rewrite summary when writing to a terminal.
type summaryStyles struct {
	enabled bool
	title   lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

func newSummaryStyles(w io.Writer) summaryStyles {
	f, ok := w.(*os.File)
	return summaryStyles{
		enabled: ok && term.IsTerminal(int(f.Fd())),
		title:   lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		ok:      lipgloss.NewStyle().Foreground(colorSuccess),
		warn:    lipgloss.NewStyle().Foreground(colorWarning),
		err:     lipgloss.NewStyle().Foreground(colorError),
		muted:   lipgloss.NewStyle().Foreground(colorMuted),
	}
}

func (s summaryStyles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

// printReports writes one line per document.
func printReports(w io.Writer, reports []*domain.RewriteReport, dryRun bool) {
	st := newSummaryStyles(w)

	for _, r := range reports {
		state := st.render(st.muted, "unchanged")
		if r.Changed {
			state = st.render(st.ok, "rewritten")
			if dryRun {
				state = st.render(st.warn, "would rewrite")
			}
		}
		fmt.Fprintf(w, "%s: %s%s\n", st.render(st.title, r.Document), state, counts(st, r))
	}
}

func counts(st summaryStyles, r *domain.RewriteReport) string {
	var parts []string
	add := func(style lipgloss.Style, n int, label string) {
		if n > 0 {
			parts = append(parts, st.render(style, fmt.Sprintf("%d %s", n, label)))
		}
	}
	add(st.ok, r.Count(domain.ReferenceFetched), "fetched")
	add(st.muted, r.Count(domain.ReferenceCached), "cached")
	add(st.warn, r.Count(domain.ReferenceNotFound), "not found")
	add(st.warn, r.Count(domain.ReferenceUnsupported), "unsupported")
	add(st.err, r.Count(domain.ReferenceFailed), "failed")

	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
