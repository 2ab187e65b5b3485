package domain

// ReferenceStatus is the outcome of handling one image reference.
type ReferenceStatus string

// Reference outcomes.
const (
	ReferenceCached      ReferenceStatus = "cached"
	ReferenceFetched     ReferenceStatus = "fetched"
	ReferenceNotFound    ReferenceStatus = "not_found"
	ReferenceUnsupported ReferenceStatus = "unsupported"
	ReferenceFailed      ReferenceStatus = "failed"
)

// IsResolved returns true when the reference was replaced by a local path.
func (s ReferenceStatus) IsResolved() bool {
	return s == ReferenceCached || s == ReferenceFetched
}

// ReferenceResult describes one Drive image reference in a document.
type ReferenceResult struct {
	URL       string
	LocalPath string
	MimeType  string
	Status    ReferenceStatus
	Err       error
}

// RewriteReport summarises one rewritten document.
type RewriteReport struct {
	Document   string
	RunID      string
	References []ReferenceResult
	Changed    bool
}

// Count returns the number of references with the given status.
func (r *RewriteReport) Count(status ReferenceStatus) int {
	n := 0
	for _, ref := range r.References {
		if ref.Status == status {
			n++
		}
	}
	return n
}

// Resolved returns the number of references replaced by local paths.
func (r *RewriteReport) Resolved() int {
	n := 0
	for _, ref := range r.References {
		if ref.Status.IsResolved() {
			n++
		}
	}
	return n
}
