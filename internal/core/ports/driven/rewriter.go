package driven

// DocumentRewriter finds and replaces image references in one document format.
type DocumentRewriter interface {
	// Name identifies the rewriter in logs.
	Name() string

	// Extensions returns the file extensions handled, including the dot.
	Extensions() []string

	// References returns every image URI in the document, in order of appearance.
	References(content []byte) []string

	// Replace substitutes image URIs according to replacements (old → new).
	// Text that is not an image URI is left untouched.
	Replace(content []byte, replacements map[string]string) []byte
}

// RewriterRegistry selects a DocumentRewriter by file extension.
type RewriterRegistry interface {
	// For returns the rewriter for a path, or nil if none handles it.
	For(path string) DocumentRewriter

	// Register adds a rewriter.
	Register(r DocumentRewriter)
}
