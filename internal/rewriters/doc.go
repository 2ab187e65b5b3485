// Package rewriters provides implementations of the DocumentRewriter interface
// for various document formats. Each rewriter knows how to find image
// references in one source format and substitute their URIs in place,
// leaving the rest of the document byte-for-byte unchanged.
//
// Rewriters are registered with the Registry at startup.
package rewriters
