//go:build !cgo

package parsing

import (
	"context"

	"wikigen/internal/patterns"
)

// Extractor is the pure-Go fallback used when tree-sitter's cgo grammars
// are unavailable: every file is reported as unsupported, so it still gets
// a minimal file page with zero symbols and zero references.
type Extractor struct{}

// NewExtractor returns a stub extractor. table is accepted for interface
// parity with the cgo build and otherwise unused.
func NewExtractor(table *patterns.Table) *Extractor {
	return &Extractor{}
}

// IsAvailable reports whether this build was compiled with tree-sitter
// support.
func IsAvailable() bool { return false }

// ExtractFile always returns (nil, nil): no symbols, no references, no
// error — callers still create a minimal file page for the path.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*Result, error) {
	return nil, nil
}

// ExtractSource always returns a nil Result.
func (e *Extractor) ExtractSource(ctx context.Context, path string, source []byte, lang Language) *Result {
	return nil
}
