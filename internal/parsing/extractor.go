//go:build cgo

package parsing

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"wikigen/internal/patterns"
)

// Extractor is C1: given a file path and its contents, it produces
// (symbols, references) or a structured ParseError.
type Extractor struct {
	parser *treeParser
	table  *patterns.Table
}

// NewExtractor builds an Extractor. table may be nil, in which case
// patterns.DefaultTable() is used.
func NewExtractor(table *patterns.Table) *Extractor {
	if table == nil {
		table = patterns.DefaultTable()
	}
	return &Extractor{parser: newTreeParser(), table: table}
}

// IsAvailable reports whether this build was compiled with tree-sitter
// support.
func IsAvailable() bool { return true }

// ExtractFile reads path and parses it. Unsupported extensions return a nil
// Result (the file is still eligible for a minimal file page).
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := LanguageFromExtension(ext)
	if !ok {
		return nil, nil
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return e.ExtractSource(ctx, path, source, lang), nil
}

// ExtractSource parses already-read source bytes for a known language.
func (e *Extractor) ExtractSource(ctx context.Context, path string, source []byte, lang Language) *Result {
	root, err := e.parser.parse(ctx, source, lang)
	if err != nil {
		return &Result{Err: &ParseError{File: path, Message: err.Error()}}
	}
	if root.HasError() {
		pe := &ParseError{File: path, Message: "syntax error"}
		if errNodes := findNodes(root, []string{"ERROR"}); len(errNodes) > 0 {
			pe.Line = int(errNodes[0].StartPoint().Row) + 1
			pe.Col = int(errNodes[0].StartPoint().Column) + 1
		}
		return &Result{Err: pe}
	}

	symbols := extractSymbols(root, source, lang)
	classSet := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		if s.Kind == KindClass {
			classSet[s.Name] = true
		}
	}

	refs := extractReferences(root, source, lang, path, classSet)
	refs = append(refs, applyDecorators(root, source, lang, path, symbols, e.table)...)

	return &Result{Symbols: symbols, References: refs}
}
