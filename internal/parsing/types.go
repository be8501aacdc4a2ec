// Package parsing implements C1: per-language extraction of ParsedSymbol and
// Reference values from a single file's contents. One parser
// dispatches by file extension across every supported language; callers never
// touch tree-sitter directly.
package parsing

// Language identifies one of the grammars this package can parse.
type Language string

const (
	LangGo         Language = "go"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangJava       Language = "java"
	LangKotlin     Language = "kotlin"
)

// LanguageFromExtension returns the Language registered for a file
// extension, or ok=false for anything this package does not parse — such a
// file still gets a minimal file page.
func LanguageFromExtension(ext string) (Language, bool) {
	switch ext {
	case ".go":
		return LangGo, true
	case ".js", ".mjs", ".cjs", ".jsx":
		return LangJavaScript, true
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	case ".py", ".pyw":
		return LangPython, true
	case ".rs":
		return LangRust, true
	case ".java":
		return LangJava, true
	case ".kt", ".kts":
		return LangKotlin, true
	default:
		return "", false
	}
}

// SymbolKind enumerates the ParsedSymbol.kind values.
type SymbolKind string

const (
	KindFunction SymbolKind = "function"
	KindMethod   SymbolKind = "method"
	KindClass    SymbolKind = "class"
	KindRoute    SymbolKind = "route"
	KindModule   SymbolKind = "module"
	KindVariable SymbolKind = "variable"
)

// ReferenceKind enumerates Reference.kind.
type ReferenceKind string

const (
	RefCalls            ReferenceKind = "calls"
	RefInstantiates     ReferenceKind = "instantiates"
	RefInherits         ReferenceKind = "inherits"
	RefImports          ReferenceKind = "imports"
	RefTypeAnnotation   ReferenceKind = "type_annotation"
	RefDecoratorArgument ReferenceKind = "decorator_argument"
)

// ParsedSymbol is a named definition produced by parsing one file
//. It is owned by C1 until handed to the graph builder at the
// end of parsing.
type ParsedSymbol struct {
	Name       string
	Kind       SymbolKind
	StartLine  int
	EndLine    int
	ParentName string // set for methods: the enclosing class
	Docstring  string
	Signature  string

	Raises        []string
	Mutates       []string
	IsEntryPoint  bool
}

// QualifiedName is "Parent.Name" for a method, or just "Name" otherwise —
// the key the graph builder's SymbolTable indexes on in addition to the bare
// simple name.
func (s ParsedSymbol) QualifiedName() string {
	if s.ParentName == "" {
		return s.Name
	}
	return s.ParentName + "." + s.Name
}

// Reference is a typed directed relation from a source scope to a target
// name, produced with TargetResolved=false; C2 rewrites Target/Confidence
// once it resolves the reference against the symbol table.
type Reference struct {
	Source         string // file path, or "file_path::QualifiedName"
	Target         string
	Kind           ReferenceKind
	Confidence     float64
	Line           int
	TargetResolved bool
}

// ParseError is the structured failure a parser returns for a file it could
// not parse. this is never fatal to the overall build: the
// file contributes no symbols and no references, but its path remains
// eligible for a minimal file page.
type ParseError struct {
	File    string
	Line    int
	Col     int
	Message string
}

func (e *ParseError) Error() string {
	return e.File + ": " + e.Message
}

// Result is what ExtractFile returns: the symbols and references found, plus
// a non-nil Err on a syntax-level parse failure. Err and non-empty
// Symbols/References are mutually exclusive in practice (a syntax error
// aborts extraction for that file) but both fields are always present so
// callers don't need a second type.
type Result struct {
	Symbols    []ParsedSymbol
	References []Reference
	Err        *ParseError
}
