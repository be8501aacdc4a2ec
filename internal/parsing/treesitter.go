//go:build cgo

package parsing

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// treeParser wraps tree-sitter for multi-language parsing to an AST root.
type treeParser struct {
	parser *sitter.Parser
}

func newTreeParser() *treeParser {
	return &treeParser{parser: sitter.NewParser()}
}

func (p *treeParser) parse(ctx context.Context, source []byte, lang Language) (*sitter.Node, error) {
	tsLang, err := getLanguage(lang)
	if err != nil {
		return nil, err
	}
	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return tree.RootNode(), nil
}

func getLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangGo:
		return golang.GetLanguage(), nil
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	case LangPython:
		return python.GetLanguage(), nil
	case LangRust:
		return rust.GetLanguage(), nil
	case LangJava:
		return java.GetLanguage(), nil
	case LangKotlin:
		return kotlin.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// getFunctionNodeTypes returns the node types that represent top-level
// functions, async functions, and methods for a language.
func getFunctionNodeTypes(lang Language) []string {
	switch lang {
	case LangGo:
		return []string{"function_declaration", "method_declaration"}
	case LangJavaScript, LangTypeScript, LangTSX:
		return []string{"function_declaration", "method_definition", "arrow_function", "generator_function_declaration"}
	case LangPython:
		return []string{"function_definition"}
	case LangRust:
		return []string{"function_item"}
	case LangJava:
		return []string{"method_declaration", "constructor_declaration"}
	case LangKotlin:
		return []string{"function_declaration"}
	default:
		return nil
	}
}

// getClassNodeTypes returns the node types that represent classes (with
// their methods, ).
func getClassNodeTypes(lang Language) []string {
	switch lang {
	case LangGo:
		return []string{"type_spec"}
	case LangJavaScript, LangTypeScript, LangTSX:
		return []string{"class_declaration"}
	case LangPython:
		return []string{"class_definition"}
	case LangRust:
		return []string{"struct_item", "trait_item"}
	case LangJava:
		return []string{"class_declaration", "interface_declaration"}
	case LangKotlin:
		return []string{"class_declaration", "interface_declaration"}
	default:
		return nil
	}
}

// getCallNodeTypes returns the node types representing a call expression.
func getCallNodeTypes(lang Language) []string {
	switch lang {
	case LangGo:
		return []string{"call_expression"}
	case LangJavaScript, LangTypeScript, LangTSX:
		return []string{"call_expression", "new_expression"}
	case LangPython:
		return []string{"call"}
	case LangRust:
		return []string{"call_expression"}
	case LangJava, LangKotlin:
		return []string{"method_invocation", "object_creation_expression"}
	default:
		return nil
	}
}

// getImportNodeTypes returns the node types representing a top-level import.
func getImportNodeTypes(lang Language) []string {
	switch lang {
	case LangGo:
		return []string{"import_spec"}
	case LangJavaScript, LangTypeScript, LangTSX:
		return []string{"import_statement"}
	case LangPython:
		return []string{"import_statement", "import_from_statement"}
	case LangRust:
		return []string{"use_declaration"}
	case LangJava:
		return []string{"import_declaration"}
	case LangKotlin:
		return []string{"import_header"}
	default:
		return nil
	}
}

// getDecoratorNodeTypes returns the node types representing a decorator
// attached to a definition (Python's "@x.y(...)" style; the closest analogue
// in other grammars is an annotation).
func getDecoratorNodeTypes(lang Language) []string {
	switch lang {
	case LangPython:
		return []string{"decorator"}
	case LangJava, LangKotlin:
		return []string{"annotation", "marker_annotation"}
	case LangTypeScript, LangTSX:
		return []string{"decorator"}
	default:
		return nil
	}
}

func findNodes(root *sitter.Node, types []string) []*sitter.Node {
	if len(types) == 0 || root == nil {
		return nil
	}
	typeSet := make(map[string]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}
	var result []*sitter.Node
	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if typeSet[node.Type()] {
			result = append(result, node)
		}
		for i := uint32(0); i < node.ChildCount(); i++ {
			walk(node.Child(int(i)))
		}
	}
	walk(root)
	return result
}

func text(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}
