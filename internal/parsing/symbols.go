//go:build cgo

package parsing

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// extractSymbols walks root for top-level functions, async functions and
// classes (with their methods). Variable declarations, annotated or not,
// are not extracted.
func extractSymbols(root *sitter.Node, source []byte, lang Language) []ParsedSymbol {
	var out []ParsedSymbol
	out = append(out, extractFunctions(root, source, lang)...)
	out = append(out, extractClasses(root, source, lang)...)
	return out
}

func extractFunctions(root *sitter.Node, source []byte, lang Language) []ParsedSymbol {
	var out []ParsedSymbol
	for _, node := range findNodes(root, getFunctionNodeTypes(lang)) {
		name := getFunctionName(node, source, lang)
		if name == "" {
			continue
		}
		kind := KindFunction
		parent := ""
		if isMethod(node, lang) {
			kind = KindMethod
			parent = getMethodReceiver(node, source, lang)
		}
		out = append(out, ParsedSymbol{
			Name:       name,
			Kind:       kind,
			StartLine:  int(node.StartPoint().Row) + 1,
			EndLine:    int(node.EndPoint().Row) + 1,
			ParentName: parent,
			Docstring:  extractDocstring(node, source, lang),
			Signature:  extractSignature(node, source),
		})
	}
	return out
}

func extractClasses(root *sitter.Node, source []byte, lang Language) []ParsedSymbol {
	var out []ParsedSymbol
	for _, node := range findNodes(root, getClassNodeTypes(lang)) {
		if lang == LangGo && !isGoStructOrInterfaceSpec(node, source) {
			continue
		}
		name := getClassName(node, source, lang)
		if name == "" {
			continue
		}
		out = append(out, ParsedSymbol{
			Name:      name,
			Kind:      KindClass,
			StartLine: int(node.StartPoint().Row) + 1,
			EndLine:   int(node.EndPoint().Row) + 1,
			Docstring: extractDocstring(node, source, lang),
			Signature: extractSignature(node, source),
		})
	}
	return out
}

// isGoStructOrInterfaceSpec filters type_spec nodes down to struct/interface
// declarations, since Go type_spec also covers plain type aliases that
// aren't "classes" in this narrower sense.
func isGoStructOrInterfaceSpec(node *sitter.Node, source []byte) bool {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return false
	}
	return typeNode.Type() == "struct_type" || typeNode.Type() == "interface_type"
}

func getFunctionName(node *sitter.Node, source []byte, lang Language) string {
	var nameNode *sitter.Node
	switch lang {
	case LangGo:
		nameNode = node.ChildByFieldName("name")
	case LangJavaScript, LangTypeScript, LangTSX:
		nameNode = node.ChildByFieldName("name")
		if nameNode == nil {
			// arrow functions assigned to a variable: look at the enclosing
			// variable_declarator for its "name" field.
			if p := node.Parent(); p != nil && p.Type() == "variable_declarator" {
				nameNode = p.ChildByFieldName("name")
			}
		}
	case LangPython, LangRust, LangJava:
		nameNode = node.ChildByFieldName("name")
	case LangKotlin:
		for i := uint32(0); i < node.ChildCount(); i++ {
			child := node.Child(int(i))
			if child != nil && child.Type() == "simple_identifier" {
				nameNode = child
				break
			}
		}
	}
	return text(nameNode, source)
}

func getClassName(node *sitter.Node, source []byte, lang Language) string {
	var nameNode *sitter.Node
	switch lang {
	case LangGo:
		nameNode = node.ChildByFieldName("name")
	default:
		nameNode = node.ChildByFieldName("name")
	}
	return text(nameNode, source)
}

func isMethod(node *sitter.Node, lang Language) bool {
	switch lang {
	case LangGo:
		return node.Type() == "method_declaration"
	case LangJavaScript, LangTypeScript, LangTSX:
		return node.Type() == "method_definition"
	case LangPython:
		parent := node.Parent()
		for parent != nil {
			if parent.Type() == "class_definition" {
				return true
			}
			parent = parent.Parent()
		}
		return false
	case LangJava, LangKotlin:
		return node.Type() == "method_declaration"
	default:
		return false
	}
}

// getMethodReceiver returns the enclosing class/receiver-type name, unwrapping
// Go's pointer receivers ("func (s *Server) Foo()" -> "Server").
func getMethodReceiver(node *sitter.Node, source []byte, lang Language) string {
	switch lang {
	case LangGo:
		recv := node.ChildByFieldName("receiver")
		if recv == nil {
			return ""
		}
		for i := uint32(0); i < recv.ChildCount(); i++ {
			param := recv.Child(int(i))
			if param == nil || param.Type() != "parameter_declaration" {
				continue
			}
			typeNode := param.ChildByFieldName("type")
			if typeNode == nil {
				continue
			}
			if typeNode.Type() == "pointer_type" {
				for j := uint32(0); j < typeNode.ChildCount(); j++ {
					inner := typeNode.Child(int(j))
					if inner != nil && inner.Type() == "type_identifier" {
						return text(inner, source)
					}
				}
				continue
			}
			if typeNode.Type() == "type_identifier" {
				return text(typeNode, source)
			}
		}
		return ""

	case LangPython:
		parent := node.Parent()
		for parent != nil {
			if parent.Type() == "class_definition" {
				return text(parent.ChildByFieldName("name"), source)
			}
			parent = parent.Parent()
		}
		return ""

	case LangJavaScript, LangTypeScript, LangTSX:
		parent := node.Parent()
		for parent != nil {
			if parent.Type() == "class_declaration" {
				return text(parent.ChildByFieldName("name"), source)
			}
			parent = parent.Parent()
		}
		return ""

	case LangJava, LangKotlin:
		parent := node.Parent()
		for parent != nil {
			if parent.Type() == "class_declaration" {
				return text(parent.ChildByFieldName("name"), source)
			}
			parent = parent.Parent()
		}
		return ""
	}
	return ""
}

// extractDocstring pulls a Python-style leading string-literal docstring
// from a function/class body, or a preceding line-comment block for
// comment-doc languages.
func extractDocstring(node *sitter.Node, source []byte, lang Language) string {
	switch lang {
	case LangPython:
		body := node.ChildByFieldName("body")
		if body == nil || body.ChildCount() == 0 {
			return ""
		}
		first := body.Child(0)
		if first != nil && first.Type() == "expression_statement" && first.ChildCount() > 0 {
			str := first.Child(0)
			if str != nil && str.Type() == "string" {
				return text(str, source)
			}
		}
		return ""
	default:
		// Comment-doc languages: a contiguous block of line comments
		// immediately preceding the node, found via the previous sibling.
		prev := node.PrevSibling()
		if prev == nil {
			return ""
		}
		switch prev.Type() {
		case "comment", "line_comment", "block_comment":
			return text(prev, source)
		default:
			return ""
		}
	}
}

// extractSignature returns the node's header line (up to the body), trimmed
// to a reasonable length for display.
func extractSignature(node *sitter.Node, source []byte) string {
	start := node.StartByte()
	end := node.EndByte()
	content := source[start:end]
	if len(content) > 240 {
		content = content[:240]
	}
	for i, b := range content {
		if b == '\n' {
			content = content[:i]
			break
		}
	}
	return strings.TrimSpace(string(content))
}
