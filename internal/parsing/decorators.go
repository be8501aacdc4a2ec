//go:build cgo

package parsing

import (
	sitter "github.com/smacker/go-tree-sitter"

	"wikigen/internal/patterns"
)

// decomposedDecorator is the (decorator_name, object_name) pair a decorator
// expression decomposes into, plus any keyword arguments so
// decorator_argument edges can be emitted without re-walking the AST.
type decomposedDecorator struct {
	name      string
	object    string // "" means None
	line      int
	keywords  map[string]*sitter.Node // argument name -> value node
}

// applyDecorators finds the decorator/annotation nodes attached to each
// function or class symbol, decomposes them, matches them against table, and
// emits decorator_argument references and sets IsEntryPoint on matching
// symbols.
func applyDecorators(root *sitter.Node, source []byte, lang Language, filePath string, symbols []ParsedSymbol, table *patterns.Table) []Reference {
	langTable := table.For(string(lang))
	var refs []Reference
	decoratorTypes := getDecoratorNodeTypes(lang)
	if len(decoratorTypes) == 0 {
		return nil
	}
	nameIndex := make(map[string]int, len(symbols))
	for i, s := range symbols {
		nameIndex[s.Name] = i
	}

	for _, defNode := range findNodes(root, append(getFunctionNodeTypes(lang), getClassNodeTypes(lang)...)) {
		defName := definitionName(defNode, source, lang)
		if defName == "" {
			continue
		}
		idx, ok := nameIndex[defName]
		if !ok {
			continue
		}
		for _, decNode := range decoratorsFor(defNode, decoratorTypes) {
			dec := decomposeDecorator(decNode, source, lang)
			if dec.name == "" {
				continue
			}
			if langTable != nil {
				for _, rp := range langTable.ReferencePatterns {
					argNames, matched := rp.Match(dec.name, dec.object)
					if !matched {
						continue
					}
					for _, argName := range argNames {
						valNode, ok := dec.keywords[argName]
						if !ok {
							continue
						}
						refs = append(refs, Reference{
							Source:     filePath + "::" + symbols[idx].QualifiedName(),
							Target:     text(valNode, source),
							Kind:       RefDecoratorArgument,
							Confidence: 0.95,
							Line:       dec.line,
						})
					}
				}
				for _, ep := range langTable.EntryPointPatterns {
					if ep.Match(dec.name, dec.object) {
						symbols[idx].IsEntryPoint = true
					}
				}
			}
		}
	}
	return refs
}

func definitionName(node *sitter.Node, source []byte, lang Language) string {
	if name := getFunctionName(node, source, lang); name != "" {
		return name
	}
	return getClassName(node, source, lang)
}

// decoratorsFor returns the decorator/annotation siblings immediately
// preceding defNode (Python/TS decorator list, Java/Kotlin annotations).
func decoratorsFor(defNode *sitter.Node, decoratorTypes []string) []*sitter.Node {
	typeSet := make(map[string]bool, len(decoratorTypes))
	for _, t := range decoratorTypes {
		typeSet[t] = true
	}
	var out []*sitter.Node
	// Decorators are either direct preceding siblings of defNode, or (for
	// Python) children of a wrapping "decorated_definition" node.
	if parent := defNode.Parent(); parent != nil && parent.Type() == "decorated_definition" {
		for i := uint32(0); i < parent.ChildCount(); i++ {
			child := parent.Child(int(i))
			if child != nil && typeSet[child.Type()] {
				out = append(out, child)
			}
		}
		return out
	}
	for sib := defNode.PrevSibling(); sib != nil && typeSet[sib.Type()]; sib = sib.PrevSibling() {
		out = append([]*sitter.Node{sib}, out...)
	}
	return out
}

// decomposeDecorator walks a decorator/annotation expression into its
// (decorator_name, object_name) pair exact rules: a bare
// name yields (name, None); an attribute a.b yields (b, "a"); a deeper
// attribute x.y.z yields (z, "x.y"); a call node is unwrapped to its callee.
func decomposeDecorator(node *sitter.Node, source []byte, lang Language) decomposedDecorator {
	line := int(node.StartPoint().Row) + 1
	expr := decoratorExpression(node, lang)
	keywords := map[string]*sitter.Node{}

	// Unwrap a call node to its callee, capturing keyword arguments.
	if callNode := callOf(expr, lang); callNode != nil {
		collectKeywordArgs(callNode, source, keywords)
		expr = callNode.ChildByFieldName("function")
		if expr == nil {
			expr = callNode.Child(0)
		}
	}

	name, object := decomposeNamePath(expr, source, lang)
	return decomposedDecorator{name: name, object: object, line: line, keywords: keywords}
}

// decoratorExpression strips the leading "@" token that wraps the inner
// expression in Python/TS decorator nodes; Java/Kotlin annotation nodes are
// themselves the expression.
func decoratorExpression(node *sitter.Node, lang Language) *sitter.Node {
	switch lang {
	case LangPython, LangTypeScript, LangTSX:
		for i := uint32(0); i < node.ChildCount(); i++ {
			child := node.Child(int(i))
			if child != nil && child.Type() != "@" {
				return child
			}
		}
	case LangJava, LangKotlin:
		for i := uint32(0); i < node.ChildCount(); i++ {
			child := node.Child(int(i))
			if child != nil && child.Type() != "@" {
				return child
			}
		}
	}
	return node
}

func callOf(node *sitter.Node, lang Language) *sitter.Node {
	if node == nil {
		return nil
	}
	switch node.Type() {
	case "call", "call_expression", "annotation":
		return node
	}
	return nil
}

func collectKeywordArgs(callNode *sitter.Node, source []byte, out map[string]*sitter.Node) {
	args := callNode.ChildByFieldName("arguments")
	if args == nil {
		args = callNode.ChildByFieldName("argument_list")
	}
	if args == nil {
		return
	}
	for i := uint32(0); i < args.ChildCount(); i++ {
		child := args.Child(int(i))
		if child == nil {
			continue
		}
		switch child.Type() {
		case "keyword_argument":
			nameNode := child.ChildByFieldName("name")
			valNode := child.ChildByFieldName("value")
			if nameNode != nil && valNode != nil {
				out[text(nameNode, source)] = valNode
			}
		case "element_value_pair":
			nameNode := child.ChildByFieldName("key")
			valNode := child.ChildByFieldName("value")
			if nameNode != nil && valNode != nil {
				out[text(nameNode, source)] = valNode
			}
		}
	}
}

// decomposeNamePath walks a (possibly nested) attribute/member expression
// into its trailing name and the dotted prefix before it.
func decomposeNamePath(node *sitter.Node, source []byte, lang Language) (name, object string) {
	if node == nil {
		return "", ""
	}
	switch node.Type() {
	case "identifier", "type_identifier", "marker_annotation":
		return text(node, source), ""
	case "attribute", "field_expression", "member_expression", "selector_expression":
		field := node.ChildByFieldName("attribute")
		if field == nil {
			field = node.ChildByFieldName("field")
		}
		if field == nil {
			field = node.ChildByFieldName("property")
		}
		objNode := node.ChildByFieldName("object")
		if objNode == nil {
			objNode = node.ChildByFieldName("value")
		}
		if field == nil {
			return text(node, source), ""
		}
		return text(field, source), text(objNode, source)
	default:
		// Fall back to the raw text, e.g. a single-segment annotation node.
		return text(node, source), ""
	}
}
