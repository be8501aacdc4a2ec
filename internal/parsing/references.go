//go:build cgo

package parsing

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// builtinTypeNames excludes a language's primitive/builtin type names from
// type_annotation edges.
var builtinTypeNames = map[Language]map[string]bool{
	LangPython: setOf("int", "float", "str", "bool", "bytes", "list", "dict",
		"set", "tuple", "frozenset", "None", "Any", "object", "complex"),
	LangTypeScript: setOf("string", "number", "boolean", "any", "unknown",
		"void", "never", "object", "undefined", "null", "bigint", "symbol"),
	LangTSX: setOf("string", "number", "boolean", "any", "unknown", "void",
		"never", "object", "undefined", "null", "bigint", "symbol"),
	LangGo: setOf("string", "int", "int8", "int16", "int32", "int64", "uint",
		"uint8", "uint16", "uint32", "uint64", "float32", "float64", "bool",
		"byte", "rune", "error", "any", "complex64", "complex128"),
	LangJava: setOf("int", "long", "short", "byte", "float", "double",
		"boolean", "char", "void", "String", "Object"),
	LangKotlin: setOf("Int", "Long", "Short", "Byte", "Float", "Double",
		"Boolean", "Char", "String", "Unit", "Any"),
	LangRust: setOf("i8", "i16", "i32", "i64", "isize", "u8", "u16", "u32",
		"u64", "usize", "f32", "f64", "bool", "char", "str", "String"),
}

func setOf(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// extractReferences walks root for call/instantiate/inherit/import/
// type_annotation edges exact confidence rules. classSet
// holds the simple names of classes extracted from the same file, used to
// decide calls-vs-instantiates.
func extractReferences(root *sitter.Node, source []byte, lang Language, filePath string, classSet map[string]bool) []Reference {
	var out []Reference
	out = append(out, extractCallReferences(root, source, lang, filePath, classSet)...)
	out = append(out, extractInheritReferences(root, source, lang, filePath)...)
	out = append(out, extractImportReferences(root, source, lang, filePath)...)
	out = append(out, extractTypeAnnotationReferences(root, source, lang, filePath)...)
	return out
}

// extractCallReferences emits "calls" (0.9 bare name / 0.75 attribute access
// / 0.6 dynamically built) or "instantiates" (when the callee is a known
// class name in this file) edges.
func extractCallReferences(root *sitter.Node, source []byte, lang Language, filePath string, classSet map[string]bool) []Reference {
	var out []Reference
	enclosing := enclosingScopeIndex(root, lang)
	for _, node := range findNodes(root, getCallNodeTypes(lang)) {
		callee := node.ChildByFieldName("function")
		if callee == nil {
			callee = node.ChildByFieldName("constructor") // new_expression
		}
		if callee == nil {
			continue
		}
		name, confidence := calleeNameAndConfidence(callee, source)
		if name == "" {
			continue
		}
		kind := RefCalls
		if classSet[name] {
			kind = RefInstantiates
			confidence = 0.9
		}
		out = append(out, Reference{
			Source:     scopeFor(node, enclosing, filePath, source, lang),
			Target:     name,
			Kind:       kind,
			Confidence: confidence,
			Line:       int(node.StartPoint().Row) + 1,
		})
	}
	return out
}

// calleeNameAndConfidence decomposes a callee expression into the name to
// resolve and the confidence assigns to that shape.
func calleeNameAndConfidence(callee *sitter.Node, source []byte) (string, float64) {
	switch callee.Type() {
	case "identifier", "type_identifier":
		return text(callee, source), 0.9
	case "selector_expression", "field_expression", "member_expression",
		"attribute":
		field := callee.ChildByFieldName("field")
		if field == nil {
			field = callee.ChildByFieldName("property")
		}
		if field == nil {
			field = callee.ChildByFieldName("attribute")
		}
		if field != nil {
			return text(field, source), 0.75
		}
		return text(callee, source), 0.75
	default:
		// A dynamically built name: index expressions, computed member
		// access, anything else we can't decompose structurally.
		return text(callee, source), 0.6
	}
}

// extractInheritReferences emits an "inherits" edge (confidence 0.95) for
// each base class listed in a class declaration's heritage clause.
func extractInheritReferences(root *sitter.Node, source []byte, lang Language, filePath string) []Reference {
	var out []Reference
	for _, node := range findNodes(root, getClassNodeTypes(lang)) {
		name := getClassName(node, source, lang)
		if name == "" {
			continue
		}
		for _, base := range baseClassNames(node, source, lang) {
			out = append(out, Reference{
				Source:     filePath + "::" + name,
				Target:     base,
				Kind:       RefInherits,
				Confidence: 0.95,
				Line:       int(node.StartPoint().Row) + 1,
			})
		}
	}
	return out
}

func baseClassNames(node *sitter.Node, source []byte, lang Language) []string {
	var names []string
	switch lang {
	case LangPython:
		args := node.ChildByFieldName("superclasses")
		if args == nil {
			return nil
		}
		for i := uint32(0); i < args.ChildCount(); i++ {
			child := args.Child(int(i))
			if child != nil && (child.Type() == "identifier" || child.Type() == "attribute") {
				names = append(names, lastSegment(text(child, source)))
			}
		}
	case LangJavaScript, LangTypeScript, LangTSX:
		heritage := node.ChildByFieldName("heritage")
		clause := heritage
		if clause == nil {
			// class_heritage wraps extends_clause/implements_clause children
			for i := uint32(0); i < node.ChildCount(); i++ {
				child := node.Child(int(i))
				if child != nil && child.Type() == "class_heritage" {
					clause = child
				}
			}
		}
		if clause != nil {
			for _, n := range findNodes(clause, []string{"identifier", "type_identifier"}) {
				names = append(names, text(n, source))
			}
		}
	case LangJava, LangKotlin:
		sup := node.ChildByFieldName("superclass")
		if sup != nil {
			for _, n := range findNodes(sup, []string{"type_identifier", "identifier"}) {
				names = append(names, text(n, source))
			}
		}
		iface := node.ChildByFieldName("interfaces")
		if iface != nil {
			for _, n := range findNodes(iface, []string{"type_identifier", "identifier"}) {
				names = append(names, text(n, source))
			}
		}
	}
	return names
}

// extractImportReferences emits an "imports" edge (confidence 0.95) from the
// file scope to each top-level imported module/symbol.
func extractImportReferences(root *sitter.Node, source []byte, lang Language, filePath string) []Reference {
	var out []Reference
	for _, node := range findNodes(root, getImportNodeTypes(lang)) {
		for _, target := range importTargets(node, source, lang) {
			out = append(out, Reference{
				Source:     filePath,
				Target:     target,
				Kind:       RefImports,
				Confidence: 0.95,
				Line:       int(node.StartPoint().Row) + 1,
			})
		}
	}
	return out
}

func importTargets(node *sitter.Node, source []byte, lang Language) []string {
	switch lang {
	case LangGo:
		path := node.ChildByFieldName("path")
		if path == nil {
			return nil
		}
		return []string{strings.Trim(text(path, source), "\"")}
	case LangPython:
		var targets []string
		moduleNode := node.ChildByFieldName("module_name")
		if moduleNode != nil {
			targets = append(targets, text(moduleNode, source))
			return targets
		}
		for _, n := range findNodes(node, []string{"dotted_name", "aliased_import"}) {
			if n.Type() == "dotted_name" && n.Parent() == node {
				targets = append(targets, text(n, source))
			}
		}
		return targets
	case LangJavaScript, LangTypeScript, LangTSX:
		src := node.ChildByFieldName("source")
		if src == nil {
			return nil
		}
		return []string{strings.Trim(text(src, source), "\"'`")}
	case LangRust:
		return []string{text(node, source)}
	case LangJava:
		return []string{text(node, source)}
	case LangKotlin:
		return []string{text(node, source)}
	default:
		return nil
	}
}

// extractTypeAnnotationReferences emits a "type_annotation" edge (confidence
// 0.9) per annotated parameter, return type, or variable, recursing through
// generic parameters, union operators, tuple members, and forward
// references (quoted identifiers starting with an uppercase letter).
func extractTypeAnnotationReferences(root *sitter.Node, source []byte, lang Language, filePath string) []Reference {
	var out []Reference
	excluded := builtinTypeNames[lang]
	annotationNodeTypes := map[Language][]string{
		LangPython:     {"type"},
		LangTypeScript: {"type_annotation"},
		LangTSX:        {"type_annotation"},
		LangGo:         {"type_identifier"},
		LangJava:       {"type_identifier"},
		LangKotlin:     {"user_type"},
	}[lang]
	for _, node := range findNodes(root, annotationNodeTypes) {
		for _, name := range collectTypeNames(node, source, lang) {
			if excluded[name] {
				continue
			}
			out = append(out, Reference{
				Source:     filePath,
				Target:     name,
				Kind:       RefTypeAnnotation,
				Confidence: 0.9,
				Line:       int(node.StartPoint().Row) + 1,
			})
		}
	}
	return out
}

// collectTypeNames recursively descends through generic arguments, union
// members, and tuple elements, resolving quoted forward references
// (string literals beginning with an uppercase letter) to their bare name.
func collectTypeNames(node *sitter.Node, source []byte, lang Language) []string {
	if node == nil {
		return nil
	}
	switch node.Type() {
	case "identifier", "type_identifier", "user_type":
		return []string{text(node, source)}
	case "string", "string_literal":
		raw := strings.Trim(text(node, source), "\"'")
		if raw != "" && raw[0] >= 'A' && raw[0] <= 'Z' {
			return []string{raw}
		}
		return nil
	default:
		var names []string
		for i := uint32(0); i < node.ChildCount(); i++ {
			names = append(names, collectTypeNames(node.Child(int(i)), source, lang)...)
		}
		return names
	}
}

func lastSegment(s string) string {
	idx := strings.LastIndexByte(s, '.')
	if idx < 0 {
		return s
	}
	return s[idx+1:]
}

// enclosingScopeIndex finds every function/method node, used by scopeFor to
// attribute a call's source scope to its innermost enclosing symbol rather
// than the bare file path.
func enclosingScopeIndex(root *sitter.Node, lang Language) []*sitter.Node {
	return findNodes(root, getFunctionNodeTypes(lang))
}

// scopeFor returns "file_path::QualifiedName" for the innermost function/
// method enclosing node, or the bare file path if node is at file scope.
func scopeFor(node *sitter.Node, funcs []*sitter.Node, filePath string, source []byte, lang Language) string {
	var best *sitter.Node
	for _, f := range funcs {
		if f.StartByte() <= node.StartByte() && node.EndByte() <= f.EndByte() {
			if best == nil || f.StartByte() > best.StartByte() {
				best = f
			}
		}
	}
	if best == nil {
		return filePath
	}
	name := getFunctionName(best, source, lang)
	if name == "" {
		return filePath
	}
	if isMethod(best, lang) {
		if recv := getMethodReceiver(best, source, lang); recv != "" {
			return filePath + "::" + recv + "." + name
		}
	}
	return filePath + "::" + name
}
