package diagrams

import (
	"fmt"
	"sort"
	"strings"
)

// maxMethodsPerClass caps how many methods are listed per class block
//.
const maxMethodsPerClass = 5

// GenerateClassDiagram renders one `class` block per entry in classes, each
// with up to 5 methods and simplified signatures.
func GenerateClassDiagram(classes []ClassInfo) string {
	sorted := append([]ClassInfo(nil), classes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	b.WriteString("classDiagram\n")
	for _, c := range sorted {
		id := SanitizeNodeID(c.Name)
		fmt.Fprintf(&b, "  class %s {\n", id)
		methods := append([]MethodInfo(nil), c.Methods...)
		sort.Slice(methods, func(i, j int) bool { return methods[i].Name < methods[j].Name })
		if len(methods) > maxMethodsPerClass {
			methods = methods[:maxMethodsPerClass]
		}
		for _, m := range methods {
			label := SanitizeLabel(simplifySignature(m.Signature, m.Name))
			if !strings.HasSuffix(label, ")") || !bracketsBalanced(label) {
				label = SanitizeLabel(m.Name) + "()"
			}
			fmt.Fprintf(&b, "    +%s\n", label)
		}
		b.WriteString("  }\n")
	}

	text := b.String()
	if !Validate(text).Valid {
		return ""
	}
	return text
}

// simplifySignature reduces a full function signature down to a short
// "name(params)" form suitable for a class diagram's cramped method line,
// falling back to the bare method name when the signature can't be
// meaningfully trimmed.
func simplifySignature(signature, name string) string {
	if signature == "" {
		return name
	}
	open := strings.Index(signature, name+"(")
	if open >= 0 {
		open += len(name)
	} else {
		open = strings.Index(signature, "(")
	}
	shut := strings.LastIndex(signature, ")")
	if open < 0 || shut <= open {
		return name
	}
	return name + signature[open:shut+1]
}
