package diagrams

import "testing"

func TestValidate_Balanced(t *testing.T) {
	text := "graph TD\n  subgraph api[API]\n    a[Handler(x)]\n  end\n  a --> b\n"
	result := Validate(text)
	if !result.Valid {
		t.Fatalf("expected valid, got errors: %v", result.Errors)
	}
}

func TestValidate_UnbalancedBrackets(t *testing.T) {
	text := "graph TD\n  a[Handler(x]\n"
	result := Validate(text)
	if result.Valid {
		t.Fatal("expected invalid due to unbalanced brackets")
	}
}

func TestValidate_UnbalancedSubgraph(t *testing.T) {
	text := "graph TD\n  subgraph api[API]\n    a[Handler]\n"
	result := Validate(text)
	if result.Valid {
		t.Fatal("expected invalid due to missing end")
	}
}

func TestValidate_UnknownHeader(t *testing.T) {
	text := "bogusDiagram\n  a --> b\n"
	result := Validate(text)
	if result.Valid {
		t.Fatal("expected invalid due to unknown header")
	}
}

func TestValidate_ClassDiagramHeader(t *testing.T) {
	text := "classDiagram\n  class Foo {\n    +Bar()\n  }\n"
	result := Validate(text)
	if !result.Valid {
		t.Fatalf("expected valid, got errors: %v", result.Errors)
	}
}
