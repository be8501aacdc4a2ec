package diagrams

import (
	"strings"
	"testing"
)

func TestGenerateClassDiagram(t *testing.T) {
	classes := []ClassInfo{
		{
			Name: "Handler",
			Methods: []MethodInfo{
				{Name: "Serve", Signature: "func (h *Handler) Serve(w http.ResponseWriter, r *http.Request)"},
				{Name: "Close", Signature: "func (h *Handler) Close() error"},
			},
		},
	}
	text := GenerateClassDiagram(classes)
	if text == "" {
		t.Fatal("expected non-empty diagram")
	}
	if !strings.HasPrefix(text, "classDiagram") {
		t.Errorf("expected classDiagram header, got %q", text)
	}
	if !strings.Contains(text, "class Handler") {
		t.Errorf("expected class block for Handler, got %q", text)
	}
	if !Validate(text).Valid {
		t.Errorf("generated diagram failed validation: %v", Validate(text).Errors)
	}
}

func TestGenerateClassDiagram_CapsMethods(t *testing.T) {
	var methods []MethodInfo
	for i := 0; i < 10; i++ {
		methods = append(methods, MethodInfo{Name: "M" + string(rune('a'+i))})
	}
	classes := []ClassInfo{{Name: "Big", Methods: methods}}
	text := GenerateClassDiagram(classes)
	if strings.Count(text, "+") > maxMethodsPerClass {
		t.Errorf("expected at most %d methods, got %q", maxMethodsPerClass, text)
	}
}

func TestSimplifySignature(t *testing.T) {
	got := simplifySignature("func (h *Handler) Serve(w http.ResponseWriter, r *http.Request)", "Serve")
	want := "Serve(w http.ResponseWriter, r *http.Request)"
	if got != want {
		t.Errorf("simplifySignature() = %q, want %q", got, want)
	}

	got = simplifySignature("", "Bare")
	if got != "Bare" {
		t.Errorf("simplifySignature with empty signature = %q, want %q", got, "Bare")
	}
}
