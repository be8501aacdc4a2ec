package diagrams

import "testing"

func TestSanitizeNodeID(t *testing.T) {
	tests := map[string]string{
		"internal/api/handler.go": "internal_api_handler_go",
		"9lives":                  "n_9lives",
		"a--b":                    "a_b",
		"":                        "n",
	}
	for in, want := range tests {
		got := SanitizeNodeID(in)
		if got != want {
			t.Errorf("SanitizeNodeID(%q) = %q, want %q", in, got, want)
		}
		if len(got) > 0 && got[0] >= '0' && got[0] <= '9' {
			t.Errorf("SanitizeNodeID(%q) = %q starts with a digit", in, got)
		}
	}
}

func TestSanitizeLabel(t *testing.T) {
	in := "line1\nline2 [x]{y} \"quoted\""
	got := SanitizeLabel(in)
	for _, bad := range []string{"\n", "[", "]", "{", "}", "\""} {
		if containsRune(got, bad) {
			t.Errorf("SanitizeLabel(%q) = %q still contains %q", in, got, bad)
		}
	}
}

func TestSanitizeLabel_Truncates(t *testing.T) {
	long := ""
	for i := 0; i < 60; i++ {
		long += "x"
	}
	got := SanitizeLabel(long)
	if len([]rune(got)) != 40 {
		t.Errorf("expected truncated label of length 40, got %d (%q)", len([]rune(got)), got)
	}
}

func containsRune(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
