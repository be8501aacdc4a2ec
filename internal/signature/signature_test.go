package signature

import (
	"testing"

	"wikigen/internal/diagrams"
	"wikigen/internal/notes"
)

func TestFile_Deterministic(t *testing.T) {
	content := []byte("package main\n")
	ns := []notes.Note{{Content: "a note", UpdatedAt: 100}}

	a := File(content, ns)
	b := File(content, ns)
	if a != b {
		t.Fatalf("File() not deterministic: %q != %q", a, b)
	}
}

func TestFile_ChangesWithContent(t *testing.T) {
	a := File([]byte("one"), nil)
	b := File([]byte("two"), nil)
	if a == b {
		t.Fatal("expected different signatures for different content")
	}
}

func TestFile_ChangesWithNotes(t *testing.T) {
	content := []byte("package main\n")
	withoutNotes := File(content, nil)
	withNotes := File(content, []notes.Note{{Content: "hi", UpdatedAt: 1}})
	if withoutNotes == withNotes {
		t.Fatal("expected signature to change when a note is added")
	}
}

func TestFile_NoteOrderDoesNotMatter(t *testing.T) {
	content := []byte("package main\n")
	n1 := notes.Note{Content: "first", UpdatedAt: 1}
	n2 := notes.Note{Content: "second", UpdatedAt: 2}

	a := File(content, []notes.Note{n1, n2})
	b := File(content, []notes.Note{n2, n1})
	if a != b {
		t.Fatal("expected canonical note ordering to make signature order-independent")
	}
}

func TestDirectory_Deterministic(t *testing.T) {
	files := map[string]string{"b.go": "hashb", "a.go": "hasha"}
	children := []ChildSummary{{Path: "src/z", Purpose: "z stuff"}, {Path: "src/a", Purpose: "a stuff"}}

	sig1 := Directory(files, children)
	sig2 := Directory(files, children)
	if sig1 != sig2 {
		t.Fatal("Directory() not deterministic")
	}
}

func TestDirectory_ChangesWithChildPurpose(t *testing.T) {
	files := map[string]string{"a.go": "hasha"}
	before := Directory(files, []ChildSummary{{Path: "src/a", Purpose: "old purpose"}})
	after := Directory(files, []ChildSummary{{Path: "src/a", Purpose: "new purpose"}})
	if before == after {
		t.Fatal("expected directory signature to change when a child's purpose changes")
	}
}

func TestDirectory_UnchangedWhenInputsUnchanged(t *testing.T) {
	files := map[string]string{"a.go": "hasha", "b.go": "hashb"}
	children := []ChildSummary{{Path: "src/a", Purpose: "p"}}
	if Directory(files, children) != Directory(files, children) {
		t.Fatal("expected identical signature for identical inputs")
	}
}

func TestArchitecture_ChangesWithLayerPurpose(t *testing.T) {
	m1 := diagrams.SynthesisMap{Layers: map[string]diagrams.LayerSummary{"api": {Purpose: "old"}}}
	m2 := diagrams.SynthesisMap{Layers: map[string]diagrams.LayerSummary{"api": {Purpose: "new"}}}
	if Architecture(m1) == Architecture(m2) {
		t.Fatal("expected architecture signature to change when a layer purpose changes")
	}
}

func TestDecide_NoStoredSignatureRegenerates(t *testing.T) {
	if Decide("", 0, false, "current", nil) != Regenerate {
		t.Error("expected Regenerate when there is no stored signature")
	}
}

func TestDecide_MismatchRegenerates(t *testing.T) {
	if Decide("old", 100, true, "new", nil) != Regenerate {
		t.Error("expected Regenerate on signature mismatch")
	}
}

func TestDecide_NewerNoteRegenerates(t *testing.T) {
	matched := []notes.Note{{Content: "late note", UpdatedAt: 200}}
	if Decide("same", 100, true, "same", matched) != Regenerate {
		t.Error("expected Regenerate when a matched note is newer than generated_at")
	}
}

func TestDecide_UnchangedSkips(t *testing.T) {
	matched := []notes.Note{{Content: "old note", UpdatedAt: 50}}
	if Decide("same", 100, true, "same", matched) != Skip {
		t.Error("expected Skip when signature matches and no note is newer")
	}
}
