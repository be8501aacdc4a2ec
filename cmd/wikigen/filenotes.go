package main

import (
	"context"
	"encoding/json"
	"os"
	"sort"

	"wikigen/internal/notes"
)

// fileNotes is a notes.Query backed by a single JSON file, for local runs
// where notes live alongside the repository instead of behind a real notes
// service. The file holds one array per "<scope>:<target>" key.
type fileNotes struct {
	entries map[string][]notes.Note
}

func loadFileNotes(path string) (*fileNotes, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &fileNotes{entries: map[string][]notes.Note{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var raw map[string][]notes.Note
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &fileNotes{entries: raw}, nil
}

func (f *fileNotes) NotesFor(_ context.Context, scope notes.Scope, target string) ([]notes.Note, error) {
	key := string(scope) + ":" + target
	out := append([]notes.Note(nil), f.entries[key]...)
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt > out[j].UpdatedAt })
	return out, nil
}
