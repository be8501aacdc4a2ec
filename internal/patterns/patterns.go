// Package patterns loads the decorator-pattern and entry-point-pattern
// declaration table consulted by the parsers. Patterns are declared once, in TOML, and held read-only in
// memory for the duration of a build; hot-reload is not required.
package patterns

import (
	"fmt"
	"os"
	"regexp"

	toml "github.com/pelletier/go-toml/v2"
)

// ReferencePattern matches a decorator to a decorator_argument edge, per
// : "a regex pair (decorator_name, object_name) plus a list of
// argument names".
type ReferencePattern struct {
	DecoratorName string   `toml:"decorator_name"`
	ObjectName    string   `toml:"object_name,omitempty"`
	ArgumentNames []string `toml:"argument_names"`

	decoratorRe *regexp.Regexp
	objectRe    *regexp.Regexp
}

// EntryPointPattern matches a decorator that marks its symbol as an entry
// point (route handlers, fixtures, CLI commands, task consumers, event
// listeners — see the Glossary).
type EntryPointPattern struct {
	DecoratorName string `toml:"decorator_name"`
	ObjectName    string `toml:"object_name,omitempty"`

	decoratorRe *regexp.Regexp
	objectRe    *regexp.Regexp
}

// LanguageTable is the pattern set declared for one language tag (e.g. "python",
// "javascript", "go").
type LanguageTable struct {
	ReferencePatterns  []ReferencePattern  `toml:"reference_pattern"`
	EntryPointPatterns []EntryPointPattern `toml:"entry_point_pattern"`
}

// Table is the full, read-only pattern registry indexed by language tag.
type Table struct {
	Languages map[string]*LanguageTable `toml:"language"`
}

// declFile mirrors the TOML document shape: a map keyed by language tag at
// the top level, e.g. [language.python].
type declFile struct {
	Language map[string]*LanguageTable `toml:"language"`
}

// Load reads and compiles a patterns.toml file. Missing file is not an
// error: DefaultTable() is returned instead, since pattern declarations are
// optional — languages with no declared patterns simply produce no
// decorator_argument edges and no decorator-based entry points.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultTable(), nil
		}
		return nil, fmt.Errorf("reading patterns file: %w", err)
	}
	var doc declFile
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing patterns file: %w", err)
	}
	t := &Table{Languages: doc.Language}
	if err := t.compile(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) compile() error {
	for lang, table := range t.Languages {
		for i := range table.ReferencePatterns {
			p := &table.ReferencePatterns[i]
			re, err := regexp.Compile("^(?:" + p.DecoratorName + ")$")
			if err != nil {
				return fmt.Errorf("language %s: bad decorator_name regex %q: %w", lang, p.DecoratorName, err)
			}
			p.decoratorRe = re
			if p.ObjectName != "" {
				ore, err := regexp.Compile("^(?:" + p.ObjectName + ")$")
				if err != nil {
					return fmt.Errorf("language %s: bad object_name regex %q: %w", lang, p.ObjectName, err)
				}
				p.objectRe = ore
			}
		}
		for i := range table.EntryPointPatterns {
			p := &table.EntryPointPatterns[i]
			re, err := regexp.Compile("^(?:" + p.DecoratorName + ")$")
			if err != nil {
				return fmt.Errorf("language %s: bad decorator_name regex %q: %w", lang, p.DecoratorName, err)
			}
			p.decoratorRe = re
			if p.ObjectName != "" {
				ore, err := regexp.Compile("^(?:" + p.ObjectName + ")$")
				if err != nil {
					return fmt.Errorf("language %s: bad object_name regex %q: %w", lang, p.ObjectName, err)
				}
				p.objectRe = ore
			}
		}
	}
	return nil
}

// For returns the pattern table declared for a language tag, or nil if none
// was declared.
func (t *Table) For(lang string) *LanguageTable {
	if t == nil {
		return nil
	}
	return t.Languages[lang]
}

// Match reports whether a decomposed decorator (decoratorName,
// objectName) matches this pattern, and if so, returns the argument names to
// extract. An empty ObjectName pattern matches bare decorators and also
// matches when an object is present but the decorator name regex matches —
// it matches regardless of whether an object part is present.
func (p ReferencePattern) Match(decoratorName, objectName string) ([]string, bool) {
	if p.decoratorRe == nil || !p.decoratorRe.MatchString(decoratorName) {
		return nil, false
	}
	if p.objectRe != nil && !p.objectRe.MatchString(objectName) {
		return nil, false
	}
	return p.ArgumentNames, true
}

// Match reports whether a decomposed decorator matches this entry-point
// pattern, with the same object_name semantics as ReferencePattern.Match.
func (p EntryPointPattern) Match(decoratorName, objectName string) bool {
	if p.decoratorRe == nil || !p.decoratorRe.MatchString(decoratorName) {
		return false
	}
	if p.objectRe != nil && !p.objectRe.MatchString(objectName) {
		return false
	}
	return true
}

// DefaultTable returns a small built-in pattern set covering common
// framework conventions, used when no patterns.toml is declared.
func DefaultTable() *Table {
	t := &Table{
		Languages: map[string]*LanguageTable{
			"python": {
				EntryPointPatterns: []EntryPointPattern{
					{DecoratorName: "get|post|put|delete|patch|route", ObjectName: ".*"},
					{DecoratorName: "fixture"},
					{DecoratorName: "task"},
					{DecoratorName: "command"},
				},
				ReferencePatterns: []ReferencePattern{
					{DecoratorName: "get|post|put|delete|patch|route", ObjectName: ".*", ArgumentNames: []string{"response_model"}},
				},
			},
			"javascript": {
				EntryPointPatterns: []EntryPointPattern{
					{DecoratorName: "Get|Post|Put|Delete|Patch", ObjectName: ".*"},
				},
			},
			"typescript": {
				EntryPointPatterns: []EntryPointPattern{
					{DecoratorName: "Get|Post|Put|Delete|Patch", ObjectName: ".*"},
				},
			},
		},
	}
	_ = t.compile()
	return t
}
