// Package depscan classifies the raw import targets C1 extracts as "imports"
// references into internal-repo file paths versus external
// library names, feeding the FileSummary.internal_deps/external_deps fields a
// page generator (C5) attaches to its prompt.
package depscan

import (
	"path/filepath"
	"regexp"
	"strings"
)

// LanguagePattern is a per-extension regex set used to classify a raw import
// string as a relative (internal) or package-style (external) reference,
// without re-parsing the file: by the time depscan runs, C1 has already
// produced the raw import target strings as Reference.target values, and
// this package only needs to decide which bucket each one falls into.
type LanguagePattern struct {
	Extensions []string
	// Relative reports whether an already-extracted import string looks
	// like a same-repo relative path rather than an external package name.
	Relative *regexp.Regexp
}

var builtinPatterns = map[string]LanguagePattern{
	"typescript": {Extensions: []string{".ts", ".tsx"}, Relative: regexp.MustCompile(`^\.{1,2}/`)},
	"javascript": {Extensions: []string{".js", ".jsx", ".mjs", ".cjs"}, Relative: regexp.MustCompile(`^\.{1,2}/`)},
	"python":     {Extensions: []string{".py", ".pyx"}, Relative: regexp.MustCompile(`^\.`)},
	"go":         {Extensions: []string{".go"}, Relative: regexp.MustCompile(`^\./|^\.\./`)},
	"rust":       {Extensions: []string{".rs"}, Relative: regexp.MustCompile(`^(crate|self|super)::`)},
	"java":       {Extensions: []string{".java"}},
	"kotlin":     {Extensions: []string{".kt", ".kts"}},
}

// LanguageForExt returns the language tag for a file extension, or "" if
// unrecognized.
func LanguageForExt(ext string) string {
	ext = strings.ToLower(ext)
	for lang, p := range builtinPatterns {
		for _, e := range p.Extensions {
			if e == ext {
				return lang
			}
		}
	}
	return ""
}

// Classification splits a set of raw import targets for one file into
// internal-repo paths and external library/module names.
type Classification struct {
	InternalDeps []string
	ExternalDeps []string
}

// Classify buckets importTargets (the raw Reference.target strings of kind
// "imports" for one file) given the file's own language tag and the set of
// other file paths known to the build, so a bare module name that matches a
// same-repo package/module prefix is still counted internal.
func Classify(lang string, importTargets []string, knownFilePaths map[string]bool) Classification {
	pattern, known := builtinPatterns[lang]
	var out Classification
	seenInternal := make(map[string]bool)
	seenExternal := make(map[string]bool)
	for _, raw := range importTargets {
		target := strings.TrimSpace(raw)
		if target == "" {
			continue
		}
		isInternal := false
		if known && pattern.Relative != nil && pattern.Relative.MatchString(target) {
			isInternal = true
		}
		if !isInternal && looksLikeKnownFile(target, knownFilePaths) {
			isInternal = true
		}
		if isInternal {
			if !seenInternal[target] {
				seenInternal[target] = true
				out.InternalDeps = append(out.InternalDeps, target)
			}
		} else {
			root := externalRoot(target)
			if !seenExternal[root] {
				seenExternal[root] = true
				out.ExternalDeps = append(out.ExternalDeps, root)
			}
		}
	}
	return out
}

// looksLikeKnownFile checks whether a raw import target, once given common
// source extensions, matches a file path already discovered in the repo.
func looksLikeKnownFile(target string, knownFilePaths map[string]bool) bool {
	if len(knownFilePaths) == 0 {
		return false
	}
	candidates := []string{target, target + ".go", target + ".py", target + ".ts", target + ".js"}
	for _, c := range candidates {
		if knownFilePaths[filepath.ToSlash(c)] {
			return true
		}
	}
	return false
}

// externalRoot reduces a dotted/slashed external import to its top-level
// package name, e.g. "github.com/spf13/cobra" -> "github.com/spf13/cobra"
// stays as-is (already a root module path), but "requests.sessions" ->
// "requests", and "foo/bar/baz" (non-relative) -> "foo".
func externalRoot(target string) string {
	if strings.Contains(target, "/") && strings.Count(target, "/") >= 2 && strings.Contains(target, ".") {
		// Looks like a full module path (e.g. github.com/x/y); keep as-is.
		return target
	}
	if idx := strings.IndexAny(target, "./"); idx > 0 {
		return target[:idx]
	}
	return target
}
