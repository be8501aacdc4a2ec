package generate

import (
	"fmt"
	"sort"
	"strings"

	"wikigen/internal/diagrams"
	"wikigen/internal/notes"
	"wikigen/internal/parsing"
)

const fileSystemPrompt = `You are documenting one source file for a generated engineering wiki.
Respond with a leading YAML frontmatter block delimited by "---" lines
containing exactly these keys: purpose (string), layer (one of api, domain,
infrastructure, utility, config, test), key_abstractions (list of strings),
internal_deps (list of strings), external_deps (list of strings). After the
closing "---", write the page body in Markdown with these sections in
order: Purpose, Public API, Internal Details, Dependencies, Usage Examples.`

const directorySystemPrompt = `You are documenting one directory for a generated engineering wiki.
Respond with a leading YAML frontmatter block delimited by "---" lines
containing exactly these keys: purpose (string), contains (list of direct
child names), role_in_system (string). After the closing "---", write the
page body in Markdown: an opening overview paragraph with no heading,
followed by Subdirectories, Files, Key Components, and Dependencies
sections.`

const architectureSystemPrompt = `You are writing the architecture overview page for a generated engineering
wiki from a synthesized map of the repository's layers and their
dependencies. Write a Markdown body describing the system's layers, key
components, and how they depend on one another. Do not include a
frontmatter block.`

const rootSystemPrompt = `You are writing the landing page of a generated engineering wiki, derived
from its architecture overview. Write a short Markdown body welcoming a
reader and summarizing what the repository does and how the wiki is
organized. Do not include a frontmatter block.`

func buildFilePrompt(in FileInput, fileNotes []notes.Note) string {
	var b strings.Builder
	fmt.Fprintf(&b, "File: %s\nLanguage: %s\n\n", in.Path, in.Language)
	b.WriteString("Source:\n```")
	b.WriteString(string(in.Language))
	b.WriteString("\n")
	b.WriteString(string(in.Content))
	b.WriteString("\n```\n\n")

	b.WriteString("Symbols:\n")
	for _, s := range in.Symbols {
		fmt.Fprintf(&b, "- %s %s (lines %d-%d)\n", s.Kind, s.QualifiedName(), s.StartLine, s.EndLine)
	}

	imports := importTargets(in.References)
	if len(imports) > 0 {
		b.WriteString("\nImports:\n")
		for _, t := range imports {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}

	if len(in.Synthesis.Layers) > 0 {
		b.WriteString("\nArchitecture summary:\n")
		for _, name := range sortedLayerNames(in.Synthesis) {
			fmt.Fprintf(&b, "- %s: %s\n", name, in.Synthesis.Layers[name].Purpose)
		}
	}

	writeNotes(&b, fileNotes)
	return b.String()
}

func buildDirectoryPrompt(in DirectoryInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Directory: %s\n\n", displayDirPath(in.Path))

	b.WriteString("Breadcrumb: ")
	b.WriteString(strings.Join(renderBreadcrumb(in.Path), " / "))
	b.WriteString("\n\n")

	b.WriteString("Direct files:\n")
	for _, f := range in.DirectFiles {
		fmt.Fprintf(&b, "- %s: %s\n", f.Path, f.Purpose)
	}

	if len(in.ChildDirectories) > 0 {
		b.WriteString("\nChild directories:\n")
		for _, c := range in.ChildDirectories {
			fmt.Fprintf(&b, "- %s: %s\n", c.Path, c.Summary.Purpose)
		}
	}

	writeNotes(&b, in.Notes)
	return b.String()
}

func buildArchitecturePrompt(m diagrams.SynthesisMap) string {
	var b strings.Builder
	b.WriteString("Synthesized architecture map:\n\n")
	for _, name := range sortedLayerNames(m) {
		layer := m.Layers[name]
		fmt.Fprintf(&b, "Layer %s: %s\n  directories: %s\n  files: %d\n",
			name, layer.Purpose, strings.Join(layer.Directories, ", "), len(layer.Files))
	}
	if len(m.KeyComponents) > 0 {
		fmt.Fprintf(&b, "\nKey components: %s\n", strings.Join(m.KeyComponents, ", "))
	}
	if len(m.DependencyGraph) > 0 {
		b.WriteString("\nLayer dependencies:\n")
		froms := make([]string, 0, len(m.DependencyGraph))
		for from := range m.DependencyGraph {
			froms = append(froms, from)
		}
		sort.Strings(froms)
		for _, from := range froms {
			fmt.Fprintf(&b, "- %s -> %s\n", from, strings.Join(m.DependencyGraph[from], ", "))
		}
	}
	return b.String()
}

func buildRootPrompt(architectureBody string, repoName string) string {
	return fmt.Sprintf("Repository: %s\n\nArchitecture overview:\n\n%s\n", repoName, architectureBody)
}

func writeNotes(b *strings.Builder, ns []notes.Note) {
	if len(ns) == 0 {
		return
	}
	b.WriteString("\nNotes:\n")
	for _, n := range ns {
		if n.Author != "" {
			fmt.Fprintf(b, "- (%s) %s\n", n.Author, n.Content)
		} else {
			fmt.Fprintf(b, "- %s\n", n.Content)
		}
	}
}

func importTargets(refs []parsing.Reference) []string {
	var out []string
	for _, r := range refs {
		if r.Kind == parsing.RefImports {
			out = append(out, r.Target)
		}
	}
	return out
}

func sortedLayerNames(m diagrams.SynthesisMap) []string {
	names := make([]string, 0, len(m.Layers))
	for name := range m.Layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
