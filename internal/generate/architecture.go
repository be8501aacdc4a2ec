package generate

import (
	"context"
	"strings"

	"wikigen/internal/diagrams"
	"wikigen/internal/signature"
)

// ArchitectureInput is the full repository-wide view the architecture page
// draws on: the synthesized layer map plus the file-level node/edge/class
// data the three diagram generators need for their repo-wide renderings.
type ArchitectureInput struct {
	Synthesis diagrams.SynthesisMap
	FileNodes []diagrams.FileNode
	FileEdges []diagrams.FileEdge
	Classes   []diagrams.ClassInfo
}

// Architecture generates the architecture page. Unlike file and directory
// pages it carries no YAML frontmatter: its body is consumed directly.
func Architecture(ctx context.Context, deps Deps, in ArchitectureInput) (Page, error) {
	prompt := buildArchitecturePrompt(in.Synthesis)
	body, err := runGenerator(ctx, deps.TextGen, prompt, architectureSystemPrompt, "architecture")
	if err != nil {
		return Page{}, err
	}

	sections := []string{strings.TrimRight(body, "\n")}
	var diagramSections []string
	diagramSections = appendDiagramSection(diagramSections, "Layer Diagram", diagrams.GenerateLayerDiagram(in.Synthesis))
	diagramSections = appendDiagramSection(diagramSections, "File Dependency Diagram", diagrams.GenerateFileDependencyDiagram(in.FileNodes, in.FileEdges, 0))
	diagramSections = appendDiagramSection(diagramSections, "Class Diagram", diagrams.GenerateClassDiagram(in.Classes))
	if len(diagramSections) > 0 {
		sections = append(sections, "## Generated Diagrams\n\n"+strings.Join(diagramSections, "\n\n"))
	}

	content := strings.Join(sections, "\n\n") + "\n"
	return Page{
		Content:    content,
		Type:       PageArchitecture,
		Path:       PagePath(PageArchitecture, ""),
		WordCount:  wordCount(content),
		SourceHash: signature.Architecture(in.Synthesis),
	}, nil
}
