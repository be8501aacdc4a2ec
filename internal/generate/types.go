// Package generate implements the page generators: one function per page
// type (file, directory, architecture, root). File and directory pages follow
// a prompt -> TextGenerator.generate -> YAML frontmatter parse -> strip ->
// diagram-append -> word-count pipeline; architecture and root pages carry
// no YAML frontmatter and skip the parse and strip steps.
package generate

import (
	"wikigen/internal/wikipaths"
)

// PageType identifies what kind of page a GeneratedPage is.
type PageType string

const (
	PageRoot         PageType = "root"
	PageArchitecture PageType = "architecture"
	PageCodeHealth   PageType = "code-health"
	PageFile         PageType = "file"
	PageDirectory    PageType = "directory"
)

// Page is the in-memory artifact every generator produces. It is handed to
// the orchestrator, then to staging, unmodified.
type Page struct {
	Content    string
	Type       PageType
	Path       string // relative to <wiki_dir>/wiki
	Target     string // the file/directory documented, empty for root
	WordCount  int
	SourceHash string
}

// FileSummary is the YAML block a file page emits.
type FileSummary struct {
	Purpose          string   `yaml:"purpose"`
	Layer            string   `yaml:"layer"`
	KeyAbstractions  []string `yaml:"key_abstractions"`
	InternalDeps     []string `yaml:"internal_deps"`
	ExternalDeps     []string `yaml:"external_deps"`
}

// DirectorySummary is the YAML block a directory page emits.
type DirectorySummary struct {
	Purpose      string   `yaml:"purpose"`
	Contains     []string `yaml:"contains"`
	RoleInSystem string   `yaml:"role_in_system"`
}

func fallbackFileSummary() FileSummary {
	return FileSummary{Purpose: "Unknown", Layer: "utility"}
}

func fallbackDirectorySummary() DirectorySummary {
	return DirectorySummary{Purpose: "Unknown", Contains: []string{}}
}

// PagePath builds the wiki-relative path a generated page is written under:
// "files/<slug>.md" or "directories/<slug>.md" for file and directory
// pages, or "<page_type>.md" for the
// singleton root/architecture/code-health pages.
func PagePath(pageType PageType, target string) string {
	switch pageType {
	case PageFile:
		return "files/" + wikipaths.Slugify(target) + ".md"
	case PageDirectory:
		return "directories/" + wikipaths.Slugify(target) + ".md"
	default:
		return string(pageType) + ".md"
	}
}
