package generate

import (
	"strings"

	"wikigen/internal/wikiconfig"
	"wikigen/internal/wikierr"
	"wikigen/internal/wikilog"
	"wikigen/internal/notes"
	"wikigen/internal/textgen"
	"wikigen/internal/wikipaths"
)

// Deps bundles the external collaborators and shared state every generator
// function needs, assembled once by the orchestrator and passed by value to
// each page generation call.
type Deps struct {
	Config  *wikiconfig.Config
	TextGen textgen.Generator
	Notes   notes.Query
	Report  *wikierr.Report
	Logger  *wikilog.Logger
}

// wordCount counts whitespace-delimited words in a page body, the same
// measure used for GeneratedPage.WordCount.
func wordCount(text string) int {
	return len(strings.Fields(text))
}

// appendDiagramSection appends a titled Mermaid fenced block to body when
// diagram is non-empty (an empty string means the generator's own
// self-validation rejected it).
func appendDiagramSection(sections []string, title, diagram string) []string {
	if diagram == "" {
		return sections
	}
	return append(sections, "## "+title+"\n\n```mermaid\n"+diagram+"\n```")
}

// displayDirPath renders the root directory's empty path as "root" for
// prompt text.
func displayDirPath(path string) string {
	if path == "" {
		return wikipaths.RootSlug
	}
	return path
}

// renderBreadcrumb builds the human-readable breadcrumb trail for a
// directory, truncating the middle once there are more than 3 ancestors
// between the root and the directory (depth greater than 4).
func renderBreadcrumb(path string) []string {
	chain := wikipaths.Breadcrumb(path)
	const maxAncestors = 3
	truncated := wikipaths.TruncateBreadcrumb(chain, maxAncestors)
	out := make([]string, len(truncated))
	for i, p := range truncated {
		out[i] = displayDirPath(p)
	}
	return out
}
