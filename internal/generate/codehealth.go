package generate

import (
	"fmt"
	"sort"
	"strings"

	"wikigen/internal/deadcode"
)

// CodeHealth renders the code-health page directly from a dead-code
// analysis result — no TextGenerator call, no frontmatter, since the
// content is a deterministic report rather than narrative prose.
func CodeHealth(result *deadcode.Result) Page {
	var b strings.Builder
	b.WriteString("# Code Health\n\n")

	if result == nil || len(result.DeadCode) == 0 {
		b.WriteString("No review candidates were found.\n")
		content := b.String()
		return Page{
			Content:   content,
			Type:      PageCodeHealth,
			Path:      PagePath(PageCodeHealth, ""),
			WordCount: wordCount(content),
		}
	}

	b.WriteString("These symbols have no detected callers. This does not always mean they are\n")
	b.WriteString("unused: test discovery, reflection, and dynamic dispatch can all invoke a\n")
	b.WriteString("symbol in ways this analysis cannot see. Review before removing anything.\n\n")

	fmt.Fprintf(&b, "Analyzed %d symbols; %d flagged, %d suspicious.\n\n",
		result.Summary.TotalSymbols, result.Summary.DeadCount, result.Summary.SuspiciousCount)

	grouped := map[string][]deadcode.DeadCodeItem{}
	for _, item := range result.DeadCode {
		kind := itemGroup(item.Kind)
		grouped[kind] = append(grouped[kind], item)
	}

	for _, kind := range []string{"functions", "classes", "variables"} {
		items := grouped[kind]
		if len(items) == 0 {
			continue
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].FilePath != items[j].FilePath {
				return items[i].FilePath < items[j].FilePath
			}
			return items[i].LineNumber < items[j].LineNumber
		})
		fmt.Fprintf(&b, "## Review Candidates: %s\n\n", capitalize(kind))
		b.WriteString("| Symbol | File | Line | Reason |\n|---|---|---|---|\n")
		for _, item := range items {
			fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", item.SymbolName, item.FilePath, item.LineNumber, item.Reason)
		}
		b.WriteString("\n")
	}

	content := b.String()
	return Page{
		Content:   content,
		Type:      PageCodeHealth,
		Path:      PagePath(PageCodeHealth, ""),
		WordCount: wordCount(content),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func itemGroup(kind string) string {
	switch kind {
	case "class":
		return "classes"
	case "variable":
		return "variables"
	default:
		return "functions"
	}
}
