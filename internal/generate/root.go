package generate

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
)

// Root generates the wiki's landing page from the already-generated
// architecture page's body and the repository's display name.
func Root(ctx context.Context, deps Deps, architecturePage Page, repoName string) (Page, error) {
	prompt := buildRootPrompt(architecturePage.Content, repoName)
	body, err := runGenerator(ctx, deps.TextGen, prompt, rootSystemPrompt, "root")
	if err != nil {
		return Page{}, err
	}

	content := strings.TrimRight(body, "\n") + "\n"
	return Page{
		Content:    content,
		Type:       PageRoot,
		Path:       PagePath(PageRoot, ""),
		WordCount:  wordCount(content),
		SourceHash: fmt.Sprintf("%x", sha256.Sum256([]byte(architecturePage.SourceHash))),
	}, nil
}
