package generate

import (
	"context"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"

	"wikigen/internal/textgen"
	"wikigen/internal/wikiconfig"
	"wikigen/internal/wikierr"
)

const frontmatterDelim = "---"

var errNoFrontmatter = errors.New("no leading yaml frontmatter block found")

// splitFrontmatter splits a generator's raw markdown response into its
// leading "---\nyaml\n---" block and the remaining body. ok is false when no
// well-formed frontmatter block is present, in which case body is the raw
// text unchanged.
func splitFrontmatter(raw string) (yamlBlock, body string, ok bool) {
	text := strings.TrimLeft(raw, "\n\r\t ")
	if !strings.HasPrefix(text, frontmatterDelim) {
		return "", raw, false
	}
	rest := strings.TrimPrefix(text[len(frontmatterDelim):], "\n")
	end := strings.Index(rest, "\n"+frontmatterDelim)
	if end < 0 {
		return "", raw, false
	}
	yamlBlock = rest[:end]
	body = strings.TrimLeft(rest[end+len("\n"+frontmatterDelim):], "\n\r\t ")
	return yamlBlock, body, true
}

// runGenerator calls gen.Generate once, wrapping a transport failure with
// the stable GeneratorTransportError code so callers never inspect raw
// provider errors.
func runGenerator(ctx context.Context, gen textgen.Generator, prompt, systemPrompt, target string) (string, error) {
	raw, err := gen.Generate(ctx, prompt, systemPrompt)
	if err != nil {
		return "", wikierr.Wrap(wikierr.GeneratorTransportError, "text generator failed for "+target, err)
	}
	return raw, nil
}

// generateFileSummary runs the shared prompt -> generate -> parse ->
// retry-once -> fallback pipeline for a file page: it returns the
// FileSummary (possibly the fallback), the markdown body with the
// frontmatter block stripped, and any fatal error (a transport failure on
// either attempt). Parse failures are never fatal — they fall back to
// fallbackFileSummary and are recorded on report.
func generateFileSummary(ctx context.Context, gen textgen.Generator, cfg *wikiconfig.Config, prompt, systemPrompt, target string, report *wikierr.Report) (FileSummary, string, error) {
	raw, err := runGenerator(ctx, gen, prompt, systemPrompt, target)
	if err != nil {
		return FileSummary{}, "", err
	}
	summary, body, perr := parseFileSummary(raw, cfg, target, report)
	if perr == nil {
		return summary, body, nil
	}
	report.Add(target, wikierr.Wrap(wikierr.YamlParseFailure, "file summary frontmatter invalid, retrying", perr))

	raw, err = runGenerator(ctx, gen, prompt, systemPrompt, target)
	if err != nil {
		return FileSummary{}, "", err
	}
	summary, body, perr = parseFileSummary(raw, cfg, target, report)
	if perr == nil {
		return summary, body, nil
	}
	report.Add(target, wikierr.Wrap(wikierr.YamlParseFailure, "file summary frontmatter invalid after retry, using fallback", perr))
	return fallbackFileSummary(), body, nil
}

func parseFileSummary(raw string, cfg *wikiconfig.Config, target string, report *wikierr.Report) (FileSummary, string, error) {
	yamlBlock, body, ok := splitFrontmatter(raw)
	if !ok {
		return FileSummary{}, raw, errNoFrontmatter
	}
	var summary FileSummary
	if err := yaml.Unmarshal([]byte(yamlBlock), &summary); err != nil {
		return FileSummary{}, body, err
	}
	if summary.Purpose == "" {
		return FileSummary{}, body, errors.New("file summary missing purpose")
	}
	if !cfg.IsValidLayer(summary.Layer) {
		if report != nil {
			report.Add(target, wikierr.New(wikierr.InvalidLayerValue, "layer \""+summary.Layer+"\" is not a configured value, coercing to \""+cfg.LayerValidation.DefaultLayer+"\""))
		}
		summary.Layer = cfg.LayerValidation.DefaultLayer
	}
	return summary, body, nil
}

// generateDirectorySummary mirrors generateFileSummary for directory pages.
func generateDirectorySummary(ctx context.Context, gen textgen.Generator, prompt, systemPrompt, target string, report *wikierr.Report) (DirectorySummary, string, error) {
	raw, err := runGenerator(ctx, gen, prompt, systemPrompt, target)
	if err != nil {
		return DirectorySummary{}, "", err
	}
	summary, body, perr := parseDirectorySummary(raw)
	if perr == nil {
		return summary, body, nil
	}
	report.Add(target, wikierr.Wrap(wikierr.YamlParseFailure, "directory summary frontmatter invalid, retrying", perr))

	raw, err = runGenerator(ctx, gen, prompt, systemPrompt, target)
	if err != nil {
		return DirectorySummary{}, "", err
	}
	summary, body, perr = parseDirectorySummary(raw)
	if perr == nil {
		return summary, body, nil
	}
	report.Add(target, wikierr.Wrap(wikierr.YamlParseFailure, "directory summary frontmatter invalid after retry, using fallback", perr))
	return fallbackDirectorySummary(), body, nil
}

func parseDirectorySummary(raw string) (DirectorySummary, string, error) {
	yamlBlock, body, ok := splitFrontmatter(raw)
	if !ok {
		return DirectorySummary{}, raw, errNoFrontmatter
	}
	var summary DirectorySummary
	if err := yaml.Unmarshal([]byte(yamlBlock), &summary); err != nil {
		return DirectorySummary{}, body, err
	}
	if summary.Purpose == "" {
		return DirectorySummary{}, body, errors.New("directory summary missing purpose")
	}
	return summary, body, nil
}
