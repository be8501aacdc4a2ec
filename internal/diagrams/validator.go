// Package diagrams implements C3's Mermaid diagram generators and the pure
// validator every generator's output must pass. No
// teacher file builds Mermaid text directly, so this package is new logic
// grounded only on this contract.
package diagrams

import "strings"

// knownHeaders are the diagram-type keywords the validator accepts as a
// valid first line.
var knownHeaders = []string{
	"graph ", "graph\n", "flowchart ", "flowchart\n",
	"classDiagram", "sequenceDiagram", "stateDiagram",
}

// ValidationResult is the outcome of Validate.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Validate implements the Mermaid validator contract:
// (1) the first line starts with a known diagram-type keyword;
// (2) (), [], {} are balanced across the whole text;
// (3) subgraph/end counts match.
func Validate(text string) ValidationResult {
	var errs []string

	if !hasKnownHeader(text) {
		errs = append(errs, "first line does not start with a known diagram-type keyword")
	}
	if !bracketsBalanced(text) {
		errs = append(errs, "unbalanced brackets")
	}
	if !subgraphEndBalanced(text) {
		errs = append(errs, "subgraph/end count mismatch")
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func hasKnownHeader(text string) bool {
	trimmed := strings.TrimLeft(text, " \t\n")
	for _, h := range knownHeaders {
		if strings.HasPrefix(trimmed, strings.TrimRight(h, "\n ")) {
			return true
		}
	}
	return false
}

func bracketsBalanced(text string) bool {
	var stack []byte
	pairs := map[byte]byte{')': '(', ']': '[', '}': '{'}
	openers := map[byte]bool{'(': true, '[': true, '{': true}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if openers[c] {
			stack = append(stack, c)
			continue
		}
		if opener, isCloser := pairs[c]; isCloser {
			if len(stack) == 0 || stack[len(stack)-1] != opener {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

func subgraphEndBalanced(text string) bool {
	subgraphs := 0
	ends := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "subgraph "), trimmed == "subgraph":
			subgraphs++
		case trimmed == "end":
			ends++
		}
	}
	return subgraphs == ends
}
