// Package textgen defines the Generator capability the page generators call
// to turn a prompt into page prose. The core never talks to a model
// provider directly — it depends on this interface so a build can run
// against any backend (or a deterministic fixture, in tests) without the
// core knowing the difference.
package textgen

import (
	"context"
	"errors"
	"fmt"
)

// TransportError wraps a network or provider failure from a Generator call.
// The generator layer treats it as a per-page recoverable failure: the
// previous build's page is retained if one exists, otherwise the page is
// dropped for this run.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("generator transport error: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// IsTransportError reports whether err is, or wraps, a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Generator produces model output from a prompt and an optional system
// prompt. It may block for an arbitrary amount of time — callers drive it
// with a context carrying a deadline — and it may fail with a
// TransportError. The caller, not Generator, is responsible for parsing any
// structure (YAML frontmatter, Mermaid blocks) out of the returned text.
type Generator interface {
	Generate(ctx context.Context, prompt, systemPrompt string) (string, error)
}
