package orchestrator

import (
	"context"

	"github.com/google/uuid"

	"wikigen/internal/staging"
)

// Build runs one full Discover -> Analyze -> Files -> Directories ->
// Architecture -> Commit pass and returns everything the caller needs to
// report on it. A fatal error from any phase before Commit aborts the
// build and leaves the live wiki untouched; per-page failures are
// accumulated on Result.Report instead.
func Build(ctx context.Context, opts Options, generatedAt int64) (*Result, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	buildID := uuid.New().String()
	if opts.Logger != nil {
		opts.Logger = opts.Logger.WithComponent("orchestrator")
		opts.Logger.Info("build starting", map[string]interface{}{"build_id": buildID, "repo": opts.RepoName})
	}

	b := newBuilder(opts)
	b.emit(PhaseDiscover, 0, 1, "build "+buildID+" starting")

	if err := b.discover(ctx); err != nil {
		return nil, err
	}
	b.analyze()
	b.processFiles(ctx)
	b.processDirectories(ctx)
	if err := b.processArchitecture(ctx); err != nil {
		return nil, err
	}

	b.emit(PhaseCommit, 0, 1, "staging build")
	if err := staging.Commit(staging.Options{
		RepoRoot:    opts.RepoRoot,
		Config:      opts.Config,
		Logger:      opts.Logger,
		GeneratedAt: generatedAt,
	}, b.pages, b.graph); err != nil {
		return nil, err
	}
	b.emit(PhaseCommit, 1, 1, "committed")

	return &Result{
		BuildID:   buildID,
		Pages:     b.pages,
		Graph:     b.graph,
		Synthesis: b.synth,
		Report:    b.report,
		Unchanged: b.unchanged,
	}, nil
}
