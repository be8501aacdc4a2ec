// Package orchestrator implements C6: it sequences Discover, Analyze,
// Files, Directories, Architecture, and Commit into one build, enforcing
// the parallelism limits and depth-first ordering the rest of the engine
// depends on, and accumulating recoverable failures into a wikierr.Report
// instead of aborting the build.
package orchestrator

import (
	"path/filepath"

	"wikigen/internal/diagrams"
	"wikigen/internal/generate"
	"wikigen/internal/notes"
	"wikigen/internal/parsing"
	"wikigen/internal/textgen"
	"wikigen/internal/wikiconfig"
	"wikigen/internal/wikierr"
	"wikigen/internal/wikigraph"
	"wikigen/internal/wikilog"
	"wikigen/internal/wikistore"
)

// Phase identifies one of the six ordered build stages, used only in
// progress events.
type Phase string

const (
	PhaseDiscover     Phase = "discover"
	PhaseAnalyze      Phase = "analyze"
	PhaseFiles        Phase = "files"
	PhaseDirectories  Phase = "directories"
	PhaseArchitecture Phase = "architecture"
	PhaseCommit       Phase = "commit"
)

// Progress is one (phase, step, total, message) emission.
type Progress struct {
	Phase   Phase
	Step    int
	Total   int
	Message string
}

// ProgressFunc is the injected callback the orchestrator emits progress
// through. A nil ProgressFunc is valid and simply receives nothing.
type ProgressFunc func(Progress)

// Options configures one Build call.
type Options struct {
	RepoRoot string
	RepoName string
	Config   *wikiconfig.Config
	TextGen  textgen.Generator
	Notes    notes.Query
	Store    *wikistore.SidecarRepository
	Logger   *wikilog.Logger
	Progress ProgressFunc

	// ParallelCloud selects Config.ParallelLimitCloud instead of
	// Config.ParallelLimitLocal for the Files/Discover phase semaphores.
	ParallelCloud bool
}

func (o Options) parallelLimit() int {
	if o.ParallelCloud {
		return o.Config.ParallelLimitCloud
	}
	return o.Config.ParallelLimitLocal
}

// Result is everything one Build call produces: the pages ready for
// staging, the persisted graph, the derived synthesis map, and the
// accumulated non-fatal failure report.
type Result struct {
	// BuildID identifies this build run in logs, independent of
	// GeneratedAt: two builds started in quick succession (e.g. a retry
	// after a lock contention error) can share a timestamp but never a
	// BuildID.
	BuildID   string
	Pages     []generate.Page
	Graph     *wikigraph.Graph
	Synthesis diagrams.SynthesisMap
	Report    *wikierr.Report
	Unchanged int
}

// fileParse is one Discover-phase outcome: the parsed result (nil on an
// ineligible extension) alongside the bytes read, kept around for the
// signature computation in the Files phase so the file is never reread.
type fileParse struct {
	path     string
	language parsing.Language
	hasLang  bool
	content  []byte
	result   *parsing.Result
}

// builder carries the mutable state threaded through one Build call's six
// phases. It is not safe for concurrent Build calls to share one instance;
// Build constructs a fresh one every call.
type builder struct {
	opts   Options
	report *wikierr.Report

	files map[string]*fileParse // repo-relative path -> parse outcome
	graph *wikigraph.Graph
	synth diagrams.SynthesisMap

	fileSummaries map[string]generate.FileSummary
	fileHashes    map[string]string
	dirSummaries  map[string]generate.DirectorySummary

	pages     []generate.Page
	unchanged int
}

func newBuilder(opts Options) *builder {
	return &builder{
		opts:          opts,
		report:        wikierr.NewReport(),
		files:         make(map[string]*fileParse),
		fileSummaries: make(map[string]generate.FileSummary),
		fileHashes:    make(map[string]string),
		dirSummaries:  make(map[string]generate.DirectorySummary),
	}
}

func (b *builder) emit(phase Phase, step, total int, message string) {
	if b.opts.Progress != nil {
		b.opts.Progress(Progress{Phase: phase, Step: step, Total: total, Message: message})
	}
}

// liveWikiDir resolves Config.WikiDir against RepoRoot into an absolute
// path, the root of the currently-committed wiki tree (wiki/, graph/,
// meta/ subdirectories).
func (b *builder) liveWikiDir() string {
	if filepath.IsAbs(b.opts.Config.WikiDir) {
		return b.opts.Config.WikiDir
	}
	return filepath.Join(b.opts.RepoRoot, b.opts.Config.WikiDir)
}

func (b *builder) deps() generate.Deps {
	return generate.Deps{
		Config:  b.opts.Config,
		TextGen: b.opts.TextGen,
		Notes:   b.opts.Notes,
		Report:  b.report,
		Logger:  b.opts.Logger,
	}
}
