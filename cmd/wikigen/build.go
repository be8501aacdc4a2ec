package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wikigen/internal/notes"
	"wikigen/internal/orchestrator"
	"wikigen/internal/textgen"
	"wikigen/internal/wikichange"
	"wikigen/internal/wikiconfig"
	"wikigen/internal/wikilog"
	"wikigen/internal/wikistore"

	"github.com/spf13/cobra"
)

var (
	buildGeneratorURL string
	buildGeneratorKey string
	buildNotesFile    string
	buildCloud        bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate or refresh the wiki for the current repository",
	Long: `Discovers, parses, and analyzes the repository, regenerates whatever
file, directory, and architecture pages have gone stale, and atomically
swaps the result into .wikigen/wiki.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildGeneratorURL, "generator-url", os.Getenv("WIKIGEN_GENERATOR_URL"),
		"HTTP endpoint implementing the {prompt,system} -> {text} generator protocol (env WIKIGEN_GENERATOR_URL)")
	buildCmd.Flags().StringVar(&buildGeneratorKey, "generator-key", os.Getenv("WIKIGEN_GENERATOR_KEY"),
		"Bearer token sent to --generator-url (env WIKIGEN_GENERATOR_KEY)")
	buildCmd.Flags().StringVar(&buildNotesFile, "notes-file", "", "Optional JSON file of human notes to fold into prompts and staleness checks")
	buildCmd.Flags().BoolVar(&buildCloud, "cloud", false, "Use Config.ParallelLimitCloud instead of ParallelLimitLocal")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get current directory: %w", err)
	}

	cfg, err := wikiconfig.Load(cwd)
	if err != nil {
		return err
	}

	logger := wikilog.NewLogger(wikilog.Config{
		Format: wikilog.Format(cfg.Logging.Format),
		Level:  wikilog.LogLevel(cfg.Logging.Level),
	})

	liveWikiDir := cfg.WikiDir
	if !filepath.IsAbs(liveWikiDir) {
		liveWikiDir = filepath.Join(cwd, liveWikiDir)
	}
	db, err := wikistore.Open(liveWikiDir, logger)
	if err != nil {
		return fmt.Errorf("open sidecar store: %w", err)
	}
	defer db.Close()
	store := wikistore.NewSidecarRepository(db)

	if wikichange.NewDetector(cwd, wikichange.DefaultConfig(), logger).HasDirtyWorkingTree() {
		logger.Warn("repository has uncommitted changes; generated pages will describe the working tree, not the last commit", nil)
	}

	var gen textgen.Generator
	if buildGeneratorURL != "" {
		gen = newHTTPGenerator(buildGeneratorURL, buildGeneratorKey, 120*time.Second)
	} else {
		logger.Warn("no --generator-url configured; pages will fall back to carried-forward or missing content", nil)
		gen = noGenerator{}
	}

	var notesQuery notes.Query = notes.None{}
	if buildNotesFile != "" {
		fn, err := loadFileNotes(buildNotesFile)
		if err != nil {
			return fmt.Errorf("load notes file: %w", err)
		}
		notesQuery = fn
	}

	opts := orchestrator.Options{
		RepoRoot:      cwd,
		RepoName:      filepath.Base(cwd),
		Config:        cfg,
		TextGen:       gen,
		Notes:         notesQuery,
		Store:         store,
		Logger:        logger,
		ParallelCloud: buildCloud,
		Progress: func(p orchestrator.Progress) {
			logger.Info("build progress", map[string]interface{}{
				"phase": string(p.Phase), "step": p.Step, "total": p.Total, "target": p.Message,
			})
		},
	}

	result, err := orchestrator.Build(context.Background(), opts, time.Now().UnixNano())
	if err != nil {
		return err
	}

	fmt.Printf("wiki built: %d pages (%d unchanged), %d recoverable issues [build %s]\n",
		len(result.Pages), result.Unchanged, len(result.Report.Failures()), result.BuildID)
	return nil
}

// noGenerator always fails with a transport error, so a build run with no
// backend configured still exercises the Files/Directories phases' carry-
// forward path instead of panicking on a nil interface.
type noGenerator struct{}

func (noGenerator) Generate(context.Context, string, string) (string, error) {
	return "", &textgen.TransportError{Cause: fmt.Errorf("no generator configured (pass --generator-url)")}
}
