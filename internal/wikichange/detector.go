package wikichange

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"wikigen/internal/deadcode"
	"wikigen/internal/parsing"
	"wikigen/internal/wikilog"
)

var skipDirs = map[string]bool{
	".git":         true,
	".wikigen":     true,
	"vendor":       true,
	"node_modules": true,
	"bin":          true,
	"dist":         true,
	"out":          true,
	".cache":       true,
	"testdata":     true,
}

// Detector finds files that changed since a prior observation, preferring
// git history when available and falling back to a full content-hash walk.
type Detector struct {
	repoRoot string
	config   Config
	logger   *wikilog.Logger
}

// NewDetector builds a Detector rooted at repoRoot.
func NewDetector(repoRoot string, config Config, logger *wikilog.Logger) *Detector {
	return &Detector{repoRoot: repoRoot, config: config, logger: logger}
}

// DetectSinceCommit returns files changed since commit since, falling back
// to a full hash-based walk (against known) if git is unavailable, the
// repo isn't a git checkout, or the commit is unknown to it.
func (d *Detector) DetectSinceCommit(since string, known map[string]string) ([]ChangedFile, error) {
	if d.isGitRepo() {
		changes, err := d.detectGitChanges(since)
		if err == nil {
			return changes, nil
		}
		if d.logger != nil {
			d.logger.Debug("git-based change detection failed, falling back to hash walk", map[string]interface{}{"error": err.Error()})
		}
	}
	return d.DetectByHash(known)
}

// CurrentCommit returns the repo's current HEAD, or "" outside a git repo.
func (d *Detector) CurrentCommit() string {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = d.repoRoot
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func (d *Detector) isGitRepo() bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = d.repoRoot
	return cmd.Run() == nil
}

func (d *Detector) detectGitChanges(since string) ([]ChangedFile, error) {
	if since == "" {
		return nil, fmt.Errorf("no prior commit to diff against")
	}

	head := d.CurrentCommit()
	if head == "" {
		return nil, fmt.Errorf("failed to resolve HEAD")
	}
	if head == since {
		return d.detectUncommittedChanges()
	}

	cmd := exec.Command("git", "diff", "--name-status", "-z", since, head)
	cmd.Dir = d.repoRoot
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff: %w", err)
	}

	changes := d.parseGitDiffNUL(output)
	uncommitted, _ := d.detectUncommittedChanges()
	changes = append(changes, uncommitted...)
	return dedup(changes), nil
}

func (d *Detector) detectUncommittedChanges() ([]ChangedFile, error) {
	var changes []ChangedFile

	staged := exec.Command("git", "diff", "--name-status", "-z", "--cached")
	staged.Dir = d.repoRoot
	stagedOut, _ := staged.Output()
	changes = append(changes, d.parseGitDiffNUL(stagedOut)...)

	unstaged := exec.Command("git", "diff", "--name-status", "-z")
	unstaged.Dir = d.repoRoot
	unstagedOut, _ := unstaged.Output()
	changes = append(changes, d.parseGitDiffNUL(unstagedOut)...)

	untracked := exec.Command("git", "ls-files", "-z", "--others", "--exclude-standard")
	untracked.Dir = d.repoRoot
	untrackedOut, _ := untracked.Output()
	for _, p := range bytes.Split(untrackedOut, []byte{0}) {
		path := string(p)
		if path != "" && d.isEligible(path) {
			changes = append(changes, ChangedFile{Path: path, ChangeType: ChangeAdded})
		}
	}

	return dedup(changes), nil
}

// parseGitDiffNUL parses `git diff --name-status -z` output: STATUS\0PATH\0,
// or STATUS\0OLDPATH\0NEWPATH\0 for renames and copies. Both paths of a
// rename must be read before deciding whether to keep it, since eligibility
// can differ between the old and new extension.
func (d *Detector) parseGitDiffNUL(output []byte) []ChangedFile {
	var changes []ChangedFile
	parts := bytes.Split(output, []byte{0})

	for i := 0; i < len(parts); {
		if len(parts[i]) == 0 {
			i++
			continue
		}
		status := string(parts[i])
		if i+1 >= len(parts) {
			break
		}

		isRenameOrCopy := strings.HasPrefix(status, "R") || strings.HasPrefix(status, "C")
		var oldPath, newPath string
		if isRenameOrCopy {
			oldPath = string(parts[i+1])
			i += 2
			if i >= len(parts) {
				continue
			}
			newPath = string(parts[i])
			i++
		} else {
			newPath = string(parts[i+1])
			oldPath = newPath
			i += 2
		}

		switch {
		case status == "A":
			if d.isEligible(newPath) {
				changes = append(changes, ChangedFile{Path: newPath, ChangeType: ChangeAdded})
			}
		case status == "M":
			if d.isEligible(newPath) {
				changes = append(changes, ChangedFile{Path: newPath, ChangeType: ChangeModified})
			}
		case status == "D":
			if d.isEligible(oldPath) {
				changes = append(changes, ChangedFile{Path: oldPath, ChangeType: ChangeDeleted})
			}
		case strings.HasPrefix(status, "R"):
			oldOK, newOK := d.isEligible(oldPath), d.isEligible(newPath)
			switch {
			case oldOK && newOK:
				changes = append(changes, ChangedFile{Path: newPath, OldPath: oldPath, ChangeType: ChangeRenamed})
			case oldOK && !newOK:
				changes = append(changes, ChangedFile{Path: oldPath, ChangeType: ChangeDeleted})
			case !oldOK && newOK:
				changes = append(changes, ChangedFile{Path: newPath, ChangeType: ChangeAdded})
			}
		case strings.HasPrefix(status, "C"):
			if d.isEligible(newPath) {
				changes = append(changes, ChangedFile{Path: newPath, ChangeType: ChangeAdded})
			}
		default:
			if d.isEligible(newPath) {
				changes = append(changes, ChangedFile{Path: newPath, ChangeType: ChangeModified})
			}
		}
	}

	return changes
}

// DetectByHash compares every eligible file's current content hash against
// known (path -> hash from a prior observation), reporting additions,
// modifications, and deletions. Pass a nil or empty map to treat every
// eligible file as added.
func (d *Detector) DetectByHash(known map[string]string) ([]ChangedFile, error) {
	var changes []ChangedFile
	seen := make(map[string]bool, len(known))

	err := filepath.Walk(d.repoRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if skipDirs[filepath.Base(path)] || d.isExcluded(path) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(d.repoRoot, path)
		if relErr != nil || !d.isEligible(rel) || d.isExcluded(rel) {
			return nil
		}
		seen[rel] = true

		hash, hashErr := hashFile(path)
		if hashErr != nil {
			return nil
		}

		if prev, ok := known[rel]; !ok {
			changes = append(changes, ChangedFile{Path: rel, ChangeType: ChangeAdded, Hash: hash})
		} else if prev != hash {
			changes = append(changes, ChangedFile{Path: rel, ChangeType: ChangeModified, Hash: hash})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk repository: %w", err)
	}

	for path := range known {
		if !seen[path] {
			changes = append(changes, ChangedFile{Path: path, ChangeType: ChangeDeleted})
		}
	}

	return changes, nil
}

// HasDirtyWorkingTree reports whether the repo has uncommitted changes.
func (d *Detector) HasDirtyWorkingTree() bool {
	changes, err := d.detectUncommittedChanges()
	if err != nil {
		return false
	}
	return len(changes) > 0
}

func (d *Detector) isEligible(path string) bool {
	if _, ok := parsing.LanguageFromExtension(filepath.Ext(path)); !ok {
		return false
	}
	if !d.config.IncludeTests && deadcode.IsTestFile(path) {
		return false
	}
	return !d.isExcluded(path)
}

func (d *Detector) isExcluded(path string) bool {
	normalized := filepath.ToSlash(path)
	for _, pattern := range d.config.Excludes {
		np := filepath.ToSlash(pattern)
		if matched, _ := filepath.Match(np, normalized); matched {
			return true
		}
		dirPattern := strings.TrimSuffix(np, "/") + "/"
		if strings.HasPrefix(normalized, dirPattern) {
			return true
		}
		if normalized == strings.TrimSuffix(np, "/") {
			return true
		}
	}
	return false
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func dedup(changes []ChangedFile) []ChangedFile {
	seen := make(map[string]int, len(changes))
	var result []ChangedFile
	for _, c := range changes {
		if idx, ok := seen[c.Path]; ok {
			result[idx] = c
		} else {
			seen[c.Path] = len(result)
			result = append(result, c)
		}
	}
	return result
}
