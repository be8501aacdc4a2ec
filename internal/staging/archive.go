package staging

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"wikigen/internal/wikilog"
)

// maxHistorySnapshots bounds how many superseded wikis archiveAndRemove
// keeps on disk; older snapshots are pruned as new ones land.
const maxHistorySnapshots = 5

// archiveAndRemove tars and zstd-compresses the outgoing wiki (the
// .backup directory left behind by a successful swap) into the history
// directory alongside it, then deletes the uncompressed copy. It never
// fails the build: archival is a best-effort retention convenience, not
// part of the atomic-commit contract.
func archiveAndRemove(backupPath string, logger *wikilog.Logger) {
	historyDir := filepath.Join(filepath.Dir(backupPath), ".wikigen-history")
	if err := os.MkdirAll(historyDir, 0o755); err != nil {
		logWarn(logger, "creating wiki history directory", err)
		os.RemoveAll(backupPath)
		return
	}

	snapshotPath := filepath.Join(historyDir, snapshotName(backupPath))
	if err := archiveDir(backupPath, snapshotPath); err != nil {
		logWarn(logger, "archiving superseded wiki", err)
	}

	os.RemoveAll(backupPath)
	pruneHistory(historyDir, logger)
}

// snapshotName mixes the backup's mtime into the filename for
// chronological sorting in pruneHistory, plus a uuid suffix so two
// snapshots landing in the same filesystem timestamp tick never collide.
func snapshotName(backupPath string) string {
	info, err := os.Stat(backupPath)
	mtime := int64(0)
	if err == nil {
		mtime = info.ModTime().UnixNano()
	}
	return "wiki-" + strconv.FormatInt(mtime, 10) + "-" + uuid.New().String() + ".tar.zst"
}

func archiveDir(srcDir, destFile string) error {
	out, err := os.Create(destFile)
	if err != nil {
		return err
	}
	defer out.Close()

	zw, err := zstd.NewWriter(out)
	if err != nil {
		return err
	}
	defer zw.Close()

	tw := tar.NewWriter(zw)
	defer tw.Close()

	return filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
}

// pruneHistory keeps only the maxHistorySnapshots most recent archives.
func pruneHistory(historyDir string, logger *wikilog.Logger) {
	entries, err := os.ReadDir(historyDir)
	if err != nil {
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) <= maxHistorySnapshots {
		return
	}
	for _, name := range names[:len(names)-maxHistorySnapshots] {
		if err := os.Remove(filepath.Join(historyDir, name)); err != nil {
			logWarn(logger, "pruning old wiki snapshot", err)
		}
	}
}

func logWarn(logger *wikilog.Logger, msg string, err error) {
	if logger != nil {
		logger.Warn(msg, map[string]interface{}{"error": err.Error()})
	}
}

