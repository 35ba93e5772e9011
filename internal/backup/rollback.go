package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// rollbackPrefix marks the automatic pre-import snapshots in the data
// directory. The timestamped name sorts chronologically.
const rollbackPrefix = "rollback_"

const rollbackTimeLayout = "20060102_150405"

// SnapshotForImport writes the current state to a rollback file in dir
// before an import replaces it. Taken unconditionally: the snapshot is
// the undo point for the whole import, whatever happens afterwards.
func SnapshotForImport(p *Payload, dir string, now time.Time) (string, error) {
	name := rollbackPrefix + now.Format(rollbackTimeLayout) + Extension
	path := filepath.Join(dir, name)
	if err := PersistToPath(p, path); err != nil {
		return "", fmt.Errorf("rollback snapshot: %w", err)
	}
	return path, nil
}

// LatestRollback returns the newest rollback snapshot in dir, or the
// empty string when none exists.
func LatestRollback(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("list rollbacks: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, rollbackPrefix) && strings.HasSuffix(name, Extension) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}

// PruneRollbacks keeps the keep newest snapshots in dir and deletes the
// rest. keep < 1 deletes nothing.
func PruneRollbacks(dir string, keep int) error {
	if keep < 1 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("list rollbacks: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, rollbackPrefix) && strings.HasSuffix(name, Extension) {
			names = append(names, name)
		}
	}
	if len(names) <= keep {
		return nil
	}
	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("prune rollback %s: %w", name, err)
		}
	}
	return nil
}
