package temporal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// SnapshotFilename returns the export filename for a snapshot applied at
// the given date: "graph-snapshot-<YYYY-MM-DD>.json".
func SnapshotFilename(appliedDate time.Time) string {
	return fmt.Sprintf("graph-snapshot-%s.json", appliedDate.Format("2006-01-02"))
}

// ExportSnapshot writes the session's current snapshot to w as indented
// JSON. It is a read-only operation over already-fetched data and performs
// no backend call. Returns ErrNoSnapshot when nothing is loaded.
func (s *Session) ExportSnapshot(w io.Writer) error {
	snapshot := s.Snapshot()
	if snapshot == nil {
		return ErrNoSnapshot
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snapshot)
}

// WriteSnapshotFile exports the current snapshot into dir using the
// canonical filename derived from the applied date, and returns the full
// path of the written file. Returns ErrNoSnapshot when nothing is loaded.
func (s *Session) WriteSnapshotFile(dir string) (string, error) {
	s.mu.Lock()
	snapshot := s.snapshot
	applied := s.applied
	s.mu.Unlock()

	if snapshot == nil {
		return "", ErrNoSnapshot
	}

	path := filepath.Join(dir, SnapshotFilename(applied))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating snapshot file: %w", err)
	}

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snapshot); err != nil {
		f.Close()
		return "", fmt.Errorf("writing snapshot file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing snapshot file: %w", err)
	}

	return path, nil
}
