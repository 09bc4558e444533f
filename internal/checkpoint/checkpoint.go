package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// DefaultDir is where snapshots and rollback reports live, relative to
// the project root.
const DefaultDir = "storage/rollbacks"

// Level is the granularity a snapshot was taken at.
type Level string

const (
	LevelFile   Level = "file"
	LevelCommit Level = "commit"
	LevelStage  Level = "stage"
	LevelSprint Level = "sprint"
)

// ValidLevel reports whether l names a known granularity.
func ValidLevel(l Level) bool {
	switch l {
	case LevelFile, LevelCommit, LevelStage, LevelSprint:
		return true
	}
	return false
}

// Snapshot is a by-value copy of a set of files at a point in time. Once
// written it is never modified; rollback reads it back verbatim.
type Snapshot struct {
	ID        string      `json:"id"`
	Level     Level       `json:"level"`
	Label     string      `json:"label,omitempty"`
	Commit    string      `json:"commit,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	Files     []FileEntry `json:"files"`
}

// FileEntry is the captured state of one path. A path absent at capture
// time is recorded with Exists false so a rollback removes whatever got
// created there afterwards.
type FileEntry struct {
	Path    string      `json:"path"`
	Exists  bool        `json:"exists"`
	Content string      `json:"content,omitempty"`
	Mode    os.FileMode `json:"mode,omitempty"`
	MTime   time.Time   `json:"mtime,omitempty"`
	Size    int64       `json:"size,omitempty"`
}

// RollbackReport records one restore operation.
type RollbackReport struct {
	ID            string    `json:"id"`
	CheckpointID  string    `json:"checkpointId"`
	Timestamp     time.Time `json:"timestamp"`
	RestoredFiles []string  `json:"restoredFiles"`
	RemovedFiles  []string  `json:"removedFiles,omitempty"`
}

// Options parameterise a capture.
type Options struct {
	Level  Level
	Label  string
	Commit string // git HEAD at capture time, when known
}

// Store persists snapshots as one JSON file each, keyed by uuid.
type Store struct {
	dir   string
	now   func() time.Time
	newID func() string
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating checkpoint directory: %w", err)
	}
	return &Store{dir: dir, now: time.Now, newID: uuid.NewString}, nil
}

// Capture snapshots the given files by value. A path that does not exist
// is recorded as absent; any other read error fails the whole capture,
// since a partial snapshot could not be rolled back to.
func (s *Store) Capture(paths []string, opts Options) (*Snapshot, error) {
	if !ValidLevel(opts.Level) {
		return nil, fmt.Errorf("unknown checkpoint level: %s", opts.Level)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("nothing to capture")
	}

	snap := &Snapshot{
		ID:        s.newID(),
		Level:     opts.Level,
		Label:     opts.Label,
		Commit:    opts.Commit,
		CreatedAt: s.now().UTC(),
		Files:     make([]FileEntry, 0, len(paths)),
	}

	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	for _, path := range sorted {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			snap.Files = append(snap.Files, FileEntry{Path: path})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("capturing %s: %w", path, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("capturing %s: %w", path, err)
		}
		snap.Files = append(snap.Files, FileEntry{
			Path:    path,
			Exists:  true,
			Content: string(data),
			Mode:    info.Mode().Perm(),
			MTime:   info.ModTime().UTC(),
			Size:    info.Size(),
		})
	}

	if err := s.writeJSON(s.checkpointPath(snap.ID), snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Get loads a snapshot by id.
func (s *Store) Get(id string) (*Snapshot, error) {
	data, err := os.ReadFile(s.checkpointPath(id))
	if err != nil {
		return nil, fmt.Errorf("checkpoint %s: %w", id, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("checkpoint %s is corrupt: %w", id, err)
	}
	return &snap, nil
}

// List returns all snapshots, newest first. File contents are included;
// callers that only need metadata can drop them.
func (s *Store) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading checkpoint directory: %w", err)
	}

	var snaps []Snapshot
	for _, e := range entries {
		name := e.Name()
		if filepath.Ext(name) != ".json" || len(name) < len("checkpoint-") || name[:len("checkpoint-")] != "checkpoint-" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			continue
		}
		snaps = append(snaps, snap)
	}
	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].CreatedAt.Equal(snaps[j].CreatedAt) {
			return snaps[i].CreatedAt.After(snaps[j].CreatedAt)
		}
		return snaps[i].ID < snaps[j].ID
	})
	return snaps, nil
}

// Rollback restores every file in the snapshot verbatim and writes a
// rollback report next to the checkpoints. The snapshot itself is left
// untouched so a rollback can be repeated.
func (s *Store) Rollback(id string) (*RollbackReport, error) {
	snap, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	report := &RollbackReport{
		ID:           s.newID(),
		CheckpointID: snap.ID,
		Timestamp:    s.now().UTC(),
	}

	for _, entry := range snap.Files {
		if !entry.Exists {
			// The path was absent at capture time; undo its creation.
			if err := os.Remove(entry.Path); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("removing %s: %w", entry.Path, err)
			}
			report.RemovedFiles = append(report.RemovedFiles, entry.Path)
			continue
		}
		if dir := filepath.Dir(entry.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("restoring %s: %w", entry.Path, err)
			}
		}
		mode := entry.Mode
		if mode == 0 {
			mode = 0o644
		}
		if err := os.WriteFile(entry.Path, []byte(entry.Content), mode); err != nil {
			return nil, fmt.Errorf("restoring %s: %w", entry.Path, err)
		}
		// WriteFile leaves the mode of a pre-existing file alone.
		if err := os.Chmod(entry.Path, mode); err != nil {
			return nil, fmt.Errorf("restoring mode of %s: %w", entry.Path, err)
		}
		report.RestoredFiles = append(report.RestoredFiles, entry.Path)
	}

	if err := s.writeJSON(s.rollbackPath(report.ID), report); err != nil {
		return nil, err
	}
	return report, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) checkpointPath(id string) string {
	return filepath.Join(s.dir, "checkpoint-"+id+".json")
}

func (s *Store) rollbackPath(id string) string {
	return filepath.Join(s.dir, "rollback-"+id+".json")
}

func (s *Store) writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
