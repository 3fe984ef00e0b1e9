// Package backup manages timestamped snapshot files of the data file, with
// FIFO retention and restore.
package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/idilsaglam/projorg/internal/model"
)

const filePrefix = "projectdata_backup_"

// Kinds of snapshot, encoded in the file name.
const (
	KindManual = "manual"
	KindAuto   = "auto"
)

// Snapshot describes one backup file on disk.
type Snapshot struct {
	Path       string
	Name       string
	CapturedAt time.Time
}

// Manager writes and restores snapshots of one data file.
type Manager struct {
	dataPath string
	dir      string
	keep     int // max snapshots retained; <= 0 keeps everything

	Now func() time.Time
}

func NewManager(dataPath, dir string, keep int) *Manager {
	return &Manager{dataPath: dataPath, dir: dir, keep: keep, Now: time.Now}
}

// Create copies the current data file into a new timestamped snapshot and
// prunes old ones. A missing data file snapshots as an empty list.
func (m *Manager) Create(kind string) (Snapshot, error) {
	if kind != KindAuto {
		kind = KindManual
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return Snapshot{}, fmt.Errorf("backup dir: %w", err)
	}
	data, err := os.ReadFile(m.dataPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return Snapshot{}, fmt.Errorf("read data file: %w", err)
		}
		data = []byte("[]")
	}
	now := m.Now()
	name := fmt.Sprintf("%s%s_%s.json", filePrefix, kind, now.Format("20060102_150405"))
	path := filepath.Join(m.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Snapshot{}, fmt.Errorf("write snapshot: %w", err)
	}
	if err := m.Prune(); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Path: path, Name: name, CapturedAt: now}, nil
}

// List returns the snapshots newest first.
func (m *Manager) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	var snaps []Snapshot
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), filePrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		snaps = append(snaps, Snapshot{
			Path:       filepath.Join(m.dir, e.Name()),
			Name:       e.Name(),
			CapturedAt: captureTime(e.Name(), info.ModTime()),
		})
	}
	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].CapturedAt.Equal(snaps[j].CapturedAt) {
			return snaps[i].CapturedAt.After(snaps[j].CapturedAt)
		}
		return snaps[i].Name > snaps[j].Name
	})
	return snaps, nil
}

// Restore replaces the data file with a snapshot. The snapshot must parse
// as a record list; a safety auto-snapshot of the current data is taken
// first so a restore is itself reversible.
func (m *Manager) Restore(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	var probe []model.Project
	if err := json.Unmarshal(b, &probe); err != nil {
		return fmt.Errorf("invalid backup file format: %w", err)
	}
	if _, err := m.Create(KindAuto); err != nil {
		return fmt.Errorf("pre-restore snapshot: %w", err)
	}
	tmp := m.dataPath + ".restore"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write restore temp: %w", err)
	}
	if err := os.Rename(tmp, m.dataPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

// Export copies a snapshot to an external destination.
func (m *Manager) Export(path, dest string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer src.Close()
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("copy snapshot: %w", err)
	}
	return out.Close()
}

// Prune removes the oldest snapshots beyond the retention count.
func (m *Manager) Prune() error {
	if m.keep <= 0 {
		return nil
	}
	snaps, err := m.List()
	if err != nil {
		return err
	}
	for _, s := range snaps[min(m.keep, len(snaps)):] {
		if err := os.Remove(s.Path); err != nil {
			return fmt.Errorf("remove old snapshot %s: %w", s.Name, err)
		}
	}
	return nil
}

// captureTime recovers the timestamp from the file name, falling back to
// mtime for files renamed by hand.
func captureTime(name string, fallback time.Time) time.Time {
	base := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), ".json")
	if i := strings.Index(base, "_"); i >= 0 {
		if t, err := time.ParseInLocation("20060102_150405", base[i+1:], time.Local); err == nil {
			return t
		}
	}
	return fallback
}
