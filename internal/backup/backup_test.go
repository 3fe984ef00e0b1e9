package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, keep int) (*Manager, string) {
	t.Helper()
	root := t.TempDir()
	dataPath := filepath.Join(root, "projects_data.json")
	m := NewManager(dataPath, filepath.Join(root, "backups"), keep)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	n := 0
	m.Now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return m, dataPath
}

func TestCreateSnapshotsDataFile(t *testing.T) {
	m, dataPath := newTestManager(t, 10)
	require.NoError(t, os.WriteFile(dataPath, []byte(`[{"name":"api"}]`), 0o644))

	snap, err := m.Create(KindManual)
	require.NoError(t, err)
	require.Contains(t, snap.Name, "projectdata_backup_manual_")

	b, err := os.ReadFile(snap.Path)
	require.NoError(t, err)
	require.JSONEq(t, `[{"name":"api"}]`, string(b))
}

func TestCreateWithMissingDataFile(t *testing.T) {
	m, _ := newTestManager(t, 10)
	snap, err := m.Create(KindAuto)
	require.NoError(t, err)
	b, err := os.ReadFile(snap.Path)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(b))
}

func TestListNewestFirst(t *testing.T) {
	m, dataPath := newTestManager(t, 10)
	require.NoError(t, os.WriteFile(dataPath, []byte(`[]`), 0o644))

	first, err := m.Create(KindManual)
	require.NoError(t, err)
	second, err := m.Create(KindAuto)
	require.NoError(t, err)

	snaps, err := m.List()
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	require.Equal(t, second.Name, snaps[0].Name)
	require.Equal(t, first.Name, snaps[1].Name)
}

func TestRetentionPrunesOldestFirst(t *testing.T) {
	m, dataPath := newTestManager(t, 3)
	require.NoError(t, os.WriteFile(dataPath, []byte(`[]`), 0o644))

	var created []Snapshot
	for i := 0; i < 5; i++ {
		s, err := m.Create(KindAuto)
		require.NoError(t, err)
		created = append(created, s)
	}

	snaps, err := m.List()
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	// The three newest survive, oldest two are gone.
	require.Equal(t, created[4].Name, snaps[0].Name)
	require.Equal(t, created[2].Name, snaps[2].Name)
	_, err = os.Stat(created[0].Path)
	require.True(t, os.IsNotExist(err))
}

func TestRestoreReplacesDataFileAndKeepsSafetySnapshot(t *testing.T) {
	m, dataPath := newTestManager(t, 10)
	require.NoError(t, os.WriteFile(dataPath, []byte(`[{"name":"old"}]`), 0o644))
	snap, err := m.Create(KindManual)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(dataPath, []byte(`[{"name":"new"}]`), 0o644))
	require.NoError(t, m.Restore(snap.Path))

	b, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	require.JSONEq(t, `[{"name":"old"}]`, string(b))

	// The pre-restore state was snapshotted before being replaced.
	snaps, err := m.List()
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	pre, err := os.ReadFile(snaps[0].Path)
	require.NoError(t, err)
	require.JSONEq(t, `[{"name":"new"}]`, string(pre))
}

func TestRestoreRejectsInvalidSnapshot(t *testing.T) {
	m, dataPath := newTestManager(t, 10)
	require.NoError(t, os.WriteFile(dataPath, []byte(`[{"name":"keep"}]`), 0o644))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	require.Error(t, m.Restore(bad))

	// Data file untouched.
	b, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	require.JSONEq(t, `[{"name":"keep"}]`, string(b))
}

func TestExportCopies(t *testing.T) {
	m, dataPath := newTestManager(t, 10)
	require.NoError(t, os.WriteFile(dataPath, []byte(`[{"name":"x"}]`), 0o644))
	snap, err := m.Create(KindManual)
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "exported.json")
	require.NoError(t, m.Export(snap.Path, dest))
	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.JSONEq(t, `[{"name":"x"}]`, string(b))
}
