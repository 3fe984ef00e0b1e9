package jsonstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/projorg/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "projects_data.json"))
	s.Now = func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	}
	return s
}

func TestAddStampsAndAppends(t *testing.T) {
	s := newTestStore(t)
	p, err := s.Add(model.Project{Name: "api", Language: "Go", Completion: 40})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.Equal(t, "2026-03-10", p.CreatedDate)
	require.Equal(t, "2026-03-10 09:00:00", p.LastUpdated)

	list := s.List()
	require.Len(t, list, 1)
	require.Equal(t, "api", list[0].Name)
	require.Equal(t, 40, list[0].Completion)

	// created_date matches the date of last_updated at creation time
	created, ok := list[0].CreatedOn()
	require.True(t, ok)
	updated, ok := list[0].UpdatedAt()
	require.True(t, ok)
	require.Equal(t, created.Format(model.DateLayout), updated.Format(model.DateLayout))
}

func TestAddRejectsEmptyName(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(model.Project{Name: "   "})
	require.ErrorIs(t, err, ErrValidation)
	require.Equal(t, 0, s.Len())
}

func TestAddClampsCompletion(t *testing.T) {
	s := newTestStore(t)
	p, err := s.Add(model.Project{Name: "x", Completion: 250})
	require.NoError(t, err)
	require.Equal(t, 100, p.Completion)
}

func TestUpdatePreservesCreatedDateAndAdvancesStamp(t *testing.T) {
	s := newTestStore(t)
	p, err := s.Add(model.Project{Name: "api"})
	require.NoError(t, err)

	s.Now = func() time.Time {
		return time.Date(2026, 3, 12, 18, 30, 0, 0, time.Local)
	}
	lang := "Rust"
	updated, err := s.Update(p.ID, Patch{Language: &lang})
	require.NoError(t, err)
	require.Equal(t, "Rust", updated.Language)
	require.Equal(t, p.CreatedDate, updated.CreatedDate)
	require.Equal(t, "2026-03-12 18:30:00", updated.LastUpdated)
}

func TestUpdateNeverMovesStampBackward(t *testing.T) {
	s := newTestStore(t)
	p, err := s.Add(model.Project{Name: "api"})
	require.NoError(t, err)

	// Clock skew: wall clock jumped behind the last stamp.
	s.Now = func() time.Time {
		return time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	}
	n := 10
	updated, err := s.Update(p.ID, Patch{Completion: &n})
	require.NoError(t, err)
	require.Equal(t, p.LastUpdated, updated.LastUpdated)
	require.Equal(t, 10, updated.Completion)
}

func TestUpdateUnknownIdentity(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Update("nope", Patch{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestIdentityResolutionOrder(t *testing.T) {
	s := newTestStore(t)
	a, err := s.Add(model.Project{Name: "first"})
	require.NoError(t, err)
	_, err = s.Add(model.Project{Name: "second"})
	require.NoError(t, err)

	byID, err := s.Get(a.ID)
	require.NoError(t, err)
	require.Equal(t, "first", byID.Name)

	byName, err := s.Get("second")
	require.NoError(t, err)
	require.Equal(t, "second", byName.Name)

	byIndex, err := s.Get("1")
	require.NoError(t, err)
	require.Equal(t, "second", byIndex.Name)
}

func TestSetProgressClamps(t *testing.T) {
	s := newTestStore(t)
	p, err := s.Add(model.Project{Name: "api"})
	require.NoError(t, err)
	got, err := s.SetProgress(p.ID, 170)
	require.NoError(t, err)
	require.Equal(t, 100, got.Completion)
}

func TestDeleteRemoves(t *testing.T) {
	s := newTestStore(t)
	p, err := s.Add(model.Project{Name: "gone"})
	require.NoError(t, err)
	_, err = s.Add(model.Project{Name: "stays"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(p.ID))
	require.Equal(t, 1, s.Len())
	for _, rec := range s.List() {
		require.NotEqual(t, p.ID, rec.ID)
	}
	require.ErrorIs(t, s.Delete(p.ID), ErrNotFound)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(model.Project{
		Name:         "full",
		Language:     "Go",
		Priority:     model.PriorityHigh,
		Completion:   60,
		Deadline:     "2026-04-01",
		Description:  "has, a comma",
		Notes:        "some notes",
		Dependencies: []string{"lib-a", "lib-b"},
	})
	require.NoError(t, err)
	_, err = s.Add(model.Project{Name: "sparse"})
	require.NoError(t, err)
	require.NoError(t, s.Save())

	reloaded := New(s.Path())
	require.NoError(t, reloaded.Load())
	require.Equal(t, s.List(), reloaded.List())
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, s.Load())
	require.Equal(t, 0, s.Len())
}

func TestLoadCorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{ not json"), 0o644))
	s := New(path)
	require.NoError(t, s.Load())
	require.Equal(t, 0, s.Len())
}

func TestLoadSkipsMalformedElementsAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	raw := `[
  {"name": "ok", "language": "Go"},
  "just a string",
  {"language": "nameless"},
  {"name": "defaulted"}
]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	s := New(path)
	require.NoError(t, s.Load())

	list := s.List()
	require.Len(t, list, 2)
	require.Equal(t, "ok", list[0].Name)
	require.Equal(t, "defaulted", list[1].Name)
	require.Equal(t, model.PriorityMedium, list[1].Priority)
	require.Equal(t, 0, list[1].Completion)
	require.Empty(t, list[1].Dependencies)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "data.json"))
	s.Now = time.Now
	_, err := s.Add(model.Project{Name: "x"})
	require.NoError(t, err)
	require.NoError(t, s.Save())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "data.json", entries[0].Name())
}
