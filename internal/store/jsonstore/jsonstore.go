// Package jsonstore is the JSON-backed record store. Single file,
// human-readable, portable. The whole sequence is rewritten on every save;
// fine for a local single-user tool.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/projorg/internal/model"
)

// Store owns the ordered project sequence. Consumers get copies from List
// and must re-fetch after any mutation.
type Store struct {
	path     string
	projects []model.Project

	// Now is the clock used for stamping; swap in tests.
	Now func() time.Time
}

func New(path string) *Store {
	return &Store{path: path, Now: time.Now}
}

func (s *Store) Path() string { return s.path }

func (s *Store) Len() int { return len(s.projects) }

// List returns the current sequence in insertion order.
func (s *Store) List() []model.Project {
	out := make([]model.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Add validates, stamps and appends a new project.
func (s *Store) Add(p model.Project) (model.Project, error) {
	p.Normalize()
	if p.Name == "" {
		return model.Project{}, fmt.Errorf("add: empty name: %w", ErrValidation)
	}
	now := s.Now()
	p.ID = uuid.NewString()
	p.CreatedDate = now.Format(model.DateLayout)
	p.LastUpdated = now.Format(model.TimestampLayout)
	s.projects = append(s.projects, p)
	return p, nil
}

// Patch holds field changes for Update. Nil fields are left untouched.
type Patch struct {
	Name         *string
	Language     *string
	Priority     *string
	Completion   *int
	Deadline     *string
	Description  *string
	Notes        *string
	Dependencies *[]string
}

// Update applies a patch to the record at identity and re-stamps
// last_updated. created_date is never touched.
func (s *Store) Update(identity string, patch Patch) (model.Project, error) {
	i, err := s.index(identity)
	if err != nil {
		return model.Project{}, err
	}
	p := &s.projects[i]
	if patch.Name != nil {
		name := *patch.Name
		if name == "" {
			return model.Project{}, fmt.Errorf("update: empty name: %w", ErrValidation)
		}
		p.Name = name
	}
	if patch.Language != nil {
		p.Language = *patch.Language
	}
	if patch.Priority != nil {
		p.Priority = *patch.Priority
	}
	if patch.Completion != nil {
		p.Completion = model.ClampCompletion(*patch.Completion)
	}
	if patch.Deadline != nil {
		p.Deadline = *patch.Deadline
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	if patch.Dependencies != nil {
		p.Dependencies = *patch.Dependencies
	}
	s.stamp(p)
	return *p, nil
}

// SetProgress updates only the completion percentage.
func (s *Store) SetProgress(identity string, pct int) (model.Project, error) {
	pct = model.ClampCompletion(pct)
	return s.Update(identity, Patch{Completion: &pct})
}

// Get returns the record at identity.
func (s *Store) Get(identity string) (model.Project, error) {
	i, err := s.index(identity)
	if err != nil {
		return model.Project{}, err
	}
	return s.projects[i], nil
}

// Delete removes the record at identity. Irreversible except via a backup.
func (s *Store) Delete(identity string) error {
	i, err := s.index(identity)
	if err != nil {
		return err
	}
	s.projects = append(s.projects[:i], s.projects[i+1:]...)
	return nil
}

// Replace swaps in a whole new sequence (backup restore path).
func (s *Store) Replace(projects []model.Project) {
	s.projects = sanitize(projects)
}

// index resolves an identity: exact id, then exact name, then a numeric
// 0-based position.
func (s *Store) index(identity string) (int, error) {
	for i, p := range s.projects {
		if p.ID != "" && p.ID == identity {
			return i, nil
		}
	}
	for i, p := range s.projects {
		if p.Name == identity {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(identity); err == nil && n >= 0 && n < len(s.projects) {
		return n, nil
	}
	return 0, fmt.Errorf("identity %q: %w", identity, ErrNotFound)
}

// stamp advances last_updated, never backwards even with a skewed clock.
func (s *Store) stamp(p *model.Project) {
	now := s.Now()
	if prev, ok := p.UpdatedAt(); ok && now.Before(prev) {
		return
	}
	p.LastUpdated = now.Format(model.TimestampLayout)
}

// Save writes the full sequence as indented JSON. Temp file + rename so a
// crash mid-write never leaves a truncated data file behind.
func (s *Store) Save() error {
	b, err := json.MarshalIndent(s.projects, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".projorg-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %v: %w", err, ErrPersistence)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp: %v: %w", err, ErrPersistence)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp: %v: %w", err, ErrPersistence)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %v: %w", err, ErrPersistence)
	}
	return nil
}

// Load reads the data file. A missing file or an unparseable top level
// yields an empty store; malformed elements are skipped and the rest kept,
// so the application always starts usable.
func (s *Store) Load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.projects = []model.Project{}
			return nil
		}
		return fmt.Errorf("read file: %v: %w", err, ErrPersistence)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		s.projects = []model.Project{}
		return nil
	}
	projects := make([]model.Project, 0, len(raw))
	for _, r := range raw {
		var p model.Project
		if err := json.Unmarshal(r, &p); err != nil {
			continue
		}
		projects = append(projects, p)
	}
	s.projects = sanitize(projects)
	return nil
}

func sanitize(in []model.Project) []model.Project {
	out := make([]model.Project, 0, len(in))
	for _, p := range in {
		p.Normalize()
		if p.Name == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
