package model

import (
	"strings"
	"time"
)

// Date layouts used throughout the data file.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Priority labels as stored on disk.
const (
	PriorityHigh   = "High Priority"
	PriorityMedium = "Medium Priority"
	PriorityLow    = "Low Priority"
)

// Project is the domain model for one tracked project.
//
// Dates are kept as strings in the file's own format; use the accessor
// methods to get parsed values. An empty or unparseable date reads as
// "not set" rather than an error, so stale hand-edited files stay loadable.
type Project struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Language     string   `json:"language,omitempty"`
	Priority     string   `json:"priority"`
	Completion   int      `json:"completion"`
	Deadline     string   `json:"deadline,omitempty"`
	Description  string   `json:"description,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	CreatedDate  string   `json:"created_date,omitempty"`
	LastUpdated  string   `json:"last_updated,omitempty"`
}

// ClampCompletion forces a percentage into [0, 100].
func ClampCompletion(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Normalize fills defaults and clamps ranges. Called on add and on load.
func (p *Project) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	if p.Priority == "" {
		p.Priority = PriorityMedium
	}
	p.Completion = ClampCompletion(p.Completion)
	if p.Dependencies == nil {
		p.Dependencies = []string{}
	}
}

// PriorityRank orders priorities High < Medium < Low, unknown labels last.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// DeadlineDate parses the deadline. ok is false when absent or invalid.
func (p Project) DeadlineDate() (time.Time, bool) {
	return parseDate(p.Deadline)
}

// CreatedOn parses created_date. ok is false when absent or invalid.
func (p Project) CreatedOn() (time.Time, bool) {
	return parseDate(p.CreatedDate)
}

// UpdatedAt parses last_updated. The original tool wrote a bare date here
// in early versions, so both layouts are accepted.
func (p Project) UpdatedAt() (time.Time, bool) {
	if p.LastUpdated == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(TimestampLayout, p.LastUpdated, time.Local); err == nil {
		return t, true
	}
	return parseDate(p.LastUpdated)
}

// DaysUntilDeadline returns whole calendar days from today to the deadline
// (negative when overdue). ok is false when the deadline is not set.
func (p Project) DaysUntilDeadline(today time.Time) (int, bool) {
	d, ok := p.DeadlineDate()
	if !ok {
		return 0, false
	}
	// Re-anchor both dates at midnight UTC so the difference is an exact
	// multiple of 24h even when a DST transition falls between them.
	return int(midnightUTC(d).Sub(midnightUTC(today)).Hours() / 24), true
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
