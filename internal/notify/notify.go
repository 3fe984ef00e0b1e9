// Package notify computes which projects have newly entered their reminder
// window, with at-most-once delivery per (name, deadline) pair.
package notify

import (
	"time"

	"github.com/idilsaglam/projorg/internal/model"
)

// suppressionHorizonDays bounds the suppression set: entries whose deadline
// is this far in the past are dropped at the start of every poll.
const suppressionHorizonDays = 30

// Source is the slice of the record store the tracker needs.
type Source interface {
	List() []model.Project
}

// Reminder is one due notification.
type Reminder struct {
	Project  model.Project
	DaysLeft int
}

// Tracker tracks reminder eligibility. Not safe for concurrent use; the
// application polls it from a single loop.
type Tracker struct {
	store            Source
	remindDaysBefore int

	shown       map[pairKey]string // value: deadline, for pruning
	lastSummary string             // last calendar day a summary went out
}

type pairKey struct {
	name     string
	deadline string
}

func NewTracker(store Source, remindDaysBefore int) *Tracker {
	if remindDaysBefore < 0 {
		remindDaysBefore = 0
	}
	return &Tracker{
		store:            store,
		remindDaysBefore: remindDaysBefore,
		shown:            make(map[pairKey]string),
	}
}

// Poll returns the projects newly due for a reminder at now, in store
// order, and suppresses exactly those pairs. A pair is due when its
// deadline is between 0 and remindDaysBefore days away and the project is
// not complete. The same (name, deadline) pair is never returned twice.
func (t *Tracker) Poll(now time.Time) []Reminder {
	t.prune(now)

	var due []Reminder
	for _, p := range t.store.List() {
		if p.Completion >= 100 {
			continue
		}
		daysLeft, ok := p.DaysUntilDeadline(now)
		if !ok {
			continue
		}
		if daysLeft < 0 || daysLeft > t.remindDaysBefore {
			continue
		}
		key := pairKey{name: p.Name, deadline: p.Deadline}
		if _, seen := t.shown[key]; seen {
			continue
		}
		t.shown[key] = p.Deadline
		due = append(due, Reminder{Project: p, DaysLeft: daysLeft})
	}
	return due
}

// DailySummary returns the projects due within the next 7 days, at most
// once per calendar day. ok is false when today's summary already went out.
func (t *Tracker) DailySummary(now time.Time) (upcoming []Reminder, ok bool) {
	day := now.Format(model.DateLayout)
	if t.lastSummary == day {
		return nil, false
	}
	t.lastSummary = day
	for _, p := range t.store.List() {
		if p.Completion >= 100 {
			continue
		}
		daysLeft, dok := p.DaysUntilDeadline(now)
		if !dok || daysLeft < 0 || daysLeft > 7 {
			continue
		}
		upcoming = append(upcoming, Reminder{Project: p, DaysLeft: daysLeft})
	}
	return upcoming, true
}

// Reset clears the suppression set so every eligible pair fires again on
// the next poll. The daily-summary gate is left alone.
func (t *Tracker) Reset() {
	t.shown = make(map[pairKey]string)
}

// Suppressed reports whether a (name, deadline) pair has already fired.
func (t *Tracker) Suppressed(name, deadline string) bool {
	_, seen := t.shown[pairKey{name: name, deadline: deadline}]
	return seen
}

func (t *Tracker) prune(now time.Time) {
	horizon := now.AddDate(0, 0, -suppressionHorizonDays)
	for key, deadline := range t.shown {
		d, err := time.ParseInLocation(model.DateLayout, deadline, time.Local)
		if err != nil || d.Before(horizon) {
			delete(t.shown, key)
		}
	}
}
