// Package filter is the smart-filter engine: named predicates over
// (project, today) plus a composite query that layers free-text search, a
// language filter and a sort on top.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/idilsaglam/projorg/internal/model"
)

// Windows holds the activity-filter cutoffs in days.
type Windows struct {
	RecentDays  int // recently_updated lookback
	StalledDays int // stalled threshold
}

// DefaultWindows matches the original behavior.
var DefaultWindows = Windows{RecentDays: 3, StalledDays: 14}

// Predicate decides whether one project belongs to a smart filter.
type Predicate func(p model.Project, today time.Time, w Windows) bool

// Info describes one smart filter for UI surfaces.
type Info struct {
	ID       string
	Name     string
	Category string
}

// Catalog lists the filters in display order, grouped by category.
var Catalog = []Info{
	{"all", "All Projects", "general"},
	{"high_priority", "High Priority", "general"},
	{"due_today", "Due Today", "deadline"},
	{"due_week", "Due This Week", "deadline"},
	{"overdue", "Overdue", "deadline"},
	{"recently_updated", "Recently Updated", "activity"},
	{"stalled", "Stalled Projects", "activity"},
	{"nearly_complete", "Nearly Complete", "progress"},
	{"no_progress", "No Progress", "progress"},
	{"completed", "Completed", "progress"},
}

var predicates = map[string]Predicate{
	"all": func(model.Project, time.Time, Windows) bool { return true },
	"due_today": func(p model.Project, today time.Time, _ Windows) bool {
		d, ok := p.DaysUntilDeadline(today)
		return ok && d == 0
	},
	"due_week": func(p model.Project, today time.Time, _ Windows) bool {
		d, ok := p.DaysUntilDeadline(today)
		return ok && d >= 0 && d <= 7
	},
	"overdue": func(p model.Project, today time.Time, _ Windows) bool {
		d, ok := p.DaysUntilDeadline(today)
		return ok && d < 0 && p.Completion < 100
	},
	"high_priority": func(p model.Project, _ time.Time, _ Windows) bool {
		return p.Priority == model.PriorityHigh
	},
	"recently_updated": func(p model.Project, today time.Time, w Windows) bool {
		t, ok := p.UpdatedAt()
		return ok && !t.Before(today.AddDate(0, 0, -w.RecentDays))
	},
	"stalled": func(p model.Project, today time.Time, w Windows) bool {
		t, ok := p.UpdatedAt()
		return ok && t.Before(today.AddDate(0, 0, -w.StalledDays)) && p.Completion < 100
	},
	"nearly_complete": func(p model.Project, _ time.Time, _ Windows) bool {
		return p.Completion >= 75 && p.Completion < 100
	},
	"no_progress": func(p model.Project, _ time.Time, _ Windows) bool {
		return p.Completion == 0
	},
	"completed": func(p model.Project, _ time.Time, _ Windows) bool {
		return p.Completion == 100
	},
}

// Lookup returns the predicate for a filter id; unknown ids fall back to
// "all" with ok=false.
func Lookup(id string) (Predicate, bool) {
	pred, ok := predicates[id]
	if !ok {
		return predicates["all"], false
	}
	return pred, true
}

// Sort keys accepted by Query.SortBy.
const (
	SortDateAdded   = "date_added" // input order, the default
	SortName        = "name"
	SortPriority    = "priority"
	SortDeadline    = "deadline"
	SortCompletion  = "completion"
	SortLastUpdated = "last_updated"
)

// Query is the composite view request: filter, then text search, then
// language, then sort.
type Query struct {
	Filter   string  // filter id, "" means all
	Search   string  // case-insensitive substring over name/description
	Language string  // exact match, "" or "All" passes everything
	SortBy   string  // one of the Sort* keys
	Windows  Windows // zero value means DefaultWindows
}

// Apply evaluates the query against a sequence. The input is not modified;
// sorting is stable so equal keys keep their prior relative order (keeps the
// visible list from jittering between refreshes).
func Apply(records []model.Project, today time.Time, q Query) []model.Project {
	w := q.Windows
	if w == (Windows{}) {
		w = DefaultWindows
	}
	id := q.Filter
	if id == "" {
		id = "all"
	}
	pred, _ := Lookup(id)

	out := make([]model.Project, 0, len(records))
	for _, p := range records {
		if pred(p, today, w) {
			out = append(out, p)
		}
	}

	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		kept := out[:0]
		for _, p := range out {
			if strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle) {
				kept = append(kept, p)
			}
		}
		out = kept
	}

	if q.Language != "" && q.Language != "All" {
		kept := out[:0]
		for _, p := range out {
			if p.Language == q.Language {
				kept = append(kept, p)
			}
		}
		out = kept
	}

	sortProjects(out, q.SortBy)
	return out
}

// Counts evaluates every cataloged filter against the sequence, for the
// filter-panel badges.
func Counts(records []model.Project, today time.Time, w Windows) map[string]int {
	if w == (Windows{}) {
		w = DefaultWindows
	}
	counts := make(map[string]int, len(Catalog))
	for _, info := range Catalog {
		pred := predicates[info.ID]
		n := 0
		for _, p := range records {
			if pred(p, today, w) {
				n++
			}
		}
		counts[info.ID] = n
	}
	return counts
}

// Languages returns the distinct languages in the sequence, sorted, for
// populating a language picker.
func Languages(records []model.Project) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range records {
		if p.Language != "" && !seen[p.Language] {
			seen[p.Language] = true
			out = append(out, p.Language)
		}
	}
	sort.Strings(out)
	return out
}

func sortProjects(out []model.Project, key string) {
	switch key {
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return model.PriorityRank(out[i].Priority) < model.PriorityRank(out[j].Priority)
		})
	case SortDeadline:
		// Absent deadlines sort last.
		sort.SliceStable(out, func(i, j int) bool {
			return deadlineKey(out[i]) < deadlineKey(out[j])
		})
	case SortCompletion:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Completion > out[j].Completion
		})
	case SortLastUpdated:
		sort.SliceStable(out, func(i, j int) bool {
			ti, iok := out[i].UpdatedAt()
			tj, jok := out[j].UpdatedAt()
			if iok != jok {
				return iok
			}
			return ti.After(tj)
		})
	case SortDateAdded, "":
		// Input order.
	}
}

func deadlineKey(p model.Project) string {
	if _, ok := p.DeadlineDate(); !ok {
		return "9999-99-99"
	}
	return p.Deadline
}
