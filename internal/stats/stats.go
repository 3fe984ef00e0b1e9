// Package stats computes the dashboard metrics over the record sequence.
package stats

import (
	"sort"
	"time"

	"github.com/idilsaglam/projorg/internal/filter"
	"github.com/idilsaglam/projorg/internal/model"
)

// Metrics mirrors the dashboard's metric cards.
type Metrics struct {
	Total          int
	Completed      int
	HighPriority   int
	DueThisWeek    int
	Overdue        int
	Stalled        int
	CompletionRate int // percent of projects at 100%
}

// Summary computes the headline metrics at a point in time.
func Summary(records []model.Project, now time.Time) Metrics {
	counts := filter.Counts(records, now, filter.DefaultWindows)
	m := Metrics{
		Total:        len(records),
		Completed:    counts["completed"],
		HighPriority: counts["high_priority"],
		DueThisWeek:  counts["due_week"],
		Overdue:      counts["overdue"],
		Stalled:      counts["stalled"],
	}
	if m.Total > 0 {
		m.CompletionRate = m.Completed * 100 / m.Total
	}
	return m
}

// LanguageCount is one slice of the language-distribution chart.
type LanguageCount struct {
	Language string
	Count    int
}

// ByLanguage returns the language distribution, largest first, ties by name.
func ByLanguage(records []model.Project) []LanguageCount {
	counts := map[string]int{}
	for _, p := range records {
		lang := p.Language
		if lang == "" {
			lang = "Unspecified"
		}
		counts[lang]++
	}
	out := make([]LanguageCount, 0, len(counts))
	for lang, n := range counts {
		out = append(out, LanguageCount{Language: lang, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Language < out[j].Language
	})
	return out
}

// BucketLabels names the completion buckets, in order.
var BucketLabels = []string{"0%", "1-24%", "25-49%", "50-74%", "75-99%", "100%"}

// CompletionBuckets counts projects per completion bucket, aligned with
// BucketLabels.
func CompletionBuckets(records []model.Project) []int {
	out := make([]int, len(BucketLabels))
	for _, p := range records {
		switch c := p.Completion; {
		case c == 0:
			out[0]++
		case c < 25:
			out[1]++
		case c < 50:
			out[2]++
		case c < 75:
			out[3]++
		case c < 100:
			out[4]++
		default:
			out[5]++
		}
	}
	return out
}
