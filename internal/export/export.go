// Package export renders the record sequence in the three one-way export
// formats: full-fidelity JSON, a flat CSV subset and a text report.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/idilsaglam/projorg/internal/model"
	"github.com/idilsaglam/projorg/internal/stats"
)

// JSON round-trips every field; it is the only format meant to be loadable
// again (via backup restore).
func JSON(records []model.Project) ([]byte, error) {
	b, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

var csvColumns = []string{"name", "language", "priority", "deadline", "completion", "description"}

// CSV writes the flat subset of fields. Nested dependencies and notes are
// dropped; quoting of delimiter-containing values is the csv package's.
func CSV(records []model.Project) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvColumns); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for _, p := range records {
		row := []string{
			p.Name,
			p.Language,
			p.Priority,
			p.Deadline,
			fmt.Sprintf("%d", p.Completion),
			p.Description,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	return buf.Bytes(), nil
}

// Report renders the human-readable summary. No round-trip.
func Report(records []model.Project, now time.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "PROJECT REPORT - Generated on %s\n", now.Format(model.TimestampLayout))
	b.WriteString(strings.Repeat("=", 80) + "\n\n")

	s := stats.Summary(records, now)
	b.WriteString("SUMMARY\n")
	fmt.Fprintf(&b, "Total Projects: %d\n", s.Total)
	fmt.Fprintf(&b, "Completed Projects: %d\n", s.Completed)
	fmt.Fprintf(&b, "High Priority Projects: %d\n", s.HighPriority)
	fmt.Fprintf(&b, "Completion Rate: %d%%\n\n", s.CompletionRate)

	b.WriteString("PROJECT DETAILS\n")
	ordered := make([]model.Project, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return model.PriorityRank(ordered[i].Priority) < model.PriorityRank(ordered[j].Priority)
	})
	for i, p := range ordered {
		b.WriteString(strings.Repeat("-", 80) + "\n")
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, p.Name, p.Language)
		fmt.Fprintf(&b, "   Priority: %s\n", p.Priority)
		if p.Deadline != "" {
			fmt.Fprintf(&b, "   Deadline: %s\n", p.Deadline)
		}
		fmt.Fprintf(&b, "   Completion: %d%%\n", p.Completion)
		if p.Description != "" {
			fmt.Fprintf(&b, "   Description: %s\n", p.Description)
		}
		b.WriteString("\n")
	}
	return []byte(b.String())
}
