package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/idilsaglam/projorg/internal/filter"
	"github.com/idilsaglam/projorg/internal/model"
	"github.com/idilsaglam/projorg/internal/stats"
	"github.com/idilsaglam/projorg/internal/ui"
)

func (a *app) windows() filter.Windows {
	return filter.Windows{
		RecentDays:  a.cfg.Filters.RecentDays,
		StalledDays: a.cfg.Filters.StalledDays,
	}
}

func (a *app) doList(args []string) int {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	filterID := fs.String("filter", "all", "smart filter id")
	search := fs.String("search", "", "substring search over name/description")
	language := fs.String("language", "", "exact language match")
	sortBy := fs.String("sort", filter.SortDateAdded, "sort key")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if _, known := filter.Lookup(*filterID); !known {
		a.theme.Fail("ls: unknown filter: " + *filterID)
		return 2
	}
	if !a.load() {
		return 1
	}
	records := a.store.List()
	view := filter.Apply(records, time.Now(), filter.Query{
		Filter:   *filterID,
		Search:   *search,
		Language: *language,
		SortBy:   *sortBy,
		Windows:  a.windows(),
	})

	m := stats.Summary(records, time.Now())
	t := a.theme
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.C(t.Title, "Projects"),
		t.C(t.Success, t.SymDone), m.Completed,
		t.C(t.Pending, t.SymPending), m.Total-m.Completed,
		t.C(t.Accent, "Total"), m.Total,
	)
	fmt.Println(header)
	fmt.Println(t.C(t.Muted, ui.ProgressBar(m.Completed, m.Total, 28)))
	if *filterID != "all" || *search != "" || *language != "" {
		fmt.Println(t.C(t.Muted, fmt.Sprintf("showing %d of %d", len(view), m.Total)))
	}
	fmt.Println()

	if len(view) == 0 {
		fmt.Println(t.C(t.Muted, "no projects"))
		return 0
	}
	renderTable(view, time.Now())
	return 0
}

func renderTable(view []model.Project, today time.Time) {
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"#", "NAME", "LANGUAGE", "PRIORITY", "DEADLINE", "DONE", "UPDATED"})
	tw.SetBorder(false)
	tw.SetAutoWrapText(false)
	for i, p := range view {
		deadline := p.Deadline
		if _, ok := p.DeadlineDate(); !ok {
			deadline = "-"
		} else if d, _ := p.DaysUntilDeadline(today); d < 0 && p.Completion < 100 {
			deadline += " (overdue)"
		}
		updated := "-"
		if t, ok := p.UpdatedAt(); ok {
			updated = t.Format(model.DateLayout)
		}
		tw.Append([]string{
			fmt.Sprintf("%d", i+1),
			truncate(p.Name, 40),
			p.Language,
			strings.TrimSuffix(p.Priority, " Priority"),
			deadline,
			fmt.Sprintf("%d%%", p.Completion),
			updated,
		})
	}
	tw.Render()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func (a *app) doShow(target string) int {
	if !a.load() {
		return 1
	}
	p, err := a.store.Get(identity(target))
	if err != nil {
		return a.storeErr("show", err)
	}
	t := a.theme
	lines := []string{
		t.C(t.Title, p.Name),
		"",
		fmt.Sprintf("Language:   %s", orDash(p.Language)),
		fmt.Sprintf("Priority:   %s", t.C(t.PriorityColor(p.Priority), p.Priority)),
		fmt.Sprintf("Completion: %s", fmt.Sprintf("%d%%", p.Completion)),
	}
	if p.Deadline != "" {
		line := fmt.Sprintf("Deadline:   %s", p.Deadline)
		if d, ok := p.DaysUntilDeadline(time.Now()); ok {
			switch {
			case d < 0 && p.Completion < 100:
				line += t.C(t.Error, fmt.Sprintf("  (%d days overdue)", -d))
			case d == 0:
				line += t.C(t.Pending, "  (due today)")
			default:
				line += t.C(t.Muted, fmt.Sprintf("  (in %d days)", d))
			}
		}
		lines = append(lines, line)
	}
	if p.Description != "" {
		lines = append(lines, "", "Description: "+p.Description)
	}
	if p.Notes != "" {
		lines = append(lines, "Notes:       "+p.Notes)
	}
	if len(p.Dependencies) > 0 {
		lines = append(lines, "", t.C(t.Accent, "Dependencies"))
		for _, d := range p.Dependencies {
			lines = append(lines, "  - "+d)
		}
	}
	lines = append(lines, "",
		t.C(t.Muted, "Created "+orDash(p.CreatedDate)+"  ·  Updated "+orDash(p.LastUpdated)))
	t.Panel(lines)
	return 0
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (a *app) doFilters() int {
	if !a.load() {
		return 1
	}
	counts := filter.Counts(a.store.List(), time.Now(), a.windows())
	t := a.theme
	lines := []string{t.C(t.Title, "Smart Filters"), ""}
	lastCategory := ""
	for _, info := range filter.Catalog {
		if info.Category != lastCategory {
			if lastCategory != "" {
				lines = append(lines, "")
			}
			lines = append(lines, t.C(t.Accent, strings.ToUpper(info.Category)))
			lastCategory = info.Category
		}
		lines = append(lines, fmt.Sprintf("  %-18s %-20s %d", info.ID, info.Name, counts[info.ID]))
	}
	t.Panel(lines)
	return 0
}

func (a *app) doDashboard() int {
	if !a.load() {
		return 1
	}
	records := a.store.List()
	now := time.Now()
	m := stats.Summary(records, now)
	t := a.theme

	lines := []string{
		t.C(t.Title, "Dashboard"),
		"",
		fmt.Sprintf("Total Projects   %d", m.Total),
		fmt.Sprintf("Completed        %s", t.C(t.Success, fmt.Sprintf("%d", m.Completed))),
		fmt.Sprintf("High Priority    %s", t.C(t.HighPriority, fmt.Sprintf("%d", m.HighPriority))),
		fmt.Sprintf("Due This Week    %s", t.C(t.Pending, fmt.Sprintf("%d", m.DueThisWeek))),
		fmt.Sprintf("Overdue          %s", t.C(t.Error, fmt.Sprintf("%d", m.Overdue))),
		fmt.Sprintf("Stalled          %d", m.Stalled),
		"",
		fmt.Sprintf("Completion rate  %s", ui.ProgressBar(m.Completed, m.Total, 20)),
	}

	if langs := stats.ByLanguage(records); len(langs) > 0 {
		lines = append(lines, "", t.C(t.Accent, "Languages"))
		for _, lc := range langs {
			lines = append(lines, fmt.Sprintf("  %-14s %d", lc.Language, lc.Count))
		}
	}

	buckets := stats.CompletionBuckets(records)
	lines = append(lines, "", t.C(t.Accent, "Progress"))
	for i, label := range stats.BucketLabels {
		lines = append(lines, fmt.Sprintf("  %-8s %s", label, strings.Repeat("█", buckets[i])))
	}

	t.Panel(lines)
	return 0
}
