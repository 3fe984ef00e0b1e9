package cli

import (
	"flag"
	"fmt"
	"time"

	"github.com/idilsaglam/projorg/internal/notify"
)

func (a *app) doNotify(args []string) int {
	fs := flag.NewFlagSet("notify", flag.ContinueOnError)
	summary := fs.Bool("summary", false, "also print the daily summary")
	watch := fs.Bool("watch", false, "keep polling at the configured interval")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !a.load() {
		return 1
	}
	tracker := notify.NewTracker(a.store, a.cfg.Notify.RemindDaysBefore)

	printPoll := func(now time.Time) {
		for _, r := range tracker.Poll(now) {
			fmt.Println(a.theme.C(a.theme.Pending, reminderLine(r)))
		}
	}
	printSummary := func(now time.Time) {
		upcoming, ok := tracker.DailySummary(now)
		if !ok {
			return
		}
		t := a.theme
		lines := []string{t.C(t.Title, "Upcoming Deadlines"), ""}
		if len(upcoming) == 0 {
			lines = append(lines, t.C(t.Muted, "nothing due in the next 7 days"))
		}
		for _, r := range upcoming {
			lines = append(lines, reminderLine(r))
		}
		t.Panel(lines)
	}

	now := time.Now()
	printPoll(now)
	if *summary || a.cfg.Notify.DailySummary {
		printSummary(now)
	}
	if !*watch {
		return 0
	}

	// Cooperative periodic poll: each tick completes, suppression update
	// included, before the next fires.
	interval := time.Duration(a.cfg.Notify.CheckIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for now := range ticker.C {
		if !a.load() {
			return 1
		}
		printPoll(now)
		if a.cfg.Notify.DailySummary {
			printSummary(now)
		}
	}
	return 0
}

func reminderLine(r notify.Reminder) string {
	switch r.DaysLeft {
	case 0:
		return fmt.Sprintf("%s is due TODAY!", r.Project.Name)
	case 1:
		return fmt.Sprintf("%s is due in 1 day!", r.Project.Name)
	default:
		return fmt.Sprintf("%s is due in %d days!", r.Project.Name, r.DaysLeft)
	}
}
