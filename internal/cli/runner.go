// Package cli is the subcommand router and the non-interactive front end.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/idilsaglam/projorg/internal/backup"
	"github.com/idilsaglam/projorg/internal/config"
	"github.com/idilsaglam/projorg/internal/store/jsonstore"
	"github.com/idilsaglam/projorg/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	Theme   string // overrides the configured theme when non-empty
	NoColor bool
}

// app wires the core services together for the duration of one command.
type app struct {
	cfg     config.Config
	theme   ui.Theme
	store   *jsonstore.Store
	backups *backup.Manager
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	cfg, err := config.Load()
	if err != nil {
		ui.ThemeByName("").Fail("config: " + err.Error())
		return 1
	}
	themeName := cfg.UI.Theme
	if opt.Theme != "" {
		themeName = opt.Theme
	}
	theme := ui.ThemeByName(themeName)
	ui.SetColorForcing(false, opt.NoColor)

	a := &app{
		cfg:     cfg,
		theme:   theme,
		store:   jsonstore.New(cfg.Data.File),
		backups: backup.NewManager(cfg.Data.File, cfg.Backups.Dir, cfg.Backups.Keep),
	}

	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		return a.doList(rest)

	case "add":
		return a.doAdd(rest)

	case "edit":
		return a.doEdit(rest)

	case "progress":
		if len(rest) != 2 {
			a.theme.Fail("usage: projorg progress <index|name> <percent>")
			return 2
		}
		pct, err := strconv.Atoi(rest[1])
		if err != nil {
			a.theme.Fail("progress: not a number: " + rest[1])
			return 2
		}
		return a.doProgress(rest[0], pct)

	case "rm":
		if len(rest) != 1 {
			a.theme.Fail("usage: projorg rm <index|name>")
			return 2
		}
		return a.doRemove(rest[0])

	case "show":
		if len(rest) != 1 {
			a.theme.Fail("usage: projorg show <index|name>")
			return 2
		}
		return a.doShow(rest[0])

	case "filters":
		return a.doFilters()

	case "dashboard":
		return a.doDashboard()

	case "export":
		return a.doExport(rest)

	case "backup":
		return a.doBackup(rest)

	case "notify":
		return a.doNotify(rest)

	case "ui":
		return a.doUI()
	}

	a.theme.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`projorg - track your programming projects

Usage:
  projorg <subcommand> [args]

Subcommands:
  ls [flags]                   List projects (--filter, --search, --language, --sort)
  add <name> [flags]           Add a project (--language, --priority, --deadline, ...)
  edit <index|name> [flags]    Change fields on a project
  progress <index|name> <pct>  Update completion percentage
  rm <index|name>              Delete a project
  show <index|name>            Show one project in full
  filters                      Show smart filters with counts
  dashboard                    Show the metrics dashboard
  export <json|csv|report>     Export projects (--out writes to a file)
  backup <create|list|restore|export|prune>
  notify [--summary] [--watch] Poll deadline reminders
  ui                           Open the interactive browser

Filter ids:
  all, due_today, due_week, overdue, high_priority,
  recently_updated, stalled, nearly_complete, no_progress, completed

Sort keys:
  date_added, name, priority, deadline, completion, last_updated

Examples:
  projorg add "Side project" --language Go --priority high --deadline 2026-09-30
  projorg ls --filter due_week --sort deadline
  projorg progress 2 75
`)
}

// load pulls the data file into the store, tolerating absence.
func (a *app) load() bool {
	if err := a.store.Load(); err != nil {
		a.theme.Fail("load: " + err.Error())
		return false
	}
	return true
}

func (a *app) save() bool {
	if err := a.store.Save(); err != nil {
		a.theme.Fail("save: " + err.Error())
		return false
	}
	return true
}

// identity converts the CLI's 1-based index to the store's 0-based one and
// passes names/ids through untouched.
func identity(arg string) string {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 {
		return strconv.Itoa(n - 1)
	}
	return arg
}
