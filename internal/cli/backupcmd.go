package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/idilsaglam/projorg/internal/backup"
	"github.com/idilsaglam/projorg/internal/model"
)

func (a *app) doBackup(args []string) int {
	if len(args) == 0 {
		a.theme.Fail("usage: projorg backup <create|list|restore|export|prune>")
		return 2
	}
	switch args[0] {
	case "create":
		snap, err := a.backups.Create(backup.KindManual)
		if err != nil {
			a.theme.Fail("backup: " + err.Error())
			return 1
		}
		a.theme.OK("backup created: " + snap.Name)
		return 0

	case "list":
		snaps, err := a.backups.List()
		if err != nil {
			a.theme.Fail("backup: " + err.Error())
			return 1
		}
		if len(snaps) == 0 {
			fmt.Println(a.theme.C(a.theme.Muted, "no backups"))
			return 0
		}
		tw := tablewriter.NewWriter(os.Stdout)
		tw.SetHeader([]string{"#", "NAME", "CAPTURED_AT"})
		tw.SetBorder(false)
		for i, s := range snaps {
			tw.Append([]string{
				fmt.Sprintf("%d", i+1),
				s.Name,
				s.CapturedAt.Format(model.TimestampLayout),
			})
		}
		tw.Render()
		return 0

	case "restore":
		if len(args) != 2 {
			a.theme.Fail("usage: projorg backup restore <name|path|index>")
			return 2
		}
		path, code := a.resolveSnapshot(args[1])
		if code != 0 {
			return code
		}
		if err := a.backups.Restore(path); err != nil {
			a.theme.Fail("restore: " + err.Error())
			return 1
		}
		a.theme.OK("restored " + filepath.Base(path))
		return 0

	case "export":
		if len(args) != 3 {
			a.theme.Fail("usage: projorg backup export <name|index> <destination>")
			return 2
		}
		path, code := a.resolveSnapshot(args[1])
		if code != 0 {
			return code
		}
		if err := a.backups.Export(path, args[2]); err != nil {
			a.theme.Fail("export: " + err.Error())
			return 1
		}
		a.theme.OK("backup exported to " + args[2])
		return 0

	case "prune":
		if err := a.backups.Prune(); err != nil {
			a.theme.Fail("prune: " + err.Error())
			return 1
		}
		a.theme.OK("pruned")
		return 0
	}

	a.theme.Fail("unknown backup subcommand: " + args[0])
	return 2
}

// resolveSnapshot accepts a 1-based list index, a bare snapshot name or a
// full path.
func (a *app) resolveSnapshot(arg string) (string, int) {
	if strings.ContainsRune(arg, os.PathSeparator) {
		return arg, 0
	}
	snaps, err := a.backups.List()
	if err != nil {
		a.theme.Fail("backup: " + err.Error())
		return "", 1
	}
	var n int
	if _, err := fmt.Sscanf(arg, "%d", &n); err == nil && n >= 1 && n <= len(snaps) {
		return snaps[n-1].Path, 0
	}
	for _, s := range snaps {
		if s.Name == arg {
			return s.Path, 0
		}
	}
	a.theme.Fail("backup: no such snapshot: " + arg)
	return "", 2
}
