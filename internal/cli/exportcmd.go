package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/idilsaglam/projorg/internal/export"
)

func (a *app) doExport(args []string) int {
	if len(args) == 0 {
		a.theme.Fail("usage: projorg export <json|csv|report> [--out file]")
		return 2
	}
	format := args[0]
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("out", "", "write to a file instead of stdout")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if !a.load() {
		return 1
	}
	records := a.store.List()

	var data []byte
	var err error
	var defaultName string
	now := time.Now()
	switch format {
	case "json":
		data, err = export.JSON(records)
		defaultName = "project_export_" + now.Format("20060102") + ".json"
	case "csv":
		data, err = export.CSV(records)
		defaultName = "project_export_" + now.Format("20060102") + ".csv"
	case "report":
		data = export.Report(records, now)
		defaultName = "project_report_" + now.Format("20060102") + ".txt"
	default:
		a.theme.Fail("export: unknown format: " + format)
		return 2
	}
	if err != nil {
		a.theme.Fail("export: " + err.Error())
		return 1
	}

	if *out == "" {
		os.Stdout.Write(data)
		return 0
	}
	dest := *out
	if dest == "auto" {
		dest = defaultName
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		a.theme.Fail("export: " + err.Error())
		return 1
	}
	a.theme.OK(fmt.Sprintf("exported %d projects to %s", len(records), dest))
	return 0
}
