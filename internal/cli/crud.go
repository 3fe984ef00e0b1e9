package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/idilsaglam/projorg/internal/model"
	"github.com/idilsaglam/projorg/internal/store/jsonstore"
)

// recordFlags registers the shared add/edit field flags on a flag set.
type recordFlags struct {
	language    *string
	priority    *string
	deadline    *string
	completion  *int
	description *string
	notes       *string
	deps        *string
}

func newRecordFlags(fs *flag.FlagSet) recordFlags {
	return recordFlags{
		language:    fs.String("language", "", "programming language"),
		priority:    fs.String("priority", "", "high, medium or low"),
		deadline:    fs.String("deadline", "", "deadline as YYYY-MM-DD, empty clears it"),
		completion:  fs.Int("completion", 0, "completion percentage 0-100"),
		description: fs.String("description", "", "short description"),
		notes:       fs.String("notes", "", "free-form notes"),
		deps:        fs.String("deps", "", "comma-separated dependency list"),
	}
}

func parsePriority(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", model.PriorityHigh:
		return model.PriorityHigh, nil
	case "medium", "", model.PriorityMedium:
		return model.PriorityMedium, nil
	case "low", model.PriorityLow:
		return model.PriorityLow, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

func parseDeadline(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if _, err := time.ParseInLocation(model.DateLayout, s, time.Local); err != nil {
		return "", fmt.Errorf("deadline must be YYYY-MM-DD, got %q", s)
	}
	return s, nil
}

func splitDeps(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (a *app) doAdd(args []string) int {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		a.theme.Fail("usage: projorg add <name> [flags]")
		return 2
	}
	name := args[0]
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	f := newRecordFlags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	priority, err := parsePriority(*f.priority)
	if err != nil {
		a.theme.Fail("add: " + err.Error())
		return 2
	}
	deadline, err := parseDeadline(*f.deadline)
	if err != nil {
		a.theme.Fail("add: " + err.Error())
		return 2
	}
	if !a.load() {
		return 1
	}
	p, err := a.store.Add(model.Project{
		Name:         name,
		Language:     *f.language,
		Priority:     priority,
		Completion:   *f.completion,
		Deadline:     deadline,
		Description:  *f.description,
		Notes:        *f.notes,
		Dependencies: splitDeps(*f.deps),
	})
	if err != nil {
		a.theme.Fail("add: " + err.Error())
		return 1
	}
	if !a.save() {
		return 1
	}
	a.theme.OK("added " + p.Name)
	return 0
}

func (a *app) doEdit(args []string) int {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		a.theme.Fail("usage: projorg edit <index|name> [flags]")
		return 2
	}
	target := args[0]
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	f := newRecordFlags(fs)
	newName := fs.String("name", "", "rename the project")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	// Only flags the user actually set become part of the patch.
	var patch jsonstore.Patch
	var badFlag error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			patch.Name = newName
		case "language":
			patch.Language = f.language
		case "priority":
			p, err := parsePriority(*f.priority)
			if err != nil {
				badFlag = err
				return
			}
			patch.Priority = &p
		case "completion":
			patch.Completion = f.completion
		case "deadline":
			d, err := parseDeadline(*f.deadline)
			if err != nil {
				badFlag = err
				return
			}
			patch.Deadline = &d
		case "description":
			patch.Description = f.description
		case "notes":
			patch.Notes = f.notes
		case "deps":
			deps := splitDeps(*f.deps)
			patch.Dependencies = &deps
		}
	})
	if badFlag != nil {
		a.theme.Fail("edit: " + badFlag.Error())
		return 2
	}
	if patch == (jsonstore.Patch{}) {
		a.theme.Fail("edit: nothing to change")
		return 2
	}
	if !a.load() {
		return 1
	}
	p, err := a.store.Update(identity(target), patch)
	if err != nil {
		return a.storeErr("edit", err)
	}
	if !a.save() {
		return 1
	}
	a.theme.OK("updated " + p.Name)
	return 0
}

func (a *app) doProgress(target string, pct int) int {
	if !a.load() {
		return 1
	}
	p, err := a.store.SetProgress(identity(target), pct)
	if err != nil {
		return a.storeErr("progress", err)
	}
	if !a.save() {
		return 1
	}
	if p.Completion == 100 {
		a.theme.OK(fmt.Sprintf("%s is complete 🎉", p.Name))
	} else {
		a.theme.OK(fmt.Sprintf("%s at %d%%", p.Name, p.Completion))
	}
	return 0
}

func (a *app) doRemove(target string) int {
	if !a.load() {
		return 1
	}
	p, err := a.store.Get(identity(target))
	if err != nil {
		return a.storeErr("rm", err)
	}
	if err := a.store.Delete(identity(target)); err != nil {
		return a.storeErr("rm", err)
	}
	if !a.save() {
		return 1
	}
	a.theme.OK("removed " + p.Name)
	return 0
}

func (a *app) storeErr(op string, err error) int {
	a.theme.Fail(op + ": " + err.Error())
	if errors.Is(err, jsonstore.ErrNotFound) {
		fmt.Println(a.theme.C(a.theme.Muted, "Hint: run `projorg ls` to see valid indexes"))
		return 2
	}
	if errors.Is(err, jsonstore.ErrValidation) {
		return 2
	}
	return 1
}
