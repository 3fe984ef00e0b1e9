// Package tui is the interactive project browser built on Bubble Tea.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/projorg/internal/filter"
	"github.com/idilsaglam/projorg/internal/model"
	"github.com/idilsaglam/projorg/internal/notify"
	"github.com/idilsaglam/projorg/internal/store/jsonstore"
)

// Options tune the browser.
type Options struct {
	Windows          filter.Windows
	RemindDaysBefore int
	PollInterval     time.Duration
}

// listItem adapts a Project to bubbles/list.Item.
type listItem struct {
	p model.Project
}

func (i listItem) Title() string       { return i.p.Name }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.p.Name + " " + i.p.Description }

// sortCycle is the order the s key walks through.
var sortCycle = []string{
	filter.SortDateAdded, filter.SortName, filter.SortPriority,
	filter.SortDeadline, filter.SortCompletion, filter.SortLastUpdated,
}

type browser struct {
	list    list.Model
	store   *jsonstore.Store
	tracker *notify.Tracker
	opt     Options

	filterIdx int // index into filter.Catalog
	sortIdx   int // index into sortCycle
	changed   bool

	// Inline add / edit share one text input.
	adding    bool
	editing   bool
	editID    string
	ti        textinput.Model
	inputErr  string

	// Undo support (single-level)
	undoItem *model.Project
}

// Custom delegate to control how items render (single line).
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	p := it.p

	glyph, ok := priorityGlyph[p.Priority]
	if !ok {
		glyph = " "
	}
	name := p.Name
	if p.Completion == 100 {
		name = doneStyle.Render(name)
	}
	pct := mutedStyle.Render(fmt.Sprintf("%3d%%", p.Completion))

	deadline := ""
	if d, ok := p.DaysUntilDeadline(time.Now()); ok {
		switch {
		case d < 0 && p.Completion < 100:
			deadline = overdueStyle.Render(fmt.Sprintf(" %s!", p.Deadline))
		case d <= 2:
			deadline = urgentStyle.Render(" " + p.Deadline)
		default:
			deadline = mutedStyle.Render(" " + p.Deadline)
		}
	}

	line := fmt.Sprintf("%s %s %s%s", glyph, name, pct, deadline)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type pollMsg time.Time

func pollTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return pollMsg(t) })
}

// Run starts the browser and persists changes when quitting. Returns
// whether anything was saved.
func Run(store *jsonstore.Store, opt Options) (bool, error) {
	if opt.PollInterval <= 0 {
		opt.PollInterval = time.Minute
	}
	if opt.Windows == (filter.Windows{}) {
		opt.Windows = filter.DefaultWindows
	}

	b := browser{
		store:   store,
		tracker: notify.NewTracker(store, opt.RemindDaysBefore),
		opt:     opt,
	}

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("project", "projects")

	keys := []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "progress")),
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo delete")),
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return keys }
	l.AdditionalFullHelpKeys = func() []key.Binding { return keys }

	b.list = l
	b.ti = textinput.New()
	b.ti.Prompt = "> "
	b.ti.CharLimit = 200
	b.refresh()

	p := tea.NewProgram(b, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	fb, okModel := finalModel.(browser)
	if !okModel || !fb.changed {
		return false, nil
	}
	if err := store.Save(); err != nil {
		return false, err
	}
	return true, nil
}

func (b *browser) activeFilter() filter.Info { return filter.Catalog[b.filterIdx] }

// refresh recomputes the visible list from the store through the filter
// engine. Store order is the truth; the list is always a derived view.
func (b *browser) refresh() {
	view := filter.Apply(b.store.List(), time.Now(), filter.Query{
		Filter:  b.activeFilter().ID,
		SortBy:  sortCycle[b.sortIdx],
		Windows: b.opt.Windows,
	})
	items := make([]list.Item, 0, len(view))
	for _, p := range view {
		items = append(items, listItem{p: p})
	}
	b.list.SetItems(items)

	counts := filter.Counts(b.store.List(), time.Now(), b.opt.Windows)
	b.list.Title = fmt.Sprintf("%s   %s %d/%d   %s %s",
		titleStyle.Render("Projects"),
		accentStyle.Render(b.activeFilter().Name), counts[b.activeFilter().ID], b.store.Len(),
		mutedStyle.Render("sort:"), sortCycle[b.sortIdx],
	)
}

func (b browser) selectedID() (string, bool) {
	it, ok := b.list.SelectedItem().(listItem)
	if !ok {
		return "", false
	}
	return it.p.ID, true
}

func (b browser) Init() tea.Cmd { return pollTick(b.opt.PollInterval) }

func (b browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if b.adding || b.editing {
		return b.updateInput(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h := msg.Height - 2
		if h < 4 {
			h = 4
		}
		b.list.SetSize(msg.Width-2, h)
		return b, nil

	case pollMsg:
		var cmds []tea.Cmd
		for _, r := range b.tracker.Poll(time.Time(msg)) {
			cmds = append(cmds, b.list.NewStatusMessage(errorStyle.Render(dueLine(r))))
		}
		cmds = append(cmds, pollTick(b.opt.PollInterval))
		return b, tea.Batch(cmds...)

	case tea.KeyMsg:
		if b.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "esc":
			return b, tea.Quit
		case "f":
			b.filterIdx = (b.filterIdx + 1) % len(filter.Catalog)
			b.refresh()
			return b, nil
		case "F":
			b.filterIdx = (b.filterIdx - 1 + len(filter.Catalog)) % len(filter.Catalog)
			b.refresh()
			return b, nil
		case "s":
			b.sortIdx = (b.sortIdx + 1) % len(sortCycle)
			b.refresh()
			return b, nil
		case " ":
			if id, ok := b.selectedID(); ok {
				p, err := b.store.Get(id)
				if err == nil {
					pct := 100
					if p.Completion == 100 {
						pct = 0
					}
					b.store.SetProgress(id, pct)
					b.changed = true
					b.refresh()
				}
			}
			return b, nil
		case "+":
			b.bumpProgress(10)
			return b, nil
		case "-":
			b.bumpProgress(-10)
			return b, nil
		case "d":
			if id, ok := b.selectedID(); ok {
				if p, err := b.store.Get(id); err == nil {
					tmp := p
					b.undoItem = &tmp
					b.store.Delete(id)
					b.changed = true
					b.refresh()
				}
			}
			return b, nil
		case "u":
			if b.undoItem != nil {
				// Re-add keeps the old field values but restamps; close
				// enough for a session-local undo.
				restored := *b.undoItem
				if _, err := b.store.Add(restored); err == nil {
					b.changed = true
					b.undoItem = nil
					b.refresh()
				}
			}
			return b, nil
		case "a":
			b.adding = true
			b.inputErr = ""
			b.ti.SetValue("")
			b.ti.Placeholder = "New project name..."
			b.ti.Focus()
			return b, nil
		case "e":
			if id, ok := b.selectedID(); ok {
				if p, err := b.store.Get(id); err == nil {
					b.editing = true
					b.editID = id
					b.inputErr = ""
					b.ti.SetValue(p.Name)
					b.ti.CursorEnd()
					b.ti.Placeholder = "Project name..."
					b.ti.Focus()
				}
			}
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

func (b browser) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch x := msg.(type) {
	case tea.KeyMsg:
		switch x.String() {
		case "enter":
			name := strings.TrimSpace(b.ti.Value())
			if name == "" {
				b.inputErr = "Name cannot be empty"
				return b, nil
			}
			if b.adding {
				if _, err := b.store.Add(model.Project{Name: name}); err != nil {
					b.inputErr = err.Error()
					return b, nil
				}
			} else {
				if _, err := b.store.Update(b.editID, jsonstore.Patch{Name: &name}); err != nil {
					b.inputErr = err.Error()
					return b, nil
				}
			}
			b.changed = true
			b.adding, b.editing = false, false
			b.ti.SetValue("")
			b.ti.Blur()
			b.refresh()
			return b, nil
		case "esc":
			b.adding, b.editing = false, false
			b.ti.SetValue("")
			b.ti.Blur()
			return b, nil
		}
	}
	var cmd tea.Cmd
	b.ti, cmd = b.ti.Update(msg)
	return b, cmd
}

func (b *browser) bumpProgress(delta int) {
	id, ok := b.selectedID()
	if !ok {
		return
	}
	p, err := b.store.Get(id)
	if err != nil {
		return
	}
	if _, err := b.store.SetProgress(id, p.Completion+delta); err == nil {
		b.changed = true
		b.refresh()
	}
}

func (b browser) View() string {
	content := b.list.View()
	if b.adding || b.editing {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := "Add project"
		if b.editing {
			title = "Rename project"
		}
		if b.inputErr != "" {
			title += " — " + errorStyle.Render(b.inputErr)
		}
		content = content + "\n" + bar.Render(title+"\n"+b.ti.View())
	}
	return content
}

func dueLine(r notify.Reminder) string {
	if r.DaysLeft == 0 {
		return fmt.Sprintf("%s is due today!", r.Project.Name)
	}
	if r.DaysLeft == 1 {
		return fmt.Sprintf("%s is due tomorrow", r.Project.Name)
	}
	return fmt.Sprintf("%s due in %d days", r.Project.Name, r.DaysLeft)
}
