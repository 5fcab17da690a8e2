package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todo-cli/internal/model"
	"github.com/idilsaglam/todo-cli/internal/ui"
)

// listItem adapts model.Task to bubbles/list.Item
type listItem struct {
	task model.Task
}

func (i listItem) Title() string       { return i.task.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.task.Text }

type tuiStyles struct {
	title, success, muted, pending, accent, selected, done lipgloss.Style
}

func newTUIStyles(t ui.Theme) tuiStyles {
	return tuiStyles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Title),
		success:  lipgloss.NewStyle().Foreground(t.Success),
		muted:    lipgloss.NewStyle().Foreground(t.Muted).Faint(true),
		pending:  lipgloss.NewStyle().Foreground(t.Pending),
		accent:   lipgloss.NewStyle().Foreground(t.Accent),
		selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
	}
}

// Single-line delegate: "> 3. ☑ buy milk"
type itemDelegate struct {
	theme  ui.Theme
	styles tuiStyles
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := d.styles.muted.Render(d.theme.BoxUnchecked)
	text := it.task.Text
	if it.task.Done {
		box = d.styles.success.Render(d.theme.BoxChecked)
		text = d.styles.done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.styles.selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%3d. %s %s", prefix, it.task.ID, box, text)
}

var (
	doneKey   = key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "done"))
	removeKey = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove"))
	quitKey   = key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "save & quit"))
)

type modelTUI struct {
	list    list.Model
	styles  tuiStyles
	changed bool
}

func newModelTUI(tasks []model.Task, theme ui.Theme) modelTUI {
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, listItem{task: t})
	}
	styles := newTUIStyles(theme)

	l := list.New(items, itemDelegate{theme: theme, styles: styles}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("task", "tasks")
	l.Styles.Title = styles.title
	l.FilterInput.Prompt = "/ "
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{doneKey, removeKey, quitKey} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{doneKey, removeKey, quitKey} }

	m := modelTUI{list: l, styles: styles}
	m.refreshTitle()
	return m
}

// refreshTitle keeps the header counts in step with the list.
func (m *modelTUI) refreshTitle() {
	dn, pn := stats(m.tasks())
	m.list.Title = fmt.Sprintf("Todos   %s %d  %s %d  %s %d",
		m.styles.success.Render("✔"), dn,
		m.styles.pending.Render("•"), pn,
		m.styles.accent.Render("Total"), dn+pn,
	)
}

func (m modelTUI) tasks() []model.Task {
	out := make([]model.Task, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if li, ok := it.(listItem); ok {
			out = append(out, li.task)
		}
	}
	return out
}

// indexOf maps an id to its position in the unfiltered item slice;
// Index() is relative to the visible (possibly filtered) items.
func (m modelTUI) indexOf(id uint32) int {
	for i, it := range m.list.Items() {
		if li, ok := it.(listItem); ok && li.task.ID == id {
			return i
		}
	}
	return -1
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-2, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, quitKey):
			return m, tea.Quit
		case key.Matches(msg, doneKey):
			if li, ok := m.list.SelectedItem().(listItem); ok && !li.task.Done {
				li.task.Done = true
				cmd := m.list.SetItem(m.indexOf(li.task.ID), li)
				m.changed = true
				m.refreshTitle()
				return m, cmd
			}
			return m, nil
		case key.Matches(msg, removeKey):
			if li, ok := m.list.SelectedItem().(listItem); ok {
				m.list.RemoveItem(m.indexOf(li.task.ID))
				m.changed = true
				m.refreshTitle()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) View() string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(m.list.View())
}

// runInteractiveList starts the Bubble Tea list and hands back the edited tasks.
func runInteractiveList(tasks []model.Task, theme ui.Theme) ([]model.Task, bool, error) {
	p := tea.NewProgram(newModelTUI(tasks, theme), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}
	fm, ok := finalModel.(modelTUI)
	if !ok || !fm.changed {
		return tasks, false, nil
	}
	return fm.tasks(), true, nil
}

// small list stats used for the header
func stats(tasks []model.Task) (done, pending int) {
	for _, t := range tasks {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return
}
