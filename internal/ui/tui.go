// Package ui provides a read-only terminal viewer for the task store.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/nibzard/taskr/internal/store"
	"github.com/nibzard/taskr/internal/task"
)

// ErrNotTTY is returned by Run when stdout is not a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

const defaultTableHeight = 12

// Run starts the viewer over gw and blocks until the user quits.
func Run(ctx context.Context, gw store.Gateway, source string) error {
	if !IsTTY(os.Stdout) {
		return ErrNotTTY
	}
	model := newModel(ctx, gw, source)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

type model struct {
	ctx    context.Context
	gw     store.Gateway
	source string

	tasks    []task.Task
	visible  []task.Task
	loadErr  error
	filter   task.Status
	byDue    bool
	showHelp bool

	table table.Model
}

type loadedMsg struct {
	tasks []task.Task
	err   error
}

func newModel(ctx context.Context, gw store.Gateway, source string) *model {
	columns := []table.Column{
		{Title: "Title", Width: 24},
		{Title: "Due Date", Width: 10},
		{Title: "Status", Width: 9},
		{Title: "Description", Width: 36},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(defaultTableHeight),
	)
	t.SetStyles(tableStyles())
	return &model{ctx: ctx, gw: gw, source: source, table: t}
}

func (m *model) Init() tea.Cmd {
	return m.load
}

func (m *model) load() tea.Msg {
	tasks, err := m.gw.Load(m.ctx)
	return loadedMsg{tasks: tasks, err: err}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loadErr = msg.err
		if msg.err == nil {
			m.tasks = msg.tasks
		} else {
			m.tasks = nil
		}
		m.applyView()
		return m, nil
	case tea.WindowSizeMsg:
		// Leave room for the header, counts, detail box and footer.
		if h := msg.Height - 12; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r", "f5":
			return m, m.load
		case "s":
			m.byDue = !m.byDue
			m.applyView()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "1":
			m.filter = task.StatusPending
			m.applyView()
			return m, nil
		case "2":
			m.filter = task.StatusCompleted
			m.applyView()
			return m, nil
		case "0":
			m.filter = ""
			m.applyView()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// applyView rebuilds the visible rows from the loaded tasks.
func (m *model) applyView() {
	visible := m.tasks
	if m.filter != "" {
		visible = task.FilterByStatus(visible, m.filter)
	}
	if m.byDue {
		visible = task.SortByDueDate(visible)
	}
	m.visible = visible

	rows := make([]table.Row, len(visible))
	for i, t := range visible {
		rows[i] = table.Row{t.Title, t.DueDate.String(), string(t.Status), firstLine(t.Description)}
	}
	m.table.SetRows(rows)
	if len(rows) > 0 && m.table.Cursor() >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("taskr") + "  " + hintStyle.Render(m.source) + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading tasks:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n")
		var corrupt *store.CorruptError
		if errors.As(m.loadErr, &corrupt) {
			for _, p := range corrupt.Problems {
				b.WriteString("  - " + p.Error() + "\n")
			}
		}
		b.WriteString("\n")
		writeFooter(&b)
		return b.String()
	}

	counts := task.Counts(m.tasks)
	b.WriteString(countStyle.Render(fmt.Sprintf("Pending: %d  Completed: %d  Total: %d",
		counts[task.StatusPending], counts[task.StatusCompleted], len(m.tasks))) + "\n")

	var modes []string
	if m.filter != "" {
		modes = append(modes, fmt.Sprintf("Filter: %s (0 to clear)", m.filter))
	}
	if m.byDue {
		modes = append(modes, "Sorted by due date")
	}
	if len(modes) > 0 {
		b.WriteString(filterStyle.Render(strings.Join(modes, " | ")) + "\n")
	}
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString("  No tasks found.\n\n")
		writeFooter(&b)
		return b.String()
	}

	b.WriteString(m.table.View() + "\n\n")
	if sel := m.selected(); sel != nil {
		b.WriteString(detailStyle.Render(formatDetail(sel)) + "\n")
	}
	writeFooter(&b)
	return b.String()
}

func (m *model) selected() *task.Task {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return nil
	}
	return &m.visible[i]
}

func formatDetail(t *task.Task) string {
	return fmt.Sprintf("Title: %s\nDescription: %s\nDue Date: %s\nStatus: %s",
		t.Title, t.Description, t.DueDate, t.Status)
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i] + "..."
	}
	return s
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, esc, ctrl+c  Quit\n")
	b.WriteString("  r, F5           Reload from the store\n")
	b.WriteString("  up/down, j/k    Move selection\n")
	b.WriteString("  s               Toggle sort by due date\n")
	b.WriteString("  1               Show pending tasks\n")
	b.WriteString("  2               Show completed tasks\n")
	b.WriteString("  0               Clear filter\n")
	b.WriteString("  h, ?            Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(hintStyle.Render("Press h for help | q to quit") + "\n")
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
