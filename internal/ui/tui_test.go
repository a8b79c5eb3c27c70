package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/taskr/internal/store"
	"github.com/nibzard/taskr/internal/task"
)

type fakeGateway struct {
	tasks []task.Task
	err   error
	loads int
}

func (f *fakeGateway) Load(context.Context) ([]task.Task, error) {
	f.loads++
	return f.tasks, f.err
}

func (f *fakeGateway) Save(context.Context, []task.Task) error {
	return errors.New("viewer must not save")
}

func sampleTasks() []task.Task {
	return []task.Task{
		{Title: "first", Description: "a", DueDate: task.MustParseDate("2024-03-01"), Status: task.StatusPending},
		{Title: "second", Description: "b\nmore", DueDate: task.MustParseDate("2024-01-15"), Status: task.StatusCompleted},
		{Title: "third", Description: "c", DueDate: task.MustParseDate("2024-02-10"), Status: task.StatusPending},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded runs Init's command and feeds the result back, as the program would.
func loaded(t *testing.T, gw *fakeGateway) *model {
	t.Helper()
	m := newModel(context.Background(), gw, "tasks.json")
	msg := m.Init()()
	next, _ := m.Update(msg)
	return next.(*model)
}

func titles(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestModelLoadsAndRenders(t *testing.T) {
	gw := &fakeGateway{tasks: sampleTasks()}
	m := loaded(t, gw)

	if gw.loads != 1 {
		t.Errorf("loads: got %d, want 1", gw.loads)
	}
	view := m.View()
	for _, want := range []string{"first", "second", "third", "Pending: 2", "Completed: 1", "Total: 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	// Detail box shows the selected (first) task.
	if !strings.Contains(view, "Due Date: 2024-03-01") {
		t.Errorf("view missing selected task detail:\n%s", view)
	}
}

func TestModelFilterAndSortKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{"pending", []string{"1"}, []string{"first", "third"}},
		{"completed", []string{"2"}, []string{"second"}},
		{"cleared", []string{"1", "0"}, []string{"first", "second", "third"}},
		{"sorted", []string{"s"}, []string{"second", "third", "first"}},
		{"sorted pending", []string{"s", "1"}, []string{"third", "first"}},
		{"sort toggled off", []string{"s", "s"}, []string{"first", "second", "third"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loaded(t, &fakeGateway{tasks: sampleTasks()})
			for _, k := range tt.keys {
				m.Update(key(k))
			}
			got := titles(m.visible)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("visible: got %v, want %v", got, tt.want)
			}
			if len(m.table.Rows()) != len(tt.want) {
				t.Errorf("rows: got %d, want %d", len(m.table.Rows()), len(tt.want))
			}
		})
	}
}

func TestModelFilterDoesNotChangeStoredOrder(t *testing.T) {
	m := loaded(t, &fakeGateway{tasks: sampleTasks()})
	m.Update(key("s"))

	if got := titles(m.tasks); strings.Join(got, ",") != "first,second,third" {
		t.Errorf("loaded tasks reordered: %v", got)
	}
}

func TestModelEmptyFilter(t *testing.T) {
	tasks := sampleTasks()[:1]
	m := loaded(t, &fakeGateway{tasks: tasks})
	m.Update(key("2"))

	view := m.View()
	if !strings.Contains(view, "No tasks found.") {
		t.Errorf("view missing empty message:\n%s", view)
	}
	if !strings.Contains(view, "Filter: completed") {
		t.Errorf("view missing filter indicator:\n%s", view)
	}
}

func TestModelLoadError(t *testing.T) {
	gw := &fakeGateway{err: &store.CorruptError{
		Path:     "tasks.json",
		Err:      errors.New("schema validation failed"),
		Problems: []error{errors.New("[0].status: bad value")},
	}}
	m := loaded(t, gw)

	view := m.View()
	if !strings.Contains(view, "Error loading tasks") || !strings.Contains(view, "[0].status: bad value") {
		t.Errorf("view missing load error:\n%s", view)
	}

	// Reload picks up a repaired store.
	gw.err = nil
	gw.tasks = sampleTasks()
	_, cmd := m.Update(key("r"))
	if cmd == nil {
		t.Fatal("refresh should return a load command")
	}
	m.Update(cmd())
	if m.loadErr != nil || len(m.visible) != 3 {
		t.Errorf("after reload: err=%v visible=%d", m.loadErr, len(m.visible))
	}
	if gw.loads != 2 {
		t.Errorf("loads: got %d, want 2", gw.loads)
	}
}

func TestModelHelpAndQuit(t *testing.T) {
	m := loaded(t, &fakeGateway{tasks: sampleTasks()})

	m.Update(key("h"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen not shown")
	}
	m.Update(key("h"))
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen not hidden")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelNavigation(t *testing.T) {
	m := loaded(t, &fakeGateway{tasks: sampleTasks()})

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if sel := m.selected(); sel == nil || sel.Title != "second" {
		t.Fatalf("selected after down: %+v", sel)
	}

	// Narrowing the view keeps the cursor in range.
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(key("2"))
	if sel := m.selected(); sel == nil || sel.Title != "second" {
		t.Errorf("selected after filter: %+v", sel)
	}
}

func TestFirstLine(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"one line":    "one line",
		"top\nbottom": "top...",
		"crlf\r\nx":   "crlf...",
	}
	for in, want := range tests {
		if got := firstLine(in); got != want {
			t.Errorf("firstLine(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer reported as TTY")
	}
}

func TestRunRequiresTTY(t *testing.T) {
	if IsTTY(os.Stdout) {
		t.Skip("stdout is a terminal")
	}
	err := Run(context.Background(), &fakeGateway{}, "tasks.json")
	if !errors.Is(err, ErrNotTTY) {
		t.Errorf("Run: got %v, want ErrNotTTY", err)
	}
}
