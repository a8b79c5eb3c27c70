package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nibzard/taskr/internal/prompt"
	"github.com/nibzard/taskr/internal/store"
	"github.com/nibzard/taskr/internal/task"
	"github.com/nibzard/taskr/internal/tracker"
)

func runShell(t *testing.T, gw store.Gateway, input string) (string, error) {
	t.Helper()
	var out strings.Builder
	p := prompt.New(strings.NewReader(input), &out)
	sh := New(tracker.New(gw, &out, nil), p, nil)
	err := sh.Run(context.Background())
	return out.String(), err
}

func TestExit(t *testing.T) {
	gw := store.NewFileStore(filepath.Join(t.TempDir(), "tasks.json"))

	out, err := runShell(t, gw, "8\n")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, line := range menu {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("menu line %q missing", line)
		}
	}
	if !strings.HasSuffix(out, choicePrompt+msgExiting+"\n") {
		t.Errorf("output does not end with exit message:\n%s", out)
	}
}

func TestInvalidChoiceReprompts(t *testing.T) {
	gw := store.NewFileStore(filepath.Join(t.TempDir(), "tasks.json"))

	out, err := runShell(t, gw, "9\nhello\n\n 8 \n")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if n := strings.Count(out, msgInvalidChoice); n != 3 {
		t.Errorf("invalid choice messages = %d, want 3", n)
	}
	if n := strings.Count(out, "8. Exit\n"); n != 4 {
		t.Errorf("menu shown %d times, want 4", n)
	}
}

func TestSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	gw := store.NewFileStore(path)

	input := strings.Join([]string{
		"1", "report", "quarterly numbers", "13/02/2024", "2024-03-01",
		"1", "groceries", "", "2024-01-15",
		"1", "report", "duplicate", "2024-01-15",
		"3", "report",
		"6",
		"7", "Completed",
		"4", "groceries", "shopping", "", "2024-01-20",
		"5", "report",
		"2",
		"8",
	}, "\n") + "\n"

	out, err := runShell(t, gw, input)
	if err != nil {
		t.Fatalf("Run failed: %v\n%s", err, out)
	}

	for _, want := range []string{
		"Invalid date format. Please use YYYY-MM-DD.",
		"Task 'report' marked as completed.",
		"Editing task: groceries",
		"Task 'groceries' edited successfully.",
		"Task 'report' deleted successfully.",
		"Exiting...",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if n := strings.Count(out, "Task added successfully."); n != 3 {
		t.Errorf("added messages = %d, want 3", n)
	}

	tasks, err := gw.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("remaining tasks = %+v, want only the renamed groceries task", tasks)
	}
	got := tasks[0]
	if got.Title != "shopping" || got.Description != "" || got.DueDate.String() != "2024-01-20" || got.Status != task.StatusPending {
		t.Errorf("remaining task = %+v", got)
	}
}

func TestInvalidFilterDoesNotTouchStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{corrupt"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	gw := store.NewFileStore(path)

	out, err := runShell(t, gw, "7\nbogus\n8\n")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out, tracker.MsgInvalidStatus) {
		t.Errorf("output missing invalid status message:\n%s", out)
	}
}

func TestCorruptStoreEndsSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{corrupt"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	gw := store.NewFileStore(path)

	out, err := runShell(t, gw, "2\n8\n")
	if !errors.Is(err, store.ErrCorrupt) {
		t.Fatalf("Run: got %v, want ErrCorrupt", err)
	}
	if strings.Contains(out, msgExiting) {
		t.Errorf("session continued after corrupt store:\n%s", out)
	}
}

func TestClosedInput(t *testing.T) {
	gw := store.NewFileStore(filepath.Join(t.TempDir(), "tasks.json"))

	_, err := runShell(t, gw, "2\n")
	if !errors.Is(err, io.EOF) {
		t.Errorf("Run on closed input: got %v, want io.EOF", err)
	}
}

func TestCancelledContext(t *testing.T) {
	gw := store.NewFileStore(filepath.Join(t.TempDir(), "tasks.json"))
	var out strings.Builder
	p := prompt.New(strings.NewReader("8\n"), &out)
	sh := New(tracker.New(gw, &out, nil), p, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sh.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run: got %v, want context.Canceled", err)
	}
}

// stallingReader serves lines one Read at a time, then cancels and blocks
// like a terminal nobody is typing into.
type stallingReader struct {
	lines   []string
	cancel  context.CancelFunc
	release chan struct{}
	once    sync.Once
}

func (r *stallingReader) Read(b []byte) (int, error) {
	if len(r.lines) > 0 {
		n := copy(b, r.lines[0])
		r.lines = r.lines[1:]
		return n, nil
	}
	r.once.Do(r.cancel)
	<-r.release
	return 0, io.EOF
}

func TestInterruptDuringPrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	gw := store.NewFileStore(path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	in := &stallingReader{lines: []string{"1\n"}, cancel: cancel, release: make(chan struct{})}
	defer close(in.release)

	var out strings.Builder
	p := prompt.New(in, &out)
	sh := New(tracker.New(gw, &out, nil), p, nil)

	err := sh.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run: got %v, want context.Canceled", err)
	}
	if !strings.HasSuffix(out.String(), "Enter task title: ") {
		t.Errorf("output should stop at the pending prompt:\n%q", out.String())
	}
	for _, later := range []string{"Enter task description: ", "Enter due date"} {
		if strings.Contains(out.String(), later) {
			t.Errorf("prompt %q shown after interrupt", later)
		}
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("store written after interrupt: %v", err)
	}
}
