// Package tracker implements the task operations. Every operation loads the
// full collection from the gateway, applies one transformation and, for
// mutations, saves the full collection back.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskr/internal/logging"
	"github.com/nibzard/taskr/internal/prompt"
	"github.com/nibzard/taskr/internal/store"
	"github.com/nibzard/taskr/internal/task"
)

// Messages shown to the user.
const (
	MsgNoTasks       = "No tasks found."
	MsgAdded         = "Task added successfully."
	MsgInvalidStatus = "Invalid status. Please enter 'pending' or 'completed'."
	MsgEmptyTitle    = "Title cannot be empty."
	separator        = "------"
)

// Prompter asks the user for input.
type Prompter interface {
	Line(ctx context.Context, label string) (string, error)
	NonEmpty(ctx context.Context, label, complaint string) (string, error)
	Date(ctx context.Context, label string) (task.Date, error)
}

// Tracker runs task operations against a store.
type Tracker struct {
	store  store.Gateway
	out    io.Writer
	logger *log.Logger
}

// New returns a Tracker writing results to out.
func New(gw store.Gateway, out io.Writer, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Tracker{store: gw, out: out, logger: logger}
}

func (t *Tracker) println(a ...any) {
	fmt.Fprintln(t.out, a...)
}

func (t *Tracker) printf(format string, a ...any) {
	fmt.Fprintf(t.out, format, a...)
}

// Add prompts for a new task, then appends it as pending and saves.
// The due date prompt repeats until a valid date is given.
func (t *Tracker) Add(ctx context.Context, p Prompter) error {
	title, err := p.NonEmpty(ctx, "Enter task title: ", MsgEmptyTitle)
	if err != nil {
		return err
	}
	description, err := p.Line(ctx, "Enter task description: ")
	if err != nil {
		return err
	}
	due, err := p.Date(ctx, "Enter due date (YYYY-MM-DD): ")
	if errors.Is(err, prompt.ErrTooManyAttempts) {
		t.println("Too many invalid dates. Task not added.")
		return nil
	}
	if err != nil {
		return err
	}

	return t.AddTask(ctx, task.New(title, description, due))
}

// AddTask appends nt to the end of the collection and saves.
// Duplicate titles are not checked.
func (t *Tracker) AddTask(ctx context.Context, nt task.Task) error {
	tasks, err := t.store.Load(ctx)
	if err != nil {
		return err
	}
	tasks = append(tasks, nt)
	if err := t.store.Save(ctx, tasks); err != nil {
		return err
	}
	t.logger.Debug("task added", "title", nt.Title, "due", nt.DueDate, "count", len(tasks))
	t.println(MsgAdded)
	return nil
}

// Display writes every task in order, or a notice when there are none.
func (t *Tracker) Display(tasks []task.Task) {
	if len(tasks) == 0 {
		t.println(MsgNoTasks)
		return
	}
	for _, tk := range tasks {
		t.printf("Title: %s\n", tk.Title)
		t.printf("Description: %s\n", tk.Description)
		t.printf("Due Date: %s\n", tk.DueDate)
		t.printf("Status: %s\n", tk.Status)
		t.println(separator)
	}
}

// List loads the collection and displays it in stored order.
func (t *Tracker) List(ctx context.Context) error {
	tasks, err := t.store.Load(ctx)
	if err != nil {
		return err
	}
	t.Display(tasks)
	return nil
}

// MarkCompleted completes the first task titled title.
// A missing title is reported and nothing is saved.
func (t *Tracker) MarkCompleted(ctx context.Context, title string) error {
	tasks, err := t.store.Load(ctx)
	if err != nil {
		return err
	}
	if !task.MarkCompleted(tasks, title) {
		t.logger.Debug("task not found", "op", "complete", "title", title)
		t.printf("Task '%s' not found.\n", title)
		return nil
	}
	if err := t.store.Save(ctx, tasks); err != nil {
		return err
	}
	t.logger.Debug("task completed", "title", title)
	t.printf("Task '%s' marked as completed.\n", title)
	return nil
}

// Edit prompts for new values for the first task titled title and saves.
// Blank title or description keeps the current value; the due date must be
// re-entered. Renaming onto an existing title is allowed.
func (t *Tracker) Edit(ctx context.Context, title string, p Prompter) error {
	tasks, err := t.store.Load(ctx)
	if err != nil {
		return err
	}
	i := task.Find(tasks, title)
	if i < 0 {
		t.logger.Debug("task not found", "op", "edit", "title", title)
		t.printf("Task '%s' not found.\n", title)
		return nil
	}

	current := tasks[i]
	t.printf("Editing task: %s\n", title)

	newTitle, err := p.Line(ctx, fmt.Sprintf("Enter new title (currently: %s): ", current.Title))
	if err != nil {
		return err
	}
	newDescription, err := p.Line(ctx, fmt.Sprintf("Enter new description (currently: %s): ", current.Description))
	if err != nil {
		return err
	}
	newDue, err := p.Date(ctx, fmt.Sprintf("Enter new due date (YYYY-MM-DD) (currently: %s): ", current.DueDate))
	if errors.Is(err, prompt.ErrTooManyAttempts) {
		t.printf("Too many invalid dates. Task '%s' not changed.\n", title)
		return nil
	}
	if err != nil {
		return err
	}

	if newTitle != "" {
		tasks[i].Title = newTitle
	}
	if newDescription != "" {
		tasks[i].Description = newDescription
	}
	tasks[i].DueDate = newDue

	if err := t.store.Save(ctx, tasks); err != nil {
		return err
	}
	t.logger.Debug("task edited", "title", title, "new_title", tasks[i].Title)
	t.printf("Task '%s' edited successfully.\n", title)
	return nil
}

// Delete removes every task titled title and saves, even when nothing matched.
func (t *Tracker) Delete(ctx context.Context, title string) error {
	tasks, err := t.store.Load(ctx)
	if err != nil {
		return err
	}
	kept, removed := task.DeleteAll(tasks, title)
	if err := t.store.Save(ctx, kept); err != nil {
		return err
	}
	t.logger.Debug("tasks deleted", "title", title, "removed", removed)
	t.printf("Task '%s' deleted successfully.\n", title)
	return nil
}

// Sort displays the collection ordered by due date. The order is not saved.
func (t *Tracker) Sort(ctx context.Context) error {
	tasks, err := t.store.Load(ctx)
	if err != nil {
		return err
	}
	t.Display(task.SortByDueDate(tasks))
	return nil
}

// Filter displays the tasks with the given status. An invalid status is
// reported before anything is loaded.
func (t *Tracker) Filter(ctx context.Context, status string) error {
	s, err := task.ParseStatus(status)
	if err != nil {
		t.logger.Debug("rejected status filter", "status", status)
		t.println(MsgInvalidStatus)
		return nil
	}
	tasks, err := t.store.Load(ctx)
	if err != nil {
		return err
	}
	t.Display(task.FilterByStatus(tasks, s))
	return nil
}

// View displays the collection with an optional status filter ("" for all)
// and optional due date ordering. Nothing is saved.
func (t *Tracker) View(ctx context.Context, status string, byDueDate bool) error {
	var want task.Status
	if status != "" {
		s, err := task.ParseStatus(status)
		if err != nil {
			return err
		}
		want = s
	}
	tasks, err := t.store.Load(ctx)
	if err != nil {
		return err
	}
	if want != "" {
		tasks = task.FilterByStatus(tasks, want)
	}
	if byDueDate {
		tasks = task.SortByDueDate(tasks)
	}
	t.Display(tasks)
	return nil
}
