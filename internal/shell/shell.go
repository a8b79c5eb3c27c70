// Package shell runs the interactive numbered menu.
package shell

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskr/internal/logging"
	"github.com/nibzard/taskr/internal/prompt"
	"github.com/nibzard/taskr/internal/tracker"
)

// Menu choices.
const (
	ChoiceAdd      = "1"
	ChoiceDisplay  = "2"
	ChoiceComplete = "3"
	ChoiceEdit     = "4"
	ChoiceDelete   = "5"
	ChoiceSort     = "6"
	ChoiceFilter   = "7"
	ChoiceExit     = "8"
)

const (
	choicePrompt     = "Enter your choice: "
	msgInvalidChoice = "Invalid choice. Please try again."
	msgExiting       = "Exiting..."
)

var menu = []string{
	"1. Add Task",
	"2. Display Tasks",
	"3. Mark Task as Completed",
	"4. Edit Task",
	"5. Delete Task",
	"6. Sort Tasks by Due Date",
	"7. Filter Tasks by Status",
	"8. Exit",
}

// Shell dispatches menu choices to tracker operations until exit.
type Shell struct {
	tracker *tracker.Tracker
	prompt  *prompt.Prompter
	out     io.Writer
	logger  *log.Logger
}

// New returns a Shell. Menu and messages go to the prompter's writer.
func New(tr *tracker.Tracker, p *prompt.Prompter, logger *log.Logger) *Shell {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Shell{
		tracker: tr,
		prompt:  p,
		out:     p.Out(),
		logger:  logger,
	}
}

// Run loops over the menu until the exit choice, closed input, a cancelled
// context, or a storage error. Only the exit choice returns nil.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		choice, err := s.prompt.Line(ctx, choicePrompt)
		if err != nil {
			return fmt.Errorf("read choice: %w", err)
		}
		choice = strings.TrimSpace(choice)

		if choice == ChoiceExit {
			fmt.Fprintln(s.out, msgExiting)
			return nil
		}
		if err := s.dispatch(ctx, choice); err != nil {
			if ctx.Err() == nil {
				s.logger.Error("operation failed", "choice", choice, "err", err)
			}
			return err
		}
	}
}

func (s *Shell) printMenu() {
	for _, line := range menu {
		fmt.Fprintln(s.out, line)
	}
}

func (s *Shell) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case ChoiceAdd:
		return s.tracker.Add(ctx, s.prompt)
	case ChoiceDisplay:
		return s.tracker.List(ctx)
	case ChoiceComplete:
		title, err := s.prompt.Line(ctx, "Enter the title of the task to mark as completed: ")
		if err != nil {
			return err
		}
		return s.tracker.MarkCompleted(ctx, title)
	case ChoiceEdit:
		title, err := s.prompt.Line(ctx, "Enter the title of the task to edit: ")
		if err != nil {
			return err
		}
		return s.tracker.Edit(ctx, title, s.prompt)
	case ChoiceDelete:
		title, err := s.prompt.Line(ctx, "Enter the title of the task to delete: ")
		if err != nil {
			return err
		}
		return s.tracker.Delete(ctx, title)
	case ChoiceSort:
		return s.tracker.Sort(ctx)
	case ChoiceFilter:
		status, err := s.prompt.Line(ctx, "Enter status to filter (pending/completed): ")
		if err != nil {
			return err
		}
		return s.tracker.Filter(ctx, status)
	default:
		s.logger.Debug("invalid menu choice", "choice", choice)
		fmt.Fprintln(s.out, msgInvalidChoice)
		return nil
	}
}
