package task

import "fmt"

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // path to the offending field, e.g. "[2].status"
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks every task in the collection and returns one error per
// offending field. An empty result means the collection is valid.
func Validate(tasks []Task) []error {
	var errs []error
	for i := range tasks {
		errs = append(errs, validateTask(&tasks[i], fmt.Sprintf("[%d]", i))...)
	}
	return errs
}

func validateTask(t *Task, path string) []error {
	var errs []error
	if t.Title == "" {
		errs = append(errs, &ValidationError{
			Path: path + ".title",
			Err:  fmt.Errorf("missing required field"),
		})
	}
	if t.DueDate.IsZero() {
		errs = append(errs, &ValidationError{
			Path: path + ".due_date",
			Err:  fmt.Errorf("missing required field"),
		})
	}
	if !t.Status.Valid() {
		errs = append(errs, &ValidationError{
			Path: path + ".status",
			Err:  fmt.Errorf("%w %q, must be one of: pending, completed", ErrInvalidStatus, t.Status),
		})
	}
	return errs
}
