package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only accepted due date format.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDate is returned when a due date is not a YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("invalid date format")
	// ErrInvalidStatus is returned when a status is neither pending nor completed.
	ErrInvalidStatus = errors.New("invalid status")
)

// Status represents a task status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// ParseStatus parses a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(s))
	if !status.Valid() {
		return "", fmt.Errorf("%w %q, must be one of: pending, completed", ErrInvalidStatus, s)
	}
	return status, nil
}

// Date is a calendar date with no time of day or zone.
type Date struct {
	t time.Time
}

// ParseDate parses s as YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w %q: use YYYY-MM-DD", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero returns true if the date was never set.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before reports whether d falls on an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler. JSON and YAML both use it.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Task represents a single to-do record.
type Task struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	DueDate     Date   `json:"due_date" yaml:"due_date"`
	Status      Status `json:"status" yaml:"status"`
}

// New returns a pending task.
func New(title, description string, due Date) Task {
	return Task{
		Title:       title,
		Description: description,
		DueDate:     due,
		Status:      StatusPending,
	}
}
