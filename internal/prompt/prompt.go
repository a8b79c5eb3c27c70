// Package prompt reads line-oriented answers from the user.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/taskr/internal/task"
)

// InvalidDateMessage is printed after every rejected due date.
const InvalidDateMessage = "Invalid date format. Please use YYYY-MM-DD."

// ErrTooManyAttempts is returned by Date when a retry limit is set and exhausted.
var ErrTooManyAttempts = errors.New("too many invalid attempts")

// Prompter writes prompts to out and reads one line of input per prompt.
// A read blocks until a full line (or EOF) arrives or its context is done.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	maxAttempts int

	// pending is the outstanding read, if any. A read abandoned by a
	// cancelled context is picked up by the next Line call.
	pending chan readResult
}

type readResult struct {
	line string
	err  error
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithMaxAttempts bounds the due date retry loop. Zero or less means unbounded.
func WithMaxAttempts(n int) Option {
	return func(p *Prompter) {
		p.maxAttempts = n
	}
}

// New returns a Prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer, opts ...Option) *Prompter {
	p := &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Out returns the writer prompts are written to.
func (p *Prompter) Out() io.Writer {
	return p.out
}

// Line prints label and returns the next input line without its line ending.
// A final line without a newline is returned as-is; io.EOF is returned only
// when no input is left. A done ctx ends the wait at once with ctx.Err().
func (p *Prompter) Line(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, label)

	if p.pending == nil {
		ch := make(chan readResult, 1)
		p.pending = ch
		go func() {
			line, err := p.in.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-p.pending:
		p.pending = nil
		if r.err != nil {
			if errors.Is(r.err, io.EOF) && r.line != "" {
				return strings.TrimRight(r.line, "\r\n"), nil
			}
			return "", r.err
		}
		return strings.TrimRight(r.line, "\r\n"), nil
	}
}

// NonEmpty prompts until the answer contains something other than whitespace.
func (p *Prompter) NonEmpty(ctx context.Context, label, complaint string) (string, error) {
	for {
		line, err := p.Line(ctx, label)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
		fmt.Fprintln(p.out, complaint)
	}
}

// Date prompts until the answer parses as YYYY-MM-DD. Without WithMaxAttempts
// it never gives up; only valid input, closed input or a done ctx ends the loop.
func (p *Prompter) Date(ctx context.Context, label string) (task.Date, error) {
	for attempt := 1; ; attempt++ {
		line, err := p.Line(ctx, label)
		if err != nil {
			return task.Date{}, err
		}
		due, err := task.ParseDate(strings.TrimSpace(line))
		if err == nil {
			return due, nil
		}
		fmt.Fprintln(p.out, InvalidDateMessage)
		if p.maxAttempts > 0 && attempt >= p.maxAttempts {
			return task.Date{}, fmt.Errorf("due date: %w (%d)", ErrTooManyAttempts, attempt)
		}
	}
}
