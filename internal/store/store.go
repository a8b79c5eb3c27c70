// Package store loads and saves the whole task collection.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskr/internal/logging"
	"github.com/nibzard/taskr/internal/task"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var (
	// ErrCorrupt is matched by errors.Is for any *CorruptError.
	ErrCorrupt = errors.New("task store is corrupt")
	// ErrWrite is matched by errors.Is for any *WriteError.
	ErrWrite = errors.New("task store write failed")
)

// Gateway is the load/save boundary between the in-memory collection and
// persistent storage. Load returns the full collection; Save replaces it.
type Gateway interface {
	Load(ctx context.Context) ([]task.Task, error)
	Save(ctx context.Context, tasks []task.Task) error
}

// PathOf returns the file behind gw, or "" when gw has none.
func PathOf(gw Gateway) string {
	if p, ok := gw.(interface{ Path() string }); ok {
		return p.Path()
	}
	return ""
}

// CorruptError reports a store whose contents cannot be decoded or do not
// describe a valid task collection.
type CorruptError struct {
	Path     string
	Err      error
	Problems []error // individual schema violations, if any
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("task store %s is corrupt: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *CorruptError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrCorrupt) succeed.
func (e *CorruptError) Is(target error) bool {
	return target == ErrCorrupt
}

// WriteError reports a failed save. The store may be left truncated.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write task store %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrWrite) succeed.
func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}

// Option configures a store.
type Option func(*options)

type options struct {
	atomic bool
	logger *log.Logger
}

func defaultOptions() options {
	return options{
		atomic: true,
		logger: logging.Discard(),
	}
}

// WithAtomicWrite controls whether saves go through a temp file and rename.
// With it off the store file is truncated and rewritten in place.
func WithAtomicWrite(enabled bool) Option {
	return func(o *options) {
		o.atomic = enabled
	}
}

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open returns the gateway for backend rooted at path.
// The file backend picks YAML for .yaml/.yml paths and JSON otherwise.
func Open(backend, path string, opts ...Option) (Gateway, error) {
	if path == "" {
		return nil, fmt.Errorf("task store path is empty")
	}
	switch strings.ToLower(backend) {
	case "", BackendFile:
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return NewYAMLStore(path, opts...), nil
		default:
			return NewFileStore(path, opts...), nil
		}
	case BackendSQLite:
		return NewSQLiteStore(path, opts...), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (want %s or %s)", backend, BackendFile, BackendSQLite)
	}
}

// checkBeforeSave refuses to persist a collection that would not load back.
func checkBeforeSave(tasks []task.Task) error {
	if errs := task.Validate(tasks); len(errs) > 0 {
		return fmt.Errorf("refusing to save invalid tasks: %w", errors.Join(errs...))
	}
	return nil
}
