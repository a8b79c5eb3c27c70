package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/taskr/internal/task"
)

// codec converts between file bytes and the task collection.
type codec interface {
	name() string
	decode(data []byte, v interface{}) error
	encode(tasks []task.Task) ([]byte, error)
}

type jsonCodec struct{}

func (jsonCodec) name() string { return "json" }

func (jsonCodec) decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// encode writes 2-space indentation and a trailing newline.
func (jsonCodec) encode(tasks []task.Task) ([]byte, error) {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type yamlCodec struct{}

func (yamlCodec) name() string { return "yaml" }

func (yamlCodec) decode(data []byte, v interface{}) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return err
	}
	if doc, ok := v.(*interface{}); ok {
		*doc = datesAsText(*doc)
	}
	return nil
}

// datesAsText turns the time.Time values yaml produces for unquoted
// timestamps back into text so the document validates like JSON.
func datesAsText(v interface{}) interface{} {
	switch v := v.(type) {
	case []interface{}:
		for i := range v {
			v[i] = datesAsText(v[i])
		}
	case map[string]interface{}:
		for k := range v {
			v[k] = datesAsText(v[k])
		}
	case time.Time:
		if v.Location() == time.UTC && v.Equal(v.Truncate(24*time.Hour)) {
			return v.Format(task.DateLayout)
		}
		return v.Format(time.RFC3339)
	}
	return v
}

func (yamlCodec) encode(tasks []task.Task) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileStore keeps the collection in a single JSON or YAML file.
type FileStore struct {
	path  string
	codec codec
	opts  options
}

// NewFileStore returns a JSON file store at path.
func NewFileStore(path string, opts ...Option) *FileStore {
	return newFileStore(path, jsonCodec{}, opts)
}

// NewYAMLStore returns a YAML file store at path.
func NewYAMLStore(path string, opts ...Option) *FileStore {
	return newFileStore(path, yamlCodec{}, opts)
}

func newFileStore(path string, c codec, opts []Option) *FileStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &FileStore{path: path, codec: c, opts: o}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the whole collection. A missing file is an empty collection.
func (s *FileStore) Load(ctx context.Context) ([]task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.opts.logger.Debug("task store missing, starting empty", "path", s.path)
			return []task.Task{}, nil
		}
		return nil, fmt.Errorf("read task store: %w", err)
	}

	var doc interface{}
	if err := s.codec.decode(data, &doc); err != nil {
		return nil, &CorruptError{Path: s.path, Err: fmt.Errorf("parse %s: %w", s.codec.name(), err)}
	}
	problems, err := validateDocument(doc)
	if err != nil {
		return nil, err
	}
	if len(problems) > 0 {
		return nil, &CorruptError{
			Path:     s.path,
			Err:      fmt.Errorf("%d schema violation(s), first: %w", len(problems), problems[0]),
			Problems: problems,
		}
	}

	var tasks []task.Task
	if err := s.codec.decode(data, &tasks); err != nil {
		return nil, &CorruptError{Path: s.path, Err: fmt.Errorf("decode tasks: %w", err)}
	}
	if tasks == nil {
		tasks = []task.Task{}
	}

	s.opts.logger.Debug("loaded tasks", "path", s.path, "format", s.codec.name(), "count", len(tasks))
	return tasks, nil
}

// Save replaces the file contents with the whole collection.
func (s *FileStore) Save(ctx context.Context, tasks []task.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkBeforeSave(tasks); err != nil {
		return err
	}
	if tasks == nil {
		tasks = []task.Task{}
	}

	data, err := s.codec.encode(tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}

	if s.opts.atomic {
		err = writeFileAtomic(s.path, data)
	} else {
		err = os.WriteFile(s.path, data, 0o644)
	}
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	s.opts.logger.Debug("saved tasks", "path", s.path, "format", s.codec.name(), "count", len(tasks), "atomic", s.opts.atomic)
	return nil
}

// writeFileAtomic writes content to a sibling temp file and renames it over path.
func writeFileAtomic(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
