package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/nibzard/taskr/internal/task"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS tasks (
	position    INTEGER PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL,
	due_date    TEXT NOT NULL,
	status      TEXT NOT NULL
)`

// SQLiteStore keeps the collection in a SQLite database, one row per task.
// Row position preserves collection order. Each Save rewrites every row.
type SQLiteStore struct {
	path string
	opts options
}

// NewSQLiteStore returns a SQLite store at path.
func NewSQLiteStore(path string, opts ...Option) *SQLiteStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &SQLiteStore{path: path, opts: o}
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// Load reads every row in position order. A missing database is an empty collection.
func (s *SQLiteStore) Load(ctx context.Context) ([]task.Task, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			s.opts.logger.Debug("task database missing, starting empty", "path", s.path)
			return []task.Task{}, nil
		}
		return nil, fmt.Errorf("stat task database: %w", err)
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT title, description, due_date, status FROM tasks ORDER BY position`)
	if err != nil {
		return nil, &CorruptError{Path: s.path, Err: fmt.Errorf("query tasks: %w", err)}
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		var t task.Task
		var due, status string
		if err := rows.Scan(&t.Title, &t.Description, &due, &status); err != nil {
			return nil, &CorruptError{Path: s.path, Err: fmt.Errorf("scan task: %w", err)}
		}
		if t.DueDate, err = task.ParseDate(due); err != nil {
			return nil, &CorruptError{Path: s.path, Err: fmt.Errorf("row %d: %w", len(tasks), err)}
		}
		t.Status = task.Status(status)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &CorruptError{Path: s.path, Err: fmt.Errorf("read tasks: %w", err)}
	}
	if errs := task.Validate(tasks); len(errs) > 0 {
		return nil, &CorruptError{Path: s.path, Err: errs[0], Problems: errs}
	}

	s.opts.logger.Debug("loaded tasks", "path", s.path, "format", "sqlite", "count", len(tasks))
	return tasks, nil
}

// Save replaces every row in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, tasks []task.Task) error {
	if err := checkBeforeSave(tasks); err != nil {
		return err
	}

	db, err := s.open()
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	defer db.Close()

	if err := replaceRows(ctx, db, tasks); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	s.opts.logger.Debug("saved tasks", "path", s.path, "format", "sqlite", "count", len(tasks))
	return nil
}

func replaceRows(ctx context.Context, db *sql.DB, tasks []task.Task) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tasks (position, title, description, due_date, status) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		if _, err := stmt.ExecContext(ctx, i, t.Title, t.Description, t.DueDate.String(), string(t.Status)); err != nil {
			return fmt.Errorf("insert task %q: %w", t.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
