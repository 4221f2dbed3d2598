package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/taskhub/internal/db"
	"github.com/alexanderramin/taskhub/internal/domain"
	"github.com/google/uuid"
)

// Schema is the API server's database schema, applied by db.Open.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id             TEXT PRIMARY KEY,
		owner          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title          TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		category       TEXT NOT NULL DEFAULT 'Other'
		               CHECK(category IN ('Work','Personal','Study','Other')),
		priority       TEXT NOT NULL DEFAULT 'Medium'
		               CHECK(priority IN ('Low','Medium','High')),
		start_date     TEXT,
		due_date       TEXT,
		estimated_time REAL NOT NULL DEFAULT 0,
		completed      INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner)`,
}

// ErrNotFound is returned when a row does not exist or is owned by
// someone else.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when registering a duplicate email.
var ErrEmailTaken = errors.New("email already in use")

// User is a registered account.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Store persists users and ownership-scoped tasks.
type Store struct {
	db db.DBTX
}

// NewStore creates a Store over an open server database.
func NewStore(conn db.DBTX) *Store {
	return &Store{db: conn}
}

func (s *Store) CreateUser(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt.Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?`, email)

	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %q: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

func (s *Store) CreateTask(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, owner, title, description, category, priority,
			start_date, due_date, estimated_time, completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Owner, t.Title, t.Description, string(t.Category), string(t.Priority),
		nullableTime(t.StartDate), nullableTime(t.DueDate),
		t.EstimatedTime, boolToInt(t.Completed),
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (s *Store) ListTasksByOwner(ctx context.Context, owner string) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner, title, description, category, priority,
			start_date, due_date, estimated_time, completed, created_at, updated_at
		 FROM tasks WHERE owner = ? ORDER BY created_at DESC, id`, owner)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) GetTask(ctx context.Context, owner, id string) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner, title, description, category, priority,
			start_date, due_date, estimated_time, completed, created_at, updated_at
		 FROM tasks WHERE id = ? AND owner = ?`, id, owner)

	t, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task %q: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

func (s *Store) UpdateTask(ctx context.Context, t *domain.Task) error {
	t.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, category = ?, priority = ?,
			start_date = ?, due_date = ?, estimated_time = ?, completed = ?, updated_at = ?
		 WHERE id = ? AND owner = ?`,
		t.Title, t.Description, string(t.Category), string(t.Priority),
		nullableTime(t.StartDate), nullableTime(t.DueDate),
		t.EstimatedTime, boolToInt(t.Completed),
		t.UpdatedAt.Format(time.RFC3339), t.ID, t.Owner)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) DeleteTask(ctx context.Context, owner, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireAffected(res)
}

// ── scan helpers ────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (domain.Task, error) {
	var t domain.Task
	var category, priority, created, updated string
	var start, due sql.NullString
	var completed int

	err := row.Scan(&t.ID, &t.Owner, &t.Title, &t.Description, &category, &priority,
		&start, &due, &t.EstimatedTime, &completed, &created, &updated)
	if err != nil {
		return t, err
	}

	t.Category = domain.Category(category)
	t.Priority = domain.Priority(priority)
	t.StartDate = parseNullableTime(start)
	t.DueDate = parseNullableTime(due)
	t.Completed = completed != 0
	t.CreatedAt, _ = time.Parse(time.RFC3339, created)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return t, nil
}

func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
