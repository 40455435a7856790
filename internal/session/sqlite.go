package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"minigames/internal/session/migrations"
)

const migrationTable = "schema_migrations"

// DB is a SQLite handle shared by every SQLiteStore of a process.
type DB struct {
	sqlDB *sql.DB
}

// OpenDB opens a SQLite database and applies embedded migrations.
func OpenDB(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &DB{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (d *DB) Close() error {
	if d == nil || d.sqlDB == nil {
		return nil
	}
	return d.sqlDB.Close()
}

// SQLiteStore persists JSON-encoded records of one kind.
type SQLiteStore[T any] struct {
	db   *DB
	kind string
}

// NewSQLiteStore returns a store for records of kind inside db.
func NewSQLiteStore[T any](db *DB, kind string) *SQLiteStore[T] {
	return &SQLiteStore[T]{db: db, kind: kind}
}

func (s *SQLiteStore[T]) handle() (*sql.DB, error) {
	if s == nil || s.db == nil || s.db.sqlDB == nil {
		return nil, ErrClosed
	}
	return s.db.sqlDB, nil
}

func (s *SQLiteStore[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	db, err := s.handle()
	if err != nil {
		return zero, false, err
	}

	var payload []byte
	row := db.QueryRowContext(ctx, `SELECT payload FROM records WHERE kind = ? AND id = ?`, s.kind, id)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("get %s record: %w", s.kind, err)
	}
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		return zero, false, fmt.Errorf("decode %s record %s: %w", s.kind, id, err)
	}
	return v, true, nil
}

func (s *SQLiteStore[T]) Put(ctx context.Context, id string, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db, err := s.handle()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s record %s: %w", s.kind, id, err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO records (kind, id, payload, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(kind, id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		s.kind, id, payload, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put %s record: %w", s.kind, err)
	}
	return nil
}

func (s *SQLiteStore[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db, err := s.handle()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM records WHERE kind = ? AND id = ?`, s.kind, id); err != nil {
		return fmt.Errorf("delete %s record: %w", s.kind, err)
	}
	return nil
}

func (s *SQLiteStore[T]) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT id FROM records WHERE kind = ? AND substr(id, 1, ?) = ? ORDER BY id`,
		s.kind, len(prefix), prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s records: %w", s.kind, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s id: %w", s.kind, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s records: %w", s.kind, err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *SQLiteStore[T]) NewID() string {
	return uuid.NewString()
}

// applyMigrations executes each embedded migration at most once.
func applyMigrations(sqlDB *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if _, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		var found int
		err := sqlDB.QueryRow(`SELECT 1 FROM `+migrationTable+` WHERE name = ?`, file).Scan(&found)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check migration %s: %w", file, err)
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		tx, err := sqlDB.BeginTx(context.Background(), nil)
		if err != nil {
			return fmt.Errorf("begin migration transaction %s: %w", file, err)
		}
		if _, err := tx.Exec(upMigration(string(content))); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`,
			file, time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

// upMigration returns the SQL between the Up and Down markers.
func upMigration(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"
	upIdx := strings.Index(content, up)
	if upIdx == -1 {
		return content
	}
	content = content[upIdx+len(up):]
	if downIdx := strings.Index(content, down); downIdx != -1 {
		content = content[:downIdx]
	}
	return content
}
