package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

var _ Repository = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the cache at path and applies migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) ReplaceTasks(ctx context.Context, in []Task, syncedAt time.Time) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO tasks (id, position, text, status, due_date, due_time, scope, scope_year, scope_week, scope_month, synced_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, t := range in {
			if _, err := stmt.ExecContext(ctx,
				t.ID, i, t.Text, t.Status, t.DueDate, t.DueTime, t.Scope,
				nullInt(t.ScopeYear), nullInt(t.ScopeWeek), nullInt(t.ScopeMonth), mustTime(syncedAt),
			); err != nil {
				return fmt.Errorf("insert task %s: %w", t.ID, err)
			}
		}
		return markSynced(ctx, tx, TasksSyncKey, syncedAt)
	})
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error) {
	query := `SELECT id, position, text, status, due_date, due_time, scope, scope_year, scope_week, scope_month, synced_at FROM tasks`
	args := make([]any, 0, 3)
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY position ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ReplaceCollection(ctx context.Context, collectionID string, in []CollectionEntry, syncedAt time.Time) error {
	if collectionID == "" {
		return errors.New("storage: collection id is required")
	}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM collection_entries WHERE collection_id = ?`, collectionID); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO collection_entries (collection_id, position, entry_id, name, checked, synced_at)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, e := range in {
			if _, err := stmt.ExecContext(ctx, collectionID, i, e.EntryID, e.Name, boolInt(e.Checked), mustTime(syncedAt)); err != nil {
				return fmt.Errorf("insert entry %s/%s: %w", collectionID, e.EntryID, err)
			}
		}
		return markSynced(ctx, tx, collectionID, syncedAt)
	})
}

func (r *SQLiteRepository) ListCollection(ctx context.Context, collectionID string) ([]CollectionEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT collection_id, position, entry_id, name, checked, synced_at
		FROM collection_entries WHERE collection_id = ?
		ORDER BY position ASC`, collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CollectionEntry, 0)
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeleteCollection(ctx context.Context, collectionID string) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM collection_entries WHERE collection_id = ?`, collectionID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM sync_marks WHERE key = ?`, collectionID)
		if err != nil {
			return err
		}
		return checkRowsAffected(res)
	})
}

// LastSynced returns when the snapshot under key was last replaced.
func (r *SQLiteRepository) LastSynced(ctx context.Context, key string) (time.Time, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT synced_at FROM sync_marks WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, err
	}
	return parseRequiredTime(raw)
}

func (r *SQLiteRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func markSynced(ctx context.Context, tx *sql.Tx, key string, at time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO sync_marks (key, synced_at) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET synced_at = excluded.synced_at`,
		key, mustTime(at))
	return err
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func parseNullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			sql += " LIMIT -1"
		}
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var year, week, month sql.NullInt64
	var synced string
	if err := s.Scan(&out.ID, &out.Position, &out.Text, &out.Status, &out.DueDate, &out.DueTime, &out.Scope, &year, &week, &month, &synced); err != nil {
		return Task{}, err
	}
	syncedAt, err := parseRequiredTime(synced)
	if err != nil {
		return Task{}, err
	}
	out.ScopeYear = parseNullableInt(year)
	out.ScopeWeek = parseNullableInt(week)
	out.ScopeMonth = parseNullableInt(month)
	out.SyncedAt = syncedAt
	return out, nil
}

func scanEntry(s scanner) (CollectionEntry, error) {
	var out CollectionEntry
	var checked int
	var synced string
	if err := s.Scan(&out.CollectionID, &out.Position, &out.EntryID, &out.Name, &checked, &synced); err != nil {
		return CollectionEntry{}, err
	}
	syncedAt, err := parseRequiredTime(synced)
	if err != nil {
		return CollectionEntry{}, err
	}
	out.Checked = checked == 1
	out.SyncedAt = syncedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
