package sqlite

import (
	"context"
	"database/sql"
	"time"

	"smart-share-todo/internal/errors"
	"smart-share-todo/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository is a durable string-keyed, string-valued store.
type Repository interface {
	// Get returns the value for key, or a not_found AppError.
	Get(ctx context.Context, key string) (string, error)
	GetEntry(ctx context.Context, key string) (*Entry, error)
	// Set overwrites the value for key.
	Set(ctx context.Context, key string, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists stored keys in ascending order.
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Options tunes per-call timeouts. Zero values mean no timeout.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// SQLiteRepository implements Repository on a single table.
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
	now  func() time.Time
}

// New opens (or creates) the database at dbPath with no timeouts.
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions opens the database at dbPath and runs pending migrations.
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// Get retrieves the value stored under key
func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	entry, err := r.GetEntry(ctx, key)
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// GetEntry retrieves the value and its last write time
func (r *SQLiteRepository) GetEntry(ctx context.Context, key string) (*Entry, error) {
	ctx, cancel := r.withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `SELECT key, value, updated_at FROM kv_store WHERE key = ?`
	return QuerySingle(ctx, r.db, query, ScanEntry, "key", key, key)
}

// Set inserts or replaces the value stored under key
func (r *SQLiteRepository) Set(ctx context.Context, key string, value string) error {
	ctx, cancel := r.withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	query := `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	return Execute(ctx, r.db, "set "+key, query, key, value, FormatTimeForDB(r.now()))
}

// Delete removes the value stored under key
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	ctx, cancel := r.withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	return Execute(ctx, r.db, "delete "+key, `DELETE FROM kv_store WHERE key = ?`, key)
}

// Keys lists every stored key in ascending order
func (r *SQLiteRepository) Keys(ctx context.Context) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT key FROM kv_store ORDER BY key`)
	if err != nil {
		return nil, HandleStorageError("list keys", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, HandleStorageError("scan key", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, HandleStorageError("list keys", err)
	}
	return keys, nil
}
