package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"
)

//go:embed *.sql
var embedded embed.FS

// Script is one numbered schema change with its rollback
type Script struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Runner applies the embedded scripts to a database and records each applied
// version in schema_versions.
type Runner struct {
	db      *sql.DB
	scripts []Script
	now     func() time.Time
}

// NewRunner loads the embedded scripts for db
func NewRunner(db *sql.DB) (*Runner, error) {
	scripts, err := Load(embedded)
	if err != nil {
		return nil, err
	}
	return &Runner{db: db, scripts: scripts, now: time.Now}, nil
}

// RunMigrations brings db up to the latest schema
func RunMigrations(ctx context.Context, db *sql.DB) error {
	runner, err := NewRunner(db)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	_, err = runner.Up(ctx)
	return err
}

// Up applies every pending script in version order and returns the versions
// it applied. A database written by a newer build is refused.
func (r *Runner) Up(ctx context.Context) ([]int, error) {
	if err := r.ensureVersionTable(ctx); err != nil {
		return nil, err
	}

	applied, err := r.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}
	if latest := r.Latest(); len(applied) > 0 && applied[len(applied)-1] > latest {
		return nil, fmt.Errorf("database schema version %d is newer than this build (%d)",
			applied[len(applied)-1], latest)
	}

	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	var ran []int
	for _, script := range r.scripts {
		if done[script.Version] {
			continue
		}
		err := r.inTx(ctx, script.Up, `INSERT INTO schema_versions (version, name, applied_at) VALUES (?, ?, ?)`,
			script.Version, script.Name, r.now().UTC().Format(time.RFC3339))
		if err != nil {
			return ran, fmt.Errorf("failed to apply migration %d (%s): %w", script.Version, script.Name, err)
		}
		ran = append(ran, script.Version)
	}
	return ran, nil
}

// Down rolls back the most recently applied script. It returns the version
// rolled back, or 0 when nothing was applied.
func (r *Runner) Down(ctx context.Context) (int, error) {
	current, err := r.Version(ctx)
	if err != nil || current == 0 {
		return 0, err
	}

	script, ok := r.find(current)
	if !ok {
		return 0, fmt.Errorf("no script for applied version %d", current)
	}
	if err := r.inTx(ctx, script.Down, `DELETE FROM schema_versions WHERE version = ?`, current); err != nil {
		return 0, fmt.Errorf("failed to roll back migration %d (%s): %w", current, script.Name, err)
	}
	return current, nil
}

// Version is the highest applied version, 0 for a fresh database
func (r *Runner) Version(ctx context.Context) (int, error) {
	if err := r.ensureVersionTable(ctx); err != nil {
		return 0, err
	}
	applied, err := r.appliedVersions(ctx)
	if err != nil || len(applied) == 0 {
		return 0, err
	}
	return applied[len(applied)-1], nil
}

// Latest is the highest version this build knows about
func (r *Runner) Latest() int {
	if len(r.scripts) == 0 {
		return 0
	}
	return r.scripts[len(r.scripts)-1].Version
}

func (r *Runner) find(version int) (Script, bool) {
	for _, s := range r.scripts {
		if s.Version == version {
			return s, true
		}
	}
	return Script{}, false
}

func (r *Runner) ensureVersionTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_versions (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_versions table: %w", err)
	}
	return nil
}

func (r *Runner) appliedVersions(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT version FROM schema_versions ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema versions: %w", err)
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// inTx runs a script and its bookkeeping statement atomically
func (r *Runner) inTx(ctx context.Context, script, record string, args ...interface{}) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, record, args...); err != nil {
		return err
	}
	return tx.Commit()
}

// Load reads NNNNNN_name.up.sql / .down.sql pairs from fsys, sorted by version.
// Files without a numeric prefix are ignored.
func Load(fsys fs.FS) ([]Script, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	var scripts []Script
	for _, entry := range entries {
		file := entry.Name()
		if !strings.HasSuffix(file, ".up.sql") {
			continue
		}
		version := extractVersion(file)
		if version == 0 {
			continue
		}

		up, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, err
		}
		down, err := fs.ReadFile(fsys, strings.TrimSuffix(file, ".up.sql")+".down.sql")
		if err != nil {
			return nil, fmt.Errorf("migration %d has no down script: %w", version, err)
		}

		scripts = append(scripts, Script{
			Version: version,
			Name:    extractName(file),
			Up:      string(up),
			Down:    string(down),
		})
	}

	sort.Slice(scripts, func(i, j int) bool { return scripts[i].Version < scripts[j].Version })
	for i := 1; i < len(scripts); i++ {
		if scripts[i].Version == scripts[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", scripts[i].Version)
		}
	}
	return scripts, nil
}

func extractVersion(filename string) int {
	var version int
	fmt.Sscanf(filename, "%d_", &version)
	return version
}

func extractName(filename string) string {
	name := strings.TrimSuffix(filename, ".up.sql")
	if i := strings.Index(name, "_"); i >= 0 {
		return name[i+1:]
	}
	return name
}
