package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/akyairhashvil/pomodoro/internal/config"
	"github.com/akyairhashvil/pomodoro/internal/models"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

const defaultDBTimeout = config.DefaultDBTimeout

// Database wraps the SQLite connection backing tasks, sessions and settings.
type Database struct {
	DB     *sql.DB
	dbFile string
	log    zerolog.Logger
	now    func() time.Time
}

// Option configures a Database at Open time.
type Option func(*Database)

// WithLogger routes migration and store diagnostics to log.
func WithLogger(log zerolog.Logger) Option {
	return func(d *Database) { d.log = log }
}

// WithClock overrides the time source used for created_at and completed_at.
func WithClock(now func() time.Time) Option {
	return func(d *Database) { d.now = now }
}

// Open connects to the SQLite file at path, creating its directory, and applies
// pending migrations.
func Open(ctx context.Context, path string, opts ...Option) (*Database, error) {
	d := &Database{
		dbFile: path,
		log:    zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=%d", path, config.DefaultDBBusyTimeoutMS)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite serialises writers; a single connection keeps pragmas and
	// transactions on the same handle.
	db.SetMaxOpenConns(1)
	d.DB = db

	if err := d.withDBContext(ctx, func(ctx context.Context) error {
		return db.PingContext(ctx)
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := d.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	d.log.Debug().Str("path", path).Msg("database ready")
	return d, nil
}

// Path returns the database file location.
func (d *Database) Path() string {
	return d.dbFile
}

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// WithTx runs fn inside a transaction, rolling back when fn returns an error.
func (d *Database) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return rollbackWithLog(d.log, tx, err)
	}
	return tx.Commit()
}

func rollbackWithLog(log zerolog.Logger, tx *sql.Tx, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
		log.Error().Err(rbErr).Msg("rollback failed")
	}
	return err
}

func (d *Database) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (d *Database) withDBContext(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	return fn(ctx)
}

func withDBContextResult[T any](d *Database, ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	return fn(ctx)
}

func (d *Database) timestamp() string {
	return models.FormatTimestamp(d.now())
}
