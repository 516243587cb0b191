package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite"
)

// SQLiteClient is a local, single-file CxdbClient backed by modernc.org/sqlite.
//
// It is the dev-mode stand-in for the real CXDB service: enough to give the
// `doctor` CLI subcommand a concrete store to health-check and a place to
// record published type bundles. WAL mode is enabled for concurrent reads,
// following the teacher's SQLite store setup.
type SQLiteClient struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewSQLiteClient opens (creating if needed) a SQLite database at path and
// migrates its schema. Pass ":memory:" for an ephemeral database.
func NewSQLiteClient(path string) (*SQLiteClient, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite connection: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	c := &SQLiteClient{db: db, path: path}
	if err := c.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func (c *SQLiteClient) migrate() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS type_bundles (
			id TEXT PRIMARY KEY,
			content_hash TEXT NOT NULL,
			version TEXT NOT NULL,
			published_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// HealthCheck confirms the database connection is alive and the schema is
// present.
func (c *SQLiteClient) HealthCheck(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping failed: %w", err)
	}
	var name string
	err := c.db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name='type_bundles'`).Scan(&name)
	if err != nil {
		return fmt.Errorf("type_bundles table missing: %w", err)
	}
	return nil
}

// PublishTypeBundle records a new type bundle for version, content-hashed
// with blake3 and identified by a ULID so bundles sort chronologically.
func (c *SQLiteClient) PublishTypeBundle(ctx context.Context, version string) (TypeBundle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := ulid.Make().String()
	hash := blake3.Sum256([]byte(version + id))
	bundle := TypeBundle{
		ID:          id,
		ContentHash: fmt.Sprintf("%x", hash),
		Version:     version,
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO type_bundles (id, content_hash, version) VALUES (?, ?, ?)`,
		bundle.ID, bundle.ContentHash, bundle.Version,
	)
	if err != nil {
		return TypeBundle{}, fmt.Errorf("publish type bundle: %w", err)
	}
	return bundle, nil
}

// Close releases the underlying database connection.
func (c *SQLiteClient) Close() error {
	return c.db.Close()
}

var _ CxdbClient = (*SQLiteClient)(nil)
