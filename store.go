package storyframe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eringen/storyframe/source"
)

// Store is the SQLite mirror written by the snapshot command. It keeps the
// raw document and preview payloads so the site can be served without the
// content API, plus metadata for generated card thumbnails. It implements
// source.Source.
type Store struct {
	db *sql.DB
}

// StoredDocument is one mirrored document.
type StoredDocument struct {
	Slug        string
	ID          string
	Title       string
	PublishedAt time.Time
	Payload     []byte // document payload
	Preview     []byte // preview payload, same shape as list items
	SyncedAt    time.Time
}

// Thumbnail describes a generated card image under the static dir.
type Thumbnail struct {
	Slug      string
	Filename  string
	Width     int
	Height    int
	SourceURL string
	CreatedAt time.Time
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// busy_timeout goes in the DSN so every pooled connection gets it.
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	// WAL lets the server read while a snapshot writes; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS documents (
    slug TEXT PRIMARY KEY,
    id TEXT NOT NULL,
    title TEXT NOT NULL,
    published_at TEXT NOT NULL,
    payload TEXT NOT NULL,
    preview TEXT NOT NULL,
    synced_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_published ON documents(published_at DESC);
CREATE TABLE IF NOT EXISTS thumbnails (
    slug TEXT PRIMARY KEY,
    filename TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    source_url TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`)
	return err
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// SaveDocument inserts or replaces a mirrored document.
func (s *Store) SaveDocument(ctx context.Context, d StoredDocument) error {
	if d.Slug == "" {
		return fmt.Errorf("storyframe: save document: empty slug")
	}
	if d.SyncedAt.IsZero() {
		d.SyncedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO documents (slug, id, title, published_at, payload, preview, synced_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET
    id = excluded.id,
    title = excluded.title,
    published_at = excluded.published_at,
    payload = excluded.payload,
    preview = excluded.preview,
    synced_at = excluded.synced_at`,
		d.Slug, d.ID, d.Title, formatTime(d.PublishedAt), string(d.Payload), string(d.Preview), formatTime(d.SyncedAt))
	return err
}

// Document implements source.Source.
func (s *Store) Document(ctx context.Context, slug string) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM documents WHERE slug = ?`, slug).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, source.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(payload), nil
}

// List implements source.Source, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]byte, error) {
	query := `SELECT preview FROM documents ORDER BY published_at DESC, slug`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []string
	for rows.Next() {
		var preview string
		if err := rows.Scan(&preview); err != nil {
			return nil, err
		}
		parts = append(parts, preview)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return []byte("[" + strings.Join(parts, ",") + "]"), nil
}

// ListDocuments returns mirrored document metadata and previews without the
// document payloads.
func (s *Store) ListDocuments(ctx context.Context) ([]StoredDocument, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug, id, title, published_at, preview, synced_at FROM documents ORDER BY published_at DESC, slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []StoredDocument
	for rows.Next() {
		var d StoredDocument
		var published, preview, synced string
		if err := rows.Scan(&d.Slug, &d.ID, &d.Title, &published, &preview, &synced); err != nil {
			return nil, err
		}
		d.Preview = []byte(preview)
		d.PublishedAt = parseTime(published)
		d.SyncedAt = parseTime(synced)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Prune deletes documents and thumbnails whose slug is not in keep and
// returns the number of documents removed.
func (s *Store) Prune(ctx context.Context, keep []string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `CREATE TEMP TABLE IF NOT EXISTS keep_slugs (slug TEXT PRIMARY KEY)`); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM keep_slugs`); err != nil {
		return 0, err
	}
	for _, slug := range keep {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO keep_slugs (slug) VALUES (?)`, slug); err != nil {
			return 0, err
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE slug NOT IN (SELECT slug FROM keep_slugs)`)
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM thumbnails WHERE slug NOT IN (SELECT slug FROM keep_slugs)`); err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, tx.Commit()
}

// SaveThumbnail inserts or replaces thumbnail metadata.
func (s *Store) SaveThumbnail(ctx context.Context, t Thumbnail) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO thumbnails (slug, filename, width, height, source_url, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET
    filename = excluded.filename,
    width = excluded.width,
    height = excluded.height,
    source_url = excluded.source_url,
    created_at = excluded.created_at`,
		t.Slug, t.Filename, t.Width, t.Height, t.SourceURL, formatTime(t.CreatedAt))
	return err
}

// Thumbnails returns all thumbnails keyed by slug.
func (s *Store) Thumbnails(ctx context.Context) (map[string]Thumbnail, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug, filename, width, height, source_url, created_at FROM thumbnails`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]Thumbnail)
	for rows.Next() {
		var t Thumbnail
		var created string
		if err := rows.Scan(&t.Slug, &t.Filename, &t.Width, &t.Height, &t.SourceURL, &created); err != nil {
			return nil, err
		}
		t.CreatedAt = parseTime(created)
		out[t.Slug] = t
	}
	return out, rows.Err()
}
