package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/internal/store/sqlite/migrations"
)

// ErrNotFound is returned when no summary matches.
var ErrNotFound = errors.New("summary not found")

// Store keeps summaries per user.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) summaries.db under dataDir and migrates it.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "summaries.db")

	// WAL so the HTTP server and the inbox watcher can write concurrently
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_summaries.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores a finished result for userID. Saving the same ID again
// replaces the row.
func (s *Store) Save(ctx context.Context, userID string, r domain.PipelineResult) error {
	if r.ID == "" {
		return fmt.Errorf("summary id is required")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO summaries (id, user_id, title, content, transcript, pdf_path, docx_path, file_name, style, language, path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			transcript = excluded.transcript,
			pdf_path = excluded.pdf_path,
			docx_path = excluded.docx_path
	`, r.ID, userID, r.Title, r.Content, nullString(r.Transcript), nullString(r.PDFPath), nullString(r.DocxPath),
		r.FileName, string(r.Style), string(r.Language), string(r.Path), r.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving summary: %w", err)
	}
	return nil
}

const selectColumns = `id, title, content, transcript, pdf_path, docx_path, file_name, style, language, path, created_at`

// Get returns one summary owned by userID.
func (s *Store) Get(ctx context.Context, userID, id string) (domain.PipelineResult, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM summaries WHERE id = ? AND user_id = ?`, id, userID)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PipelineResult{}, ErrNotFound
	}
	if err != nil {
		return domain.PipelineResult{}, fmt.Errorf("getting summary: %w", err)
	}
	return r, nil
}

// ListByUser returns the newest summaries first. limit <= 0 means 50.
func (s *Store) ListByUser(ctx context.Context, userID string, limit int) ([]domain.PipelineResult, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM summaries WHERE user_id = ? ORDER BY created_at DESC, id LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing summaries: %w", err)
	}
	defer rows.Close()

	out := []domain.PipelineResult{}
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (domain.PipelineResult, error) {
	var (
		r                             domain.PipelineResult
		transcript, pdfPath, docxPath sql.NullString
		style, language, path         string
	)
	if err := row.Scan(&r.ID, &r.Title, &r.Content, &transcript, &pdfPath, &docxPath,
		&r.FileName, &style, &language, &path, &r.CreatedAt); err != nil {
		return domain.PipelineResult{}, err
	}
	r.Transcript = stringPtr(transcript)
	r.PDFPath = stringPtr(pdfPath)
	r.DocxPath = stringPtr(docxPath)
	r.Style = domain.Style(style)
	r.Language = domain.Language(language)
	r.Path = domain.PipelinePath(path)
	return r, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
