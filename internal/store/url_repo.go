package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// URLRepository handles video source database operations
type URLRepository struct {
	db *DB
}

// NewURLRepository creates a new URL repository
func NewURLRepository(db *DB) *URLRepository {
	return &URLRepository{db: db}
}

// Create registers a source URL under a fresh identifier
func (r *URLRepository) Create(sourceURL string) (*VideoSource, error) {
	src := &VideoSource{
		ID:        newID(),
		SourceURL: sourceURL,
	}

	err := r.db.QueryRow(
		`INSERT INTO urls (id, source_url) VALUES ($1, $2) RETURNING created_at`,
		src.ID, src.SourceURL,
	).Scan(&src.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create url: %w", err)
	}

	return src, nil
}

// FindByID retrieves a video source by its identifier.
// Returns nil when the identifier is unknown.
func (r *URLRepository) FindByID(id string) (*VideoSource, error) {
	src := &VideoSource{}
	err := r.db.QueryRow(
		`SELECT id, source_url, created_at FROM urls WHERE id = $1`,
		id,
	).Scan(&src.ID, &src.SourceURL, &src.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get url: %w", err)
	}

	return src, nil
}

// List returns all registered sources, oldest first
func (r *URLRepository) List() ([]*VideoSource, error) {
	rows, err := r.db.Query(
		`SELECT id, source_url, created_at FROM urls ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list urls: %w", err)
	}
	defer rows.Close()

	var sources []*VideoSource
	for rows.Next() {
		src := &VideoSource{}
		if err := rows.Scan(&src.ID, &src.SourceURL, &src.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan url: %w", err)
		}
		sources = append(sources, src)
	}

	return sources, rows.Err()
}

// newID generates a random 16-character identifier
func newID() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
