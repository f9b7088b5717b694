package data

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb/v2"
)

const schema = `
CREATE TABLE IF NOT EXISTS stories (
	id          VARCHAR PRIMARY KEY,
	title       VARCHAR NOT NULL,
	genre       VARCHAR,
	mood        VARCHAR,
	style       VARCHAR,
	plot        VARCHAR,
	cast_json   VARCHAR NOT NULL,
	pages_json  VARCHAR NOT NULL,
	created_at  TIMESTAMP NOT NULL,
	is_favorite BOOLEAN NOT NULL DEFAULT false
);
`

// InitDuckDB opens (creating if needed) the story database at path and
// ensures the schema exists.
func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// Repository is the durable store for completed stories. Saves are whole-
// record replacements keyed by story ID; last writer wins.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// OpenRepository opens the database at path and returns a repository over it.
func OpenRepository(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// SaveStory writes the complete story record, replacing any existing record
// with the same ID.
func (r *Repository) SaveStory(story *Story) error {
	if story == nil {
		return fmt.Errorf("story cannot be nil")
	}
	if story.ID == "" {
		return fmt.Errorf("story ID cannot be empty")
	}

	castJSON, err := json.Marshal(story.Cast)
	if err != nil {
		return fmt.Errorf("failed to encode cast: %w", err)
	}
	pagesJSON, err := json.Marshal(story.Pages)
	if err != nil {
		return fmt.Errorf("failed to encode pages: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO stories (id, title, genre, mood, style, plot, cast_json, pages_json, created_at, is_favorite)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			genre = excluded.genre,
			mood = excluded.mood,
			style = excluded.style,
			plot = excluded.plot,
			cast_json = excluded.cast_json,
			pages_json = excluded.pages_json,
			created_at = excluded.created_at,
			is_favorite = excluded.is_favorite`,
		story.ID, story.Title, story.Genre, story.Mood, story.Style, story.Plot,
		string(castJSON), string(pagesJSON), story.CreatedAt, story.IsFavorite,
	)
	if err != nil {
		return fmt.Errorf("failed to save story: %w", err)
	}
	return nil
}

// GetStory returns the story with the given ID, or nil if it does not exist.
func (r *Repository) GetStory(id string) (*Story, error) {
	row := r.db.QueryRow(`
		SELECT id, title, genre, mood, style, plot, cast_json, pages_json, created_at, is_favorite
		FROM stories WHERE id = ?`, id)

	story, err := scanStory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return story, nil
}

// ListStories returns all stories, most recently created first.
func (r *Repository) ListStories() ([]*Story, error) {
	rows, err := r.db.Query(`
		SELECT id, title, genre, mood, style, plot, cast_json, pages_json, created_at, is_favorite
		FROM stories ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	defer rows.Close()

	var stories []*Story
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, story)
	}
	return stories, rows.Err()
}

// DeleteStory removes the story with the given ID. Deleting an ID that is
// not present is a no-op.
func (r *Repository) DeleteStory(id string) error {
	if _, err := r.db.Exec(`DELETE FROM stories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}
	return nil
}

// SetFavorite toggles the favorite flag on a stored story.
func (r *Repository) SetFavorite(id string, favorite bool) error {
	if _, err := r.db.Exec(`UPDATE stories SET is_favorite = ? WHERE id = ?`, favorite, id); err != nil {
		return fmt.Errorf("failed to update favorite: %w", err)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanStory(row scannable) (*Story, error) {
	var (
		story     Story
		castJSON  string
		pagesJSON string
	)
	err := row.Scan(&story.ID, &story.Title, &story.Genre, &story.Mood, &story.Style,
		&story.Plot, &castJSON, &pagesJSON, &story.CreatedAt, &story.IsFavorite)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(castJSON), &story.Cast); err != nil {
		return nil, fmt.Errorf("failed to decode cast: %w", err)
	}
	if err := json.Unmarshal([]byte(pagesJSON), &story.Pages); err != nil {
		return nil, fmt.Errorf("failed to decode pages: %w", err)
	}
	return &story, nil
}
