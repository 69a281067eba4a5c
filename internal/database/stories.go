package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/thinkscotty/trendstory/internal/models"
)

// SaveStory archives one generated story. Topics are stored as a JSON array.
func (db *DB) SaveStory(ctx context.Context, rec models.StoryRecord) error {
	topics, err := json.Marshal(rec.Topics)
	if err != nil {
		return fmt.Errorf("encode topics: %w", err)
	}
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO stories (id, source, theme, mood, story, topics, model_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Source, rec.Theme, rec.Mood, rec.Story, string(topics),
		rec.ModelName, rec.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
	return err
}

// GetStory returns one archived story by ID.
func (db *DB) GetStory(ctx context.Context, id string) (models.StoryRecord, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, source, theme, mood, story, topics, model_name, created_at
		FROM stories WHERE id = ?`, id)
	return scanStory(row)
}

// ListStories returns the most recent archived stories, optionally filtered
// by source. limit values below 1 fall back to 20.
func (db *DB) ListStories(ctx context.Context, source string, limit int) ([]models.StoryRecord, error) {
	if limit < 1 {
		limit = 20
	}

	var rows *sql.Rows
	var err error
	if source != "" {
		rows, err = db.conn.QueryContext(ctx, `
			SELECT id, source, theme, mood, story, topics, model_name, created_at
			FROM stories WHERE source = ?
			ORDER BY created_at DESC LIMIT ?`, source, limit)
	} else {
		rows, err = db.conn.QueryContext(ctx, `
			SELECT id, source, theme, mood, story, topics, model_name, created_at
			FROM stories
			ORDER BY created_at DESC LIMIT ?`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []models.StoryRecord
	for rows.Next() {
		rec, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, rec)
	}
	return stories, rows.Err()
}

// CountStories reports the total number of archived stories.
func (db *DB) CountStories(ctx context.Context) (int64, error) {
	var n int64
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM stories`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStory(row rowScanner) (models.StoryRecord, error) {
	var rec models.StoryRecord
	var topics, createdAt string
	err := row.Scan(&rec.ID, &rec.Source, &rec.Theme, &rec.Mood, &rec.Story,
		&topics, &rec.ModelName, &createdAt)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal([]byte(topics), &rec.Topics); err != nil {
		return rec, fmt.Errorf("decode topics: %w", err)
	}
	rec.CreatedAt, _ = parseTime(createdAt)
	return rec, nil
}
