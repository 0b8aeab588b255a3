package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"GlobalPulse/internal/domain"
	"GlobalPulse/internal/ports"
)

// PostgresRepository persists daily records into Postgres, one row per
// calendar day.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.RecordStore = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the daily_records table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return nil
	}

	schema := `CREATE TABLE IF NOT EXISTS daily_records (
        record_date  DATE PRIMARY KEY,
        display_date TEXT NOT NULL,
        mood_word    TEXT NOT NULL,
        stories      JSONB NOT NULL,
        created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SaveRecord upserts the record for its date; reruns overwrite the day.
func (r *PostgresRepository) SaveRecord(ctx context.Context, record domain.DailyRecord) error {
	if r.db == nil {
		return nil
	}

	stories, err := json.Marshal(record.Stories)
	if err != nil {
		return fmt.Errorf("marshal stories: %w", err)
	}

	query, args, err := sq.Insert("daily_records").
		Columns("record_date", "display_date", "mood_word", "stories").
		Values(record.Date, record.DisplayDate, record.MoodWord, stories).
		Suffix(`ON CONFLICT (record_date) DO UPDATE
                SET display_date = EXCLUDED.display_date,
                    mood_word = EXCLUDED.mood_word,
                    stories = EXCLUDED.stories,
                    updated_at = NOW()`).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}

	return nil
}

// RecentMoodWords returns the mood words of the most recently dated
// records, newest first.
func (r *PostgresRepository) RecentMoodWords(ctx context.Context, limit int) ([]string, error) {
	if r.db == nil || limit <= 0 {
		return nil, nil
	}

	query, args, err := sq.Select("mood_word").
		From("daily_records").
		OrderBy("record_date DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mood words: %w", err)
	}

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan mood word: %w", err)
		}
		words = append(words, word)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return words, nil
}
