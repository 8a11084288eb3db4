// Package history stores the words handed out by a word source.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	maxWordLength          = 64
	maxFailureReasonLength = 1024
)

// Draw is a persisted word draw.
type Draw struct {
	ID            int64     `db:"id" yaml:"id" json:"id"`
	Word          string    `db:"word" yaml:"word" json:"word"`
	Origin        string    `db:"origin" yaml:"origin" json:"origin"`
	FailureReason string    `db:"failure_reason" yaml:"failure_reason,omitempty" json:"failure_reason,omitempty"`
	DrawnAt       time.Time `db:"drawn_at" yaml:"drawn_at" json:"drawn_at"`
}

// Repository defines operations for managing word draws.
type Repository interface {
	Save(ctx context.Context, draw *Draw) error
	// FindRecent returns at most limit draws, newest first.
	FindRecent(ctx context.Context, limit int) ([]Draw, error)
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Save inserts the draw and sets its ID.
func (r *DBRepository) Save(ctx context.Context, draw *Draw) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO word_draws (word, origin, failure_reason, drawn_at) VALUES (?, ?, ?, ?)`,
		truncate(draw.Word, maxWordLength), draw.Origin, truncate(draw.FailureReason, maxFailureReasonLength), draw.DrawnAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert word_draw) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId > %w", err)
	}
	draw.ID = id
	return nil
}

func (r *DBRepository) FindRecent(ctx context.Context, limit int) ([]Draw, error) {
	var draws []Draw
	if err := r.db.SelectContext(ctx, &draws,
		"SELECT id, word, origin, failure_reason, drawn_at FROM word_draws ORDER BY drawn_at DESC, id DESC LIMIT ?",
		limit); err != nil {
		return nil, fmt.Errorf("db.SelectContext(word_draws) > %w", err)
	}
	return draws, nil
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length])
}
