package questions

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/nedz/interviewbot/core/logger"
)

const (
	selectQuestionsSQL = `SELECT text FROM questions ORDER BY position, id`
	countQuestionsSQL  = `SELECT COUNT(*) FROM questions`
	insertQuestionSQL  = `INSERT INTO questions (position, text) VALUES ($1, $2) ON CONFLICT (text) DO NOTHING`
)

// LoadDB reads the question list from the questions table.
func LoadDB(ctx context.Context, db *sqlx.DB) (List, error) {
	if db == nil {
		return List{}, fmt.Errorf("questions: nil database")
	}
	var raw []string
	if err := db.SelectContext(ctx, &raw, selectQuestionsSQL); err != nil {
		return List{}, fmt.Errorf("questions: select: %w", err)
	}
	items, dups := normalize(raw)
	if len(items) == 0 {
		return List{}, ErrNoQuestions
	}
	logLoaded("database", "questions", len(items), dups)
	return List{items: items}, nil
}

// Seed inserts the list into an empty questions table. A non-empty table is left untouched.
func Seed(ctx context.Context, db *sqlx.DB, list List) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("questions: nil database")
	}
	var existing int
	if err := db.GetContext(ctx, &existing, countQuestionsSQL); err != nil {
		return 0, fmt.Errorf("questions: count: %w", err)
	}
	if existing > 0 {
		logger.Debug(ctx, "db.seed", "seed.skip",
			slog.String("status", "skip"),
			slog.Int("count", existing),
		)
		return 0, nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("questions: begin: %w", err)
	}
	inserted := 0
	for i, q := range list.items {
		res, err := tx.ExecContext(ctx, insertQuestionSQL, i, q)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("questions: insert #%d: %w", i, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("questions: commit: %w", err)
	}
	logger.Info(ctx, "db.seed", "seed.questions",
		slog.String("status", "ok"),
		slog.Int("count", inserted),
	)
	return inserted, nil
}

func logLoaded(source, origin string, count, dups int) {
	attrs := []slog.Attr{
		slog.String("status", "ok"),
		slog.String("source", source),
		slog.String("origin", origin),
		slog.Int("count", count),
	}
	if dups > 0 {
		attrs = append(attrs, slog.Int("duplicates", dups))
	}
	logger.Info(logger.Background(), "questions", "questions.loaded", attrs...)
}
