package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"splitcaster/internal/core/model"
	"splitcaster/internal/core/timekeeper"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const historyFileName = "history.db"

// Attempt is one finished run as kept in the history database.
type Attempt struct {
	ID           string
	Route        string
	Game         string
	FinishedAt   time.Time
	Total        model.NullDuration
	PersonalBest bool
	Golds        int
	Splits       []AttemptSplit
}

// AttemptSplit is one closed split of an attempt.
type AttemptSplit struct {
	Name       string
	Elapsed    model.NullDuration
	Cumulative model.NullDuration
	Gold       bool
}

// AttemptFromRun builds the history record for the run that route has just
// finished.
func AttemptFromRun(route model.Route, finishedAt time.Time) Attempt {
	attempt := Attempt{
		ID:         uuid.New().String(),
		Route:      route.Name,
		Game:       route.GameName,
		FinishedAt: finishedAt.UTC(),
		Total:      model.TotalTime(route.CurrentRun),
		Splits:     make([]AttemptSplit, 0, len(route.CurrentRun)),
	}
	for _, split := range route.CurrentRun {
		if split.IsGold {
			attempt.Golds++
		}
		attempt.Splits = append(attempt.Splits, AttemptSplit{
			Name:       split.Name,
			Elapsed:    split.Elapsed(),
			Cumulative: split.CumulativeElapsed(),
			Gold:       split.IsGold,
		})
	}
	attempt.PersonalBest = route.CurrentRunIsBest()
	return attempt
}

// HistoryPath returns the history database location in configDir.
func HistoryPath(configDir string) string {
	return filepath.Join(configDir, historyFileName)
}

// History stores finished attempts in SQLite.
type History struct {
	db *sql.DB
}

// OpenHistory opens or creates the history database at dbPath.
func OpenHistory(dbPath string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	history := &History{db: db}
	if err := history.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return history, nil
}

// Close releases the database.
func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS attempts (
  id TEXT PRIMARY KEY,
  route TEXT NOT NULL,
  game TEXT NOT NULL,
  finished_at INTEGER NOT NULL,
  total_seconds REAL,
  personal_best INTEGER NOT NULL,
  golds INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS attempt_splits (
  attempt_id TEXT NOT NULL REFERENCES attempts(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  elapsed_seconds REAL,
  cumulative_seconds REAL,
  gold INTEGER NOT NULL,
  PRIMARY KEY (attempt_id, position)
);
CREATE INDEX IF NOT EXISTS attempts_route_finished ON attempts(route, finished_at);
`
	if _, err := h.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create history tables: %w", err)
	}
	return nil
}

// Record appends an attempt with its splits in one transaction.
func (h *History) Record(ctx context.Context, attempt Attempt) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
INSERT INTO attempts (id, route, game, finished_at, total_seconds, personal_best, golds)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		attempt.ID,
		attempt.Route,
		attempt.Game,
		attempt.FinishedAt.UnixNano(),
		nullSeconds(attempt.Total),
		attempt.PersonalBest,
		attempt.Golds,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	for position, split := range attempt.Splits {
		_, err := tx.ExecContext(ctx, `
INSERT INTO attempt_splits (attempt_id, position, name, elapsed_seconds, cumulative_seconds, gold)
VALUES (?, ?, ?, ?, ?, ?)`,
			attempt.ID,
			position,
			split.Name,
			nullSeconds(split.Elapsed),
			nullSeconds(split.Cumulative),
			split.Gold,
		)
		if err != nil {
			return fmt.Errorf("insert attempt split %d: %w", position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit attempt: %w", err)
	}
	return nil
}

// Recent returns up to limit attempts of route, newest first. An empty route
// name matches every route.
func (h *History) Recent(ctx context.Context, route string, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := h.db.QueryContext(ctx, `
SELECT id, route, game, finished_at, total_seconds, personal_best, golds
FROM attempts
WHERE ? = '' OR route = ?
ORDER BY finished_at DESC, rowid DESC
LIMIT ?`, route, route, limit)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var (
			attempt    Attempt
			finishedAt int64
			total      sql.NullFloat64
		)
		if err := rows.Scan(&attempt.ID, &attempt.Route, &attempt.Game, &finishedAt, &total, &attempt.PersonalBest, &attempt.Golds); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempt.FinishedAt = time.Unix(0, finishedAt).UTC()
		attempt.Total = fromNullSeconds(total)
		attempts = append(attempts, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}

	for index := range attempts {
		splits, err := h.splits(ctx, attempts[index].ID)
		if err != nil {
			return nil, err
		}
		attempts[index].Splits = splits
	}
	return attempts, nil
}

func (h *History) splits(ctx context.Context, attemptID string) ([]AttemptSplit, error) {
	rows, err := h.db.QueryContext(ctx, `
SELECT name, elapsed_seconds, cumulative_seconds, gold
FROM attempt_splits
WHERE attempt_id = ?
ORDER BY position`, attemptID)
	if err != nil {
		return nil, fmt.Errorf("query attempt splits: %w", err)
	}
	defer rows.Close()

	var splits []AttemptSplit
	for rows.Next() {
		var (
			split      AttemptSplit
			elapsed    sql.NullFloat64
			cumulative sql.NullFloat64
		)
		if err := rows.Scan(&split.Name, &elapsed, &cumulative, &split.Gold); err != nil {
			return nil, fmt.Errorf("scan attempt split: %w", err)
		}
		split.Elapsed = fromNullSeconds(elapsed)
		split.Cumulative = fromNullSeconds(cumulative)
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempt splits: %w", err)
	}
	return splits, nil
}

func nullSeconds(value model.NullDuration) sql.NullFloat64 {
	if !value.Valid {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: value.Duration.Seconds(), Valid: true}
}

func fromNullSeconds(value sql.NullFloat64) model.NullDuration {
	if !value.Valid {
		return model.NullDuration{}
	}
	return duration(&value.Float64)
}

// RecordFinishedRuns appends every run that finishes on events until the
// channel closes. Failures go to onError and never stop the loop.
func (h *History) RecordFinishedRuns(ctx context.Context, events <-chan timekeeper.Event, onError func(error)) {
	for event := range events {
		if event.Type != timekeeper.EventStateChange ||
			event.Previous != model.PhaseRunning || event.State.Phase != model.PhaseStopped {
			continue
		}
		if err := h.Record(ctx, AttemptFromRun(event.State.Route, event.At)); err != nil && onError != nil {
			onError(err)
		}
	}
}
