package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tahfiz/tahfiz/internal/quiz"
)

// ResultRepo appends session results and mastery records for one player.
type ResultRepo struct {
	db       *sql.DB
	playerID string
}

// AppendResult stores one finished session.
func (r *ResultRepo) AppendResult(ctx context.Context, rec quiz.ResultRecord) error {
	errJSON, err := json.Marshal(rec.ErrorLog)
	if err != nil {
		return fmt.Errorf("encode error log: %w", err)
	}
	if rec.ErrorLog == nil {
		errJSON = []byte("[]")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO quiz_results (
			session_id, player_id, page, score, total_questions,
			xp_earned, duration_secs, error_log, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, r.playerID, rec.PageNumber, rec.Score, rec.TotalQuestions,
		rec.XPEarned, rec.DurationSecs, string(errJSON), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("append result: %w", err)
	}
	return nil
}

// RecordMastery records a perfect run over a page, keeping the best (lowest)
// duration across runs.
func (r *ResultRepo) RecordMastery(ctx context.Context, page, durationSecs int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mastery_records (player_id, page, best_duration_secs, achieved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(player_id, page) DO UPDATE SET
			best_duration_secs = MIN(best_duration_secs, excluded.best_duration_secs)`,
		r.playerID, page, durationSecs, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("record mastery: %w", err)
	}
	return nil
}

// Recent returns the player's most recent results, newest first.
func (r *ResultRepo) Recent(ctx context.Context, limit int) ([]quiz.ResultRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id, page, score, total_questions, xp_earned,
		       duration_secs, error_log
		FROM quiz_results WHERE player_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`, r.playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []quiz.ResultRecord
	for rows.Next() {
		var (
			rec     quiz.ResultRecord
			errJSON string
		)
		err := rows.Scan(&rec.SessionID, &rec.PageNumber, &rec.Score,
			&rec.TotalQuestions, &rec.XPEarned, &rec.DurationSecs, &errJSON)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if err := json.Unmarshal([]byte(errJSON), &rec.ErrorLog); err != nil {
			return nil, fmt.Errorf("decode error log: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// MasteredPages returns the pages the player has mastered, ascending.
func (r *ResultRepo) MasteredPages(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT page FROM mastery_records
		WHERE player_id = ? ORDER BY page`, r.playerID)
	if err != nil {
		return nil, fmt.Errorf("query mastery: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var page int
		if err := rows.Scan(&page); err != nil {
			return nil, fmt.Errorf("scan mastery: %w", err)
		}
		out = append(out, page)
	}
	return out, rows.Err()
}

var _ quiz.ResultSink = (*ResultRepo)(nil)
