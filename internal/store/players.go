package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tahfiz/tahfiz/internal/player"
)

// ErrNotFound reports a missing row.
var ErrNotFound = errors.New("store: not found")

// PlayerRepo reads and writes player progression records.
type PlayerRepo struct {
	db *sql.DB
}

// Load fetches a player by ID, or ErrNotFound.
func (r *PlayerRepo) Load(ctx context.Context, id string) (*player.State, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, xp, seasonal_xp, diamonds, energy_stars,
		       test_attempts, last_daily_reset, achievements,
		       total_quizzes_completed, total_correct_answers,
		       total_questions_answered, total_play_time_seconds
		FROM players WHERE id = ?`, id)

	var (
		p         player.State
		resetUnix int64
		achJSON   string
	)
	err := row.Scan(
		&p.ID, &p.Username, &p.XP, &p.SeasonalXP, &p.Diamonds, &p.EnergyStars,
		&p.TestAttempts, &resetUnix, &achJSON,
		&p.TotalQuizzesCompleted, &p.TotalCorrectAnswers,
		&p.TotalQuestionsAnswered, &p.TotalPlayTimeSeconds,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load player: %w", err)
	}

	if resetUnix > 0 {
		p.LastDailyReset = time.Unix(resetUnix, 0).UTC()
	}
	if err := json.Unmarshal([]byte(achJSON), &p.Achievements); err != nil {
		return nil, fmt.Errorf("decode achievements: %w", err)
	}
	return &p, nil
}

// LoadOrCreate fetches a player, creating a fresh record under the given
// username when none exists. The fresh record starts with the full daily
// attempt allowance.
func (r *PlayerRepo) LoadOrCreate(ctx context.Context, id, username string, dailyAttempts int) (*player.State, error) {
	p, err := r.Load(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	p = &player.State{
		ID:             id,
		Username:       username,
		TestAttempts:   dailyAttempts,
		LastDailyReset: time.Now().UTC(),
	}
	if err := r.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Save upserts the full player record.
func (r *PlayerRepo) Save(ctx context.Context, p *player.State) error {
	achJSON, err := json.Marshal(p.Achievements)
	if err != nil {
		return fmt.Errorf("encode achievements: %w", err)
	}
	if p.Achievements == nil {
		achJSON = []byte("[]")
	}

	var resetUnix int64
	if !p.LastDailyReset.IsZero() {
		resetUnix = p.LastDailyReset.Unix()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO players (
			id, username, xp, seasonal_xp, diamonds, energy_stars,
			test_attempts, last_daily_reset, achievements,
			total_quizzes_completed, total_correct_answers,
			total_questions_answered, total_play_time_seconds
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			xp = excluded.xp,
			seasonal_xp = excluded.seasonal_xp,
			diamonds = excluded.diamonds,
			energy_stars = excluded.energy_stars,
			test_attempts = excluded.test_attempts,
			last_daily_reset = excluded.last_daily_reset,
			achievements = excluded.achievements,
			total_quizzes_completed = excluded.total_quizzes_completed,
			total_correct_answers = excluded.total_correct_answers,
			total_questions_answered = excluded.total_questions_answered,
			total_play_time_seconds = excluded.total_play_time_seconds`,
		p.ID, p.Username, p.XP, p.SeasonalXP, p.Diamonds, p.EnergyStars,
		p.TestAttempts, resetUnix, string(achJSON),
		p.TotalQuizzesCompleted, p.TotalCorrectAnswers,
		p.TotalQuestionsAnswered, p.TotalPlayTimeSeconds,
	)
	if err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

// ResetSeasonalXP zeroes every player's seasonal counter, for season
// rollover.
func (r *PlayerRepo) ResetSeasonalXP(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE players SET seasonal_xp = 0`); err != nil {
		return fmt.Errorf("reset seasonal xp: %w", err)
	}
	return nil
}
