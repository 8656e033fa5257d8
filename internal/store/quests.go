package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tahfiz/tahfiz/internal/quests"
)

// QuestRepo persists per-player quest progress.
type QuestRepo struct {
	db *sql.DB
}

// PlayerProgress loads every stored progress row for a player.
func (r *QuestRepo) PlayerProgress(ctx context.Context, playerID string) ([]quests.Progress, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT quest_id, progress, claimed
		FROM quest_progress WHERE player_id = ?
		ORDER BY quest_id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("query quest progress: %w", err)
	}
	defer rows.Close()

	var out []quests.Progress
	for rows.Next() {
		var p quests.Progress
		if err := rows.Scan(&p.QuestID, &p.Progress, &p.Claimed); err != nil {
			return nil, fmt.Errorf("scan quest progress: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// BatchUpdateProgress upserts the given rows in one transaction.
func (r *QuestRepo) BatchUpdateProgress(ctx context.Context, playerID string, updates []quests.Update) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quest_progress (player_id, quest_id, progress, claimed)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(player_id, quest_id) DO UPDATE SET
			progress = excluded.progress,
			claimed = excluded.claimed`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, u := range updates {
		if _, err := stmt.ExecContext(ctx, playerID, u.QuestID, u.Progress, u.Claimed); err != nil {
			return fmt.Errorf("update quest %s: %w", u.QuestID, err)
		}
	}
	return tx.Commit()
}

// MarkClaimed flips the claimed flag for one quest.
func (r *QuestRepo) MarkClaimed(ctx context.Context, playerID, questID string) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO quest_progress (player_id, quest_id, progress, claimed)
		VALUES (?, ?, 0, 1)
		ON CONFLICT(player_id, quest_id) DO UPDATE SET claimed = 1`,
		playerID, questID)
	if err != nil {
		return fmt.Errorf("mark claimed: %w", err)
	}
	if _, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("mark claimed: %w", err)
	}
	return nil
}
