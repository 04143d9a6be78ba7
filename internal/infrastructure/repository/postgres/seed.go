package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pitchside/matchday/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the starter roster and fixture calendar into an empty
// database. A database that already holds participants is left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM participants`); err != nil {
		return fmt.Errorf("count participants for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range memory.SeedParticipants() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO participants (id, name, level, position, is_active, is_admin)
VALUES (:id, :name, :level, :position, :is_active, :is_admin)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":        p.ID,
			"name":      p.Name,
			"level":     p.Level,
			"position":  string(p.Position),
			"is_active": p.Active,
			"is_admin":  p.Admin,
		})
		if err != nil {
			return fmt.Errorf("bind seed participant %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed participant %s: %w", p.ID, err)
		}
	}

	for _, e := range memory.SeedEvents() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO events (id, title, event_type, starts_at)
VALUES (:id, :title, :event_type, :starts_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":         e.ID,
			"title":      e.Title,
			"event_type": string(e.Type),
			"starts_at":  e.StartsAt,
		})
		if err != nil {
			return fmt.Errorf("bind seed event %s query: %w", e.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bootstrap seed: %w", err)
	}
	return nil
}
