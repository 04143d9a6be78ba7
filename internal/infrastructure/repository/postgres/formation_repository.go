package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/pitchside/matchday/internal/domain/formation"
)

type FormationRepository struct {
	db *sqlx.DB
}

func NewFormationRepository(db *sqlx.DB) *FormationRepository {
	return &FormationRepository{db: db}
}

func (r *FormationRepository) GetByEvent(ctx context.Context, eventID string) (formation.Formation, bool, error) {
	const query = `SELECT * FROM formations WHERE event_id = $1`

	var row formationTableModel
	if err := r.db.GetContext(ctx, &row, query, eventID); err != nil {
		if isNotFound(err) {
			return formation.Formation{}, false, nil
		}
		return formation.Formation{}, false, fmt.Errorf("get formation: %w", err)
	}

	var docs []squadDocument
	if err := sonic.Unmarshal(row.Squads, &docs); err != nil {
		return formation.Formation{}, false, fmt.Errorf("decode formation squads: %w", err)
	}

	return formation.Formation{
		EventID:    row.EventID,
		Squads:     squadsFromDocuments(docs),
		HomeSide:   row.HomeSide,
		Confirmed:  row.Confirmed,
		ComputedAt: row.ComputedAt,
	}, true, nil
}

func (r *FormationRepository) Save(ctx context.Context, item formation.Formation) error {
	encoded, err := sonic.Marshal(squadsToDocuments(item.Squads))
	if err != nil {
		return fmt.Errorf("encode formation squads: %w", err)
	}

	const query = `INSERT INTO formations (
    event_id, squads, home_side, confirmed, computed_at, updated_at
) VALUES ($1, $2, $3, $4, $5, NOW())
ON CONFLICT (event_id)
DO UPDATE SET
    squads = EXCLUDED.squads,
    home_side = EXCLUDED.home_side,
    confirmed = EXCLUDED.confirmed,
    computed_at = EXCLUDED.computed_at,
    updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, item.EventID, encoded, item.HomeSide, item.Confirmed, item.ComputedAt); err != nil {
		return fmt.Errorf("save formation: %w", err)
	}
	return nil
}
