package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pl-predictor/internal/domain/result"
	qb "github.com/riskibarqy/pl-predictor/internal/platform/querybuilder"
)

type ResultRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db, now: time.Now}
}

func (r *ResultRepository) ListByGameweek(ctx context.Context, gameweek int) ([]result.Result, error) {
	query, args, err := qb.Select("r.fixture_id", "r.act_home", "r.act_away", "r.updated_at").
		From("results r JOIN fixtures f ON f.id = r.fixture_id").
		Where(qb.Eq("f.gameweek", gameweek)).
		OrderBy("r.fixture_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select results by gameweek query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select results by gameweek: %w", err)
	}

	out := make([]result.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, result.Result{
			FixtureID: row.FixtureID,
			Home:      row.ActHome,
			Away:      row.ActAway,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}

func (r *ResultRepository) Upsert(ctx context.Context, items []result.Result) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	now := r.now().UTC()
	err := withTx(ctx, r.db, "upsert results", func(tx *sqlx.Tx) error {
		for _, item := range items {
			query, args, err := qb.InsertModel("results", resultTableModel{
				FixtureID: item.FixtureID,
				ActHome:   item.Home,
				ActAway:   item.Away,
				UpdatedAt: now,
			}, `ON CONFLICT (fixture_id) DO UPDATE SET
    act_home = EXCLUDED.act_home,
    act_away = EXCLUDED.act_away,
    updated_at = EXCLUDED.updated_at`)
			if err != nil {
				return fmt.Errorf("build upsert result query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("upsert result fixture_id=%d: %w", item.FixtureID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
