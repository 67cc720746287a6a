package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pl-predictor/internal/domain/prediction"
	qb "github.com/riskibarqy/pl-predictor/internal/platform/querybuilder"
)

var predictionColumns = []string{"id", "fixture_id", "gameweek", "person_name", "pred_home", "pred_away"}

type PredictionRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db, now: time.Now}
}

func (r *PredictionRepository) ListByGameweek(ctx context.Context, gameweek int) ([]prediction.Prediction, error) {
	return r.list(ctx, "gameweek", qb.Eq("gameweek", gameweek))
}

func (r *PredictionRepository) ListByGameweekAndPerson(ctx context.Context, gameweek int, personName string) ([]prediction.Prediction, error) {
	return r.list(ctx, "gameweek and person", qb.Eq("gameweek", gameweek), qb.Eq("person_name", personName))
}

func (r *PredictionRepository) list(ctx context.Context, scope string, where ...qb.Condition) ([]prediction.Prediction, error) {
	query, args, err := qb.Select(predictionColumns...).From("predictions").
		Where(where...).
		OrderBy("person_name", "fixture_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select predictions by %s query: %w", scope, err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select predictions by %s: %w", scope, err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, prediction.Prediction{
			ID:         row.ID,
			FixtureID:  row.FixtureID,
			Gameweek:   row.Gameweek,
			PersonName: row.PersonName,
			Home:       row.PredHome,
			Away:       row.PredAway,
		})
	}
	return out, nil
}

func (r *PredictionRepository) SaveForPerson(ctx context.Context, personName string, items []prediction.Prediction) error {
	now := r.now().UTC()
	return withTx(ctx, r.db, "save predictions", func(tx *sqlx.Tx) error {
		if _, err := ensurePerson(ctx, tx, personName, now); err != nil {
			return err
		}

		for _, item := range items {
			query, args, err := qb.InsertModel("predictions", predictionInsertModel{
				FixtureID:  item.FixtureID,
				Gameweek:   item.Gameweek,
				PersonName: personName,
				PredHome:   item.Home,
				PredAway:   item.Away,
				CreatedAt:  now,
				UpdatedAt:  now,
			}, `ON CONFLICT (fixture_id, person_name) DO UPDATE SET
    gameweek = EXCLUDED.gameweek,
    pred_home = EXCLUDED.pred_home,
    pred_away = EXCLUDED.pred_away,
    updated_at = EXCLUDED.updated_at`)
			if err != nil {
				return fmt.Errorf("build upsert prediction query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("upsert prediction fixture_id=%d person=%s: %w", item.FixtureID, personName, err)
			}
		}
		return nil
	})
}
