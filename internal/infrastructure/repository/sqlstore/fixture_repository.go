package sqlstore

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pl-predictor/internal/domain/fixture"
	qb "github.com/riskibarqy/pl-predictor/internal/platform/querybuilder"
)

var fixtureColumns = []string{"id", "gameweek", "external_match_id", "kickoff_utc", "home", "away"}

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) ListByGameweek(ctx context.Context, gameweek int) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureColumns...).From("fixtures").
		Where(qb.Eq("gameweek", gameweek)).
		OrderBy("kickoff_utc ASC NULLS LAST", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by gameweek query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select fixtures by gameweek: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}
	return out, nil
}

func (r *FixtureRepository) SyncGameweek(ctx context.Context, gameweek int, items []fixture.Fixture) (fixture.SyncSummary, error) {
	var summary fixture.SyncSummary
	err := withTx(ctx, r.db, "sync gameweek fixtures", func(tx *sqlx.Tx) error {
		cleared, err := execAffected(ctx, tx, qb.DeleteFrom("results").
			Where(qb.Expr("fixture_id IN (SELECT id FROM fixtures WHERE gameweek = ?)", gameweek)))
		if err != nil {
			return fmt.Errorf("clear results gameweek=%d: %w", gameweek, err)
		}
		summary.ResultsCleared = cleared

		keep := make([]int64, 0, len(items))
		for _, item := range items {
			id, inserted, err := upsertFixture(ctx, tx, gameweek, item)
			if err != nil {
				return err
			}
			if inserted {
				summary.Inserted++
			} else {
				summary.Updated++
			}
			keep = append(keep, id)
		}

		stale := []qb.Condition{
			qb.Eq("gameweek", gameweek),
			qb.NotIn("fixture_id", qb.Args(keep)),
		}
		removedPicks, err := execAffected(ctx, tx, qb.DeleteFrom("predictions").Where(stale...))
		if err != nil {
			return fmt.Errorf("delete predictions of stale fixtures gameweek=%d: %w", gameweek, err)
		}
		summary.PicksRemoved = removedPicks

		removed, err := execAffected(ctx, tx, qb.DeleteFrom("fixtures").
			Where(qb.Eq("gameweek", gameweek), qb.NotIn("id", qb.Args(keep))))
		if err != nil {
			return fmt.Errorf("delete stale fixtures gameweek=%d: %w", gameweek, err)
		}
		summary.Removed = removed
		return nil
	})
	if err != nil {
		return fixture.SyncSummary{}, err
	}
	return summary, nil
}

// upsertFixture matches on external_match_id. A match stored under another
// gameweek is never moved.
func upsertFixture(ctx context.Context, tx *sqlx.Tx, gameweek int, item fixture.Fixture) (int64, bool, error) {
	query, args, err := qb.Select("id", "gameweek").From("fixtures").
		Where(qb.Eq("external_match_id", item.ExternalMatchID)).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build select fixture by external id query: %w", err)
	}

	var existing struct {
		ID       int64 `db:"id"`
		Gameweek int   `db:"gameweek"`
	}
	err = tx.GetContext(ctx, &existing, tx.Rebind(query), args...)
	switch {
	case err == nil:
		if existing.Gameweek != gameweek {
			return 0, false, crerr.Wrapf(fixture.ErrExternalMatchConflict,
				"external match %d is stored in gameweek %d, not %d", item.ExternalMatchID, existing.Gameweek, gameweek)
		}
		update, updateArgs, err := qb.Update("fixtures").
			Set("kickoff_utc", ptrToNullString(item.KickoffUTC)).
			Set("home", item.Home).
			Set("away", item.Away).
			Where(qb.Eq("id", existing.ID)).
			ToSQL()
		if err != nil {
			return 0, false, fmt.Errorf("build update fixture query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(update), updateArgs...); err != nil {
			return 0, false, fmt.Errorf("update fixture external_match_id=%d: %w", item.ExternalMatchID, err)
		}
		return existing.ID, false, nil
	case isNotFound(err):
	default:
		return 0, false, fmt.Errorf("select fixture external_match_id=%d: %w", item.ExternalMatchID, err)
	}

	insert, insertArgs, err := qb.InsertModel("fixtures", fixtureInsertModel{
		Gameweek:        gameweek,
		ExternalMatchID: item.ExternalMatchID,
		KickoffUTC:      ptrToNullString(item.KickoffUTC),
		Home:            item.Home,
		Away:            item.Away,
	}, "RETURNING id")
	if err != nil {
		return 0, false, fmt.Errorf("build insert fixture query: %w", err)
	}

	var id int64
	if err := tx.QueryRowxContext(ctx, tx.Rebind(insert), insertArgs...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, false, crerr.Wrapf(fixture.ErrExternalMatchConflict, "insert external match %d: %v", item.ExternalMatchID, err)
		}
		return 0, false, fmt.Errorf("insert fixture external_match_id=%d: %w", item.ExternalMatchID, err)
	}
	return id, true, nil
}

type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

func execAffected(ctx context.Context, exec sqlx.ExtContext, b sqlBuilder) (int, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return 0, err
	}
	res, err := exec.ExecContext(ctx, exec.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:              row.ID,
		Gameweek:        row.Gameweek,
		ExternalMatchID: row.ExternalMatchID,
		KickoffUTC:      nullStringToPtr(row.KickoffUTC),
		Home:            row.Home,
		Away:            row.Away,
	}
}
