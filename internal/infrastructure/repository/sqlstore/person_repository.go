package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pl-predictor/internal/domain/person"
	qb "github.com/riskibarqy/pl-predictor/internal/platform/querybuilder"
)

type PersonRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPersonRepository(db *sqlx.DB) *PersonRepository {
	return &PersonRepository{db: db, now: time.Now}
}

func (r *PersonRepository) List(ctx context.Context) ([]person.Person, error) {
	query, args, err := qb.Select("name", "created_at").From("people").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select people query: %w", err)
	}

	var rows []personTableModel
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select people: %w", err)
	}

	out := make([]person.Person, 0, len(rows))
	for _, row := range rows {
		out = append(out, person.Person{Name: row.Name, CreatedAt: row.CreatedAt})
	}
	return out, nil
}

func (r *PersonRepository) Ensure(ctx context.Context, name string) (bool, error) {
	return ensurePerson(ctx, r.db, name, r.now().UTC())
}

func ensurePerson(ctx context.Context, exec sqlx.ExtContext, name string, now time.Time) (bool, error) {
	query, args, err := qb.InsertModel("people", personTableModel{Name: name, CreatedAt: now}, "ON CONFLICT (name) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build insert person query: %w", err)
	}

	res, err := exec.ExecContext(ctx, exec.Rebind(query), args...)
	if err != nil {
		return false, fmt.Errorf("insert person name=%s: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert person rows affected: %w", err)
	}
	return affected > 0, nil
}
