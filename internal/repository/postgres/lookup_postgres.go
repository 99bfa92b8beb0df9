package postgres

import (
	"context"
	"database/sql"
	"errors"

	"grantdocs/internal/model"
	"grantdocs/internal/repository"
)

// LookupPostgres reads the seeded lookup tables.
type LookupPostgres struct {
	db *sql.DB
}

// NewLookupPostgres creates a new LookupPostgres repository.
func NewLookupPostgres(db *sql.DB) *LookupPostgres {
	return &LookupPostgres{db: db}
}

var _ repository.LookupRepository = (*LookupPostgres)(nil)

func (r *LookupPostgres) FiscalYears(ctx context.Context) ([]model.FiscalYear, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM fiscal_years ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.FiscalYear, 0)
	for rows.Next() {
		var fy model.FiscalYear
		if err := rows.Scan(&fy.ID, &fy.Name); err != nil {
			return nil, err
		}
		out = append(out, fy)
	}
	return out, rows.Err()
}

func (r *LookupPostgres) Sources(ctx context.Context) ([]model.Source, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM sources ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Source, 0)
	for rows.Next() {
		var s model.Source
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *LookupPostgres) GrantTypes(ctx context.Context) ([]model.GrantType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM grant_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.GrantType, 0)
	for rows.Next() {
		var g model.GrantType
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *LookupPostgres) FiscalYearByID(ctx context.Context, id string) (*model.FiscalYear, error) {
	var fy model.FiscalYear
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM fiscal_years WHERE id = $1`, id).Scan(&fy.ID, &fy.Name)
	if err != nil {
		return nil, notFound(err)
	}
	return &fy, nil
}

func (r *LookupPostgres) SourceByName(ctx context.Context, name string) (*model.Source, error) {
	var s model.Source
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM sources WHERE name = $1`, name).Scan(&s.ID, &s.Name)
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *LookupPostgres) GrantTypeByName(ctx context.Context, name string) (*model.GrantType, error) {
	var g model.GrantType
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM grant_types WHERE name = $1`, name).Scan(&g.ID, &g.Name)
	if err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}
