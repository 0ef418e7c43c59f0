package postgres

import (
	"context"
	"fmt"
	"svgvolume/pkg/domain"
	"svgvolume/pkg/storage"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	calculationsTable = "calculations"
)

func (p *PgSQL) StoreCalculations(ctx context.Context,
	calculations ...domain.Calculation) ([]domain.Calculation, error) {
	if len(calculations) == 0 {
		return nil, nil
	}

	pgCalculations := domainCalculationsToPg(calculations)

	var result []PgCalculation
	if err := p.Builder.Insert(calculationsTable).
		Rows(pgCalculations).
		Returning(&PgCalculation{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store calculations into pg: %w", err)
	}

	return pgCalculationsToDomain(result), nil
}

// Calculations returns a page of calculations filtered by an optional cursor
// and limited by limit. Results are ordered by created_at DESC, id DESC. The
// returned page carries a next cursor when more rows exist.
func (p *PgSQL) Calculations(ctx context.Context, cursor time.Time, limit uint) (storage.CalculationPage, error) {
	w := []goqu.Expression{
		goqu.I("deleted_at").IsNull(),
	}
	if !cursor.IsZero() {
		w = append(w, goqu.I("created_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	fetch := limit + 1
	ds := p.Builder.From(calculationsTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(fetch)

	var rows []PgCalculation
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.CalculationPage{}, fmt.Errorf("could not fetch calculations from pg: %w", err)
	}

	// if we fetched more than the limit, there is a next page
	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		trimmed := rows[:limit]
		nextCursor = &trimmed[len(trimmed)-1].CreatedAt
		rows = trimmed
	}

	return storage.CalculationPage{
		Calculations: pgCalculationsToDomain(rows),
		NextCursor:   nextCursor,
	}, nil
}

// CalculationByID returns a calculation by its ID, excluding soft-deleted rows.
func (p *PgSQL) CalculationByID(ctx context.Context, id domain.CalculationID) (*domain.Calculation, error) {
	var row PgCalculation
	found, err := p.Builder.From(calculationsTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("deleted_at").IsNull(),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch calculation by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// DeleteCalculation performs a soft delete by setting the deleted_at timestamp
// for the given calculation id, returning the deleted record.
func (p *PgSQL) DeleteCalculation(ctx context.Context, id domain.CalculationID) (*domain.Calculation, error) {
	var row PgCalculation
	found, err := p.Builder.Update(calculationsTable).
		Set(goqu.Record{
			"deleted_at": goqu.L("CURRENT_TIMESTAMP"),
		}).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgCalculation{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete calculation in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}
