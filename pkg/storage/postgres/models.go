package postgres

import (
	"database/sql"
	"svgvolume/pkg/domain"
	"time"

	"github.com/google/uuid"
)

type PgCalculation struct {
	ID uuid.UUID `db:"id" goqu:"skipinsert"`

	Filename string  `db:"filename"`
	Depth    float64 `db:"depth"`
	NetArea  float64 `db:"net_area"`
	Volume   float64 `db:"volume"`
	Shapes   int     `db:"shapes"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
	DeletedAt sql.NullTime `db:"deleted_at" goqu:"skipinsert"`
}

func (p *PgCalculation) ToDomain() *domain.Calculation {
	return &domain.Calculation{
		ID:        domain.CalculationID(p.ID),
		Filename:  p.Filename,
		Depth:     p.Depth,
		NetArea:   p.NetArea,
		Volume:    p.Volume,
		Shapes:    p.Shapes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
		DeletedAt: p.DeletedAt.Time,
	}
}

func (p *PgCalculation) FromDomain(calculation domain.Calculation) {
	*p = PgCalculation{
		ID:        uuid.UUID(calculation.ID),
		Filename:  calculation.Filename,
		Depth:     calculation.Depth,
		NetArea:   calculation.NetArea,
		Volume:    calculation.Volume,
		Shapes:    calculation.Shapes,
		CreatedAt: calculation.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  calculation.UpdatedAt,
			Valid: !calculation.UpdatedAt.IsZero(),
		},
		DeletedAt: sql.NullTime{
			Time:  calculation.DeletedAt,
			Valid: !calculation.DeletedAt.IsZero(),
		},
	}
}

func domainCalculationsToPg(calculations []domain.Calculation) []PgCalculation {
	out := make([]PgCalculation, len(calculations))
	for i := range out {
		out[i].FromDomain(calculations[i])
	}

	return out
}

func pgCalculationsToDomain(calculations []PgCalculation) []domain.Calculation {
	out := make([]domain.Calculation, 0, len(calculations))
	for _, calculation := range calculations {
		out = append(out, *calculation.ToDomain())
	}

	return out
}
