package storage

import (
	"context"
	"svgvolume/pkg/domain"
	"time"
)

// CalculationPage groups a page of calculations together with an optional
// NextCursor used for pagination.
type CalculationPage struct {
	// Calculations contains the current page of calculation records.
	Calculations []domain.Calculation
	// NextCursor points to the timestamp to be used as the cursor for fetching
	// the next page. It is nil when there is no next page.
	NextCursor *time.Time
}

// CalculationStorage defines CRUD and query operations for volume
// calculations. Implementations should handle soft-deletes where applicable.
type CalculationStorage interface {
	// StoreCalculations inserts one or more calculations and returns the stored
	// rows as they exist in the database (including generated fields).
	StoreCalculations(ctx context.Context, calculations ...domain.Calculation) ([]domain.Calculation, error)
	// Calculations returns a page of calculations created before the optional
	// cursor time, limited by the given limit. Results are ordered newest first.
	Calculations(ctx context.Context, cursor time.Time, limit uint) (CalculationPage, error)
	// CalculationByID fetches a calculation by its ID, excluding soft-deleted
	// records. Returns nil when not found.
	CalculationByID(ctx context.Context, ID domain.CalculationID) (*domain.Calculation, error)
	// DeleteCalculation performs a soft delete for the given calculation ID and
	// returns the deleted row, or nil if it was not found.
	DeleteCalculation(ctx context.Context, ID domain.CalculationID) (*domain.Calculation, error)
}
