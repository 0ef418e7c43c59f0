package volume

import (
	"context"
	"io"
	"svgvolume/pkg/domain"
)

// Calculator is the application service around the volume pipeline. Upload
// and Calculate are synchronous and request-scoped: a calculation always runs
// against the most recently uploaded document and either fully succeeds or
// fails without partial results.
type Calculator interface {
	// Upload stores an SVG document in the single document slot, replacing any
	// previous upload. Only filenames ending in .svg are accepted.
	Upload(ctx context.Context, filename string, r io.Reader) error
	// Calculate parses depthText, extracts shapes from the uploaded document,
	// resolves nesting, computes the poured volume and persists a history row.
	Calculate(ctx context.Context, depthText string) (*domain.Calculation, error)
	// Calculations returns a page of past calculations, newest first, with an
	// RFC3339 cursor for the next page.
	Calculations(ctx context.Context, cursor string, limit uint) ([]domain.Calculation, string, error)
	// Calculation fetches a single past calculation by ID.
	Calculation(ctx context.Context, id domain.CalculationID) (*domain.Calculation, error)
	// Delete removes a past calculation from the history.
	Delete(ctx context.Context, id domain.CalculationID) error
}
