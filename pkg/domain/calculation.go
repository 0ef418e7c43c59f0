package domain

import (
	"time"

	"github.com/google/uuid"
)

// CalculationID uniquely identifies a volume calculation.
// It wraps uuid.UUID to provide type safety at the domain layer.
type CalculationID uuid.UUID

// Calculation records one poured-volume computation over an uploaded SVG
// document: the parsed depth, the aggregated net cross-section area and the
// resulting volume in millilitres.
type Calculation struct {
	// ID is the unique identifier of the calculation.
	ID CalculationID `json:"id"`

	// Filename is the original name of the uploaded document.
	Filename string `json:"filename"`
	// Depth is the pour depth the client supplied, in the document's units.
	Depth float64 `json:"depth"`
	// NetArea is the nesting-signed sum of shape areas in square units.
	NetArea float64 `json:"netArea"`
	// Volume is NetArea * Depth / 1000, in millilitres.
	Volume float64 `json:"volume"`
	// Shapes is the number of closed shapes extracted from the document.
	Shapes int `json:"shapes"`

	// CreatedAt is the time when the calculation was performed.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the time when the record was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
	// DeletedAt marks when the calculation was soft-deleted; zero value means not deleted.
	DeletedAt time.Time `json:"-"`
}
