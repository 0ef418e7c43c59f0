package volume

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"svgvolume/internal/docstore"
	"svgvolume/internal/svg"
	"svgvolume/pkg/domain"
	"svgvolume/pkg/logger"
	"svgvolume/pkg/metrics"
	"svgvolume/pkg/serrors"
	"svgvolume/pkg/storage"

	"go.uber.org/zap"
)

// calculator is the concrete implementation of the Calculator interface. It
// coordinates the document slot, the shape extractor and the history storage.
type calculator struct {
	docs      *docstore.Store
	extractor *svg.Extractor
	storage   storage.Storage
}

// New creates a Calculator backed by the given document store, extractor and
// history storage.
func New(docs *docstore.Store, extractor *svg.Extractor, strg storage.Storage) Calculator {
	return &calculator{
		docs:      docs,
		extractor: extractor,
		storage:   strg,
	}
}

// Upload validates the filename and replaces the document slot with r.
func (c *calculator) Upload(ctx context.Context, filename string, r io.Reader) error {
	if !strings.HasSuffix(strings.ToLower(filename), ".svg") {
		return serrors.With(serrors.ErrBadRequest, "only .svg files are accepted, got %q", filename)
	}

	if err := c.docs.Save(filename, r); err != nil {
		return fmt.Errorf("could not save document: %w", err)
	}

	metrics.UploadsTotal.Inc()
	logger.Info(ctx, "document uploaded", zap.String("filename", filename))

	return nil
}

// Calculate runs the full pipeline against the uploaded document and records
// the result in the history.
func (c *calculator) Calculate(ctx context.Context, depthText string) (*domain.Calculation, error) {
	start := time.Now()

	calculation, err := c.calculate(ctx, depthText)
	if err != nil {
		metrics.CalculationsTotal.WithLabelValues(metrics.ResultError).Inc()

		return nil, err
	}

	metrics.CalculationsTotal.WithLabelValues(metrics.ResultOK).Inc()
	metrics.CalculationDuration.Observe(time.Since(start).Seconds())

	return calculation, nil
}

func (c *calculator) calculate(ctx context.Context, depthText string) (*domain.Calculation, error) {
	depth, err := ParseDepth(depthText)
	if err != nil {
		return nil, err
	}

	doc, filename, err := c.docs.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = doc.Close() }()

	shapes, err := c.extractor.Extract(doc)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrExtraction, err, "could not extract shapes from %q", filename)
	}
	metrics.ExtractedShapes.Observe(float64(len(shapes)))

	ResolveNesting(shapes)
	netArea := NetArea(shapes)

	vol, err := Compute(netArea, depth)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "calculated volume",
		zap.String("filename", filename),
		zap.Int("shapes", len(shapes)),
		zap.Float64("net_area", netArea),
		zap.Float64("depth", depth),
		zap.Float64("volume", vol),
	)

	stored, err := c.storage.StoreCalculations(ctx, domain.Calculation{
		Filename: filename,
		Depth:    depth,
		NetArea:  netArea,
		Volume:   vol,
		Shapes:   len(shapes),
	})
	if err != nil {
		return nil, fmt.Errorf("could not store calculation: %w", err)
	}

	return &stored[0], nil
}

// Calculations returns a page of past calculations. It supports cursor-based
// pagination using an RFC3339 timestamp string and returns the next cursor
// when more results are available.
func (c *calculator) Calculations(ctx context.Context,
	cursor string,
	limit uint) ([]domain.Calculation, string, error) {
	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	page, err := c.storage.Calculations(ctx, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get calculations: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.Format(time.RFC3339)
	}

	return page.Calculations, next, nil
}

// Calculation fetches a single past calculation by ID. It returns a
// not-found error when no matching record exists.
func (c *calculator) Calculation(ctx context.Context, id domain.CalculationID) (*domain.Calculation, error) {
	res, err := c.storage.CalculationByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get calculation: %w", err)
	}
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "calculation not found")
	}

	return res, nil
}

// Delete removes a past calculation. If it does not exist, a not-found error
// is returned.
func (c *calculator) Delete(ctx context.Context, id domain.CalculationID) error {
	res, err := c.storage.DeleteCalculation(ctx, id)
	if err != nil {
		return fmt.Errorf("could not delete calculation: %w", err)
	}
	if res == nil {
		return serrors.With(serrors.ErrNotFound, "calculation not found")
	}

	return nil
}
