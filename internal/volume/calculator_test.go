package volume_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"svgvolume/internal/docstore"
	"svgvolume/internal/svg"
	"svgvolume/internal/volume"
	"svgvolume/pkg/domain"
	"svgvolume/pkg/serrors"
	"svgvolume/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// memStorage is an in-memory storage.Storage used to test the calculator
// without a database.
type memStorage struct {
	rows []domain.Calculation
}

func (m *memStorage) StoreCalculations(_ context.Context,
	calculations ...domain.Calculation) ([]domain.Calculation, error) {
	out := make([]domain.Calculation, 0, len(calculations))
	for _, c := range calculations {
		c.ID = domain.CalculationID(uuid.New())
		c.CreatedAt = time.Now()
		m.rows = append(m.rows, c)
		out = append(out, c)
	}

	return out, nil
}

func (m *memStorage) Calculations(_ context.Context, cursor time.Time, limit uint) (storage.CalculationPage, error) {
	var page storage.CalculationPage
	for i := len(m.rows) - 1; i >= 0; i-- {
		c := m.rows[i]
		if !cursor.IsZero() && !c.CreatedAt.Before(cursor) {
			continue
		}
		if uint(len(page.Calculations)) == limit {
			page.NextCursor = &page.Calculations[limit-1].CreatedAt

			break
		}
		page.Calculations = append(page.Calculations, c)
	}

	return page, nil
}

func (m *memStorage) CalculationByID(_ context.Context, id domain.CalculationID) (*domain.Calculation, error) {
	for _, c := range m.rows {
		if c.ID == id && c.DeletedAt.IsZero() {
			return &c, nil
		}
	}

	return nil, nil //nolint: nilnil
}

func (m *memStorage) DeleteCalculation(_ context.Context, id domain.CalculationID) (*domain.Calculation, error) {
	for i, c := range m.rows {
		if c.ID == id && c.DeletedAt.IsZero() {
			m.rows[i].DeletedAt = time.Now()

			return &m.rows[i], nil
		}
	}

	return nil, nil //nolint: nilnil
}

func (m *memStorage) Close() error { return nil }

func (m *memStorage) Begin(context.Context) (storage.TxStorage, error) {
	return nil, storage.ErrAlreadyInTx
}

func (m *memStorage) WithTx(_ context.Context, cb func(storage.AllStorage) error) error {
	return cb(m)
}

func newCalculator(t *testing.T) (volume.Calculator, *memStorage) {
	t.Helper()

	docs, err := docstore.New(t.TempDir(), "uploaded.svg")
	require.NoError(t, err)

	extractor := svg.NewExtractor(svg.Options{
		CurveSamples:   1000,
		CircleSamples:  1000,
		EllipseSamples: 1000,
	})

	strg := &memStorage{}

	return volume.New(docs, extractor, strg), strg
}

func TestCalculator_Upload_RejectsNonSVG(t *testing.T) {
	calc, _ := newCalculator(t)

	err := calc.Upload(context.Background(), "drawing.png", strings.NewReader("png"))
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestCalculator_Calculate_NoDocument(t *testing.T) {
	calc, _ := newCalculator(t)

	_, err := calc.Calculate(context.Background(), "10")
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrNoDocument)
}

func TestCalculator_Calculate_InvalidDepth(t *testing.T) {
	calc, _ := newCalculator(t)
	ctx := context.Background()

	require.NoError(t, calc.Upload(ctx, "glass.svg",
		strings.NewReader(`<svg><rect width="10" height="10"/></svg>`)))

	_, err := calc.Calculate(ctx, "1.2.3")
	require.ErrorIs(t, err, serrors.ErrInvalidDepth)
}

func TestCalculator_Calculate_MalformedDocument(t *testing.T) {
	calc, _ := newCalculator(t)
	ctx := context.Background()

	require.NoError(t, calc.Upload(ctx, "broken.svg",
		strings.NewReader(`<svg><rect width="10"`)))

	_, err := calc.Calculate(ctx, "10")
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrExtraction)
}

func TestCalculator_Calculate_Rectangle(t *testing.T) {
	calc, strg := newCalculator(t)
	ctx := context.Background()

	require.NoError(t, calc.Upload(ctx, "glass.svg",
		strings.NewReader(`<svg><rect x="0" y="0" width="200" height="200"/></svg>`)))

	res, err := calc.Calculate(ctx, "10")
	require.NoError(t, err)
	require.InDelta(t, 400.0, res.Volume, 1e-9)
	require.Equal(t, 1, res.Shapes)
	require.Equal(t, "glass.svg", res.Filename)

	// a history row was recorded
	require.Len(t, strg.rows, 1)
}

func TestCalculator_Calculate_RectangleWithHole(t *testing.T) {
	calc, _ := newCalculator(t)
	ctx := context.Background()

	doc := `<svg>
		<rect x="0" y="0" width="200" height="200"/>
		<rect x="50" y="50" width="100" height="100"/>
	</svg>`
	require.NoError(t, calc.Upload(ctx, "vessel.svg", strings.NewReader(doc)))

	res, err := calc.Calculate(ctx, "10")
	require.NoError(t, err)
	require.InDelta(t, 300.0, res.Volume, 1e-9)
	require.Equal(t, 2, res.Shapes)
}

func TestCalculator_Calculate_Circle(t *testing.T) {
	calc, _ := newCalculator(t)
	ctx := context.Background()

	require.NoError(t, calc.Upload(ctx, "bowl.svg",
		strings.NewReader(`<svg><circle cx="250" cy="250" r="100"/></svg>`)))

	res, err := calc.Calculate(ctx, "10")
	require.NoError(t, err)

	// inscribed 1000-gon area slightly under pi*r^2
	require.GreaterOrEqual(t, res.Volume, 314.13)
	require.LessOrEqual(t, res.Volume, 314.16)
}

func TestCalculator_Calculate_Deterministic(t *testing.T) {
	calc, _ := newCalculator(t)
	ctx := context.Background()

	doc := `<svg>
		<circle cx="100" cy="100" r="50"/>
		<rect x="300" y="300" width="40" height="40"/>
	</svg>`
	require.NoError(t, calc.Upload(ctx, "mixed.svg", strings.NewReader(doc)))

	first, err := calc.Calculate(ctx, "7.5")
	require.NoError(t, err)
	second, err := calc.Calculate(ctx, "7.5")
	require.NoError(t, err)

	require.InDelta(t, first.Volume, second.Volume, 0)
	require.InDelta(t, first.NetArea, second.NetArea, 0)
}

func TestCalculator_Calculate_UploadReplacesDocument(t *testing.T) {
	calc, _ := newCalculator(t)
	ctx := context.Background()

	require.NoError(t, calc.Upload(ctx, "a.svg",
		strings.NewReader(`<svg><rect width="100" height="100"/></svg>`)))
	require.NoError(t, calc.Upload(ctx, "b.svg",
		strings.NewReader(`<svg><rect width="10" height="10"/></svg>`)))

	res, err := calc.Calculate(ctx, "10")
	require.NoError(t, err)
	require.Equal(t, "b.svg", res.Filename)
	require.InDelta(t, 1.0, res.Volume, 1e-9)
}

func TestCalculator_HistoryRoundTrip(t *testing.T) {
	calc, _ := newCalculator(t)
	ctx := context.Background()

	require.NoError(t, calc.Upload(ctx, "glass.svg",
		strings.NewReader(`<svg><rect width="100" height="100"/></svg>`)))

	stored, err := calc.Calculate(ctx, "5")
	require.NoError(t, err)

	got, err := calc.Calculation(ctx, stored.ID)
	require.NoError(t, err)
	require.Equal(t, stored.ID, got.ID)

	list, next, err := calc.Calculations(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Empty(t, next)

	require.NoError(t, calc.Delete(ctx, stored.ID))

	_, err = calc.Calculation(ctx, stored.ID)
	require.ErrorIs(t, err, serrors.ErrNotFound)

	err = calc.Delete(ctx, stored.ID)
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestCalculator_InvalidCursor(t *testing.T) {
	calc, _ := newCalculator(t)

	_, _, err := calc.Calculations(context.Background(), "not-a-time", 10)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}
