package volume_test

import (
	"math"
	"testing"

	"svgvolume/internal/volume"
	"svgvolume/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestParseDepth(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    float64
		invalid bool
	}{
		{name: "integer", text: "10", want: 10},
		{name: "decimal", text: "2.5", want: 2.5},
		{name: "leading dot", text: ".5", want: 0.5},
		{name: "trailing dot", text: "7.", want: 7},
		{name: "zero", text: "0", want: 0},
		{name: "empty", text: "", invalid: true},
		{name: "two dots", text: "1.2.3", invalid: true},
		{name: "units suffix", text: "10mm", invalid: true},
		{name: "negative", text: "-1", invalid: true},
		{name: "exponent", text: "1e3", invalid: true},
		{name: "whitespace", text: " 10", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := volume.ParseDepth(tt.text)
			if tt.invalid {
				require.Error(t, err)
				require.ErrorIs(t, err, serrors.ErrInvalidDepth)

				return
			}
			require.NoError(t, err)
			require.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestCompute(t *testing.T) {
	got, err := volume.Compute(40000, 10)
	require.NoError(t, err)
	require.InDelta(t, 400.0, got, 1e-9)

	// negative net area passes through unclamped
	got, err = volume.Compute(-1000, 10)
	require.NoError(t, err)
	require.InDelta(t, -10.0, got, 1e-9)

	_, err = volume.Compute(100, -1)
	require.ErrorIs(t, err, serrors.ErrInvalidDepth)

	_, err = volume.Compute(100, math.NaN())
	require.ErrorIs(t, err, serrors.ErrInvalidDepth)

	_, err = volume.Compute(100, math.Inf(1))
	require.ErrorIs(t, err, serrors.ErrInvalidDepth)

	_, err = volume.Compute(math.NaN(), 1)
	require.ErrorIs(t, err, serrors.ErrExtraction)
}
