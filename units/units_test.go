package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qoptics/labdrv/units"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		def     units.Unit
		wantMag float64
		wantU   units.Unit
	}{
		{name: "bare number assumes default", input: "2.5", def: units.Second, wantMag: 2.5, wantU: units.Second},
		{name: "trailing unit with space", input: "14 ns", def: units.Second, wantMag: 14, wantU: units.Nanosecond},
		{name: "trailing unit without space", input: "14ns", def: units.Second, wantMag: 14, wantU: units.Nanosecond},
		{name: "negative magnitude", input: "-260 mm", def: units.Millimeter, wantMag: -260, wantU: units.Millimeter},
		{name: "scientific notation", input: "2.5e-3", def: units.Second, wantMag: 0.0025, wantU: units.Second},
		{name: "surrounding whitespace", input: "  7 ns \r", def: units.Second, wantMag: 7, wantU: units.Nanosecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := units.Parse(tt.input, tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMag, q.Mag)
			assert.Equal(t, tt.wantU, q.Unit)
		})
	}

	t.Run("errors", func(t *testing.T) {
		for _, input := range []string{"", "abc", "1.2.3", "5 furlongs"} {
			_, err := units.Parse(input, units.Second)
			assert.ErrorIs(t, err, units.ErrParse, "input %q", input)
		}
	})
}

func TestConvert(t *testing.T) {
	q, err := units.New(2.5, units.Second).Convert(units.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, q.Mag)
	assert.Equal(t, units.Millisecond, q.Unit)

	_, err = units.New(1, units.Nanosecond).Convert(units.Meter)
	assert.ErrorIs(t, err, units.ErrIncompatibleUnits)

	_, err = units.Bare(1).Convert(units.Second)
	assert.ErrorIs(t, err, units.ErrIncompatibleUnits)
}

func TestAssume(t *testing.T) {
	t.Run("bare number takes the default unit", func(t *testing.T) {
		q, err := units.Assume(units.Bare(8), units.Nanosecond)
		require.NoError(t, err)
		assert.Equal(t, units.New(8, units.Nanosecond), q)
	})

	t.Run("unit-bearing value is rescaled", func(t *testing.T) {
		q, err := units.Assume(units.New(0.1, units.Microsecond), units.Nanosecond)
		require.NoError(t, err)
		assert.InDelta(t, 100, q.Mag, 1e-9)
		assert.Equal(t, units.Nanosecond, q.Unit)
	})

	t.Run("dimension mismatch is rejected", func(t *testing.T) {
		_, err := units.Assume(units.New(1, units.Millimeter), units.Nanosecond)
		assert.ErrorIs(t, err, units.ErrIncompatibleUnits)
	})
}

func TestQuantityString(t *testing.T) {
	assert.Equal(t, "2.5 ns", units.New(2.5, units.Nanosecond).String())
	assert.Equal(t, "8", units.Bare(8).String())
}
