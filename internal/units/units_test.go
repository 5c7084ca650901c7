package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLength(t *testing.T) {
	t.Run("bare value is metres", func(t *testing.T) {
		v, err := Length(Metres(1.5))
		require.NoError(t, err)
		assert.Equal(t, 1.5, v)
	})

	t.Run("supported units convert", func(t *testing.T) {
		cases := []struct {
			q    Quantity
			want float64
		}{
			{Quantity{2.0, "m"}, 2.0},
			{Quantity{300.0, "cm"}, 3.0},
			{Quantity{300.0, "mm"}, 0.3},
			{Quantity{4000.0, "um"}, 0.004},
			{Quantity{2.0, "km"}, 2000.0},
			{Quantity{5.0, "nm"}, 5e-9},
		}
		for _, c := range cases {
			v, err := Length(c.q)
			require.NoError(t, err)
			assert.InDelta(t, c.want, v, 1e-12, "unit %s", c.q.Unit)
		}
	})

	t.Run("unknown unit is an error", func(t *testing.T) {
		_, err := Length(Quantity{1.0, "furlong"})
		assert.ErrorContains(t, err, "unrecognised length unit")
	})
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2.5*MeV", Format(2.5, "MeV"))
	assert.Equal(t, "0.1", Format(0.1, ""))
	assert.Equal(t, "9.1e-09*mm*mrad", Format(9.1e-9, "mm*mrad"))
}
