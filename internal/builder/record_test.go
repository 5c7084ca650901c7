package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordSet(t *testing.T) {
	t.Run("preserves insertion order", func(t *testing.T) {
		r := NewRecord(P("l", Number(1.0)), P("angle", Number(0.2)), P("e1", Number(0.05)))
		assert.Equal(t, []string{"l", "angle", "e1"}, r.Keys())
		assert.Equal(t, "l=1, angle=0.2, e1=0.05", r.RenderParams())
	})

	t.Run("overwrite keeps the original position", func(t *testing.T) {
		r := NewRecord(P("l", Number(1.0)), P("k1", Number(0.5)))
		r.Set("l", Number(2.0))
		assert.Equal(t, []string{"l", "k1"}, r.Keys())
		assert.Equal(t, "l=2, k1=0.5", r.RenderParams())
	})

	t.Run("drops negligible aperture parameters", func(t *testing.T) {
		r := NewRecord()
		r.Set("aper1", Number(1e-7))
		r.Set("beampipeAperX", Number(2e-8))
		r.Set("aper2", Number(1e-3))
		assert.False(t, r.Has("aper1"))
		assert.False(t, r.Has("beampipeAperX"))
		assert.True(t, r.Has("aper2"))
	})

	t.Run("aperture rule ignores non numeric values", func(t *testing.T) {
		r := NewRecord()
		r.Set("apertureType", Str("circular"))
		assert.True(t, r.Has("apertureType"))
	})

	t.Run("non aperture keys keep tiny values", func(t *testing.T) {
		r := NewRecord()
		r.Set("k1", Number(1e-9))
		assert.True(t, r.Has("k1"))
	})
}

func TestRecordDelete(t *testing.T) {
	r := NewRecord(P("a", Int(1)), P("b", Int(2)), P("c", Int(3)))
	r.Delete("b")
	assert.Equal(t, []string{"a", "c"}, r.Keys())
	assert.Equal(t, 2, r.Len())
	_, ok := r.Get("b")
	assert.False(t, ok)
}

func TestRecordClone(t *testing.T) {
	r := NewRecord(P("l", Number(1.0)), P("knl", List(Number(0.1), Number(0.2))))
	c := r.Clone()
	c.Set("l", Number(9.0))
	c.Delete("knl")

	v, ok := r.Get("l")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v.Float())
	assert.True(t, r.Has("knl"))
}

func TestRenderStatement(t *testing.T) {
	r := NewRecord(P("l", Number(1.0)))
	assert.Equal(t, "d1: drift, l=1;", renderStatement("d1", "drift", r))
	assert.Equal(t, "m1: marker;", renderStatement("m1", "marker", NewRecord()))
}
