package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wiless/vlib"
)

func dist(a, b vlib.Location3D) float64 {
	return math.Sqrt((a.X-b.X)*(a.X-b.X) + (a.Y-b.Y)*(a.Y-b.Y) + (a.Z-b.Z)*(a.Z-b.Z))
}

func centroid(pts []vlib.Location3D) vlib.Location3D {
	var c vlib.Location3D
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
		c.Z += p.Z
	}
	n := float64(len(pts))
	return vlib.Location3D{X: c.X / n, Y: c.Y / n, Z: c.Z / n}
}

func TestLinear(t *testing.T) {
	pts, err := Drop(Parameter{Type: Linear, Count: 4, Spacing: 2, Centre: vlib.Location3D{X: 1, Y: 1, Z: 3}})
	require.NoError(t, err)
	require.Len(t, pts, 4)
	for i := 1; i < len(pts); i++ {
		assert.InDelta(t, 2, dist(pts[i-1], pts[i]), 1e-12)
	}
	c := centroid(pts)
	assert.InDelta(t, 1, c.X, 1e-12)
	assert.InDelta(t, 1, c.Y, 1e-12)
	for _, p := range pts {
		assert.Equal(t, 3.0, p.Z)
	}
}

func TestLinearRotated(t *testing.T) {
	pts, err := Drop(Parameter{Type: Linear, Count: 2, Spacing: 2, Rotation: 90})
	require.NoError(t, err)
	assert.InDelta(t, 0, pts[0].X, 1e-12)
	assert.InDelta(t, -1, pts[0].Y, 1e-12)
	assert.InDelta(t, 1, pts[1].Y, 1e-12)
}

func TestRectangular(t *testing.T) {
	pts, err := Drop(Parameter{Type: Rectangular, Rows: 2, Cols: 3, Spacing: 0.5})
	require.NoError(t, err)
	require.Len(t, pts, 6)
	assert.InDelta(t, -0.5, pts[0].X, 1e-12)
	assert.InDelta(t, -0.25, pts[0].Y, 1e-12)
	assert.InDelta(t, 0.5, pts[5].X, 1e-12)
	assert.InDelta(t, 0.25, pts[5].Y, 1e-12)
}

func TestRing(t *testing.T) {
	pts, err := Drop(Parameter{Type: Ring, Count: 6, Radius: 10})
	require.NoError(t, err)
	require.Len(t, pts, 6)
	for _, p := range pts {
		assert.InDelta(t, 10, math.Hypot(p.X, p.Y), 1e-9)
	}
	assert.InDelta(t, 10, dist(pts[0], pts[1]), 1e-9)
}

func TestHexagonal(t *testing.T) {
	pts, err := Drop(Parameter{Type: Hexagonal, Count: 7, Spacing: 3})
	require.NoError(t, err)
	require.Len(t, pts, 7)
	assert.InDelta(t, 0, math.Hypot(pts[0].X, pts[0].Y), 1e-12)
	for _, p := range pts[1:] {
		assert.InDelta(t, 3, dist(pts[0], p), 1e-9)
	}
	// no two elements coincide
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			assert.Greater(t, dist(pts[i], pts[j]), 2.9)
		}
	}
	pts, err = Drop(Parameter{Type: Hexagonal, Count: 19, Spacing: 1})
	require.NoError(t, err)
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			assert.Greater(t, dist(pts[i], pts[j]), 0.99)
		}
	}
}

func TestUnknown(t *testing.T) {
	_, err := Drop(Parameter{Type: LayoutType(42)})
	assert.ErrorIs(t, err, ErrUnknownLayout)
	_, err = ParseLayoutType("spiral")
	assert.ErrorIs(t, err, ErrUnknownLayout)
	assert.Equal(t, "Unknown-LayoutType", LayoutType(42).String())
}

func TestDecode(t *testing.T) {
	p, err := Decode(map[string]interface{}{
		"type":     "Rectangular",
		"rows":     2,
		"cols":     "4",
		"spacing":  1.5,
		"rotation": 30,
		"centre":   []interface{}{1, 2.5, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, Rectangular, p.Type)
	assert.Equal(t, 2, p.Rows)
	assert.Equal(t, 4, p.Cols)
	assert.Equal(t, 1.5, p.Spacing)
	assert.Equal(t, 30.0, p.Rotation)
	assert.Equal(t, vlib.Location3D{X: 1, Y: 2.5}, p.Centre)

	_, err = Decode(map[string]interface{}{"type": "ring", "centre": []interface{}{1, 2}})
	assert.Error(t, err)
}
