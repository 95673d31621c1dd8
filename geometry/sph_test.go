package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func assertVec(t *testing.T, want, got r3.Vec, tol float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
	assert.InDelta(t, want.Z, got.Z, tol, "z")
}

func TestFromSphAxes(t *testing.T) {
	assertVec(t, r3.Vec{Z: 1}, FromSph(0, 1.234), 1e-15)
	assertVec(t, r3.Vec{X: 1}, FromSph(math.Pi/2, 0), 1e-15)
	assertVec(t, r3.Vec{Y: 1}, FromSph(math.Pi/2, math.Pi/2), 1e-15)
	assertVec(t, r3.Vec{Z: -1}, FromSph(math.Pi, 0), 1e-15)
}

func TestToSphRoundTrip(t *testing.T) {
	t.Parallel()
	for pol := 0.05; pol < math.Pi; pol += 0.2 {
		for az := 0.0; az < 2*math.Pi; az += 0.3 {
			gotPol, gotAz := ToSph(FromSph(pol, az))
			assert.InDelta(t, pol, gotPol, 1e-12)
			assert.InDelta(t, az, gotAz, 1e-12)
		}
	}
}

func TestToSphDegenerate(t *testing.T) {
	pol, az := ToSph(r3.Vec{})
	assert.Equal(t, 0.0, pol)
	assert.Equal(t, 0.0, az)

	pol, az = ToSph(r3.Vec{Z: -2})
	assert.Equal(t, math.Pi, pol)
	assert.Equal(t, 0.0, az)
}

func TestTangentBasis(t *testing.T) {
	t.Parallel()
	for pol := 0.1; pol < math.Pi; pol += 0.25 {
		for az := -3.0; az < 3.0; az += 0.5 {
			n := FromSph(pol, az)
			vp := VDPol(pol, az)
			va := VDAz(pol, az)
			assert.InDelta(t, 1, r3.Norm(vp), 1e-12)
			assert.InDelta(t, 1, r3.Norm(va), 1e-12)
			assert.InDelta(t, 0, r3.Dot(n, vp), 1e-12)
			assert.InDelta(t, 0, r3.Dot(n, va), 1e-12)
			assert.InDelta(t, 0, r3.Dot(vp, va), 1e-12)
			// right handed: r x theta = phi
			assertVec(t, va, r3.Cross(n, vp), 1e-12)
		}
	}
}

func TestAngleToVecSignConvention(t *testing.T) {
	// azimuth from east 90 deg lands on -y
	assertVec(t, r3.Vec{Y: -1}, AngleToVec(math.Pi/2, math.Pi/2), 1e-15)
	assertVec(t, r3.Vec{X: 1}, AngleToVec(0, math.Pi/2), 1e-15)
	assert.Equal(t, -0.3, AzFromX(0.3))

	pol, az := ToSph(AngleToVec(Radian(30), Radian(40)))
	assert.InDelta(t, Radian(40), pol, 1e-12)
	assert.InDelta(t, WrapTwoPi(AzFromX(Radian(30))), az, 1e-12)
}

func TestNormalize(t *testing.T) {
	v, ok := Normalize(r3.Vec{X: 3, Y: 4})
	require.True(t, ok)
	assertVec(t, r3.Vec{X: 0.6, Y: 0.8}, v, 1e-15)

	_, ok = Normalize(r3.Vec{})
	assert.False(t, ok)
	_, ok = Normalize(r3.Vec{X: math.NaN()})
	assert.False(t, ok)
	_, ok = Normalize(r3.Vec{Y: math.Inf(1)})
	assert.False(t, ok)
}
