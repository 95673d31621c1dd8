// Package geometry converts between spherical angles and unit vectors and
// provides the local tangent basis used to express polarised fields.
//
// Angles are in radians. Internally azimuth is measured from the x axis
// towards y; user-facing pointings are given as azimuth from east, and
// AzFromX is the only conversion between the two.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// FromSph returns the unit vector at polar angle pol and azimuth az (from x).
func FromSph(pol, az float64) r3.Vec {
	st, ct := math.Sincos(pol)
	sp, cp := math.Sincos(az)
	return r3.Vec{X: st * cp, Y: st * sp, Z: ct}
}

// ToSph returns the polar angle and the azimuth (from x, in [0, 2π)) of v.
// The zero vector maps to (0, 0).
func ToSph(v r3.Vec) (pol, az float64) {
	rho := math.Hypot(v.X, v.Y)
	if rho == 0 && v.Z == 0 {
		return 0, 0
	}
	pol = math.Atan2(rho, v.Z)
	if rho == 0 {
		return pol, 0
	}
	return pol, WrapTwoPi(math.Atan2(v.Y, v.X))
}

// VDPol is the unit tangent vector pointing towards increasing polar angle.
func VDPol(pol, az float64) r3.Vec {
	st, ct := math.Sincos(pol)
	sp, cp := math.Sincos(az)
	return r3.Vec{X: ct * cp, Y: ct * sp, Z: -st}
}

// VDAz is the unit tangent vector pointing towards increasing azimuth.
func VDAz(pol, az float64) r3.Vec {
	sp, cp := math.Sincos(az)
	return r3.Vec{X: -sp, Y: cp, Z: 0}
}

// AzFromX converts an azimuth measured from east into the internal
// azimuth measured from the x axis.
func AzFromX(azFromEast float64) float64 {
	return -azFromEast
}

// AngleToVec returns the direction of a user-facing pointing.
func AngleToVec(azFromEast, zenith float64) r3.Vec {
	return FromSph(zenith, AzFromX(azFromEast))
}

// Normalize returns v scaled to unit length. It reports false when v has
// zero length or non-finite components.
func Normalize(v r3.Vec) (r3.Vec, bool) {
	if !IsFinite(v) {
		return r3.Vec{}, false
	}
	n := r3.Norm(v)
	if n == 0 || math.IsInf(n, 0) {
		return r3.Vec{}, false
	}
	return r3.Scale(1/n, v), true
}

// IsFinite reports whether every component of v is finite.
func IsFinite(v r3.Vec) bool {
	for _, c := range [...]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
