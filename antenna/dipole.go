package antenna

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/wiless/arraybeam/geometry"
)

// ZDipoleE is the theta-polarised far field of a z-directed dipole of
// length L at polar angle theta:
//
//	E = (cos(kL/2 cos(theta)) - cos(kL/2)) / sin(theta),  k = 2pi/lambda
//
// It is zero along the dipole axis.
func ZDipoleE(theta, lambda, L float64) float64 {
	st := math.Sin(theta)
	if st == 0 || theta == 0 || theta == math.Pi {
		return 0
	}
	k := 2.0 * math.Pi / lambda
	return (math.Cos(k*L/2.0*math.Cos(theta)) - math.Cos(k*L/2.0)) / st
}

// XDipoleE returns the (theta, phi) field of an x-directed dipole.
//
// The direction is re-expressed in a frame whose z axis is the dipole
// (x' = y, y' = z, z' = x); the field lies along that frame's polar tangent
// and is projected back onto the original tangent basis.
func XDipoleE(azFromX, pol, lambda, L float64) (eTheta, ePhi float64) {
	v := geometry.FromSph(pol, azFromX)
	polNew, azNew := geometry.ToSph(r3.Vec{X: v.Y, Y: v.Z, Z: v.X})
	dp := geometry.VDPol(polNew, azNew)
	e := ZDipoleE(polNew, lambda, L)
	field := r3.Vec{X: dp.Z * e, Y: dp.X * e, Z: dp.Y * e}

	eTheta = r3.Dot(geometry.VDPol(pol, azFromX), field)
	ePhi = r3.Dot(geometry.VDAz(pol, azFromX), field)
	return eTheta, ePhi
}

// XDipoleJones returns the Jones matrix of a crossed pair of dipoles, the
// first along x.
func XDipoleJones(azFromX, pol, lambda, L float64) Jones {
	return NewReciprocalJones(XDipoleE(azFromX, pol, lambda, L))
}

// LPAntE splits the field of a log-periodic antenna with dipoles along x,
// whose power pattern at this direction is power, into (theta, phi) parts.
func LPAntE(azFromX, pol, power float64) (eTheta, ePhi float64) {
	vaz := geometry.VDAz(pol, azFromX)
	vpol := geometry.VDPol(pol, azFromX)
	vnorm := math.Hypot(vaz.X, vpol.X)
	if vnorm == 0 {
		return 0, 0
	}
	efield := math.Sqrt(math.Max(power, 0))
	return efield * vpol.X / vnorm, efield * vaz.X / vnorm
}

// LPAntJones returns the Jones matrix of a crossed log-periodic pair.
func LPAntJones(azFromX, pol, power float64) Jones {
	return NewReciprocalJones(LPAntE(azFromX, pol, power))
}
