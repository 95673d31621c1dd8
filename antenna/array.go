// Package antenna implements the phase delay combination of an arbitrary set
// of antenna elements (the array factor), its steering and element models.
package antenna

import (
	"math"
	"math/cmplx"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/wiless/arraybeam/geometry"
)

// Array is a fixed set of elements steered to a single pointing. Positions
// are in metres in the array-local frame (x east, y north, z up).
type Array struct {
	Elements   []vlib.Location3D
	Weights    vlib.VectorC
	Lambda     float64
	AzFromEast float64 // pointing azimuth from east, radians
	Zenith     float64 // pointing zenith angle, radians

	phases vlib.VectorF
}

// SetDefault sets unit weights, a 1 m wavelength and a zenith pointing.
func (a *Array) SetDefault() {
	a.Weights = vlib.NewVectorC(len(a.Elements))
	for i := range a.Weights {
		a.Weights[i] = 1
	}
	a.Lambda = 1
	a.AzFromEast = 0
	a.Zenith = 0
	a.phases = nil
}

// NewArray returns an unsteered array of the given elements with default
// settings.
func NewArray(elements []vlib.Location3D) *Array {
	result := &Array{Elements: elements}
	result.SetDefault()
	return result
}

// Size returns the number of elements.
func (a *Array) Size() int {
	return len(a.Elements)
}

// Steer points the array at (azFromEast, zenith) for wavelength lambda.
// The steering phases are computed once here and reused by Factor.
func (a *Array) Steer(azFromEast, zenith, lambda float64) {
	a.AzFromEast = azFromEast
	a.Zenith = zenith
	a.Lambda = lambda
	a.phases = SteeringPhases(a.Elements, azFromEast, zenith, lambda)
}

// At returns a copy of a steered to its pointing for wavelength lambda.
// The copy shares Elements and Weights; a is not modified, so copies for
// different wavelengths may be used concurrently.
func (a *Array) At(lambda float64) *Array {
	c := *a
	c.Steer(a.AzFromEast, a.Zenith, lambda)
	return &c
}

// Factor evaluates the array factor towards the unit vector dir. An array
// that was never steered uses the phases of its current pointing without
// storing them.
func (a *Array) Factor(dir r3.Vec) complex128 {
	phases := a.phases
	if phases == nil {
		phases = SteeringPhases(a.Elements, a.AzFromEast, a.Zenith, a.Lambda)
	}
	return ArrayFactor(dir, a.Elements, a.Weights, phases, a.Lambda)
}

func checkLambda(lambda float64) {
	if !(lambda > 0) {
		log.Panicf("antenna: wavelength must be positive, got %v", lambda)
	}
}

// pathPhase is the geometric phase of an element at pos for a plane wave
// arriving from dir.
func pathPhase(dir r3.Vec, pos vlib.Location3D, lambda float64) float64 {
	dl := dir.X*pos.X + dir.Y*pos.Y + dir.Z*pos.Z
	return dl / lambda * 2.0 * math.Pi
}

// SteeringPhases returns one phase per element such that the array factor
// adds coherently towards (azFromEast, zenith).
func SteeringPhases(pos []vlib.Location3D, azFromEast, zenith, lambda float64) vlib.VectorF {
	checkLambda(lambda)
	dir := geometry.AngleToVec(azFromEast, zenith)
	phases := vlib.NewVectorF(len(pos))
	for i, p := range pos {
		phases[i] = pathPhase(dir, p, lambda)
	}
	return phases
}

// ArrayFactor returns sum_i w_i exp(j(2pi dir.pos_i/lambda - phases_i)).
// The slices must have equal length. No normalisation is applied.
func ArrayFactor(dir r3.Vec, pos []vlib.Location3D, w vlib.VectorC, phases vlib.VectorF, lambda float64) complex128 {
	checkLambda(lambda)
	if len(w) != len(pos) || len(phases) != len(pos) {
		log.Panicf("antenna: length mismatch: %d positions, %d weights, %d phases", len(pos), len(w), len(phases))
	}
	var sum complex128
	for i, p := range pos {
		sum += w[i] * cmplx.Exp(complex(0, pathPhase(dir, p, lambda)-phases[i]))
	}
	return sum
}

// PolarWeight returns the complex weight of the given amplitude and phase
// (degrees).
func PolarWeight(amplitude, phaseDeg float64) complex128 {
	return cmplx.Rect(amplitude, geometry.Radian(phaseDeg))
}
