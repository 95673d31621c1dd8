package sky

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/wiless/arraybeam/antenna"
)

// Card is one header keyword attached to a Plane.
type Card struct {
	Name    string
	Value   interface{}
	Comment string
}

// Plane is one frequency slice of a sampled beam. Data is row-major with
// dimensions Shape (slowest first).
type Plane struct {
	Index   int
	FreqHz  float64
	Shape   []int
	Data    []float64
	Meta    []Card
	Peak    float64 // maximum before normalisation
	Invalid int     // samples zeroed because their direction was unusable
}

// Card returns the value of the named card.
func (p *Plane) Card(name string) (interface{}, bool) {
	for _, c := range p.Meta {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}

// NormalizePeak divides the plane by its maximum and returns that maximum.
// Planes whose maximum is not positive are left untouched.
func NormalizePeak(p *Plane) float64 {
	if len(p.Data) == 0 {
		return 0
	}
	peak := floats.Max(p.Data)
	if !(peak > 0) || math.IsInf(peak, 0) {
		return peak
	}
	floats.Scale(1/peak, p.Data)
	return peak
}

// TotalPower is the element power weighted by the array power |af|².
func TotalPower(af complex128, elementPower float64) float64 {
	m := cmplx.Abs(af)
	return elementPower * m * m
}

// JonesBeam scales every Jones term by the array factor.
func JonesBeam(af complex128, j antenna.Jones) antenna.Jones {
	return j.Scale(af)
}
