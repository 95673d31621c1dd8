package sky

import (
	"errors"
	"fmt"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/wiless/arraybeam/geometry"
)

// ErrUnknownProjection is returned by ParseProjection for unknown names.
var ErrUnknownProjection = errors.New("sky: unknown projection")

// Projection maps plane offsets around a phase centre to directions.
type Projection int

var Projections = [...]string{
	"SIN",
	"TAN",
}

const (
	SIN Projection = iota
	TAN
)

func (p Projection) String() string {
	if p < 0 || int(p) >= len(Projections) {
		return fmt.Sprintf("Projection(%d)", int(p))
	}
	return Projections[p]
}

// ParseProjection is case insensitive.
func ParseProjection(s string) (Projection, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range Projections {
		if n == name {
			return Projection(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProjection, s)
}

// Frame is the orthonormal basis of a projection plane: Centre points at
// the phase centre, X and Y span the tangent plane.
type Frame struct {
	Centre r3.Vec
	X      r3.Vec
	Y      r3.Vec
}

// NewFrame returns the frame centred on (azFromEast, zenith), radians.
// X and Y are the negated azimuth and polar tangents.
func NewFrame(azFromEast, zenith float64) Frame {
	az := geometry.AzFromX(azFromEast)
	return Frame{
		Centre: geometry.FromSph(zenith, az),
		X:      r3.Scale(-1, geometry.VDAz(zenith, az)),
		Y:      r3.Scale(-1, geometry.VDPol(zenith, az)),
	}
}

// Coord maps an angular offset (radians) from the centre to a plane
// coordinate.
func (p Projection) Coord(offset float64) float64 {
	switch p {
	case SIN:
		return math.Sin(offset)
	case TAN:
		return offset
	}
	log.Panicf("sky: invalid projection %v", p)
	return 0
}

// Direction returns the unit vector of plane point (x, y). It reports false
// outside the SIN disk (x²+y² >= 1) and for non-finite results.
func (p Projection) Direction(f Frame, x, y float64) (r3.Vec, bool) {
	off := r3.Add(r3.Scale(x, f.X), r3.Scale(y, f.Y))
	var v r3.Vec
	switch p {
	case SIN:
		rr := x*x + y*y
		if !(rr < 1) {
			return r3.Vec{}, false
		}
		v = r3.Add(r3.Scale(math.Sqrt(1-rr), f.Centre), off)
	case TAN:
		v = r3.Add(f.Centre, off)
	default:
		log.Panicf("sky: invalid projection %v", p)
	}
	return geometry.Normalize(v)
}

// Offset is the inverse of Direction. It reports false for directions in
// the hemisphere behind the centre.
func (p Projection) Offset(f Frame, v r3.Vec) (x, y float64, ok bool) {
	u, ok := geometry.Normalize(v)
	if !ok {
		return 0, 0, false
	}
	c := r3.Dot(u, f.Centre)
	if c <= 0 {
		return 0, 0, false
	}
	x, y = r3.Dot(u, f.X), r3.Dot(u, f.Y)
	switch p {
	case SIN:
		return x, y, true
	case TAN:
		return x / c, y / c, true
	}
	log.Panicf("sky: invalid projection %v", p)
	return 0, 0, false
}
