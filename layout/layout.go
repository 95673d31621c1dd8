// Package layout generates element positions for regular planar arrays.
package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"

	ms "github.com/mitchellh/mapstructure"
	"github.com/wiless/vlib"
)

// ErrUnknownLayout is returned for a LayoutType outside LayoutTypes.
var ErrUnknownLayout = errors.New("layout: unknown layout type")

type LayoutType int

var LayoutTypes = [...]string{
	"linear",
	"rectangular",
	"ring",
	"hexagonal",
}

const (
	Linear LayoutType = iota
	Rectangular
	Ring
	Hexagonal
)

func (c LayoutType) String() string {
	if c < 0 || int(c) >= len(LayoutTypes) {
		return "Unknown-LayoutType"
	}
	return LayoutTypes[c]
}

// ParseLayoutType is case insensitive.
func ParseLayoutType(s string) (LayoutType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range LayoutTypes {
		if n == name {
			return LayoutType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayout, s)
}

// Parameter describes one generated sub-array. Lengths are in metres,
// Rotation in degrees counter-clockwise from x.
type Parameter struct {
	Type     LayoutType
	Count    int
	Rows     int
	Cols     int
	Spacing  float64
	Radius   float64
	Rotation float64
	Centre   vlib.Location3D
}

// Decode fills a Parameter from a generic map, as read from a config file.
// The "type" entry may be a name or a LayoutType.
func Decode(input map[string]interface{}) (Parameter, error) {
	var p Parameter
	raw := make(map[string]interface{}, len(input))
	for k, v := range input {
		raw[strings.ToLower(k)] = v
	}
	if t, ok := raw["type"].(string); ok {
		lt, err := ParseLayoutType(t)
		if err != nil {
			return p, err
		}
		raw["type"] = lt
	}
	if c, ok := raw["centre"].([]interface{}); ok {
		loc, err := toLocation(c)
		if err != nil {
			return p, err
		}
		raw["centre"] = loc
	}
	cfg := &ms.DecoderConfig{WeaklyTypedInput: true, Result: &p}
	dec, err := ms.NewDecoder(cfg)
	if err != nil {
		return p, err
	}
	if err := dec.Decode(raw); err != nil {
		return p, fmt.Errorf("layout: decode: %w", err)
	}
	return p, nil
}

func toLocation(v []interface{}) (vlib.Location3D, error) {
	var xyz [3]float64
	if len(v) != 3 {
		return vlib.Location3D{}, fmt.Errorf("layout: centre needs 3 coordinates, got %d", len(v))
	}
	if err := ms.WeakDecode(v, &xyz); err != nil {
		return vlib.Location3D{}, fmt.Errorf("layout: centre: %w", err)
	}
	return vlib.Location3D{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

// Drop generates the element positions described by p. All positions lie
// in the plane z = p.Centre.Z.
func Drop(p Parameter) ([]vlib.Location3D, error) {
	switch p.Type {
	case Linear:
		return place(LinearEqPoints(p.Spacing, p.Count), p), nil
	case Rectangular:
		return place(RectangularEqPoints(p.Spacing, p.Rows, p.Cols), p), nil
	case Ring:
		return place(RingEqPoints(p.Radius, p.Count), p), nil
	case Hexagonal:
		return place(HexEqPoints(p.Spacing, p.Count), p), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownLayout, int(p.Type))
	}
}

// place rotates the origin centred points and moves them to the centre.
func place(points vlib.VectorC, p Parameter) []vlib.Location3D {
	rot := vlib.GetEJtheta(p.Rotation)
	centre := p.Centre.Cmplx()
	result := make([]vlib.Location3D, len(points))
	for i, pt := range points {
		result[i] = vlib.FromCmplx(pt*rot + centre)
		result[i].Z = p.Centre.Z
	}
	return result
}

// LinearEqPoints returns N points along x with the given spacing, centred
// at the origin.
func LinearEqPoints(spacing float64, N int) vlib.VectorC {
	result := vlib.NewVectorC(N)
	offset := spacing * float64(N-1) / 2
	for i := 0; i < N; i++ {
		result[i] = complex(float64(i)*spacing-offset, 0)
	}
	return result
}

// RectangularEqPoints returns a rows x cols grid, row-major, centred at the
// origin.
func RectangularEqPoints(spacing float64, rows, cols int) vlib.VectorC {
	if rows <= 0 || cols <= 0 {
		return vlib.NewVectorC(0)
	}
	result := vlib.NewVectorC(rows * cols)
	xo := spacing * float64(cols-1) / 2
	yo := spacing * float64(rows-1) / 2
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			result[r*cols+c] = complex(float64(c)*spacing-xo, float64(r)*spacing-yo)
		}
	}
	return result
}

// RingEqPoints returns N points equally spaced on a circle, the first on x.
func RingEqPoints(radius float64, N int) vlib.VectorC {
	result := vlib.NewVectorC(N)
	angleOffset := 360.0 / float64(N)
	angle := 0.0
	for i := 0; i < N; i++ {
		result[i] = complex(radius, 0) * vlib.GetEJtheta(angle)
		angle += angleOffset
	}
	return result
}

// HexEqPoints returns N points of a hexagonal lattice with nearest
// neighbour distance spacing, spiralling out of the origin ring by ring.
func HexEqPoints(spacing float64, N int) vlib.VectorC {
	directions := []vlib.Location3D{{X: 1, Y: -1, Z: 0}, {X: 1, Y: 0, Z: -1}, {X: 0, Y: 1, Z: -1}, {X: -1, Y: 1, Z: 0}, {X: -1, Y: 0, Z: 1}, {X: 0, Y: -1, Z: 1}}
	if N <= 0 {
		return vlib.NewVectorC(0)
	}
	result := vlib.NewVectorC(N)
	hexsize := spacing / math.Sqrt(3)
	n := 1
	for r := 1; n < N; r++ {
		cube := directions[4].Scale3D(float64(r))
		for i := 0; i < 6 && n < N; i++ {
			for j := 0; j < r && n < N; j++ {
				result[n] = Cube2XY(cube, hexsize).Cmplx()
				cube = directions[i].Shift3D(cube)
				n++
			}
		}
	}
	return result
}

// Cube2XY maps hexagonal cube coordinates to the plane.
func Cube2XY(cube vlib.Location3D, hexsize float64) vlib.Location3D {
	var result vlib.Location3D
	x := hexsize * math.Sqrt(3) * (cube.X + cube.Z*0.5)
	y := hexsize * 1.5 * cube.Z
	result.X, result.Y = y, x
	return result
}
