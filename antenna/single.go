package antenna

import (
	"fmt"

	"github.com/wiless/vlib"

	"github.com/wiless/arraybeam/healpix"
)

// SingleAnt is the measured or simulated power pattern of one element,
// stored as a RING-ordered HEALPix map.
type SingleAnt struct {
	Data    vlib.VectorF
	NSide   int
	FreqMHz float64
}

// NewSingleAnt wraps data; its length must be a valid HEALPix pixel count.
func NewSingleAnt(data vlib.VectorF, freqMHz float64) (*SingleAnt, error) {
	nside, err := healpix.NPix2NSide(len(data))
	if err != nil {
		return nil, fmt.Errorf("antenna: pattern map: %w", err)
	}
	return &SingleAnt{Data: data, NSide: nside, FreqMHz: freqMHz}, nil
}

// FreqHz returns the frequency tag in Hz.
func (s *SingleAnt) FreqHz() float64 {
	return s.FreqMHz * 1e6
}

// PowerPattern interpolates the map at azimuth az (from x) and polar angle
// pol.
func (s *SingleAnt) PowerPattern(az, pol float64) float64 {
	return healpix.Interpolate(s.NSide, s.Data, pol, az)
}
