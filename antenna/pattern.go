package antenna

import (
	"math"

	"github.com/wiless/vlib"

	"github.com/wiless/arraybeam/geometry"
)

// SectorPattern is the analytic element power pattern of Report ITU-R
// M.2412 (Table 8-6), usable wherever a measured map is missing.
type SectorPattern struct {
	MaxGainDb       float64 // dBi
	HBeamWidth      float64 // degrees, 0 = azimuthally symmetric
	VBeamWidth      float64 // degrees
	SLAV            float64 // side lobe attenuation, dB
	Am              float64 // front-to-back ratio, dB
	BoresightAz     float64 // degrees, from x
	BoresightZenith float64 // degrees
}

// SetDefault configures a zenith-pointing, azimuthally symmetric element.
func (s *SectorPattern) SetDefault() {
	s.MaxGainDb = 8
	s.HBeamWidth = 0
	s.VBeamWidth = 65
	s.SLAV = 30
	s.Am = 30
	s.BoresightAz = 0
	s.BoresightZenith = 0
}

// NewSectorPattern returns a SectorPattern with default settings.
func NewSectorPattern() *SectorPattern {
	result := new(SectorPattern)
	result.SetDefault()
	return result
}

// GainDb returns the horizontal and vertical attenuations and the combined
// element gain in dB at azimuth az (from x) and polar angle pol, radians.
func (s SectorPattern) GainDb(az, pol float64) (ah, av, ag float64) {
	if s.HBeamWidth > 0 {
		dh := geometry.Wrap180To180(geometry.Degree(az) - s.BoresightAz)
		ah = -math.Min(12.0*math.Pow(dh/s.HBeamWidth, 2), s.Am)
	}
	dv := geometry.Degree(pol) - s.BoresightZenith
	av = -math.Min(12.0*math.Pow(dv/s.VBeamWidth, 2), s.SLAV)
	ag = -math.Min(-(ah+av), s.Am) + s.MaxGainDb
	return ah, av, ag
}

// PowerPattern returns the linear gain.
func (s SectorPattern) PowerPattern(az, pol float64) float64 {
	_, _, ag := s.GainDb(az, pol)
	return vlib.InvDb(ag)
}
