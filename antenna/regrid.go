package antenna

import (
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/floats"

	"github.com/wiless/arraybeam/geometry"
	"github.com/wiless/arraybeam/healpix"
)

// GainSample is one point of a tabulated radiation pattern.
type GainSample struct {
	ThetaDeg float64 // polar angle
	PhiDeg   float64 // azimuth from x
	GainDb   float64
}

// RegridGain bins tabulated gains above the horizon onto a RING-ordered
// HEALPix map. Every sample is spread over its four interpolation pixels;
// each pixel is divided by its accumulated weight and the map is normalised
// to unit sum. Pixels that received no sample stay zero.
func RegridGain(samples []GainSample, nside int) vlib.VectorF {
	npix := healpix.NSide2NPix(nside)
	data := vlib.NewVectorF(npix)
	wgt := vlib.NewVectorF(npix)
	for _, s := range samples {
		if s.ThetaDeg > 90 || s.ThetaDeg < 0 {
			continue
		}
		g := vlib.InvDb(s.GainDb)
		pix, w := healpix.GetInterpolRing(nside, geometry.Radian(s.ThetaDeg), geometry.Radian(s.PhiDeg))
		for i, p := range pix {
			wgt[p] += w[i]
			data[p] += w[i] * g
		}
	}
	for i := range data {
		if wgt[i] > 0 {
			data[i] /= wgt[i]
		}
	}
	if sum := floats.Sum(data); sum > 0 {
		floats.Scale(1/sum, data)
	}
	return data
}
