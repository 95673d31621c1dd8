// Package sky samples steered array beams over the sphere or a projected
// patch and holds the resulting planes.
package sky

import (
	"fmt"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/wiless/arraybeam"
	"github.com/wiless/arraybeam/antenna"
	"github.com/wiless/arraybeam/geometry"
	"github.com/wiless/arraybeam/healpix"
)

// Source is the element power pattern at one frequency.
type Source struct {
	FreqHz  float64
	Pattern antenna.PowerPattern
}

// JonesSource is the element polarimetric model at one frequency.
type JonesSource struct {
	FreqHz float64
	Model  antenna.ElementModel
}

// Sampler evaluates the beam of one array pointing. The pointing is taken
// from Array (radians, azimuth from east).
type Sampler struct {
	Array   *antenna.Array
	Workers int // 0 = unlimited
}

// NewSampler returns a Sampler of arr at its current pointing.
func NewSampler(arr *antenna.Array, workers int) *Sampler {
	return &Sampler{Array: arr, Workers: workers}
}

func (s *Sampler) group() *errgroup.Group {
	g := new(errgroup.Group)
	if s.Workers > 0 {
		g.SetLimit(s.Workers)
	}
	return g
}

// steered returns the array steered for one frequency.
func (s *Sampler) steered(freqHz float64) *antenna.Array {
	return s.Array.At(arraybeam.Lambda(freqHz))
}

// PointingPixel returns the RING pixel of a map of the given nside that
// contains the array pointing.
func (s *Sampler) PointingPixel(nside int) int {
	return healpix.Ang2PixRing(nside, s.Array.Zenith, geometry.AzFromX(s.Array.AzFromEast))
}

// FullSky samples the total power beam on every RING pixel of a HEALPix map
// of the given nside. Pixels with polar angle above maxZenith (radians) stay
// zero. The PTGPIX card holds the pixel containing the pointing.
func (s *Sampler) FullSky(src Source, nside int, maxZenith float64) (Plane, error) {
	if nside < 1 {
		return Plane{}, fmt.Errorf("sky: nside must be positive, got %d", nside)
	}
	npix := healpix.NSide2NPix(nside)
	plane := Plane{
		FreqHz: src.FreqHz,
		Shape:  []int{npix},
		Data:   make([]float64, npix),
		Meta: []Card{
			{Name: "FREQ", Value: src.FreqHz, Comment: "Hz"},
			{Name: "NSIDE", Value: nside},
			{Name: "PTGPIX", Value: s.PointingPixel(nside), Comment: "RING"},
		},
	}
	arr := s.steered(src.FreqHz)

	chunk := (npix + 63) / 64
	g := s.group()
	for lo := 0; lo < npix; lo += chunk {
		lo, hi := lo, min(lo+chunk, npix)
		g.Go(func() error {
			for ipix := lo; ipix < hi; ipix++ {
				pol, az := healpix.Pix2AngRing(nside, ipix)
				if pol > maxZenith {
					continue
				}
				af := arr.Factor(geometry.FromSph(pol, az))
				plane.Data[ipix] = TotalPower(af, src.Pattern.PowerPattern(az, pol))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Plane{}, err
	}
	log.WithFields(log.Fields{"freq": src.FreqHz, "npix": npix, "peak": floats.Max(plane.Data)}).Debug("full sky sampled")
	return plane, nil
}

// PatchGrid is a square grid of Width x Width samples spanning FovDeg
// around the pointing.
type PatchGrid struct {
	FovDeg     float64
	Width      int
	Projection Projection
}

// Step is the angular sample spacing in radians.
func (pg PatchGrid) Step() float64 {
	return geometry.Radian(pg.FovDeg) / float64(pg.Width)
}

// Offset is the angular offset of sample i from the centre, radians.
func (pg PatchGrid) Offset(i int) float64 {
	return float64(i-pg.Width/2) * pg.Step()
}

// WCSCards describes a cube of len(freqs) planes with five axes
// (x, y, two unit axes, frequency), fastest first.
func (pg PatchGrid) WCSCards(freqs []float64) []Card {
	cdelt := pg.FovDeg / float64(pg.Width)
	var freq0, dfreq float64
	if len(freqs) > 0 {
		freq0 = freqs[0]
	}
	if len(freqs) > 1 {
		dfreq = freqs[1] - freqs[0]
	}
	return []Card{
		{Name: "CTYPE1", Value: "py"},
		{Name: "CRPIX1", Value: pg.Width / 2},
		{Name: "CDELT1", Value: cdelt},
		{Name: "CRVAL1", Value: 0.0},
		{Name: "CUNIT1", Value: "deg"},
		{Name: "CTYPE2", Value: "px"},
		{Name: "CRPIX2", Value: pg.Width / 2},
		{Name: "CDELT2", Value: cdelt},
		{Name: "CRVAL2", Value: 0.0},
		{Name: "CUNIT2", Value: "deg"},
		{Name: "CTYPE3", Value: ""},
		{Name: "CRPIX3", Value: 1},
		{Name: "CRVAL3", Value: 0},
		{Name: "CDELT3", Value: 1},
		{Name: "CUNIT3", Value: ""},
		{Name: "CTYPE4", Value: ""},
		{Name: "CRPIX4", Value: 1},
		{Name: "CRVAL4", Value: 0},
		{Name: "CDELT4", Value: 1},
		{Name: "CUNIT4", Value: ""},
		{Name: "CTYPE5", Value: "FREQ"},
		{Name: "CRPIX5", Value: 1},
		{Name: "CRVAL5", Value: freq0},
		{Name: "CDELT5", Value: dfreq},
		{Name: "CUNIT5", Value: "Hz"},
		{Name: "PROJ", Value: pg.Projection.String()},
	}
}

// Patch samples the total power beam of every source on grid pg, one plane
// per source. Each plane is peak normalised. Samples whose direction is
// unusable are zeroed and counted in Plane.Invalid.
func (s *Sampler) Patch(srcs []Source, pg PatchGrid) ([]Plane, error) {
	if pg.Width < 1 {
		return nil, fmt.Errorf("sky: patch width must be positive, got %d", pg.Width)
	}
	if !(pg.FovDeg > 0) {
		return nil, fmt.Errorf("sky: field of view must be positive, got %v", pg.FovDeg)
	}
	frame := NewFrame(s.Array.AzFromEast, s.Array.Zenith)
	coords := make([]float64, pg.Width)
	for i := range coords {
		coords[i] = pg.Projection.Coord(pg.Offset(i))
	}

	planes := make([]Plane, len(srcs))
	g := s.group()
	for ifreq, src := range srcs {
		ifreq, src := ifreq, src
		g.Go(func() error {
			p := Plane{
				Index:  ifreq,
				FreqHz: src.FreqHz,
				Shape:  []int{pg.Width, pg.Width},
				Data:   make([]float64, pg.Width*pg.Width),
				Meta: []Card{
					{Name: "FREQ", Value: src.FreqHz, Comment: "Hz"},
					{Name: "PROJ", Value: pg.Projection.String()},
				},
			}
			arr := s.steered(src.FreqHz)
			for iy, y := range coords {
				for ix, x := range coords {
					v, ok := pg.Projection.Direction(frame, x, y)
					if !ok {
						p.Invalid++
						continue
					}
					pol, az := geometry.ToSph(v)
					af := arr.Factor(v)
					total := TotalPower(af, src.Pattern.PowerPattern(az, pol))
					if math.IsNaN(total) || math.IsInf(total, 0) {
						p.Invalid++
						continue
					}
					p.Data[iy*pg.Width+ix] = total
				}
			}
			p.Peak = NormalizePeak(&p)
			log.WithFields(log.Fields{"freq": src.FreqHz, "peak": p.Peak, "invalid": p.Invalid}).Debug("patch plane sampled")
			planes[ifreq] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return planes, nil
}

// AngleGrid is a regular (theta, phi) grid in degrees; phi is measured
// from east (East=0, South=90).
type AngleGrid struct {
	ThetaMin, ThetaMax float64
	NTheta             int
	PhiMin, PhiMax     float64
	NPhi               int
}

// Thetas returns the polar angle samples.
func (ag AngleGrid) Thetas() []float64 {
	return arraybeam.Span(ag.ThetaMin, ag.ThetaMax, ag.NTheta)
}

// Phis returns the azimuth samples.
func (ag AngleGrid) Phis() []float64 {
	return arraybeam.Span(ag.PhiMin, ag.PhiMax, ag.NPhi)
}

// JonesColumns names the columns of a Jones table row: the grid angles
// followed by the real and imaginary part of each Jones element.
func JonesColumns() []string {
	cols := []string{"THETA", "PHI"}
	for _, name := range antenna.JonesNames {
		name = strings.ToUpper(name)
		cols = append(cols, name+"_RE", name+"_IM")
	}
	return cols
}

// JonesTable evaluates the array-weighted Jones matrix of every source on
// grid ag. Each plane has NTheta*NPhi rows of JonesColumns; row
// itheta + iphi*NTheta holds (theta, phi).
func (s *Sampler) JonesTable(srcs []JonesSource, ag AngleGrid) ([]Plane, error) {
	if ag.NTheta < 1 || ag.NPhi < 1 {
		return nil, fmt.Errorf("sky: angle grid needs at least one sample per axis, got %dx%d", ag.NTheta, ag.NPhi)
	}
	for _, theta := range []float64{ag.ThetaMin, ag.ThetaMax} {
		if !(theta >= 0 && theta <= 180) {
			return nil, fmt.Errorf("sky: theta must be within [0, 180] degrees, got %v", theta)
		}
	}
	thetas, phis := ag.Thetas(), ag.Phis()
	cols := JonesColumns()
	ncol := len(cols)
	nrow := len(thetas) * len(phis)

	planes := make([]Plane, len(srcs))
	g := s.group()
	for ifreq, src := range srcs {
		ifreq, src := ifreq, src
		g.Go(func() error {
			p := Plane{
				Index:  ifreq,
				FreqHz: src.FreqHz,
				Shape:  []int{nrow, ncol},
				Data:   make([]float64, nrow*ncol),
				Meta:   []Card{{Name: "FREQ", Value: src.FreqHz, Comment: "Hz"}},
			}
			for k, col := range cols {
				p.Meta = append(p.Meta, Card{Name: fmt.Sprintf("COL%d", k+1), Value: col})
			}
			arr := s.steered(src.FreqHz)
			for iphi, phi := range phis {
				phiRad := geometry.Radian(phi)
				for itheta, theta := range thetas {
					thetaRad := geometry.Radian(theta)
					row := p.Data[(itheta+iphi*len(thetas))*ncol:][:ncol]
					row[0], row[1] = theta, phi

					af := arr.Factor(geometry.AngleToVec(phiRad, thetaRad))
					j := JonesBeam(af, src.Model.Jones(geometry.AzFromX(phiRad), thetaRad))
					for k, c := range j {
						row[2+2*k], row[3+2*k] = real(c), imag(c)
					}
				}
			}
			planes[ifreq] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return planes, nil
}
