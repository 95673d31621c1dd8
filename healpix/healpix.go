// Package healpix implements the RING-ordered HEALPix sphere pixelization:
// pixel/angle conversion and the four-pixel bilinear interpolation used to
// look up pixelized antenna patterns at arbitrary directions.
//
// Angles are (pol, az) in radians, az measured from the x axis.
package healpix

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
)

// ErrBadPixelCount is returned when a map length is not 12*nside^2.
var ErrBadPixelCount = errors.New("healpix: pixel count is not 12*nside^2")

const twothird = 2.0 / 3.0

// NSide2NPix returns the number of pixels of a map with resolution nside.
func NSide2NPix(nside int) int {
	return 12 * nside * nside
}

// NPix2NSide returns the resolution parameter of a map with npix pixels.
func NPix2NSide(npix int) (int, error) {
	nside := int(math.Round(math.Sqrt(float64(npix) / 12)))
	if nside < 1 || NSide2NPix(nside) != npix {
		return 0, fmt.Errorf("%w: %d", ErrBadPixelCount, npix)
	}
	return nside, nil
}

// Resolution returns the mean pixel spacing in degrees.
func Resolution(nside int) float64 {
	return math.Sqrt(4*math.Pi/float64(NSide2NPix(nside))) * 180 / math.Pi
}

// base caches the per-resolution constants of the ring scheme.
type base struct {
	nside, npix, ncap int
	fact1, fact2      float64
}

func newBase(nside int) base {
	if nside < 1 {
		log.Panicf("healpix: invalid nside %d", nside)
	}
	npix := NSide2NPix(nside)
	fact2 := 4.0 / float64(npix)
	return base{
		nside: nside,
		npix:  npix,
		ncap:  2 * nside * (nside - 1),
		fact1: float64(2*nside) * fact2,
		fact2: fact2,
	}
}

func isqrt(v int) int {
	return int(math.Sqrt(float64(v) + 0.5))
}

// fmodulo returns v1 mod v2 in [0, v2).
func fmodulo(v1, v2 float64) float64 {
	if v1 >= 0 {
		if v1 < v2 {
			return v1
		}
		return math.Mod(v1, v2)
	}
	tmp := math.Mod(v1, v2) + v2
	if tmp == v2 {
		return 0
	}
	return tmp
}

// Pix2AngRing returns the centre of pixel pix.
func Pix2AngRing(nside, pix int) (pol, az float64) {
	b := newBase(nside)
	if pix < 0 || pix >= b.npix {
		log.Panicf("healpix: pixel %d out of range [0,%d)", pix, b.npix)
	}
	var z float64
	switch {
	case pix < b.ncap:
		iring := (1 + isqrt(1+2*pix)) >> 1
		iphi := (pix + 1) - 2*iring*(iring-1)
		z = 1.0 - float64(iring*iring)*b.fact2
		az = (float64(iphi) - 0.5) * (math.Pi / 2) / float64(iring)
	case pix < b.npix-b.ncap:
		nl4 := 4 * b.nside
		ip := pix - b.ncap
		tmp := ip / nl4
		iring := tmp + b.nside
		iphi := ip - nl4*tmp + 1
		fodd := 0.5
		if (iring+b.nside)&1 == 1 {
			fodd = 1
		}
		z = float64(2*b.nside-iring) * b.fact1
		az = (float64(iphi) - fodd) * math.Pi * 0.75 * b.fact1
	default:
		ip := b.npix - pix
		iring := (1 + isqrt(2*ip-1)) >> 1
		iphi := 4*iring + 1 - (ip - 2*iring*(iring-1))
		z = -1.0 + float64(iring*iring)*b.fact2
		az = (float64(iphi) - 0.5) * (math.Pi / 2) / float64(iring)
	}
	return math.Acos(z), az
}

// Ang2PixRing returns the pixel containing the direction (pol, az).
func Ang2PixRing(nside int, pol, az float64) int {
	b := newBase(nside)
	z := math.Cos(pol)
	za := math.Abs(z)
	tt := fmodulo(az*2/math.Pi, 4.0)

	if za <= twothird {
		nl4 := 4 * b.nside
		temp1 := float64(b.nside) * (0.5 + tt)
		temp2 := float64(b.nside) * z * 0.75
		jp := int(temp1 - temp2)
		jm := int(temp1 + temp2)
		ir := b.nside + 1 + jp - jm
		kshift := 1 - (ir & 1)
		t1 := jp + jm - b.nside + kshift + 1 + nl4 + nl4
		ip := (t1 >> 1) % nl4
		return b.ncap + (ir-1)*nl4 + ip
	}

	tp := tt - math.Floor(tt)
	tmp := float64(b.nside) * math.Sqrt(3*(1-za))
	jp := int(tp * tmp)
	jm := int((1.0 - tp) * tmp)
	ir := jp + jm + 1
	ip := int(tt*float64(ir)) % (4 * ir)
	if z > 0 {
		return 2*ir*(ir-1) + ip
	}
	return b.npix - 2*ir*(ir+1) + ip
}

// ringAbove returns the index of the ring directly north of z; 0 means the
// north pole.
func (b base) ringAbove(z float64) int {
	az := math.Abs(z)
	if az <= twothird {
		return int(float64(b.nside) * (2 - 1.5*z))
	}
	iring := int(float64(b.nside) * math.Sqrt(3*(1-az)))
	if z > 0 {
		return iring
	}
	return 4*b.nside - iring - 1
}

// ringInfo returns the first pixel, the pixel count, the colatitude and the
// half-pixel shift flag of ring.
func (b base) ringInfo(ring int) (startpix, ringpix int, theta float64, shifted bool) {
	northring := ring
	if ring > 2*b.nside {
		northring = 4*b.nside - ring
	}
	if northring < b.nside {
		tmp := float64(northring*northring) * b.fact2
		costheta := 1 - tmp
		sintheta := math.Sqrt(tmp * (2 - tmp))
		theta = math.Atan2(sintheta, costheta)
		ringpix = 4 * northring
		shifted = true
		startpix = 2 * northring * (northring - 1)
	} else {
		theta = math.Acos(float64(2*b.nside-northring) * b.fact1)
		ringpix = 4 * b.nside
		shifted = (northring-b.nside)&1 == 0
		startpix = b.ncap + (northring-b.nside)*ringpix
	}
	if northring != ring {
		theta = math.Pi - theta
		startpix = b.npix - startpix - ringpix
	}
	return startpix, ringpix, theta, shifted
}

// ringNeighbours returns the two pixels of ring bracketing az and the
// linear weight of the second one.
func (b base) ringNeighbours(ring int, az float64) (p1, p2 int, w1 float64, theta float64) {
	sp, nr, theta, shifted := b.ringInfo(ring)
	shift := 0.0
	if shifted {
		shift = 0.5
	}
	dphi := 2 * math.Pi / float64(nr)
	i1 := int(math.Floor(az/dphi - shift))
	w1 = (az - (float64(i1)+shift)*dphi) / dphi
	i2 := i1 + 1
	if i1 < 0 {
		i1 += nr
	}
	if i2 >= nr {
		i2 -= nr
	}
	return sp + i1, sp + i2, w1, theta
}

// GetInterpolRing returns the four pixels surrounding (pol, az) and their
// bilinear interpolation weights. The weights sum to one.
func GetInterpolRing(nside int, pol, az float64) (pix [4]int, wgt [4]float64) {
	if pol < 0 || pol > math.Pi {
		log.Panicf("healpix: invalid polar angle %v", pol)
	}
	b := newBase(nside)
	az = fmodulo(az, 2*math.Pi)
	z := math.Cos(pol)
	ir1 := b.ringAbove(z)
	ir2 := ir1 + 1
	var theta1, theta2 float64

	if ir1 > 0 {
		var w1 float64
		pix[0], pix[1], w1, theta1 = b.ringNeighbours(ir1, az)
		wgt[0], wgt[1] = 1-w1, w1
	}
	if ir2 < 4*b.nside {
		var w1 float64
		pix[2], pix[3], w1, theta2 = b.ringNeighbours(ir2, az)
		wgt[2], wgt[3] = 1-w1, w1
	}

	switch {
	case ir1 == 0:
		wtheta := pol / theta2
		wgt[2] *= wtheta
		wgt[3] *= wtheta
		fac := (1 - wtheta) * 0.25
		wgt[0], wgt[1] = fac, fac
		wgt[2] += fac
		wgt[3] += fac
		pix[0] = (pix[2] + 2) & 3
		pix[1] = (pix[3] + 2) & 3
	case ir2 == 4*b.nside:
		wtheta := (pol - theta1) / (math.Pi - theta1)
		wgt[0] *= 1 - wtheta
		wgt[1] *= 1 - wtheta
		fac := wtheta * 0.25
		wgt[0] += fac
		wgt[1] += fac
		wgt[2], wgt[3] = fac, fac
		pix[2] = ((pix[0] + 2) & 3) + b.npix - 4
		pix[3] = ((pix[1] + 2) & 3) + b.npix - 4
	default:
		wtheta := (pol - theta1) / (theta2 - theta1)
		wgt[0] *= 1 - wtheta
		wgt[1] *= 1 - wtheta
		wgt[2] *= wtheta
		wgt[3] *= wtheta
	}
	return pix, wgt
}

// Interpolate returns the bilinear interpolation of a RING-ordered map at
// (pol, az).
func Interpolate(nside int, data []float64, pol, az float64) float64 {
	if len(data) != NSide2NPix(nside) {
		log.Panicf("healpix: map has %d pixels, nside %d needs %d", len(data), nside, NSide2NPix(nside))
	}
	pix, wgt := GetInterpolRing(nside, pol, az)
	var result float64
	for i, p := range pix {
		result += data[p] * wgt[i]
	}
	return result
}
