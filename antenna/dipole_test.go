package antenna

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZDipoleAxis(t *testing.T) {
	assert.Equal(t, 0.0, ZDipoleE(0, 1, 0.5))
	assert.Equal(t, 0.0, ZDipoleE(math.Pi, 1, 0.5))
	// half wave dipole broadside
	assert.InDelta(t, 1, ZDipoleE(math.Pi/2, 1, 0.5), 1e-12)
}

func TestXDipoleZenith(t *testing.T) {
	eTheta, ePhi := XDipoleE(0, 0, 1, 0.5)
	assert.InDelta(t, 1, math.Abs(eTheta), 1e-12)
	assert.InDelta(t, 0, ePhi, 1e-12)

	// along its own axis an x dipole does not radiate
	eTheta, ePhi = XDipoleE(0, math.Pi/2, 1, 0.5)
	assert.InDelta(t, 0, eTheta, 1e-12)
	assert.InDelta(t, 0, ePhi, 1e-12)
}

func TestXDipoleFinite(t *testing.T) {
	for pol := 0.0; pol <= math.Pi; pol += math.Pi / 16 {
		for az := 0.0; az < 2*math.Pi; az += math.Pi / 8 {
			j := XDipoleJones(az, pol, 2, 1)
			for _, c := range j {
				require.False(t, math.IsNaN(real(c)) || math.IsInf(real(c), 0), "pol=%v az=%v", pol, az)
			}
		}
	}
}

func TestLPAnt(t *testing.T) {
	eTheta, ePhi := LPAntE(0, 0, 4)
	assert.InDelta(t, 2, eTheta, 1e-12)
	assert.InDelta(t, 0, ePhi, 1e-12)

	eTheta, ePhi = LPAntE(math.Pi/2, 0, 9)
	assert.InDelta(t, 0, eTheta, 1e-12)
	assert.InDelta(t, 3, math.Abs(ePhi), 1e-12)

	// total field is the square root of the power everywhere
	for _, pol := range []float64{0.1, 0.5, 1.0, 1.4} {
		for _, az := range []float64{0.3, 1.1, 2.5, 4} {
			eTheta, ePhi = LPAntE(az, pol, 2)
			assert.InDelta(t, 2, eTheta*eTheta+ePhi*ePhi, 1e-12)
		}
	}
	eTheta, ePhi = LPAntE(0.3, 0.3, -1)
	assert.Equal(t, 0.0, eTheta)
	assert.Equal(t, 0.0, ePhi)
}

func TestReciprocity(t *testing.T) {
	models := []ElementModel{
		DipoleModel{Lambda: 2, Length: 1},
		LogPeriodicModel{Pattern: NewSectorPattern()},
	}
	for _, m := range models {
		for _, pol := range []float64{0, 0.4, 1.2, math.Pi / 2} {
			for _, az := range []float64{0, 0.9, 3.3, 5.1} {
				j := m.Jones(az, pol)
				assert.Equal(t, j[JXP], j[JYT])
				assert.Equal(t, -j[JXT], j[JYP])
			}
		}
	}
	j := NewReciprocalJones(0.5, -0.25).Scale(complex(0, 2))
	assert.Equal(t, j[JXP], j[JYT])
	assert.Equal(t, -j[JXT], j[JYP])
}

func TestParseModelType(t *testing.T) {
	m, err := ParseModelType("Dipole")
	require.NoError(t, err)
	assert.Equal(t, Dipole, m)
	m, err = ParseModelType("lp")
	require.NoError(t, err)
	assert.Equal(t, LogPeriodic, m)
	assert.Equal(t, "logperiodic", m.String())
	_, err = ParseModelType("horn")
	assert.ErrorIs(t, err, ErrUnknownModel)
}
