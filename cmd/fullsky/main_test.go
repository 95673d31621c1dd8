package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiless/arraybeam/antenna"
	"github.com/wiless/arraybeam/healpix"
	"github.com/wiless/arraybeam/sky"
	"github.com/wiless/arraybeam/skyio"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "array.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("ants:\n  - pos: [0, 0, 0]\n"), 0o644))
	ant := filepath.Join(dir, "ant.fits")
	data := make([]float64, healpix.NSide2NPix(2))
	for i := range data {
		data[i] = 0.5
	}
	var buf bytes.Buffer
	require.NoError(t, skyio.WriteHealpixMap(&buf, data, []sky.Card{{Name: "FREQ_MHZ", Value: 100.0}}))
	require.NoError(t, os.WriteFile(ant, buf.Bytes(), 0o644))
	out := filepath.Join(dir, "beam.fits")

	require.NoError(t, run([]string{"-f", "100", "-z", "0", "-a", "0", "-c", cfg, "-A", ant, "-o", out, "--max-zenith", "60"}))

	fd, err := os.Open(out)
	require.NoError(t, err)
	defer fd.Close()
	m, err := skyio.ReadHealpixMap(fd)
	require.NoError(t, err)
	assert.Equal(t, 2, m.NSide)
	assert.Equal(t, 100.0, m.FreqMHz)
	for i, v := range m.Data {
		pol, _ := healpix.Pix2AngRing(2, i)
		if pol > 60*3.141592653589793/180 {
			assert.Equal(t, 0.0, v)
		} else {
			assert.InDelta(t, 0.5, v, 1e-12)
		}
	}

	assert.Error(t, run([]string{"-c", cfg, "-A", ant, "-o", out}))
}

func TestRunSectorBeam(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "array.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("ants:\n  - pos: [0, 0, 0]\n"), 0o644))
	out := filepath.Join(dir, "beam.fits")

	require.NoError(t, run([]string{"-f", "150", "-c", cfg, "-A", "sector", "--nside", "4", "-o", out}))

	fd, err := os.Open(out)
	require.NoError(t, err)
	defer fd.Close()
	m, err := skyio.ReadHealpixMap(fd)
	require.NoError(t, err)
	assert.Equal(t, 4, m.NSide)
	assert.Equal(t, 150.0, m.FreqMHz)
	require.Len(t, m.Data, healpix.NSide2NPix(4))

	sector := antenna.NewSectorPattern()
	for i, v := range m.Data {
		pol, az := healpix.Pix2AngRing(4, i)
		if pol > math.Pi/2 {
			assert.Equal(t, 0.0, v, "pixel %d", i)
			continue
		}
		assert.InDelta(t, sector.PowerPattern(az, pol), v, 1e-9, "pixel %d", i)
	}
	// the first ring sits closest to the boresight
	assert.Greater(t, m.Data[0], m.Data[len(m.Data)/2])
}
