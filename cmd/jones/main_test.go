package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wiless/vlib"

	"github.com/wiless/arraybeam/skyio"
)

const arrayYAML = "ants:\n  - pos: [0, 0, 0]\n  - pos: [1, 0, 0]\n"

func TestRunDipole(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "array.yaml")
	out := filepath.Join(dir, "jones.fits")
	require.NoError(t, os.WriteFile(cfg, []byte(arrayYAML), 0o644))

	err := run([]string{
		"-c", cfg, "-o", out,
		"--model", "dipole", "--dipole-len", "1.5",
		"--freq-min", "50", "--freq-max", "100", "--nfreq", "2",
		"-t", "0", "-T", "90", "-n", "4", "-p", "-90", "-P", "90", "-N", "3",
	})
	require.NoError(t, err)

	fd, err := os.Open(out)
	require.NoError(t, err)
	defer fd.Close()
	data, axes, _, err := skyio.ReadImage(fd, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 12}, axes)
	assert.Len(t, data, 120)
	assert.Equal(t, -90.0, data[1])
}

func TestRunSectorBeam(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "array.yaml")
	out := filepath.Join(dir, "jones.fits")
	require.NoError(t, os.WriteFile(cfg, []byte(arrayYAML), 0o644))

	err := run([]string{
		"-c", cfg, "-o", out,
		"-A", "sector", "--freq-min", "100", "--freq-max", "200", "--nfreq", "3",
		"-t", "0", "-T", "60", "-n", "3", "-p", "0", "-P", "90", "-N", "2",
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	for i := 1; i <= 3; i++ {
		data, axes, _, err := skyio.ReadImage(bytes.NewReader(raw), i)
		require.NoError(t, err, "plane %d", i)
		assert.Equal(t, []int{10, 6}, axes)
		// zenith row: two coherent elements times sqrt of the 8 dBi peak
		jxt := math.Hypot(data[2], data[3])
		assert.InDelta(t, 2*math.Sqrt(vlib.InvDb(8)), jxt, 1e-9, "plane %d", i)
	}

	assert.Error(t, run([]string{"-c", cfg, "-o", out, "-A", "sector"}))
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "array.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(arrayYAML), 0o644))
	out := filepath.Join(dir, "jones.fits")

	assert.Error(t, run([]string{"-c", cfg, "-o", out, "--model", "horn"}))
	assert.Error(t, run([]string{"-c", cfg, "-o", out}))
	assert.Error(t, run([]string{"-c", cfg, "-o", out, "--model", "dipole", "--freq-min", "50"}))
}
