package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiless/arraybeam/antenna"
	"github.com/wiless/arraybeam/skyio"
)

func TestReadGainTable(t *testing.T) {
	in := "theta,phi,gain_db\n# comment\n0,0,3\n10, 90, -1.5\n"
	samples, err := readGainTable(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []antenna.GainSample{{ThetaDeg: 0, PhiDeg: 0, GainDb: 3}, {ThetaDeg: 10, PhiDeg: 90, GainDb: -1.5}}, samples)

	_, err = readGainTable(strings.NewReader("0,0,3\n1,x,2\n"))
	assert.Error(t, err)
	_, err = readGainTable(strings.NewReader("0,0\n"))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "gain.csv")
	out := filepath.Join(dir, "ant.fits")
	var sb strings.Builder
	sb.WriteString("theta,phi,gain_db\n")
	for th := 0; th <= 90; th += 5 {
		for ph := 0; ph < 360; ph += 5 {
			sb.WriteString(strings.Join([]string{strconv.Itoa(th), strconv.Itoa(ph), "0"}, ",") + "\n")
		}
	}
	require.NoError(t, os.WriteFile(in, []byte(sb.String()), 0o644))

	require.NoError(t, run([]string{"-i", in, "-s", "2", "-f", "120", "-o", out}))
	ant, err := skyio.LoadSingleAnt(out)
	require.NoError(t, err)
	assert.Equal(t, 2, ant.NSide)
	assert.Equal(t, 120.0, ant.FreqMHz)

	assert.Error(t, run([]string{"-i", in, "-s", "2", "-o", out}))
}
