package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Float64P("freq", "f", 0, "")
	fs.StringSliceP("ant_beam", "A", nil, "")
	fs.Float64("max-zenith", 90, "")
	AddConfigFlag(fs)
	return fs
}

func TestBindFlags(t *testing.T) {
	v, err := BindFlags(newFlagSet(), []string{"-f", "150", "-A", "a.fits", "-A", "b.fits"})
	require.NoError(t, err)
	assert.Equal(t, 150.0, v.GetFloat64("freq"))
	assert.Equal(t, []string{"a.fits", "b.fits"}, v.GetStringSlice("ant_beam"))
	assert.Equal(t, 90.0, v.GetFloat64("max-zenith"))
	assert.NoError(t, Require(v, "freq", "ant_beam"))
	assert.Error(t, Require(v, "freq", "max-zenith"))
}

func TestBindFlagsRunConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("freq: 75\nmax-zenith: 60\n"), 0o644))
	v, err := BindFlags(newFlagSet(), []string{"--config", path, "--max-zenith", "45"})
	require.NoError(t, err)
	assert.Equal(t, 75.0, v.GetFloat64("freq"))
	assert.Equal(t, 45.0, v.GetFloat64("max-zenith"))
	assert.NoError(t, Require(v, "freq"))

	_, err = BindFlags(newFlagSet(), []string{"--config", filepath.Join(t.TempDir(), "none.yaml")})
	assert.Error(t, err)
	_, err = BindFlags(newFlagSet(), []string{"--bogus"})
	assert.Error(t, err)
}
