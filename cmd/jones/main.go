// Command jones tabulates the array weighted Jones matrix of the element
// model on a (theta, phi) grid, one table plane per frequency.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wiless/arraybeam"
	"github.com/wiless/arraybeam/antenna"
	"github.com/wiless/arraybeam/config"
	"github.com/wiless/arraybeam/geometry"
	"github.com/wiless/arraybeam/sky"
	"github.com/wiless/arraybeam/skyio"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(args []string) error {
	env, err := config.Setup()
	if err != nil {
		return err
	}

	fs := pflag.NewFlagSet("jones", pflag.ContinueOnError)
	fs.Float64P("theta_min", "t", 0, "minimum zenith angle, deg")
	fs.Float64P("theta_max", "T", 90, "maximum zenith angle, deg")
	fs.IntP("ntheta", "n", 91, "number of zenith angles")
	fs.Float64P("phi_min", "p", 0, "minimum azimuth, deg, East=0 South=90")
	fs.Float64P("phi_max", "P", 360, "maximum azimuth, deg")
	fs.IntP("nphi", "N", 361, "number of azimuths")
	fs.Float64P("zenith0", "z", 0, "pointing zenith angle, deg")
	fs.Float64P("az0", "a", 0, "pointing azimuth, deg, East=0 South=90")
	fs.StringP("cfg", "c", "", "array configuration file")
	fs.StringSliceP("antenna_beam", "A", nil, "element pattern HEALPix maps or \"sector\" (logperiodic model)")
	fs.String("model", "logperiodic", "element model: logperiodic or dipole")
	fs.Float64("dipole-len", 0, "dipole length, m")
	fs.Float64("freq-min", 0, "first frequency, MHz (dipole model or sector beam)")
	fs.Float64("freq-max", 0, "last frequency, MHz (dipole model or sector beam)")
	fs.Int("nfreq", 1, "number of frequencies (dipole model or sector beam)")
	fs.String("format", "fits", "output format: fits or m")
	fs.StringP("out", "o", "", "output file")
	config.AddConfigFlag(fs)
	v, err := config.BindFlags(fs, args)
	if err != nil {
		return err
	}
	if err := config.Require(v, "cfg", "out"); err != nil {
		return err
	}
	model, err := antenna.ParseModelType(v.GetString("model"))
	if err != nil {
		return err
	}

	var srcs []sky.JonesSource
	switch model {
	case antenna.LogPeriodic:
		if err := config.Require(v, "antenna_beam"); err != nil {
			return err
		}
		for _, name := range v.GetStringSlice("antenna_beam") {
			if name == skyio.SectorBeam {
				freqs, err := freqSpan(v)
				if err != nil {
					return err
				}
				pattern := antenna.NewSectorPattern()
				for _, freq := range freqs {
					srcs = append(srcs, sky.JonesSource{FreqHz: freq, Model: antenna.LogPeriodicModel{Pattern: pattern}})
				}
				continue
			}
			ant, err := skyio.LoadSingleAnt(name)
			if err != nil {
				return err
			}
			srcs = append(srcs, sky.JonesSource{FreqHz: ant.FreqHz(), Model: antenna.LogPeriodicModel{Pattern: ant}})
		}
	case antenna.Dipole:
		if err := config.Require(v, "dipole-len"); err != nil {
			return err
		}
		freqs, err := freqSpan(v)
		if err != nil {
			return err
		}
		for _, freq := range freqs {
			srcs = append(srcs, sky.JonesSource{
				FreqHz: freq,
				Model:  antenna.DipoleModel{Lambda: arraybeam.Lambda(freq), Length: v.GetFloat64("dipole-len")},
			})
		}
	}
	if len(srcs) == 0 {
		return fmt.Errorf("no frequency to evaluate")
	}

	cfg, err := config.LoadArray(v.GetString("cfg"))
	if err != nil {
		return err
	}
	arr := cfg.Array()
	arr.AzFromEast = geometry.Radian(v.GetFloat64("az0"))
	arr.Zenith = geometry.Radian(v.GetFloat64("zenith0"))
	grid := sky.AngleGrid{
		ThetaMin: v.GetFloat64("theta_min"),
		ThetaMax: v.GetFloat64("theta_max"),
		NTheta:   v.GetInt("ntheta"),
		PhiMin:   v.GetFloat64("phi_min"),
		PhiMax:   v.GetFloat64("phi_max"),
		NPhi:     v.GetInt("nphi"),
	}

	log.WithFields(log.Fields{"model": model, "freqs": len(srcs), "rows": grid.NTheta * grid.NPhi}).Info("evaluating jones tables")
	planes, err := sky.NewSampler(arr, env.NumWorkers()).JonesTable(srcs, grid)
	if err != nil {
		return err
	}

	runID := skyio.NewRunID()
	sink, err := skyio.OpenSink(v.GetString("format"), v.GetString("out"), runID)
	if err != nil {
		return err
	}
	for _, p := range planes {
		log.Infof("freq=%v MHz", p.FreqHz/1e6)
		if err := sink.WritePlane(p); err != nil {
			sink.Close()
			return err
		}
	}
	if err := sink.Close(); err != nil {
		return err
	}
	log.WithFields(log.Fields{"out": v.GetString("out"), "run": runID}).Info("jones tables written")
	return nil
}

// freqSpan returns the --freq-min..--freq-max frequencies in Hz. A missing
// --freq-max selects the single frequency --freq-min.
func freqSpan(v *viper.Viper) ([]float64, error) {
	if err := config.Require(v, "freq-min"); err != nil {
		return nil, err
	}
	fmax := v.GetFloat64("freq-max")
	if !v.IsSet("freq-max") {
		fmax = v.GetFloat64("freq-min")
	}
	freqs := arraybeam.Span(v.GetFloat64("freq-min"), fmax, v.GetInt("nfreq"))
	for i, f := range freqs {
		freqs[i] = arraybeam.MHz(f)
	}
	return freqs, nil
}
