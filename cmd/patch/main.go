// Command patch computes peak normalised power beams of a steered array on
// a projected sky patch, one plane per element pattern, and writes them as
// a FITS cube.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

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

	fs := pflag.NewFlagSet("patch", pflag.ContinueOnError)
	fs.Float64P("zenith0", "z", 0, "phase centre zenith angle, deg")
	fs.Float64P("az0", "a", 0, "phase centre azimuth, deg, East=0 South=90")
	fs.StringP("cfg", "c", "", "array configuration file")
	fs.StringSliceP("ant_beam", "A", nil, "element pattern HEALPix maps, one per frequency")
	fs.Float64P("fov_width", "w", 0, "field of view width, deg")
	fs.IntP("fov_pix", "p", 0, "field of view width in pixels")
	fs.String("proj", "SIN", "projection: SIN or TAN")
	fs.String("format", "fits", "output format: fits (cube) or m")
	fs.StringP("out", "o", "", "output file")
	fs.String("summary", "", "optional JSON run summary")
	config.AddConfigFlag(fs)
	v, err := config.BindFlags(fs, args)
	if err != nil {
		return err
	}
	if err := config.Require(v, "cfg", "ant_beam", "fov_width", "fov_pix", "out"); err != nil {
		return err
	}
	proj, err := sky.ParseProjection(v.GetString("proj"))
	if err != nil {
		return err
	}

	cfg, err := config.LoadArray(v.GetString("cfg"))
	if err != nil {
		return err
	}
	var srcs []sky.Source
	for _, name := range v.GetStringSlice("ant_beam") {
		ant, err := skyio.LoadSingleAnt(name)
		if err != nil {
			return err
		}
		log.Infof("freq=%v MHz", ant.FreqMHz)
		srcs = append(srcs, sky.Source{FreqHz: ant.FreqHz(), Pattern: ant})
	}

	arr := cfg.Array()
	arr.AzFromEast = geometry.Radian(v.GetFloat64("az0"))
	arr.Zenith = geometry.Radian(v.GetFloat64("zenith0"))
	pg := sky.PatchGrid{FovDeg: v.GetFloat64("fov_width"), Width: v.GetInt("fov_pix"), Projection: proj}

	planes, err := sky.NewSampler(arr, env.NumWorkers()).Patch(srcs, pg)
	if err != nil {
		return err
	}

	runID := skyio.NewRunID()
	out := v.GetString("out")
	summary := skyio.Summary{
		RunID:    runID,
		Tool:     "patch",
		Elements: arr.Size(),
		AzDeg:    v.GetFloat64("az0"),
		ZenDeg:   v.GetFloat64("zenith0"),
	}
	freqs := make([]float64, len(planes))
	for i, p := range planes {
		freqs[i] = p.FreqHz
		summary.Peaks = append(summary.Peaks, p.Peak)
		summary.Invalid = append(summary.Invalid, p.Invalid)
		if p.Invalid > 0 {
			log.WithFields(log.Fields{"freq": p.FreqHz, "invalid": p.Invalid}).Warn("samples outside the projection were zeroed")
		}
	}
	summary.FreqsHz = freqs

	switch v.GetString("format") {
	case "fits", "":
		if err := writeCube(out, planes, pg.WCSCards(freqs), runID); err != nil {
			return err
		}
	default:
		sink, err := skyio.OpenSink(v.GetString("format"), out, runID)
		if err != nil {
			return err
		}
		for _, p := range planes {
			if err := sink.WritePlane(p); err != nil {
				sink.Close()
				return err
			}
		}
		if err := sink.Close(); err != nil {
			return err
		}
	}
	log.WithFields(log.Fields{"out": out, "planes": len(planes), "run": runID}).Info("patch beams written")

	if path := v.GetString("summary"); path != "" {
		skyio.SaveSummary(path, summary)
	}
	return nil
}

func writeCube(path string, planes []sky.Plane, cards []sky.Card, runID string) error {
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := skyio.WriteCube(fd, planes, cards, runID); err != nil {
		fd.Close()
		return err
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
