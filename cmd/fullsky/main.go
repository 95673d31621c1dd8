// Command fullsky computes the total power beam of a steered array on a
// HEALPix grid and writes it as a HEALPix map.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

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

	fs := pflag.NewFlagSet("fullsky", pflag.ContinueOnError)
	fs.Float64P("freq", "f", 0, "frequency in MHz")
	fs.Float64P("zenith0", "z", 0, "pointing zenith angle, deg")
	fs.Float64P("az0", "a", 0, "pointing azimuth, deg, East=0 South=90")
	fs.StringP("cfg", "c", "", "array configuration file")
	fs.StringP("ant_beam", "A", "", "element pattern HEALPix map, or \"sector\"")
	fs.Int("nside", 64, "map resolution for the sector beam")
	fs.Float64("max-zenith", 90, "pixels beyond this zenith angle (deg) are left at zero")
	fs.StringP("out", "o", "", "output FITS file")
	fs.String("summary", "", "optional JSON run summary")
	config.AddConfigFlag(fs)
	v, err := config.BindFlags(fs, args)
	if err != nil {
		return err
	}
	if err := config.Require(v, "freq", "cfg", "ant_beam", "out"); err != nil {
		return err
	}

	cfg, err := config.LoadArray(v.GetString("cfg"))
	if err != nil {
		return err
	}
	var (
		pattern antenna.PowerPattern
		nside   = v.GetInt("nside")
	)
	if beam := v.GetString("ant_beam"); beam == skyio.SectorBeam {
		pattern = antenna.NewSectorPattern()
	} else {
		ant, err := skyio.LoadSingleAnt(beam)
		if err != nil {
			return err
		}
		pattern, nside = ant, ant.NSide
	}
	arr := cfg.Array()
	arr.AzFromEast = geometry.Radian(v.GetFloat64("az0"))
	arr.Zenith = geometry.Radian(v.GetFloat64("zenith0"))

	freq := arraybeam.MHz(v.GetFloat64("freq"))
	log.Infof("freq=%v MHz", v.GetFloat64("freq"))
	s := sky.NewSampler(arr, env.NumWorkers())
	plane, err := s.FullSky(sky.Source{FreqHz: freq, Pattern: pattern}, nside, geometry.Radian(v.GetFloat64("max-zenith")))
	if err != nil {
		return err
	}

	runID := skyio.NewRunID()
	fd, err := os.Create(v.GetString("out"))
	if err != nil {
		return err
	}
	meta := []sky.Card{
		{Name: "FREQ", Value: freq, Comment: "Hz"},
		{Name: "FREQ_MHZ", Value: v.GetFloat64("freq")},
		{Name: "RUNID", Value: runID},
	}
	if ptg, ok := plane.Card("PTGPIX"); ok {
		meta = append(meta, sky.Card{Name: "PTGPIX", Value: ptg, Comment: "RING"})
	}
	if err := skyio.WriteHealpixMap(fd, plane.Data, meta); err != nil {
		fd.Close()
		return err
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("close %s: %w", v.GetString("out"), err)
	}
	log.WithFields(log.Fields{"out": v.GetString("out"), "nside": nside, "run": runID}).Info("full sky beam written")

	if path := v.GetString("summary"); path != "" {
		skyio.SaveSummary(path, skyio.Summary{
			RunID:    runID,
			Tool:     "fullsky",
			Elements: arr.Size(),
			AzDeg:    v.GetFloat64("az0"),
			ZenDeg:   v.GetFloat64("zenith0"),
			FreqsHz:  []float64{freq},
		})
	}
	return nil
}
