// Command regrid bins a tabulated element gain pattern onto a HEALPix map
// usable as an element pattern by the other commands.
//
// The input is CSV with columns theta (deg), phi (deg, from x) and gain
// (dB). Lines starting with '#' and a non-numeric header row are skipped.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/wiless/arraybeam/antenna"
	"github.com/wiless/arraybeam/config"
	"github.com/wiless/arraybeam/healpix"
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
	if _, err := config.Setup(); err != nil {
		return err
	}

	fs := pflag.NewFlagSet("regrid", pflag.ContinueOnError)
	fs.StringP("in", "i", "", "gain table, CSV theta,phi,gain_db")
	fs.IntP("nside", "s", 0, "HEALPix nside of the output map")
	fs.Float64P("freq_MHz", "f", 0, "frequency tag, MHz")
	fs.StringP("out", "o", "", "output FITS file")
	config.AddConfigFlag(fs)
	v, err := config.BindFlags(fs, args)
	if err != nil {
		return err
	}
	if err := config.Require(v, "in", "nside", "freq_MHz", "out"); err != nil {
		return err
	}
	nside := v.GetInt("nside")
	if nside < 1 {
		return fmt.Errorf("nside must be positive, got %d", nside)
	}

	in, err := os.Open(v.GetString("in"))
	if err != nil {
		return err
	}
	samples, err := readGainTable(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", v.GetString("in"), err)
	}
	log.WithFields(log.Fields{"samples": len(samples), "nside": nside, "resolution": healpix.Resolution(nside)}).Info("regridding")
	data := antenna.RegridGain(samples, nside)

	fd, err := os.Create(v.GetString("out"))
	if err != nil {
		return err
	}
	meta := []sky.Card{
		{Name: "FREQ_MHZ", Value: v.GetFloat64("freq_MHz")},
		{Name: "RUNID", Value: skyio.NewRunID()},
	}
	if err := skyio.WriteHealpixMap(fd, data, meta); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

func readGainTable(r io.Reader) ([]antenna.GainSample, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var samples []antenna.GainSample
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("line %d: want 3 columns, got %d", line, len(rec))
		}
		var vals [3]float64
		for i := range vals {
			vals[i], err = strconv.ParseFloat(rec[i], 64)
			if err != nil {
				break
			}
		}
		if err != nil {
			if len(samples) == 0 && line == 1 {
				continue
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, antenna.GainSample{ThetaDeg: vals[0], PhiDeg: vals[1], GainDb: vals[2]})
	}
	return samples, nil
}
