// Package config reads array geometry files and the process environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	ms "github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/wiless/vlib"

	"github.com/wiless/arraybeam"
	"github.com/wiless/arraybeam/antenna"
	"github.com/wiless/arraybeam/layout"
)

// ErrNoElements is returned when a configuration describes no element.
var ErrNoElements = errors.New("config: array has no elements")

// AntEntry is one element of the "ants" list.
type AntEntry struct {
	Pos    vlib.Location3D
	Weight *float64 // amplitude, 1 when absent
	Phase  float64  // static phase, degrees
}

// ArrayConfig is the decoded array geometry file.
type ArrayConfig struct {
	Ants   []AntEntry
	Layout arraybeam.GenericStruct

	Positions []vlib.Location3D
	Weights   vlib.VectorC
}

// Array returns an unsteered antenna.Array of the configured elements.
func (c *ArrayConfig) Array() *antenna.Array {
	arr := antenna.NewArray(c.Positions)
	arr.Weights = c.Weights
	return arr
}

// LoadArray reads the array geometry file at path. The format follows the
// file extension (yaml, json, toml).
func LoadArray(path string) (*ArrayConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := decodeArray(v)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	log.WithFields(log.Fields{"file": path, "elements": len(cfg.Positions)}).Debug("array loaded")
	return cfg, nil
}

// ReadArray reads an array geometry document of the given format from r.
func ReadArray(r io.Reader, format string) (*ArrayConfig, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}
	return decodeArray(v)
}

func decodeArray(v *viper.Viper) (*ArrayConfig, error) {
	cfg := new(ArrayConfig)
	dc := &ms.DecoderConfig{
		DecodeHook:       locationHook,
		WeaklyTypedInput: true,
		Result:           cfg,
	}
	dec, err := ms.NewDecoder(dc)
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	for _, a := range cfg.Ants {
		amp := 1.0
		if a.Weight != nil {
			amp = *a.Weight
		}
		cfg.Positions = append(cfg.Positions, a.Pos)
		cfg.Weights = append(cfg.Weights, antenna.PolarWeight(amp, a.Phase))
	}
	if len(cfg.Layout) > 0 {
		p, err := layout.Decode(cfg.Layout)
		if err != nil {
			return nil, err
		}
		pts, err := layout.Drop(p)
		if err != nil {
			return nil, err
		}
		for _, pt := range pts {
			cfg.Positions = append(cfg.Positions, pt)
			cfg.Weights = append(cfg.Weights, 1)
		}
	}
	if len(cfg.Positions) == 0 {
		return nil, ErrNoElements
	}
	return cfg, nil
}

var location3DType = reflect.TypeOf(vlib.Location3D{})

// locationHook turns an [x, y, z] list into a vlib.Location3D.
func locationHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != location3DType || (from.Kind() != reflect.Slice && from.Kind() != reflect.Array) {
		return data, nil
	}
	var xyz []float64
	if err := ms.WeakDecode(data, &xyz); err != nil {
		return nil, err
	}
	if len(xyz) != 3 {
		return nil, fmt.Errorf("position needs 3 coordinates, got %d", len(xyz))
	}
	return vlib.Location3D{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}
