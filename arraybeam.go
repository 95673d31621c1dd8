// Package arraybeam holds the constants and small helpers shared by the
// beam-synthesis packages.
package arraybeam

import "gonum.org/v1/gonum/floats"

// LightSpeed in m/s
const LightSpeed = 299792458.0

// GenericStruct is the raw form of a decoded configuration section.
type GenericStruct map[string]interface{}

// MHz converts a frequency in MHz to Hz.
func MHz(f float64) float64 {
	return f * 1e6
}

// Lambda returns the free-space wavelength in metres for freqHz.
func Lambda(freqHz float64) float64 {
	return LightSpeed / freqHz
}

// Span returns n equally spaced values from fmin to fmax inclusive.
// A single value returns fmin.
func Span(fmin, fmax float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{fmin}
	}
	return floats.Span(make([]float64, n), fmin, fmax)
}
