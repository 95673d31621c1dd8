// Package skyio writes sampled beams and reads element pattern maps.
package skyio

import (
	"fmt"
	"io"
	"os"

	"github.com/astrogo/fitsio"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/wiless/arraybeam/sky"
)

// Sink receives the planes of one run in order.
type Sink interface {
	WritePlane(p sky.Plane) error
	Close() error
}

// NewRunID returns a fresh identifier stamped into every output header.
func NewRunID() string {
	return uuid.NewString()
}

// FITSSink writes plane 0 as the primary image and every later plane as an
// IMAGE extension named freq<i>.
type FITSSink struct {
	w     io.WriteCloser
	f     *fitsio.File
	runID string
	n     int
}

// NewFITSSink starts a FITS stream on w. Close closes w.
func NewFITSSink(w io.WriteCloser, runID string) (*FITSSink, error) {
	f, err := fitsio.Create(w)
	if err != nil {
		return nil, fmt.Errorf("skyio: %w", err)
	}
	return &FITSSink{w: w, f: f, runID: runID}, nil
}

// CreateFITS truncates path and returns a FITSSink writing to it.
func CreateFITS(path, runID string) (*FITSSink, error) {
	fd, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("skyio: %w", err)
	}
	s, err := NewFITSSink(fd, runID)
	if err != nil {
		fd.Close()
		return nil, err
	}
	return s, nil
}

func (s *FITSSink) WritePlane(p sky.Plane) error {
	img := fitsio.NewImage(-64, fitsAxes(p.Shape))
	defer img.Close()

	cards := toCards(p.Meta)
	if s.n > 0 {
		cards = append(cards, fitsio.Card{Name: "EXTNAME", Value: fmt.Sprintf("freq%d", s.n)})
	}
	cards = append(cards, fitsio.Card{Name: "RUNID", Value: s.runID, Comment: "run identifier"})
	if err := img.Header().Append(cards...); err != nil {
		return fmt.Errorf("skyio: plane %d header: %w", s.n, err)
	}
	if err := img.Write(p.Data); err != nil {
		return fmt.Errorf("skyio: plane %d data: %w", s.n, err)
	}
	if err := s.f.Write(img); err != nil {
		return fmt.Errorf("skyio: plane %d: %w", s.n, err)
	}
	log.WithFields(log.Fields{"plane": s.n, "freq": p.FreqHz}).Debug("plane written")
	s.n++
	return nil
}

func (s *FITSSink) Close() error {
	err := s.f.Close()
	if cerr := s.w.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteCube writes planes of equal 2-D shape as one primary image with
// axes (x, y, 1, 1, freq), fastest first, carrying cards as its header.
func WriteCube(w io.Writer, planes []sky.Plane, cards []sky.Card, runID string) error {
	if len(planes) == 0 {
		return fmt.Errorf("skyio: empty cube")
	}
	shape := planes[0].Shape
	if len(shape) != 2 {
		return fmt.Errorf("skyio: cube planes must be 2-D, got shape %v", shape)
	}
	data := make([]float64, 0, len(planes)*len(planes[0].Data))
	for i, p := range planes {
		if len(p.Data) != len(planes[0].Data) {
			return fmt.Errorf("skyio: plane %d has %d samples, want %d", i, len(p.Data), len(planes[0].Data))
		}
		data = append(data, p.Data...)
	}

	f, err := fitsio.Create(w)
	if err != nil {
		return fmt.Errorf("skyio: %w", err)
	}
	img := fitsio.NewImage(-64, []int{shape[1], shape[0], 1, 1, len(planes)})
	defer img.Close()
	hdr := append(toCards(cards), fitsio.Card{Name: "RUNID", Value: runID, Comment: "run identifier"})
	if err := img.Header().Append(hdr...); err != nil {
		return fmt.Errorf("skyio: cube header: %w", err)
	}
	if err := img.Write(data); err != nil {
		return fmt.Errorf("skyio: cube data: %w", err)
	}
	if err := f.Write(img); err != nil {
		return fmt.Errorf("skyio: cube: %w", err)
	}
	return f.Close()
}

// ReadImage returns the data, axes (fastest first) and header of HDU i.
func ReadImage(r io.Reader, i int) ([]float64, []int, *fitsio.Header, error) {
	f, err := fitsio.Open(r)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("skyio: %w", err)
	}
	defer f.Close()
	if i < 0 || i >= len(f.HDUs()) {
		return nil, nil, nil, fmt.Errorf("skyio: no HDU %d", i)
	}
	img, ok := f.HDU(i).(fitsio.Image)
	if !ok {
		return nil, nil, nil, fmt.Errorf("skyio: HDU %d is not an image", i)
	}
	var data []float64
	if err := img.Read(&data); err != nil {
		return nil, nil, nil, fmt.Errorf("skyio: HDU %d: %w", i, err)
	}
	return data, img.Header().Axes(), img.Header(), nil
}

// fitsAxes reverses a slowest-first shape into FITS axis order.
func fitsAxes(shape []int) []int {
	axes := make([]int, len(shape))
	for i, n := range shape {
		axes[len(shape)-1-i] = n
	}
	return axes
}

func toCards(meta []sky.Card) []fitsio.Card {
	cards := make([]fitsio.Card, 0, len(meta)+2)
	for _, c := range meta {
		cards = append(cards, fitsio.Card{Name: c.Name, Value: c.Value, Comment: c.Comment})
	}
	return cards
}

// cardFloat returns a numeric header card as float64.
func cardFloat(hdr *fitsio.Header, name string) (float64, bool) {
	c := hdr.Get(name)
	if c == nil {
		return 0, false
	}
	switch v := c.Value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// OpenSink returns the sink of the named format: "fits" or "m".
func OpenSink(format, path, runID string) (Sink, error) {
	switch format {
	case "fits", "":
		return CreateFITS(path, runID)
	case "m":
		return NewMatlabSink(path), nil
	}
	return nil, fmt.Errorf("skyio: unknown output format %q", format)
}
