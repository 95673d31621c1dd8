package skyio

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/astrogo/fitsio"

	"github.com/wiless/arraybeam/antenna"
	"github.com/wiless/arraybeam/healpix"
	"github.com/wiless/arraybeam/sky"
)

// MapColumn is the binary table column holding HEALPix map values.
const MapColumn = "TEMPERATURE"

// WriteHealpixMap writes a RING ordered map as a binary table extension
// after an empty primary HDU. meta is appended to the table header.
func WriteHealpixMap(w io.Writer, data []float64, meta []sky.Card) error {
	nside, err := healpix.NPix2NSide(len(data))
	if err != nil {
		return fmt.Errorf("skyio: %w", err)
	}
	f, err := fitsio.Create(w)
	if err != nil {
		return fmt.Errorf("skyio: %w", err)
	}
	phdu, err := fitsio.NewPrimaryHDU(nil)
	if err != nil {
		return fmt.Errorf("skyio: %w", err)
	}
	if err := f.Write(phdu); err != nil {
		return fmt.Errorf("skyio: primary: %w", err)
	}

	tbl, err := fitsio.NewTable("xtension", []fitsio.Column{{Name: MapColumn, Format: "D"}}, fitsio.BINARY_TBL)
	if err != nil {
		return fmt.Errorf("skyio: %w", err)
	}
	defer tbl.Close()
	cards := append([]fitsio.Card{
		{Name: "PIXTYPE", Value: "HEALPIX", Comment: "HEALPIX pixelisation"},
		{Name: "ORDERING", Value: "RING", Comment: "pixel ordering scheme"},
		{Name: "NSIDE", Value: nside, Comment: "resolution parameter"},
		{Name: "FIRSTPIX", Value: 0},
		{Name: "LASTPIX", Value: len(data) - 1},
		{Name: "INDXSCHM", Value: "IMPLICIT"},
	}, toCards(meta)...)
	if err := tbl.Header().Append(cards...); err != nil {
		return fmt.Errorf("skyio: map header: %w", err)
	}
	for i := range data {
		if err := tbl.Write(&data[i]); err != nil {
			return fmt.Errorf("skyio: map row %d: %w", i, err)
		}
	}
	if err := f.Write(tbl); err != nil {
		return fmt.Errorf("skyio: map: %w", err)
	}
	return f.Close()
}

// HealpixMap is a map read back from a FITS file.
type HealpixMap struct {
	Data    []float64
	NSide   int
	FreqMHz float64 // 0 when the file carries no FREQ_MHZ card
}

// ReadHealpixMap reads the MapColumn of the first binary table. Scalar
// (D, E) and vector (nD, nE) column formats are accepted.
func ReadHealpixMap(r io.Reader) (*HealpixMap, error) {
	f, err := fitsio.Open(r)
	if err != nil {
		return nil, fmt.Errorf("skyio: %w", err)
	}
	defer f.Close()

	var tbl *fitsio.Table
	for _, hdu := range f.HDUs() {
		if t, ok := hdu.(*fitsio.Table); ok {
			tbl = t
			break
		}
	}
	if tbl == nil {
		return nil, fmt.Errorf("skyio: no table HDU")
	}
	if tbl.NumCols() != 1 || tbl.Col(0).Name != MapColumn {
		return nil, fmt.Errorf("skyio: want a single %s column", MapColumn)
	}
	repeat, code, err := parseFormat(tbl.Col(0).Format)
	if err != nil {
		return nil, err
	}

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, fmt.Errorf("skyio: %w", err)
	}
	defer rows.Close()
	data := make([]float64, 0, int(tbl.NumRows())*repeat)
	for rows.Next() {
		switch {
		case code == 'D' && repeat == 1:
			var v float64
			err = rows.Scan(&v)
			data = append(data, v)
		case code == 'E' && repeat == 1:
			var v float32
			err = rows.Scan(&v)
			data = append(data, float64(v))
		case code == 'D':
			v := make([]float64, repeat)
			err = rows.Scan(&v)
			data = append(data, v...)
		default:
			v := make([]float32, repeat)
			err = rows.Scan(&v)
			for _, x := range v {
				data = append(data, float64(x))
			}
		}
		if err != nil {
			return nil, fmt.Errorf("skyio: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("skyio: %w", err)
	}

	nside, err := healpix.NPix2NSide(len(data))
	if err != nil {
		return nil, fmt.Errorf("skyio: %w", err)
	}
	if ord := tbl.Header().Get("ORDERING"); ord != nil {
		if s, ok := ord.Value.(string); ok && strings.TrimSpace(strings.ToUpper(s)) != "RING" {
			return nil, fmt.Errorf("skyio: unsupported ordering %q", s)
		}
	}
	m := &HealpixMap{Data: data, NSide: nside}
	m.FreqMHz, _ = cardFloat(tbl.Header(), "FREQ_MHZ")
	return m, nil
}

func parseFormat(format string) (repeat int, code byte, err error) {
	format = strings.TrimSpace(strings.ToUpper(format))
	if format == "" {
		return 0, 0, fmt.Errorf("skyio: empty column format")
	}
	code = format[len(format)-1]
	if code != 'D' && code != 'E' {
		return 0, 0, fmt.Errorf("skyio: unsupported column format %q", format)
	}
	repeat = 1
	if n := format[:len(format)-1]; n != "" {
		repeat, err = strconv.Atoi(n)
		if err != nil || repeat < 1 {
			return 0, 0, fmt.Errorf("skyio: bad column format %q", format)
		}
	}
	return repeat, code, nil
}

// SectorBeam names the analytic sector element pattern in place of a map
// file on the command line.
const SectorBeam = "sector"

// LoadSingleAnt reads an element power pattern map with its FREQ_MHZ tag.
func LoadSingleAnt(path string) (*antenna.SingleAnt, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("skyio: %w", err)
	}
	defer fd.Close()
	m, err := ReadHealpixMap(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.FreqMHz <= 0 {
		return nil, fmt.Errorf("skyio: %s: missing FREQ_MHZ", path)
	}
	return antenna.NewSingleAnt(m.Data, m.FreqMHz)
}
