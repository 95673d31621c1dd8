package skyio

import (
	"fmt"
	"strings"

	"github.com/wiless/vlib"

	"github.com/wiless/arraybeam/sky"
)

// MatlabSink exports every plane as a variable plane<i> of a .m script,
// reshaped to the plane's shape, next to its frequency freq<i>.
type MatlabSink struct {
	m *vlib.Matlab
	n int
}

// NewMatlabSink writes to the script name (".m" may be omitted).
func NewMatlabSink(name string) *MatlabSink {
	m := vlib.NewMatlab(strings.TrimSuffix(name, ".m"))
	m.Silent = true
	return &MatlabSink{m: m}
}

func (s *MatlabSink) WritePlane(p sky.Plane) error {
	name := fmt.Sprintf("plane%d", s.n)
	s.m.Export(name, vlib.VectorF(p.Data))
	s.m.Export(fmt.Sprintf("freq%d", s.n), vlib.VectorF{p.FreqHz})
	if len(p.Shape) == 2 {
		s.m.Command(fmt.Sprintf("%s = reshape(%s, %d, %d).';", name, name, p.Shape[1], p.Shape[0]))
	}
	s.n++
	return nil
}

func (s *MatlabSink) Close() error {
	s.m.Close()
	return nil
}

// SaveSummary stores a JSON description of a run next to its output.
func SaveSummary(path string, summary interface{}) {
	vlib.SaveStructure(summary, path, true)
}

// Summary describes one run of a command.
type Summary struct {
	RunID    string
	Tool     string
	Elements int
	AzDeg    float64
	ZenDeg   float64
	FreqsHz  []float64
	Peaks    []float64 `json:",omitempty"`
	Invalid  []int     `json:",omitempty"`
}
