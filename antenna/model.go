package antenna

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownModel is returned by ParseModelType for unknown names.
var ErrUnknownModel = errors.New("antenna: unknown element model")

// ElementModel is the polarimetric response of a single array element.
// Angles are the internal (azimuth from x, polar) pair in radians.
type ElementModel interface {
	Jones(azFromX, pol float64) Jones
}

// PowerPattern is a scalar element power pattern.
type PowerPattern interface {
	PowerPattern(az, pol float64) float64
}

// ModelType selects an ElementModel implementation.
type ModelType int

// ModelTypes holds the names of the ModelType values.
var ModelTypes = [...]string{
	"dipole",
	"logperiodic",
}

const (
	Dipole ModelType = iota
	LogPeriodic
)

func (m ModelType) String() string {
	if m < 0 || int(m) >= len(ModelTypes) {
		return fmt.Sprintf("ModelType(%d)", int(m))
	}
	return ModelTypes[m]
}

// ParseModelType is case insensitive and accepts "lp" for LogPeriodic.
func ParseModelType(s string) (ModelType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "lp" {
		return LogPeriodic, nil
	}
	for i, n := range ModelTypes {
		if n == name {
			return ModelType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

// DipoleModel is a crossed pair of finite dipoles of length Length.
type DipoleModel struct {
	Lambda float64
	Length float64
}

func (d DipoleModel) Jones(azFromX, pol float64) Jones {
	return XDipoleJones(azFromX, pol, d.Lambda, d.Length)
}

// LogPeriodicModel is a crossed log-periodic pair whose power pattern is
// known.
type LogPeriodicModel struct {
	Pattern PowerPattern
}

func (m LogPeriodicModel) Jones(azFromX, pol float64) Jones {
	return LPAntJones(azFromX, pol, m.Pattern.PowerPattern(azFromX, pol))
}
