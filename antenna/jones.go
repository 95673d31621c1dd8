package antenna

// Jones holds the four terms (Jxt, Jxp, Jyt, Jyp) coupling the x and y feeds
// to the theta and phi field components.
type Jones [4]complex128

// Component indices of a Jones matrix
const (
	JXT = iota
	JXP
	JYT
	JYP
)

// JonesNames labels the components in storage order.
var JonesNames = [...]string{"Jxt", "Jxp", "Jyt", "Jyp"}

// NewReciprocalJones builds the Jones matrix of a pair of identical feeds
// rotated by 90 degrees: Jyt = Jxp and Jyp = -Jxt.
func NewReciprocalJones(jxt, jxp float64) Jones {
	return Jones{
		complex(jxt, 0),
		complex(jxp, 0),
		complex(jxp, 0),
		complex(-jxt, 0),
	}
}

// Scale multiplies every component by c.
func (j Jones) Scale(c complex128) Jones {
	for i := range j {
		j[i] *= c
	}
	return j
}
