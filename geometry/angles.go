package geometry

import "math"

// Radian converts degrees to radians.
func Radian(degree float64) float64 {
	return degree * math.Pi / 180.0
}

// Degree converts radians to degrees.
func Degree(radian float64) float64 {
	return radian * 180.0 / math.Pi
}

// WrapTwoPi wraps an angle in radians into [0, 2π).
func WrapTwoPi(rad float64) float64 {
	rad = math.Mod(rad, 2*math.Pi)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	if rad >= 2*math.Pi {
		rad = 0
	}
	return rad
}

// Wrap180To180 wraps the input angle in degrees to [-180, 180]
func Wrap180To180(degree float64) float64 {
	if degree >= -180 && degree <= 180 {
		return degree
	}
	return math.Remainder(degree, 360)
}
