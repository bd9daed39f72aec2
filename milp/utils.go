//go:build linux || darwin

package milp

import "math"

// Inf returns positive infinity, suitable for unbounded upper bounds.
func Inf() float64 {
	return math.Inf(1)
}

// NegInf returns negative infinity, suitable for unbounded lower bounds.
func NegInf() float64 {
	return math.Inf(-1)
}
