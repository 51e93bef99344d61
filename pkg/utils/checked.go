package utils

import "math/bits"

// CheckedAdd returns a+b and false on uint64 wraparound.
func CheckedAdd(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, false
	}
	return sum, true
}

// MulDiv returns floor(a*b/den) using 128-bit intermediate math, and false
// when the quotient does not fit in a uint64 or den is zero. With den=10000
// and b<=10000 the quotient always fits for any a.
func MulDiv(a, b, den uint64) (uint64, bool) {
	if den == 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= den {
		return 0, false
	}
	q, _ := bits.Div64(hi, lo, den)
	return q, true
}
