package recon

import "math"

// validRange reports whether v falls within [lo, hi] inclusive. Used by
// struct readers to decide whether a dump-sourced numeric field is
// plausible (spec §4.4 rule 6) before accepting it.
func validRange(v, lo, hi int64) bool {
	return v >= lo && v <= hi
}

// validFloat reports whether f is a normal, finite float suitable for a
// game-data field: not NaN, not +-Inf, and within a generous magnitude
// bound that rules out reading garbage memory as a float.
func validFloat(f float32) bool {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return math.Abs(v) < 1e12
}

// validFraction reports whether f is a plausible 0..1 ratio (used for
// chance fields such as critical chance and addiction chance).
func validFraction(f float32) bool {
	return validFloat(f) && f >= 0 && f <= 1.0001
}
