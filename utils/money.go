package utils

import "math"

// Subunits converts a currency amount to integer subunits (paise, cents).
// Rounding avoids float truncation like 499.99 -> 49998
func Subunits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
