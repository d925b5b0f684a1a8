package units

import "strconv"

// AbsoluteZeroCelsius is 0 K expressed in degrees Celsius.
const AbsoluteZeroCelsius = 273.15

// KelvinToCelsius converts k to Celsius rounded to one decimal place.
// Rounding is half-to-even on the exact binary value of k-273.15, so
// 0 K gives -273.1 and 300 K gives 26.9.
func KelvinToCelsius(k float64) float64 {
	c := k - AbsoluteZeroCelsius
	// FormatFloat output, including NaN and ±Inf, always parses back.
	r, _ := strconv.ParseFloat(strconv.FormatFloat(c, 'f', 1, 64), 64)
	return r
}

// FormatCelsius renders c with exactly one decimal place.
func FormatCelsius(c float64) string {
	return strconv.FormatFloat(c, 'f', 1, 64)
}
