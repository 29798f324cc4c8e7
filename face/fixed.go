package face

import "golang.org/x/image/math/fixed"

// RoundToPixels converts a 26.6 fixed-point value to whole pixels,
// rounding halves up. The value is floored by an arithmetic shift and
// the result incremented when the fractional part is at least 1/2, so
// negative inputs round correctly and values near the top of the
// int32 range cannot overflow the way the usual add-32-then-shift
// idiom does.
func RoundToPixels(v fixed.Int26_6) int {
	px := int(v >> 6)
	if v&63 >= 32 {
		px++
	}
	return px
}

// floatToFixed converts a pixel measure to 26.6 fixed point, rounding
// to the nearest 1/64.
func floatToFixed(px float64) fixed.Int26_6 {
	if px >= 0 {
		return fixed.Int26_6(px*64 + 0.5)
	}
	return -fixed.Int26_6(-px*64 + 0.5)
}
