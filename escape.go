package mandel

// DefaultLimit is the iteration cap used when nothing else is configured.
// It is also the point where Shade runs out of gray levels.
const DefaultLimit = 255

// EscapeTime tries to decide whether c belongs to the Mandelbrot set using at
// most limit iterations of z = z*z + c.
//
// If the orbit leaves the circle of radius two, EscapeTime returns the
// 0-based iteration at which it did and true. If the limit is reached first,
// c is presumed to be a member and EscapeTime returns 0, false. Points outside
// the set that escape later than limit are misreported as members.
func EscapeTime(c complex128, limit int) (int, bool) {
	var z complex128
	for i := range limit {
		z = z*z + c
		if real(z)*real(z)+imag(z)*imag(z) > 4 {
			return i, true
		}
	}
	return 0, false
}

// Shade turns a classification into a gray byte:
// 0 for presumed members, 255-count for escaped points (count clamped at 255).
func Shade(count int, escaped bool) byte {
	if !escaped {
		return 0
	}
	return byte(255 - min(count, 255))
}
