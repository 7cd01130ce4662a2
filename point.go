package mandel

// PixelToPoint maps pixel (x, y) of an image with the given bounds onto the
// complex plane rectangle spanned by upperLeft and lowerRight.
// x may range over [0, Width] and y over [0, Height], so the far edges of the
// image are addressable too. Pixel (0,0) lands exactly on upperLeft and
// pixel (Width,Height) exactly on lowerRight.
//
// Bounds must be non-zero.
func PixelToPoint(b Bounds, x, y int, upperLeft, lowerRight complex128) complex128 {
	if b.Width <= 0 || b.Height <= 0 {
		panic("mandel: PixelToPoint on empty bounds " + b.String())
	}
	return complex(
		lerp(real(upperLeft), real(lowerRight), x, b.Width),
		lerp(imag(upperLeft), imag(lowerRight), y, b.Height),
	)
}

// lerp interpolates between a (at i=0) and b (at i=n).
// Weighting both ends keeps the endpoints exact in floating point.
func lerp(a, b float64, i, n int) float64 {
	t := float64(i) / float64(n)
	return a*(1-t) + b*t
}
