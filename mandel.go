package mandel

import (
	"fmt"
	"math"
)

// MaxSide is the largest width or height an image may have.
const MaxSide = 1 << 16

// Region is a rectangle of the complex plane.
// Xmin/Xmax bound the real axis, Ymin/Ymax the imaginary axis.
type Region struct {
	Xmin float64 `json:"xmin"`
	Xmax float64 `json:"xmax"`
	Ymin float64 `json:"ymin"`
	Ymax float64 `json:"ymax"`
}

// RegionFromCorners builds the region spanned by the screen-space corners.
func RegionFromCorners(upperLeft, lowerRight complex128) Region {
	return Region{
		Xmin: real(upperLeft),
		Xmax: real(lowerRight),
		Ymin: imag(lowerRight),
		Ymax: imag(upperLeft),
	}
}

// UpperLeft is the point drawn at pixel (0,0).
func (r Region) UpperLeft() complex128 {
	return complex(r.Xmin, r.Ymax)
}

// LowerRight is the point drawn at pixel (W,H).
func (r Region) LowerRight() complex128 {
	return complex(r.Xmax, r.Ymin)
}

// Validate reports whether the corners are well ordered:
// real part grows to the right, imaginary part shrinks downwards.
func (r Region) Validate() error {
	if !(r.Xmin < r.Xmax) {
		return fmt.Errorf("%w: real range [%g, %g] is empty", ErrInvalidInput, r.Xmin, r.Xmax)
	}
	if !(r.Ymin < r.Ymax) {
		return fmt.Errorf("%w: imaginary range [%g, %g] is empty", ErrInvalidInput, r.Ymin, r.Ymax)
	}
	return nil
}

// Bounds are the image dimensions in pixels.
type Bounds struct {
	Width, Height int
}

func (b Bounds) String() string {
	return fmt.Sprintf("%dx%d", b.Width, b.Height)
}

// Pixels is the length of a buffer holding one byte per pixel.
// Only meaningful for bounds that pass Validate.
func (b Bounds) Pixels() int {
	return b.Width * b.Height
}

// Validate rejects empty images and images whose pixel count does not fit an int.
func (b Bounds) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: image size %s must be positive", ErrInvalidInput, b)
	}
	if b.Width > MaxSide || b.Height > MaxSide || b.Width > math.MaxInt/b.Height {
		return fmt.Errorf("%w: image size %s exceeds %dx%d", ErrInvalidInput, b, MaxSide, MaxSide)
	}
	return nil
}

// Exceeds reports whether the image has more than n pixels, without
// computing a product that could overflow. b must be positive.
func (b Bounds) Exceeds(n int) bool {
	return b.Width > n/b.Height
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Default view of the reference renderer, the left edge of the main cardioid's bulb
	Overview = RegionFromCorners(complex(-1.20, 0.35), complex(-1.0, 0.20))

	// Whole set
	FullSet = Region{Xmin: -2.5, Xmax: 1.0, Ymin: -1.25, Ymax: 1.25}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{Xmin: -0.8, Xmax: -0.7, Ymin: 0.05, Ymax: 0.15}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{Xmin: -1.85, Xmax: -1.75, Ymin: -0.10, Ymax: -0.02}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{Xmin: -0.7435, Xmax: -0.7420, Ymin: 0.1310, Ymax: 0.1325}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{Xmin: -0.7480, Xmax: -0.7450, Ymin: 0.0950, Ymax: 0.0980}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{Xmin: -0.7400, Xmax: -0.7350, Ymin: 0.1800, Ymax: 0.1850}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{Xmin: -1.7390, Xmax: -1.7375, Ymin: -0.0235, Ymax: -0.0220}
)

// Landmarks maps a lookup name to each predefined region.
var Landmarks = map[string]Region{
	"overview":             Overview,
	"full":                 FullSet,
	"seahorse-valley":      SeahorseValley,
	"elephant-valley":      ElephantValley,
	"spiral-minibrot":      SpiralMinibrot,
	"triple-spiral":        TripleSpiral,
	"valley-of-the-dragon": ValleyOfTheDragon,
	"minibrot-mini-spiral": MinibrotInMiniSpiral,
}

// LookupRegion finds a landmark by name.
func LookupRegion(name string) (Region, error) {
	r, ok := Landmarks[name]
	if !ok {
		return Region{}, fmt.Errorf("%w: unknown region %q", ErrInvalidInput, name)
	}
	return r, nil
}
