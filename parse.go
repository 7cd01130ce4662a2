package mandel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidInput marks every parse or validation failure of external input.
var ErrInvalidInput = errors.New("invalid input")

// ParsePair splits s at the first sep and parses both halves with parse.
// "400x600" with 'x' and strconv.Atoi gives (400, 600).
func ParsePair[T any](s string, sep byte, parse func(string) (T, error)) (T, T, error) {
	var zero T
	left, right, found := strings.Cut(s, string(sep))
	if !found {
		return zero, zero, fmt.Errorf("%w: %q has no %q separator", ErrInvalidInput, s, sep)
	}
	l, err := parse(left)
	if err != nil {
		return zero, zero, fmt.Errorf("%w: %q: %v", ErrInvalidInput, s, err)
	}
	r, err := parse(right)
	if err != nil {
		return zero, zero, fmt.Errorf("%w: %q: %v", ErrInvalidInput, s, err)
	}
	return l, r, nil
}

// ParseBounds parses "WxH" into positive image bounds.
func ParseBounds(s string) (Bounds, error) {
	w, h, err := ParsePair(s, 'x', strconv.Atoi)
	if err != nil {
		return Bounds{}, fmt.Errorf("image size: %w", err)
	}
	b := Bounds{Width: w, Height: h}
	if err := b.Validate(); err != nil {
		return Bounds{}, err
	}
	return b, nil
}

// ParseComplex parses "re,im", e.g. "-1.20,0.35".
func ParseComplex(s string) (complex128, error) {
	re, im, err := ParsePair(s, ',', parseFloat)
	if err != nil {
		return 0, fmt.Errorf("complex point: %w", err)
	}
	return complex(re, im), nil
}

// ParseRegion parses the upper-left and lower-right corner strings and
// checks they are well ordered.
func ParseRegion(upperLeft, lowerRight string) (Region, error) {
	ul, err := ParseComplex(upperLeft)
	if err != nil {
		return Region{}, fmt.Errorf("upper left: %w", err)
	}
	lr, err := ParseComplex(lowerRight)
	if err != nil {
		return Region{}, fmt.Errorf("lower right: %w", err)
	}
	r := RegionFromCorners(ul, lr)
	if err := r.Validate(); err != nil {
		return Region{}, err
	}
	return r, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
