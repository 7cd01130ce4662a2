// Package render computes grayscale Mandelbrot rasters by splitting the
// image into horizontal bands and rendering every band on its own goroutine.
package render

import (
	"fmt"

	mandel "github.com/marben/mandel_bands"
)

// RenderBand fills pix, the row-major rows of band within an image of bounds b
// (exactly b.Width*band.Rows bytes), with the shaded escape time of every pixel.
// Pixels are mapped through the whole image's corners and their image row,
// so a pixel gets the same value whichever band it falls in.
func RenderBand(pix []byte, b mandel.Bounds, band Band, upperLeft, lowerRight complex128, limit int) {
	if len(pix) != b.Width*band.Rows {
		panic(fmt.Sprintf("render: band %s of a %s image holds %d bytes, want %d", band, b, len(pix), b.Width*band.Rows))
	}
	if band.Top < 0 || band.Top+band.Rows > b.Height {
		panic(fmt.Sprintf("render: band %s outside a %s image", band, b))
	}

	for y := range band.Rows {
		row := pix[y*b.Width : (y+1)*b.Width]
		for x := range row {
			c := mandel.PixelToPoint(b, x, band.Top+y, upperLeft, lowerRight)
			row[x] = mandel.Shade(mandel.EscapeTime(c, limit))
		}
	}
}
