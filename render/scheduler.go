package render

import (
	"fmt"
	"sync"

	mandel "github.com/marben/mandel_bands"
)

// DefaultWorkers is the number of bands an image is split into unless configured otherwise.
const DefaultWorkers = 8

// Band is a run of whole image rows [Top, Top+Rows) together with the part
// of the complex plane those rows cover. The corners describe the band;
// RenderBand maps pixels through the whole image's corners.
type Band struct {
	Top, Rows  int
	UpperLeft  complex128
	LowerRight complex128
}

func (b Band) String() string {
	return fmt.Sprintf("rows [%d, %d)", b.Top, b.Top+b.Rows)
}

// Split cuts an image of the given bounds into at most workers bands of
// ceil(Height/workers) rows; the last band takes what is left.
// Fewer bands come back when Height is not large enough to give every worker
// a row, never an empty one. Band corners are mapped with the global bounds.
func Split(b mandel.Bounds, upperLeft, lowerRight complex128, workers int) []Band {
	if err := b.Validate(); err != nil {
		panic("render: split: " + err.Error())
	}
	if workers < 1 {
		panic(fmt.Sprintf("render: split into %d bands", workers))
	}

	rowsPerBand := (b.Height + workers - 1) / workers
	bands := make([]Band, 0, workers)
	for top := 0; top < b.Height; top += rowsPerBand {
		rows := min(rowsPerBand, b.Height-top)
		bands = append(bands, Band{
			Top:        top,
			Rows:       rows,
			UpperLeft:  mandel.PixelToPoint(b, 0, top, upperLeft, lowerRight),
			LowerRight: mandel.PixelToPoint(b, b.Width, top+rows, upperLeft, lowerRight),
		})
	}
	return bands
}

// Schedule renders pix, the full row-major buffer of an image with bounds b,
// one goroutine per band, and returns only after every band has been written.
// onBand, if set, is called from the band's goroutine once it is done.
func Schedule(pix []byte, b mandel.Bounds, upperLeft, lowerRight complex128, workers, limit int, onBand func(Band)) {
	if err := b.Validate(); err != nil {
		panic("render: schedule: " + err.Error())
	}
	if len(pix) != b.Pixels() {
		panic(fmt.Sprintf("render: buffer holds %d bytes, bounds %s need %d", len(pix), b, b.Pixels()))
	}
	if limit < 1 {
		panic(fmt.Sprintf("render: iteration limit %d", limit))
	}

	var wg sync.WaitGroup
	for _, band := range Split(b, upperLeft, lowerRight, workers) {
		lo := band.Top * b.Width
		hi := (band.Top + band.Rows) * b.Width
		// capped so that no band can grow into its neighbour
		bandPix := pix[lo:hi:hi]

		wg.Add(1)
		go func() {
			defer wg.Done()
			RenderBand(bandPix, b, band, upperLeft, lowerRight, limit)
			if onBand != nil {
				onBand(band)
			}
		}()
	}
	wg.Wait()
}
