package render

import (
	"testing"

	mandel "github.com/marben/mandel_bands"
)

func TestRenderBand(t *testing.T) {
	b := mandel.Bounds{Width: 9, Height: 10}
	ul, lr := mandel.SeahorseValley.UpperLeft(), mandel.SeahorseValley.LowerRight()
	band := Band{Top: 3, Rows: 4}
	pix := make([]byte, b.Width*band.Rows)

	RenderBand(pix, b, band, ul, lr, 100)

	for y := range band.Rows {
		for x := range b.Width {
			c := mandel.PixelToPoint(b, x, band.Top+y, ul, lr)
			want := mandel.Shade(mandel.EscapeTime(c, 100))
			if got := pix[y*b.Width+x]; got != want {
				t.Errorf("pixel (%d,%d) = %d, want %d", x, band.Top+y, got, want)
			}
		}
	}
}

func TestRenderBandOutsideSet(t *testing.T) {
	b := mandel.Bounds{Width: 5, Height: 5}
	pix := make([]byte, b.Pixels())
	RenderBand(pix, b, Band{Rows: 5}, complex(3, 4), complex(4, 3), mandel.DefaultLimit)
	for i, p := range pix {
		if p != 255 {
			t.Fatalf("pix[%d] = %d, want 255 for an immediate escape", i, p)
		}
	}
}

func TestRenderBandPanics(t *testing.T) {
	b := mandel.Bounds{Width: 4, Height: 3}
	cases := map[string]func(){
		"short buffer":     func() { RenderBand(make([]byte, 10), b, Band{Rows: 3}, complex(-1, 1), complex(1, -1), 10) },
		"past bottom edge": func() { RenderBand(make([]byte, 8), b, Band{Top: 2, Rows: 2}, complex(-1, 1), complex(1, -1), 10) },
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			f()
		})
	}
}
