package render

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	mandel "github.com/marben/mandel_bands"
)

func TestSplitPartitionsRows(t *testing.T) {
	ul, lr := mandel.FullSet.UpperLeft(), mandel.FullSet.LowerRight()
	for height := 1; height <= 70; height++ {
		for workers := 1; workers <= 12; workers++ {
			b := mandel.Bounds{Width: 3, Height: height}
			bands := Split(b, ul, lr, workers)

			if len(bands) == 0 || len(bands) > workers {
				t.Fatalf("H=%d T=%d: %d bands", height, workers, len(bands))
			}
			next := 0
			for _, band := range bands {
				if band.Top != next {
					t.Fatalf("H=%d T=%d: band %v starts at %d, want %d", height, workers, band, band.Top, next)
				}
				if band.Rows < 1 {
					t.Fatalf("H=%d T=%d: empty band %v", height, workers, band)
				}
				next += band.Rows
			}
			if next != height {
				t.Fatalf("H=%d T=%d: bands cover %d rows", height, workers, next)
			}
		}
	}
}

func TestSplitFewerRowsThanWorkers(t *testing.T) {
	bands := Split(mandel.Bounds{Width: 10, Height: 3}, complex(-1, 1), complex(1, -1), 8)
	if len(bands) != 3 {
		t.Fatalf("got %d bands, want 3", len(bands))
	}
	for i, band := range bands {
		if band.Top != i || band.Rows != 1 {
			t.Errorf("band %d = %v", i, band)
		}
	}
}

func TestSplitBandSizes(t *testing.T) {
	// ceil(75/4) = 19
	bands := Split(mandel.Bounds{Width: 100, Height: 75}, mandel.Overview.UpperLeft(), mandel.Overview.LowerRight(), 4)
	var rows []int
	for _, band := range bands {
		rows = append(rows, band.Rows)
	}
	if got, want := fmt.Sprint(rows), "[19 19 19 18]"; got != want {
		t.Errorf("band rows = %s, want %s", got, want)
	}
}

func TestSplitCorners(t *testing.T) {
	b := mandel.Bounds{Width: 100, Height: 75}
	ul, lr := mandel.Overview.UpperLeft(), mandel.Overview.LowerRight()
	bands := Split(b, ul, lr, 8)

	if bands[0].UpperLeft != ul {
		t.Errorf("first band upper left = %v, want %v", bands[0].UpperLeft, ul)
	}
	if last := bands[len(bands)-1]; last.LowerRight != lr {
		t.Errorf("last band lower right = %v, want %v", last.LowerRight, lr)
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].UpperLeft != complex(real(ul), imag(bands[i-1].LowerRight)) {
			t.Errorf("band %d does not start where band %d ends", i, i-1)
		}
		if real(bands[i].LowerRight) != real(lr) {
			t.Errorf("band %d lower right = %v", i, bands[i].LowerRight)
		}
	}
}

func TestSplitPanics(t *testing.T) {
	cases := map[string]func(){
		"zero workers": func() { Split(mandel.Bounds{Width: 1, Height: 1}, 0, 1, 0) },
		"zero height":  func() { Split(mandel.Bounds{Width: 1}, 0, 1, 8) },
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

func TestScheduleWritesEveryRow(t *testing.T) {
	// every point escapes immediately, so every written pixel is 255
	ul, lr := complex(3.0, 4.0), complex(4.0, 3.0)
	for _, b := range []mandel.Bounds{{Width: 7, Height: 1}, {Width: 7, Height: 3}, {Width: 5, Height: 9}, {Width: 16, Height: 17}, {Width: 1, Height: 100}} {
		for _, workers := range []int{1, 2, 3, 8, 13} {
			pix := make([]byte, b.Pixels())
			Schedule(pix, b, ul, lr, workers, mandel.DefaultLimit, nil)
			for i, p := range pix {
				if p != 255 {
					t.Fatalf("%s T=%d: pixel %d (row %d) not written", b, workers, i, i/b.Width)
				}
			}
		}
	}
}

func TestScheduleDeterministic(t *testing.T) {
	frames := []struct {
		name   string
		bounds mandel.Bounds
		region mandel.Region
	}{
		{"overview", mandel.Bounds{Width: 1000, Height: 750}, mandel.Overview},
		{"overview small", mandel.Bounds{Width: 100, Height: 75}, mandel.Overview},
		{"seahorse odd rows", mandel.Bounds{Width: 97, Height: 61}, mandel.SeahorseValley},
	}
	for _, f := range frames {
		t.Run(f.name, func(t *testing.T) {
			ul, lr := f.region.UpperLeft(), f.region.LowerRight()
			want := make([]byte, f.bounds.Pixels())
			Schedule(want, f.bounds, ul, lr, 1, mandel.DefaultLimit, nil)

			for _, workers := range []int{3, 4, 8} {
				got := make([]byte, f.bounds.Pixels())
				Schedule(got, f.bounds, ul, lr, workers, mandel.DefaultLimit, nil)
				if i := firstDiff(got, want); i >= 0 {
					t.Errorf("T=%d differs from T=1 at byte %d (row %d)", workers, i, i/f.bounds.Width)
				}
			}
		})
	}
}

func firstDiff(a, b []byte) int {
	if bytes.Equal(a, b) {
		return -1
	}
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			return i
		}
	}
	return min(len(a), len(b))
}

func TestScheduleCallsOnBand(t *testing.T) {
	b := mandel.Bounds{Width: 10, Height: 20}
	var (
		mu   sync.Mutex
		seen = map[int]int{}
	)
	Schedule(make([]byte, b.Pixels()), b, complex(-1, 1), complex(1, -1), 6, 20, func(band Band) {
		mu.Lock()
		defer mu.Unlock()
		seen[band.Top] = band.Rows
	})

	bands := Split(b, complex(-1, 1), complex(1, -1), 6)
	if len(seen) != len(bands) {
		t.Fatalf("hook saw %d bands, want %d", len(seen), len(bands))
	}
	for _, band := range bands {
		if seen[band.Top] != band.Rows {
			t.Errorf("band %v reported %d rows", band, seen[band.Top])
		}
	}
}
