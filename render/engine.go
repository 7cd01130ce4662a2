package render

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	mandel "github.com/marben/mandel_bands"
	"github.com/marben/mandel_bands/encode"
)

// Engine owns one image: its bounds, the plane region it shows and the pixel
// buffer the bands are rendered into.
type Engine struct {
	bounds mandel.Bounds
	region mandel.Region
	pix    []byte

	workers int
	limit   int
	onBand  func(Band)

	computing atomic.Bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the number of bands rendered in parallel.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithLimit sets the escape-time iteration limit.
func WithLimit(n int) Option {
	return func(e *Engine) { e.limit = n }
}

// WithOnBand registers a hook called after each band finishes.
// It runs on the band's goroutine and must be safe for concurrent use.
func WithOnBand(f func(Band)) Option {
	return func(e *Engine) { e.onBand = f }
}

// NewEngine allocates a zeroed buffer for an image of the given bounds
// showing region. Invalid bounds, region, worker count or limit panic;
// validate external input with mandel.RenderRequest or the mandel parsers first.
func NewEngine(b mandel.Bounds, region mandel.Region, opts ...Option) *Engine {
	if err := b.Validate(); err != nil {
		panic("render: " + err.Error())
	}
	if err := region.Validate(); err != nil {
		panic("render: " + err.Error())
	}

	e := &Engine{
		bounds:  b,
		region:  region,
		workers: DefaultWorkers,
		limit:   mandel.DefaultLimit,
	}
	for _, o := range opts {
		o(e)
	}
	if e.workers < 1 {
		panic(fmt.Sprintf("render: %d workers", e.workers))
	}
	if e.limit < 1 {
		panic(fmt.Sprintf("render: iteration limit %d", e.limit))
	}
	e.pix = make([]byte, b.Pixels())
	return e
}

// Compute renders the whole image. The buffer is fully written when it returns.
// Compute must not be called concurrently with itself.
func (e *Engine) Compute() {
	if !e.computing.CompareAndSwap(false, true) {
		panic("render: Compute called while already computing")
	}
	defer e.computing.Store(false)

	Schedule(e.pix, e.bounds, e.region.UpperLeft(), e.region.LowerRight(), e.workers, e.limit, e.onBand)
}

// Bounds of the image.
func (e *Engine) Bounds() mandel.Bounds { return e.bounds }

// Region shown by the image.
func (e *Engine) Region() mandel.Region { return e.region }

// Pixels returns the row-major grayscale buffer. Callers must not modify it.
func (e *Engine) Pixels() []byte { return e.pix }

// WriteImage encodes the buffer to w. A failure leaves the buffer intact,
// so the image can be written again elsewhere.
func (e *Engine) WriteImage(w io.Writer, enc mandel.Encoder) error {
	if err := enc.Encode(w, e.pix, e.bounds.Width, e.bounds.Height); err != nil {
		return fmt.Errorf("encode %s image: %w", e.bounds, err)
	}
	return nil
}

// WriteFile writes the buffer to path in the format its extension names.
func (e *Engine) WriteFile(path string) error {
	enc, err := encode.ForPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := e.WriteImage(f, enc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}
	return nil
}
