package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	mandel "github.com/marben/mandel_bands"
	"github.com/marben/mandel_bands/encode"
	"github.com/marben/mandel_bands/render"
)

const (
	maxWorkers = 64
	maxLimit   = 100_000
)

// renderService runs client requests on local render engines.
// At most cap(slots) renders run at once; the rest wait for a slot.
type renderService struct {
	slots     chan struct{}
	maxPixels int

	m        sync.Mutex
	active   int
	rendered int
}

func newRenderService(maxRenders, maxPixels int) *renderService {
	if maxRenders < 1 {
		panic("render slots must be positive")
	}
	return &renderService{
		slots:     make(chan struct{}, maxRenders),
		maxPixels: maxPixels,
	}
}

// check rejects requests the service will not render.
// Every error wraps mandel.ErrInvalidInput or encode.ErrUnknownFormat.
func (rs *renderService) check(req mandel.RenderRequest) (mandel.Encoder, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if rs.maxPixels > 0 && req.Bounds().Exceeds(rs.maxPixels) {
		return nil, fmt.Errorf("%w: %s exceeds %d pixels", mandel.ErrInvalidInput, req.Bounds(), rs.maxPixels)
	}
	if req.Workers > maxWorkers {
		return nil, fmt.Errorf("%w: at most %d workers", mandel.ErrInvalidInput, maxWorkers)
	}
	if req.Limit > maxLimit {
		return nil, fmt.Errorf("%w: iteration limit above %d", mandel.ErrInvalidInput, maxLimit)
	}
	return encode.ForFormat(req.Format)
}

func (rs *renderService) acquire(ctx context.Context) error {
	select {
	case rs.slots <- struct{}{}:
	case <-ctx.Done():
		return context.Cause(ctx)
	}

	rs.m.Lock()
	rs.active++
	a := rs.active
	rs.m.Unlock()

	log.Printf("active renders: %d", a)
	return nil
}

func (rs *renderService) release() {
	rs.m.Lock()
	rs.active--
	rs.rendered++
	a, n := rs.active, rs.rendered
	rs.m.Unlock()

	<-rs.slots
	log.Printf("active renders: %d, finished: %d", a, n)
}

// render computes the requested image and returns it encoded.
// Waiting for a slot honours ctx; a started render always runs to completion.
func (rs *renderService) render(ctx context.Context, req mandel.RenderRequest) ([]byte, error) {
	enc, err := rs.check(req)
	if err != nil {
		return nil, err
	}
	if err := rs.acquire(ctx); err != nil {
		return nil, fmt.Errorf("waiting for render slot: %w", err)
	}
	defer rs.release()

	opts := []render.Option{
		render.WithOnBand(func(b render.Band) { log.Printf("%s: finished band %s", req.Bounds(), b) }),
	}
	if req.Workers > 0 {
		opts = append(opts, render.WithWorkers(req.Workers))
	}
	if req.Limit > 0 {
		opts = append(opts, render.WithLimit(req.Limit))
	}

	start := time.Now()
	engine := render.NewEngine(req.Bounds(), req.Region, opts...)
	engine.Compute()
	log.Printf("rendered %s of %+v in %s", req.Bounds(), req.Region, time.Since(start))

	var buf bytes.Buffer
	if err := engine.WriteImage(&buf, enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
