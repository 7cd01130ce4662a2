package mandel

import (
	"fmt"
	"io"
)

// Encoder writes a finished grayscale buffer somewhere.
// pix is row-major, one byte per pixel, len(pix) == width*height, and must not be modified.
type Encoder interface {
	Encode(w io.Writer, pix []byte, width, height int) error
}

// RenderRequest is what the render service accepts from clients.
type RenderRequest struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Region  Region `json:"region"`
	Limit   int    `json:"limit,omitempty"`
	Workers int    `json:"workers,omitempty"`
	Format  string `json:"format,omitempty"`
}

// Bounds of the requested image.
func (r RenderRequest) Bounds() Bounds {
	return Bounds{Width: r.Width, Height: r.Height}
}

// Validate checks the request before anything gets rendered.
// Zero Limit and Workers mean "use the default".
func (r RenderRequest) Validate() error {
	if err := r.Bounds().Validate(); err != nil {
		return err
	}
	if err := r.Region.Validate(); err != nil {
		return err
	}
	if r.Limit < 0 {
		return fmt.Errorf("%w: negative iteration limit %d", ErrInvalidInput, r.Limit)
	}
	if r.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidInput, r.Workers)
	}
	return nil
}

// RenderReply precedes the binary image message.
// When Error is set no image follows.
type RenderReply struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int    `json:"size"`
	Error  string `json:"error,omitempty"`
}
