package encode

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	mandel "github.com/marben/mandel_bands"
)

// Zstd compresses whatever inner writes into a single zstd stream.
func Zstd(inner mandel.Encoder) mandel.Encoder {
	return Func(func(w io.Writer, pix []byte, width, height int) error {
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return fmt.Errorf("zstd.NewWriter: %w", err)
		}
		if err := inner.Encode(zw, pix, width, height); err != nil {
			_ = zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("zstd close: %w", err)
		}
		return nil
	})
}
