// Package encode turns a finished grayscale buffer into an image file.
//
// Supported formats are png, pgm (binary netpbm), tiff and bmp. Any of them
// can be suffixed with ".zst" to compress the encoded stream with zstd.
package encode

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"sort"
	"strings"

	mandel "github.com/marben/mandel_bands"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnknownFormat is returned for format names or file extensions no encoder handles.
var ErrUnknownFormat = errors.New("unknown image format")

// DefaultFormat is used when a request names no format.
const DefaultFormat = "png"

const zstdSuffix = ".zst"

// Func adapts a function to mandel.Encoder.
type Func func(w io.Writer, pix []byte, width, height int) error

func (f Func) Encode(w io.Writer, pix []byte, width, height int) error {
	return f(w, pix, width, height)
}

var (
	PNG  mandel.Encoder = Func(encodePNG)
	PGM  mandel.Encoder = Func(encodePGM)
	TIFF mandel.Encoder = Func(encodeTIFF)
	BMP  mandel.Encoder = Func(encodeBMP)
)

type format struct {
	enc         mandel.Encoder
	contentType string
}

var formats = map[string]format{
	"png":  {PNG, "image/png"},
	"pgm":  {PGM, "image/x-portable-graymap"},
	"tiff": {TIFF, "image/tiff"},
	"tif":  {TIFF, "image/tiff"},
	"bmp":  {BMP, "image/bmp"},
}

// Formats lists the base format names, without the zstd variants.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForFormat returns the encoder for a format name such as "png" or "pgm.zst".
// An empty name selects DefaultFormat.
func ForFormat(name string) (mandel.Encoder, error) {
	if name == "" {
		name = DefaultFormat
	}
	name = strings.ToLower(name)
	if base, ok := strings.CutSuffix(name, zstdSuffix); ok {
		inner, err := ForFormat(base)
		if err != nil {
			return nil, err
		}
		return Zstd(inner), nil
	}
	f, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f.enc, nil
}

// ForPath picks the encoder from the file extension, e.g. "out.png" or "out.tiff.zst".
func ForPath(path string) (mandel.Encoder, error) {
	name, err := FormatName(path)
	if err != nil {
		return nil, err
	}
	return ForFormat(name)
}

// FormatName is the format name a file extension stands for: "tiff.zst" for "out.tiff.zst".
func FormatName(path string) (string, error) {
	name := strings.TrimPrefix(formatExt(path), ".")
	if name == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	if _, err := ForFormat(name); err != nil {
		return "", err
	}
	return name, nil
}

// ContentType is the MIME type served for a format name.
func ContentType(name string) string {
	if name == "" {
		name = DefaultFormat
	}
	name = strings.ToLower(name)
	if strings.HasSuffix(name, zstdSuffix) {
		return "application/zstd"
	}
	if f, ok := formats[name]; ok {
		return f.contentType
	}
	return "application/octet-stream"
}

// formatExt returns ".png" for "a/b.png" and ".tiff.zst" for "a/b.tiff.zst".
func formatExt(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != zstdSuffix {
		return ext
	}
	return strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path)))) + ext
}

// Gray wraps pix as an image without copying it.
func Gray(pix []byte, width, height int) *image.Gray {
	if width <= 0 || height <= 0 || len(pix) != width*height {
		panic(fmt.Sprintf("encode: %d bytes do not make a %dx%d image", len(pix), width, height))
	}
	return &image.Gray{
		Pix:    pix,
		Stride: width,
		Rect:   image.Rect(0, 0, width, height),
	}
}

func encodePNG(w io.Writer, pix []byte, width, height int) error {
	return png.Encode(w, Gray(pix, width, height))
}

func encodeTIFF(w io.Writer, pix []byte, width, height int) error {
	return tiff.Encode(w, Gray(pix, width, height), &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

func encodeBMP(w io.Writer, pix []byte, width, height int) error {
	return bmp.Encode(w, Gray(pix, width, height))
}
