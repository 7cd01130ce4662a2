// cliclient asks a running render server for an image and saves it.
//
//	cliclient -server ws://localhost:8080/ws -region seahorse-valley -size 1920x1080 -out seahorse.png
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	mandel "github.com/marben/mandel_bands"
	"github.com/marben/mandel_bands/encode"
)

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	log.Printf("Starting CLI client...")
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func parseRequest() (mandel.RenderRequest, string, string, error) {
	server := flag.String("server", "ws://localhost:8080/ws", "render server websocket endpoint")
	size := flag.String("size", "1920x1080", "image size, WxH")
	region := flag.String("region", "", "named region, overrides -ul and -lr")
	ul := flag.String("ul", "-1.20,0.35", "upper left corner, re,im")
	lr := flag.String("lr", "-1,0.2", "lower right corner, re,im")
	limit := flag.Int("limit", 0, "escape-time iteration limit (0: server default)")
	workers := flag.Int("workers", 0, "bands rendered in parallel (0: server default)")
	out := flag.String("out", "mandel.png", "output file; its extension picks the format")
	flag.Parse()

	var req mandel.RenderRequest
	format, err := encode.FormatName(*out)
	if err != nil {
		return req, "", "", err
	}
	b, err := mandel.ParseBounds(*size)
	if err != nil {
		return req, "", "", err
	}
	r, err := regionFromFlags(*region, *ul, *lr)
	if err != nil {
		return req, "", "", err
	}

	req = mandel.RenderRequest{
		Width:   b.Width,
		Height:  b.Height,
		Region:  r,
		Limit:   *limit,
		Workers: *workers,
		Format:  format,
	}
	return req, *server, *out, req.Validate()
}

func regionFromFlags(name, ul, lr string) (mandel.Region, error) {
	if name != "" {
		return mandel.LookupRegion(name)
	}
	return mandel.ParseRegion(ul, lr)
}

// run connects to the Mandelbrot server, requests the rendered image, and saves it.
func run() error {
	req, server, filename, err := parseRequest()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	log.Printf("Connecting to Mandelbrot server at %s...", server)
	c, err := dial(ctx, server)
	if err != nil {
		return err
	}
	defer c.CloseNow()

	log.Printf("Requesting %dx%d %s image of %+v...", req.Width, req.Height, req.Format, req.Region)
	start := time.Now()
	_, img, err := fetch(ctx, c, req)
	if err != nil {
		return err
	}
	log.Printf("Received %d bytes in %s", len(img), time.Since(start))
	c.Close(websocket.StatusNormalClosure, "")

	if err := os.WriteFile(filename, img, 0o644); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	log.Printf("Fully rendered image saved to %q", filename)
	return nil
}
