package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
)

// main is the entry point for the Mandelbrot render server.
// Clients send render requests over a websocket (or plain HTTP) and get the
// encoded grayscale image back.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	addr := flag.String("addr", "localhost:8080", "listen address")
	maxRenders := flag.Int("max-renders", 2, "renders computed at the same time")
	maxPixels := flag.Int("max-pixels", 8192*8192, "largest image a client may request, in pixels")
	origins := flag.String("origins", "", "comma-separated cross-origin hosts allowed on the websocket, e.g. \"*.example.com,localhost:3000\"")
	flag.Parse()

	if *maxRenders < 1 {
		return fmt.Errorf("-max-renders must be positive, got %d", *maxRenders)
	}

	rs := newRenderService(*maxRenders, *maxPixels)
	httpServer := webServer(rs, *addr, splitOrigins(*origins))

	log.Printf("mb server waiting for websocket connections on ws://%s/ws", *addr)
	if err := httpServer.ListenAndServe(); err != nil {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}
	return nil
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
