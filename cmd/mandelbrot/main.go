// mandelbrot renders a grayscale Mandelbrot image on the local machine and
// writes it to a file whose extension picks the format.
//
//	mandelbrot mandel.png 1000x750 -1.20,0.35 -1,0.2
//	mandelbrot -region seahorse-valley -workers 16 mandel.tiff.zst 1920x1080
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	mandel "github.com/marben/mandel_bands"
	"github.com/marben/mandel_bands/encode"
	"github.com/marben/mandel_bands/render"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(1)
		}
		log.Fatalf("run: %v", err)
	}
}

type options struct {
	file    string
	bounds  mandel.Bounds
	region  mandel.Region
	workers int
	limit   int
}

func usage(fs *flag.FlagSet, out io.Writer) func() {
	return func() {
		fmt.Fprintln(out, "Usage: mandelbrot [flags] <file> <pixels> <upper_left> <lower_right>")
		fmt.Fprintln(out, "       mandelbrot [flags] -region <name> <file> <pixels>")
		fmt.Fprintf(out, "Example: mandelbrot mandel.png 1000x750 -1.20,0.35 -1,0.2\n")
		fmt.Fprintf(out, "Formats: %s (append .zst to compress)\n", strings.Join(encode.Formats(), ", "))
		fmt.Fprintf(out, "Regions: %s\n", strings.Join(regionNames(), ", "))
		fs.PrintDefaults()
	}
}

func regionNames() []string {
	names := make([]string, 0, len(mandel.Landmarks))
	for name := range mandel.Landmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseArgs turns the command line into validated options; nothing is
// rendered unless it succeeds.
func parseArgs(args []string, out io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("mandelbrot", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = usage(fs, out)
	fs.IntVar(&o.workers, "workers", render.DefaultWorkers, "number of bands rendered in parallel")
	fs.IntVar(&o.limit, "limit", mandel.DefaultLimit, "escape-time iteration limit")
	regionName := fs.String("region", "", "named region to render instead of explicit corners")

	if err := fs.Parse(args); err != nil {
		return o, errUsage
	}

	want := 4
	if *regionName != "" {
		want = 2
	}
	if fs.NArg() != want {
		fs.Usage()
		return o, errUsage
	}
	if o.workers < 1 || o.limit < 1 {
		fmt.Fprintf(out, "workers and limit must be positive\n")
		return o, errUsage
	}

	o.file = fs.Arg(0)
	if _, err := encode.ForPath(o.file); err != nil {
		return o, err
	}

	var err error
	if o.bounds, err = mandel.ParseBounds(fs.Arg(1)); err != nil {
		return o, err
	}
	if *regionName != "" {
		o.region, err = mandel.LookupRegion(*regionName)
	} else {
		o.region, err = mandel.ParseRegion(fs.Arg(2), fs.Arg(3))
	}
	return o, err
}

func run(args []string, out io.Writer) error {
	o, err := parseArgs(args, out)
	if err != nil {
		return err
	}

	engine := render.NewEngine(o.bounds, o.region,
		render.WithWorkers(o.workers),
		render.WithLimit(o.limit),
	)
	log.Printf("rendering %s of %+v in %d bands", engine.Bounds(), engine.Region(), o.workers)
	start := time.Now()
	engine.Compute()
	log.Printf("render took %s", time.Since(start))

	if err := engine.WriteFile(o.file); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	log.Printf("image saved to %q", o.file)
	return nil
}
