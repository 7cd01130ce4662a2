package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	mandel "github.com/marben/mandel_bands"
	"github.com/marben/mandel_bands/encode"
)

func TestParseArgs(t *testing.T) {
	var out bytes.Buffer
	o, err := parseArgs([]string{"-workers", "3", "mandel.png", "1000x750", "-1.20,0.35", "-1,0.2"}, &out)
	if err != nil {
		t.Fatal(err)
	}
	if o.file != "mandel.png" || o.bounds != (mandel.Bounds{Width: 1000, Height: 750}) || o.workers != 3 || o.limit != mandel.DefaultLimit {
		t.Errorf("options = %+v", o)
	}
	if o.region != mandel.Overview {
		t.Errorf("region = %+v", o.region)
	}

	o, err = parseArgs([]string{"-region", "triple-spiral", "out.pgm", "20x10"}, &out)
	if err != nil {
		t.Fatal(err)
	}
	if o.region != mandel.TripleSpiral {
		t.Errorf("region = %+v", o.region)
	}
}

func TestParseArgsErrors(t *testing.T) {
	cases := []struct {
		args []string
		want error
	}{
		{[]string{"mandel.png", "1000x750"}, errUsage},
		{[]string{"-workers", "0", "mandel.png", "10x10", "-1,1", "1,-1"}, errUsage},
		{[]string{"-bogus", "mandel.png"}, errUsage},
		{[]string{"mandel.png", "1000by750", "-1,1", "1,-1"}, mandel.ErrInvalidInput},
		{[]string{"mandel.png", "4294967296x4294967296", "-1,1", "1,-1"}, mandel.ErrInvalidInput},
		{[]string{"mandel.png", "10x10", "1,1", "-1,-1"}, mandel.ErrInvalidInput},
		{[]string{"-region", "atlantis", "mandel.png", "10x10"}, mandel.ErrInvalidInput},
		{[]string{"mandel.gif", "10x10", "-1,1", "1,-1"}, encode.ErrUnknownFormat},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		if _, err := parseArgs(tc.args, &out); !errors.Is(err, tc.want) {
			t.Errorf("parseArgs(%q) err = %v, want %v", tc.args, err, tc.want)
		}
	}
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mandel.pgm")
	var out bytes.Buffer
	if err := run([]string{"-workers", "4", path, "100x75", "-1.20,0.35", "-1,0.2"}, &out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	header := []byte("P5\n100 75\n255\n")
	if !bytes.HasPrefix(data, header) || len(data) != len(header)+7500 {
		t.Errorf("unexpected pgm file of %d bytes", len(data))
	}
}
