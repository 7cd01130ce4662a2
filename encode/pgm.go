package encode

import (
	"bufio"
	"fmt"
	"io"
)

// encodePGM writes a binary (P5) netpbm graymap with maxval 255.
func encodePGM(w io.Writer, pix []byte, width, height int) error {
	Gray(pix, width, height) // size check

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P5\n%d %d\n255\n", width, height); err != nil {
		return err
	}
	if _, err := bw.Write(pix); err != nil {
		return err
	}
	return bw.Flush()
}
