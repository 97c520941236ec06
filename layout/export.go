package layout

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/wiless/vlib"
)

// WriteLayoutCSV writes positions as "x,y" lines with 6-decimal
// precision, the station layout text format.
func WriteLayoutCSV(w io.Writer, coords vlib.VectorC) error {
	bw := bufio.NewWriter(w)
	for _, c := range coords {
		if _, err := fmt.Fprintf(bw, "%.6f,%.6f\n", real(c), imag(c)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveLayoutCSV writes positions to a file via WriteLayoutCSV.
func SaveLayoutCSV(path string, coords vlib.VectorC) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteLayoutCSV(f, coords); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
