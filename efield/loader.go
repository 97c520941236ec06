package efield

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	gzip "github.com/klauspost/pgzip"
)

// Expected column names after normalization (lowercase, quotes and outer
// spaces stripped). Matches the rE table exported by the EM solver.
const (
	colTheta     = "theta [deg]"
	colPhi       = "phi [deg]"
	colReRETheta = "re(retheta) [v]"
	colImRETheta = "im(retheta) [v]"
	colReREPhi   = "re(rephi) [v]"
	colImREPhi   = "im(rephi) [v]"
	colFreqGHz   = "freq [ghz]"
)

// LoadCSV reads a far-field sample table from path. Files ending in .gz
// are decompressed on the fly. When the table carries a frequency column,
// only rows at freqGHz (within 1e-6) are kept; pass 0 to keep every row.
// Malformed rows are skipped with a warning rather than failing the load.
func LoadCSV(path string, freqGHz float64) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("efield: open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("efield: gunzip %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}
	return ReadCSV(r, freqGHz)
}

// ReadCSV parses a far-field sample table from r. See LoadCSV.
func ReadCSV(r io.Reader, freqGHz float64) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("efield: read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[normalizeHeader(name)] = i
	}
	for _, required := range []string{colTheta, colPhi, colReRETheta, colImRETheta, colReREPhi, colImREPhi} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("efield: missing column %q: %w", required, ErrInsufficientData)
		}
	}
	freqCol, hasFreq := cols[colFreqGHz]

	var samples []Sample
	skipped := 0
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("efield: read row %d: %w", line, err)
		}
		if hasFreq && freqGHz > 0 {
			fv, err := parseField(record, freqCol)
			if err != nil || math.Abs(fv-freqGHz) > 1e-6 {
				continue
			}
		}
		s, err := parseSample(record, cols)
		if err != nil {
			skipped++
			continue
		}
		samples = append(samples, s)
	}
	if skipped > 0 {
		log.Printf("efield: skipped %d malformed rows", skipped)
	}
	return NewDataset(samples)
}

func parseSample(record []string, cols map[string]int) (Sample, error) {
	var s Sample
	var err error
	if s.ThetaDeg, err = parseField(record, cols[colTheta]); err != nil {
		return s, err
	}
	if s.PhiDeg, err = parseField(record, cols[colPhi]); err != nil {
		return s, err
	}
	reT, err := parseField(record, cols[colReRETheta])
	if err != nil {
		return s, err
	}
	imT, err := parseField(record, cols[colImRETheta])
	if err != nil {
		return s, err
	}
	reP, err := parseField(record, cols[colReREPhi])
	if err != nil {
		return s, err
	}
	imP, err := parseField(record, cols[colImREPhi])
	if err != nil {
		return s, err
	}
	s.RETheta = complex(reT, imT)
	s.REPhi = complex(reP, imP)
	return s, nil
}

func parseField(record []string, i int) (float64, error) {
	if i < 0 || i >= len(record) {
		return 0, fmt.Errorf("efield: column %d out of range", i)
	}
	// Some exports use decimal commas.
	v := strings.ReplaceAll(strings.TrimSpace(record[i]), ",", ".")
	return strconv.ParseFloat(v, 64)
}

func normalizeHeader(name string) string {
	name = strings.ReplaceAll(name, `"`, "")
	return strings.ToLower(strings.TrimSpace(name))
}
