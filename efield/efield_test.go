package efield_test

import (
	"strings"
	"testing"

	"github.com/Geovannisz/LayoutGeneratorBINGO-sub000/efield"
)

const sampleCSV = `"Theta [deg]","Phi [deg]","re(rETheta) [V]","im(rETheta) [V]","re(rEPhi) [V]","im(rEPhi) [V]","Freq [GHz]"
0,0,1.0,0.5,0.25,-0.5,1.0
0,90,0.5,0.0,0.0,0.0,1.0
45,0,"0,25",0.0,0.0,0.0,1.0
45,90,0.1,0.0,0.0,0.0,1.0
90,0,0.0,0.0,0.0,0.0,1.0
120,0,0.3,0.0,0.0,0.0,1.0
45,45,0.9,0.0,0.0,0.0,1.1
bad,row,x,x,x,x,1.0
`

func loadSample(t *testing.T) *efield.Dataset {
	t.Helper()
	ds, err := efield.ReadCSV(strings.NewReader(sampleCSV), 1.0)
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestReadCSV(t *testing.T) {
	ds := loadSample(t)
	// 8 data rows: one filtered out by frequency, one malformed.
	if ds.Len() != 6 {
		t.Fatalf("got %d samples, want 6", ds.Len())
	}
	s, ok := ds.Lookup(0, 0)
	if !ok {
		t.Fatal("missing sample at (0,0)")
	}
	if s.RETheta != complex(1.0, 0.5) || s.REPhi != complex(0.25, -0.5) {
		t.Errorf("bad field components at (0,0): %v %v", s.RETheta, s.REPhi)
	}
}

func TestReadCSVDecimalComma(t *testing.T) {
	ds := loadSample(t)
	s, ok := ds.Lookup(45, 0)
	if !ok {
		t.Fatal("missing sample at (45,0)")
	}
	if real(s.RETheta) != 0.25 {
		t.Errorf("decimal comma parsed as %v, want 0.25", real(s.RETheta))
	}
}

func TestReadCSVNoFrequencyFilter(t *testing.T) {
	ds, err := efield.ReadCSV(strings.NewReader(sampleCSV), 0)
	if err != nil {
		t.Fatal(err)
	}
	if ds.Len() != 7 {
		t.Fatalf("got %d samples, want 7 without frequency filter", ds.Len())
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	broken := `"Theta [deg]","Phi [deg]"
0,0
`
	if _, err := efield.ReadCSV(strings.NewReader(broken), 0); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestNewDatasetEmpty(t *testing.T) {
	if _, err := efield.NewDataset(nil); err != efield.ErrInsufficientData {
		t.Fatalf("got %v, want ErrInsufficientData", err)
	}
}

func TestFirstQuadrant(t *testing.T) {
	fq, err := loadSample(t).FirstQuadrant()
	if err != nil {
		t.Fatal(err)
	}
	if fq.Len() != 5 {
		t.Fatalf("got %d samples, want 5 after quadrant restriction", fq.Len())
	}
	for _, s := range fq.Samples() {
		if s.ThetaDeg < 0 || s.ThetaDeg > 90 || s.PhiDeg < 0 || s.PhiDeg > 90 {
			t.Errorf("sample (%v,%v) outside first quadrant", s.ThetaDeg, s.PhiDeg)
		}
	}
	thetas := fq.Thetas()
	if len(thetas) != 3 || thetas[0] != 0 || thetas[2] != 90 {
		t.Errorf("bad theta axis %v", thetas)
	}
}

func TestPhiCut(t *testing.T) {
	cut, err := loadSample(t).PhiCut(0.4)
	if err != nil {
		t.Fatal(err)
	}
	if len(cut) != 4 {
		t.Fatalf("got %d samples in cut, want 4", len(cut))
	}
	for i := 1; i < len(cut); i++ {
		if cut[i].ThetaDeg < cut[i-1].ThetaDeg {
			t.Fatal("cut not sorted by theta")
		}
	}
	if _, err := loadSample(t).PhiCut(33); err != efield.ErrInsufficientData {
		t.Fatalf("got %v, want ErrInsufficientData for empty cut", err)
	}
}
