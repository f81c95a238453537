package reporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestWriteMatrix(t *testing.T) {
	dir := t.TempDir()
	rep := NewCsvReporter(dir)
	k := mat.NewDense(2, 3, []float64{
		1.0, 2.0, 0.5,
		2.0, 5.0, 1.5,
	})
	if err := rep.WriteMatrix("subtree_wl", k); err != nil {
		t.Fatalf("unexpected error writing matrix: %v", err)
	}

	file, err := os.Open(filepath.Join(dir, "kernel_subtree_wl.csv"))
	if err != nil {
		t.Fatalf("failed to open written matrix: %v", err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to read written matrix: %v", err)
	}
	if len(records) != 6 {
		t.Fatalf("expected 6 records but got %d", len(records))
	}
	if records[0][0] != "0" || records[0][1] != "0" || records[0][2] != "1.000000" {
		t.Errorf("unexpected first record: %v", records[0])
	}
	last := records[len(records)-1]
	if last[0] != "1" || last[1] != "2" || last[2] != "1.500000" {
		t.Errorf("unexpected last record: %v", last)
	}
}

func TestWriteMatrixBadDirectory(t *testing.T) {
	rep := NewCsvReporter("/nonexistent/results/dir")
	if err := rep.WriteMatrix("subtree_wl", mat.NewDense(1, 1, []float64{1.0})); err == nil {
		t.Error("expected an error writing to a missing directory")
	}
}
