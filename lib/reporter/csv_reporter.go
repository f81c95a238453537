// Package reporter writes computed kernel matrices to files for
// downstream classifier tooling.
package reporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

type CsvReporter struct {
	filenameBase string
}

func NewCsvReporter(filenameBase string) *CsvReporter {
	return &CsvReporter{filenameBase: filenameBase}
}

// WriteMatrix writes k to <filenameBase>/kernel_<name>.csv, one record
// per matrix cell as (row, column, value). Row and column indices
// refer to the parsed graph collections, which can be shorter than the
// caller's raw input when empty elements were skipped.
func (c *CsvReporter) WriteMatrix(name string, k *mat.Dense) error {
	filename := filepath.Join(c.filenameBase, fmt.Sprintf("kernel_%s.csv", name))
	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0640)
	if err != nil {
		return err
	}
	defer file.Close()
	writer := csv.NewWriter(file)
	rows, cols := k.Dims()
	ctr := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			record := []string{fmt.Sprintf("%d", i), fmt.Sprintf("%d", j),
				fmt.Sprintf("%f", k.At(i, j))}
			if err = writer.Write(record); err != nil {
				return err
			}
			ctr++
			if ctr%1000 == 0 {
				writer.Flush()
				if err = writer.Error(); err != nil {
					return err
				}
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
