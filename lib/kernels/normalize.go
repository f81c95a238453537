package kernels

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// normalizeMatrix rescales k in place so that entry (i, j) becomes
// k[i][j] / sqrt(rowDiagonal[i] * colDiagonal[j]). A zero
// self-similarity on either side means the corresponding graph cannot
// be normalized and fails the whole call.
func normalizeMatrix(k *mat.Dense, rowDiagonal []float64, colDiagonal []float64) error {
	rows, cols := k.Dims()
	if rows != len(rowDiagonal) || cols != len(colDiagonal) {
		return fmt.Errorf("normalization diagonal lengths (%d, %d) do not match matrix dimensions (%d, %d)",
			len(rowDiagonal), len(colDiagonal), rows, cols)
	}
	for i, d := range rowDiagonal {
		if d == 0.0 {
			return DegenerateGraphError{Index: i}
		}
	}
	for j, d := range colDiagonal {
		if d == 0.0 {
			return DegenerateGraphError{Index: j}
		}
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			k.Set(i, j, k.At(i, j)/math.Sqrt(rowDiagonal[i]*colDiagonal[j]))
		}
	}
	return nil
}

// MinEigenvalue returns the smallest eigenvalue of the symmetric
// matrix k. A kernel matrix computed over a single collection should
// have no eigenvalue below a small negative tolerance; this backs that
// acceptance check.
func MinEigenvalue(k *mat.Dense) (float64, error) {
	rows, cols := k.Dims()
	if rows != cols {
		return 0.0, fmt.Errorf("eigenvalues need a square matrix but got %dx%d", rows, cols)
	}
	sym := mat.NewSymDense(rows, nil)
	for i := 0; i < rows; i++ {
		for j := i; j < cols; j++ {
			sym.SetSym(i, j, k.At(i, j))
		}
	}
	var eigen mat.EigenSym
	if ok := eigen.Factorize(sym, false); !ok {
		return 0.0, fmt.Errorf("eigenvalue factorization did not converge")
	}
	values := eigen.Values(nil)
	smallest := values[0]
	for _, v := range values[1:] {
		if v < smallest {
			smallest = v
		}
	}
	return smallest, nil
}
