// Package settings contains the parameters for kernel matrix computation.
package settings

import (
	"runtime"
)

type KernelSettings struct {
	// Whether to rescale the output matrix so that every diagonal
	// entry is 1, like converting a covariance matrix to a
	// correlation matrix. Requires nonzero self-similarities.
	Normalize bool

	// Verbose enables diagnostic output. It has no effect on the
	// numeric result.
	Verbose bool

	// The number of goroutines used for pairwise score computation.
	Workers int
}

func (s KernelSettings) ComputeSettingsFields() KernelSettings {
	if s.Workers == 0 {
		s.Workers = runtime.NumCPU()
	}
	return s
}
