package kernels

import (
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/kpaschen/graphkernels/lib/settings"
)

// fittedState is the cached outcome of a Fit call: the parsed training
// summaries, their self-similarities and the square pairwise matrix.
// It is replaced wholesale on re-fit, never mutated in place, so
// matrices handed out by earlier calls stay valid.
type fittedState struct {
	summaries []Summary
	diagonal  []float64
	gram      *mat.Dense
}

// An Engine assembles kernel matrices from a pairwise operation.
//
// Fit caches a training collection; Transform scores new graphs
// against the cached one. An engine is meant for a single logical
// caller; the pairwise scores inside one call are fanned out over a
// worker pool, but concurrent Fit/Transform on the same engine needs
// external synchronization.
type Engine struct {
	op     PairwiseOperation
	config settings.KernelSettings
	warn   *log.Logger
	fitted *fittedState
}

func NewEngine(op PairwiseOperation, config settings.KernelSettings) *Engine {
	return &Engine{
		op:     op,
		config: config.ComputeSettingsFields(),
	}
}

// SetLogger directs parse warnings and verbose output to l instead of
// the default logger.
func (e *Engine) SetLogger(l *log.Logger) {
	e.warn = l
}

func (e *Engine) logf(format string, args ...any) {
	if e.warn != nil {
		e.warn.Printf(format, args...)
	} else {
		log.Printf(format, args...)
	}
}

// FittedCount returns the number of graph summaries cached by the
// last Fit, or 0 when the engine has not been fitted.
func (e *Engine) FittedCount() int {
	if e.fitted == nil {
		return 0
	}
	return len(e.fitted.summaries)
}

// Fit parses x, discards any previously cached training state and
// caches the parsed summaries together with the square pairwise matrix
// and each graph's self-similarity.
func (e *Engine) Fit(x []Element) error {
	summaries, err := ParseInput(x, e.warn)
	if err != nil {
		return err
	}
	gram, err := e.squareMatrix(summaries)
	if err != nil {
		return err
	}
	n := len(summaries)
	diagonal := make([]float64, n)
	for i := 0; i < n; i++ {
		diagonal[i] = gram.At(i, i)
	}
	e.fitted = &fittedState{
		summaries: summaries,
		diagonal:  diagonal,
		gram:      gram,
	}
	if e.config.Verbose {
		e.logf("fitted %d graph summaries\n", n)
	}
	return nil
}

// Transform scores y against the collection cached by the last Fit.
// Entry (i, j) of the result is the score between the i-th parsed
// element of y and the j-th cached training graph, so the matrix has
// len(parsed y) rows and len(fitted collection) columns.
func (e *Engine) Transform(y []Element) (*mat.Dense, error) {
	if e.fitted == nil {
		return nil, NotFittedError{}
	}
	fitted := e.fitted
	summaries, err := ParseInput(y, e.warn)
	if err != nil {
		return nil, err
	}
	k, err := e.rectangularMatrix(summaries, fitted.summaries)
	if err != nil {
		return nil, err
	}
	if e.config.Normalize {
		rowDiagonal, err := e.selfSimilarities(summaries)
		if err != nil {
			return nil, err
		}
		if err := normalizeMatrix(k, rowDiagonal, fitted.diagonal); err != nil {
			return nil, err
		}
	}
	if e.config.Verbose {
		e.logf("transformed %d graph summaries against %d fitted ones\n",
			len(summaries), len(fitted.summaries))
	}
	return k, nil
}

// FitTransform is Fit followed by Transform over the same collection,
// except that the fit-time square matrix is reused instead of being
// computed a second time.
func (e *Engine) FitTransform(x []Element) (*mat.Dense, error) {
	if err := e.Fit(x); err != nil {
		return nil, err
	}
	// Return a copy so the cached matrix stays pristine for later
	// Transform calls.
	k := mat.DenseCopyOf(e.fitted.gram)
	if e.config.Normalize {
		if err := normalizeMatrix(k, e.fitted.diagonal, e.fitted.diagonal); err != nil {
			return nil, err
		}
	}
	return k, nil
}

// squareMatrix computes the symmetric pairwise matrix over one
// collection. Only the upper triangle is scored; every unordered pair
// is scored exactly once and mirrored to the lower triangle. Cells are
// independent, so they are fanned out over the worker pool; each cell
// is written by exactly one goroutine.
func (e *Engine) squareMatrix(summaries []Summary) (*mat.Dense, error) {
	n := len(summaries)
	k := mat.NewDense(n, n, nil)
	group := new(errgroup.Group)
	group.SetLimit(e.config.Workers)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			i, j := i, j
			group.Go(func() error {
				value, err := e.op.Score(summaries[i], summaries[j])
				if err != nil {
					return fmt.Errorf("scoring pair (%d, %d): %w", i, j, err)
				}
				k.Set(i, j, value)
				if i != j {
					k.Set(j, i, value)
				}
				return nil
			})
		}
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return k, nil
}

// rectangularMatrix scores every row summary against every column
// summary. No mirroring is possible here, the two collections are
// generally different.
func (e *Engine) rectangularMatrix(rows []Summary, cols []Summary) (*mat.Dense, error) {
	k := mat.NewDense(len(rows), len(cols), nil)
	group := new(errgroup.Group)
	group.SetLimit(e.config.Workers)
	for i := range rows {
		for j := range cols {
			i, j := i, j
			group.Go(func() error {
				value, err := e.op.Score(rows[i], cols[j])
				if err != nil {
					return fmt.Errorf("scoring pair (%d, %d): %w", i, j, err)
				}
				k.Set(i, j, value)
				return nil
			})
		}
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return k, nil
}

func (e *Engine) selfSimilarities(summaries []Summary) ([]float64, error) {
	diagonal := make([]float64, len(summaries))
	for i, s := range summaries {
		value, err := e.op.Score(s, s)
		if err != nil {
			return nil, fmt.Errorf("scoring graph %d against itself: %w", i, err)
		}
		diagonal[i] = value
	}
	return diagonal, nil
}
