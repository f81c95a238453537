package kernels

import (
	"fmt"
)

// InvalidInputError reports a malformed element in a graph collection.
// Parsing stops at the first malformed element.
type InvalidInputError struct {
	Index  int
	Reason string
}

func (e InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input element at index %d: %s", e.Index, e.Reason)
}

// EmptyInputError means parsing produced no graph summaries, either
// because the input was empty or because every element was skipped.
type EmptyInputError struct{}

func (e EmptyInputError) Error() string {
	return "parsed input is empty"
}

// NotFittedError means Transform was called on an engine that has not
// had a successful Fit.
type NotFittedError struct{}

func (e NotFittedError) Error() string {
	return "transform called before fit"
}

// DegenerateGraphError reports a graph with zero self-similarity.
// Such a graph cannot be normalized.
type DegenerateGraphError struct {
	Index int
}

func (e DegenerateGraphError) Error() string {
	return fmt.Sprintf("graph at index %d has zero self-similarity and cannot be normalized", e.Index)
}
