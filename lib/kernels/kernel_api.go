// Package kernels contains the pairwise graph kernel computation engine
// and the concrete kernel operations that plug into it.
package kernels

// A Node identifies a vertex of an input graph. Any value that can be
// used as a map key works.
type Node = any

// A Label is the value attached to a node. Labels carry no structure
// beyond equality; any value that can be used as a map key works.
type Label = any

// A Summary is the inverted label dictionary of one graph: it maps
// every distinct label to the nodes carrying it. Summaries are built
// once during parsing and not modified afterwards.
type Summary map[Label][]Node

// NodeCount returns the number of nodes across all label buckets.
func (s Summary) NodeCount() int {
	count := 0
	for _, nodes := range s {
		count += len(nodes)
	}
	return count
}

// LabelPurpose selects which label set a graph container should report.
type LabelPurpose int

const (
	// PurposeAny asks for whatever labels the container considers
	// primary; containers with only one label set return that.
	PurposeAny LabelPurpose = iota
	PurposeVertex
	PurposeEdge
)

// A LabeledGraph is a pre-built graph container that can report its
// node labels. The engine only ever asks with PurposeAny.
type LabeledGraph interface {
	GetLabels(purpose LabelPurpose) map[Node]Label
}

// A PairwiseOperation computes the similarity of two graph summaries.
//
// Implementations must be commutative, must not modify either input,
// and must produce a finite non-negative value for well-formed
// summaries of their own kernel family. Errors returned here propagate
// unmodified to the engine caller.
type PairwiseOperation interface {
	Score(a Summary, b Summary) (float64, error)
}
