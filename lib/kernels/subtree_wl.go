package kernels

// SubtreeWL is the Weisfeiler-Lehman subtree kernel operation. The
// score of two graphs counts the pairs of nodes, one from each graph,
// carrying the same subtree-invariant label:
//
//	k(X,Y) = sum over shared labels l of |X[l]| * |Y[l]|
//
// This is the inner product of the label-count vectors without ever
// materializing the label alphabet.
type SubtreeWL struct{}

func (SubtreeWL) Score(a Summary, b Summary) (float64, error) {
	// Iterate the smaller dictionary and look up in the larger one.
	// Either order gives the same result, the smaller side just
	// needs fewer lookups.
	ls, lb := a, b
	if len(lb) < len(ls) {
		ls, lb = lb, ls
	}
	sum := 0.0
	for label, nodes := range ls {
		if other, ok := lb[label]; ok {
			sum += float64(len(nodes) * len(other))
		}
	}
	return sum, nil
}

// VertexHistogram scores two graphs by their plain label histograms,
// with no refinement context around the labels. The closed form is the
// same label-count inner product as SubtreeWL; it exists as its own
// operation so that histogram-only pipelines name what they run, and
// as a second implementation of the pairwise contract.
type VertexHistogram struct{}

func (VertexHistogram) Score(a Summary, b Summary) (float64, error) {
	return SubtreeWL{}.Score(a, b)
}
