package kernels

import (
	"fmt"
	"log"
	"sort"
)

// An Element is one entry of a graph collection. At most one of Graph
// and Raw may be set. The zero Element is the empty entry; parsing
// skips it with a warning instead of failing.
type Element struct {
	// A pre-built graph container.
	Graph LabeledGraph

	// The positional input form.
	Raw *RawGraph
}

// A RawGraph is the positional input form: a graph structure together
// with its node labels and optionally its edge labels. The structure
// and the edge labels are opaque to subtree-style kernels, which only
// consume node labels; they are carried so that richer kernel families
// can share the same input contract.
type RawGraph struct {
	Structure  any
	NodeLabels map[Node]Label
	EdgeLabels map[[2]Node]Label
}

// FromGraph wraps a pre-built graph container as a collection element.
func FromGraph(g LabeledGraph) Element {
	return Element{Graph: g}
}

// FromRaw builds a collection element from a graph structure and its
// node labels.
func FromRaw(structure any, nodeLabels map[Node]Label) Element {
	return Element{Raw: &RawGraph{Structure: structure, NodeLabels: nodeLabels}}
}

// FromRawWithEdges is FromRaw with edge labels attached.
func FromRawWithEdges(structure any, nodeLabels map[Node]Label, edgeLabels map[[2]Node]Label) Element {
	return Element{Raw: &RawGraph{Structure: structure, NodeLabels: nodeLabels, EdgeLabels: edgeLabels}}
}

// ParseInput validates a graph collection and inverts every element's
// node labels into a Summary.
//
// Empty elements are skipped with a warning on warn (the default
// logger when warn is nil), so the result can be shorter than the
// input. Callers that rely on row i of a kernel matrix corresponding
// to element i of their input must not pass empty elements.
//
// A malformed element aborts the whole parse with an
// InvalidInputError naming its index. If nothing survives, the call
// fails with an EmptyInputError.
func ParseInput(elements []Element, warn *log.Logger) ([]Summary, error) {
	if warn == nil {
		warn = log.Default()
	}
	summaries := make([]Summary, 0, len(elements))
	for i, el := range elements {
		switch {
		case el.Graph != nil && el.Raw != nil:
			return nil, InvalidInputError{Index: i, Reason: "element has both a graph object and a raw form"}
		case el.Graph != nil:
			labels := el.Graph.GetLabels(PurposeAny)
			if len(labels) == 0 {
				return nil, InvalidInputError{Index: i, Reason: "graph object has no labeled nodes"}
			}
			summaries = append(summaries, invertLabels(labels))
		case el.Raw != nil:
			if len(el.Raw.NodeLabels) == 0 {
				return nil, InvalidInputError{Index: i, Reason: "raw element has no node labels"}
			}
			summaries = append(summaries, invertLabels(el.Raw.NodeLabels))
		default:
			warn.Printf("ignoring empty element on index: %d\n", i)
		}
	}
	if len(summaries) == 0 {
		return nil, EmptyInputError{}
	}
	return summaries, nil
}

// invertLabels groups node identifiers by their label value. Buckets
// are sorted by the printed form of the node so that summaries come
// out the same regardless of map iteration order.
func invertLabels(labels map[Node]Label) Summary {
	inv := make(Summary, len(labels))
	for node, label := range labels {
		inv[label] = append(inv[label], node)
	}
	for _, nodes := range inv {
		sort.Slice(nodes, func(i, j int) bool {
			return fmt.Sprint(nodes[i]) < fmt.Sprint(nodes[j])
		})
	}
	return inv
}
