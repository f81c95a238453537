package kernels

import (
	"math"
	"testing"
)

type scorePair struct {
	a             Summary
	b             Summary
	expectedScore float64
}

func TestSubtreeWLScore(t *testing.T) {
	pairs := []scorePair{
		{
			// Two one-node graphs with the same label.
			a:             Summary{"x": []Node{0}},
			b:             Summary{"x": []Node{0}},
			expectedScore: 1.0,
		},
		{
			// Only label x is shared, with counts 2 and 1.
			a:             Summary{"x": []Node{0, 1}, "y": []Node{2}},
			b:             Summary{"x": []Node{0}, "z": []Node{1}},
			expectedScore: 2.0,
		},
		{
			// Disjoint label sets are a valid score of zero.
			a:             Summary{"x": []Node{0}},
			b:             Summary{"y": []Node{0}},
			expectedScore: 0.0,
		},
		{
			// A single shared bucket degenerates to |V1| * |V2|.
			a:             Summary{"x": []Node{0, 1, 2}},
			b:             Summary{"x": []Node{0, 1}},
			expectedScore: 6.0,
		},
	}
	op := SubtreeWL{}
	for i, pair := range pairs {
		score, err := op.Score(pair.a, pair.b)
		if err != nil {
			t.Errorf("unexpected error scoring pair %d: %v", i, err)
		}
		if math.Abs(score-pair.expectedScore) > 0.0001 {
			t.Errorf("pair %d: expected score %f but got %f", i, pair.expectedScore, score)
		}
		// Both iteration orders have to agree.
		reversed, err := op.Score(pair.b, pair.a)
		if err != nil {
			t.Errorf("unexpected error scoring reversed pair %d: %v", i, err)
		}
		if reversed != score {
			t.Errorf("pair %d: score %f does not match reversed score %f", i, score, reversed)
		}
	}
}

func TestSubtreeWLSelfSimilarity(t *testing.T) {
	summaries := []Summary{
		{"x": []Node{0}},
		{"x": []Node{0, 1}, "y": []Node{2}},
		{"a": []Node{0}, "b": []Node{1}, "c": []Node{2, 3, 4}},
	}
	op := SubtreeWL{}
	for i, s := range summaries {
		score, err := op.Score(s, s)
		if err != nil {
			t.Fatalf("unexpected error scoring summary %d against itself: %v", i, err)
		}
		if score < 0.0 {
			t.Errorf("self-similarity of summary %d is negative: %f", i, score)
		}
		expected := 0.0
		for _, nodes := range s {
			expected += float64(len(nodes) * len(nodes))
		}
		if math.Abs(score-expected) > 0.0001 {
			t.Errorf("self-similarity of summary %d should be %f but is %f", i, expected, score)
		}
	}
}

func TestVertexHistogramMatchesSubtree(t *testing.T) {
	a := Summary{"x": []Node{0, 1}, "y": []Node{2}}
	b := Summary{"x": []Node{0}, "y": []Node{1, 2, 3}}
	subtree, err := SubtreeWL{}.Score(a, b)
	if err != nil {
		t.Fatalf("unexpected error from subtree score: %v", err)
	}
	histogram, err := VertexHistogram{}.Score(a, b)
	if err != nil {
		t.Fatalf("unexpected error from histogram score: %v", err)
	}
	if subtree != histogram {
		t.Errorf("histogram score %f should equal subtree score %f", histogram, subtree)
	}
}
