package services

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{1, 0, 0}
	if got := cosineSimilarity(a, b); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("identical vectors = %f, want 1", got)
	}

	c := []float32{0, 1, 0}
	if got := cosineSimilarity(a, c); math.Abs(got) > 1e-9 {
		t.Errorf("orthogonal vectors = %f, want 0", got)
	}

	d := []float32{-1, 0, 0}
	if got := cosineSimilarity(a, d); math.Abs(got+1.0) > 1e-9 {
		t.Errorf("opposite vectors = %f, want -1", got)
	}
}

func TestCosineSimilarityDegenerateInputs(t *testing.T) {
	if got := cosineSimilarity(nil, nil); got != 0 {
		t.Errorf("empty vectors = %f", got)
	}
	if got := cosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}); got != 0 {
		t.Errorf("mismatched lengths = %f", got)
	}
	if got := cosineSimilarity([]float32{0, 0}, []float32{1, 1}); got != 0 {
		t.Errorf("zero vector = %f", got)
	}
}
