// Package prf implements pseudo-relevance feedback query reformulation:
// it fetches the survivor vectors a vote selected, averages them into a
// centroid, and blends that centroid with the original query.
package prf

import (
	"fmt"

	"github.com/keonho-kim/svve/adapter"
	"github.com/keonho-kim/svve/errs"
	"github.com/keonho-kim/svve/internal/mathx"
)

// Centroid returns the arithmetic mean of vectors, each of length d. It
// fails if vectors is empty or any vector's length does not match d.
func Centroid(vectors [][]float32, d int) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, errs.New(errs.KindInvalidInput, "centroid requires at least one vector")
	}

	sum := make([]float32, d)
	for i, v := range vectors {
		if len(v) != d {
			return nil, errs.NewField(errs.KindInvalidInput, "vectors",
				fmt.Sprintf("vector %d has length %d, want %d", i, len(v), d))
		}
		for j, x := range v {
			sum[j] += x
		}
	}

	n := float32(len(vectors))
	for j := range sum {
		sum[j] /= n
	}
	return sum, nil
}

// BuildQuery fetches the survivor vectors from adapt, computes their
// centroid, and forms q* = alpha*q + (1-alpha)*c, normalized in place.
// A q* with zero or non-finite norm (q nearly antiparallel to the
// centroid) fails as DegeneratePRF rather than being silently returned
// unnormalized.
func BuildQuery(q []float32, survivors []uint32, adapt *adapter.StoreAdapter, alpha float32) ([]float32, error) {
	docVectors, err := adapt.FetchVectors(survivors)
	if err != nil {
		return nil, fmt.Errorf("prf: fetching survivor vectors: %w", err)
	}

	vectors := make([][]float32, len(docVectors))
	for i, dv := range docVectors {
		vectors[i] = dv.Vector
	}

	c, err := Centroid(vectors, len(q))
	if err != nil {
		return nil, fmt.Errorf("prf: computing centroid: %w", err)
	}

	qStar := make([]float32, len(q))
	for i := range q {
		qStar[i] = alpha*q[i] + (1-alpha)*c[i]
	}

	if !mathx.NormalizeInPlace(qStar) {
		return nil, errs.New(errs.KindDegeneratePRF, "reformulated query has zero or non-finite norm")
	}
	return qStar, nil
}
