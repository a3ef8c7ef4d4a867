// Package mathx provides the small numeric kernel SVVE is built on: dot
// product, L2 norm, in-place normalization, and a deterministic descending
// Top-K selection with id-based tie-breaking.
package mathx

import (
	"math"
	"sort"
)

// Dot returns the dot product of a and b. The caller must ensure both
// slices have equal length; Dot does not validate this.
func Dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// L2Norm returns the Euclidean norm of v.
func L2Norm(v []float32) float32 {
	return float32(math.Sqrt(float64(Dot(v, v))))
}

// NormalizeInPlace divides v by its L2 norm and returns true, unless the
// norm is zero or non-finite, in which case v is left untouched and false
// is returned.
func NormalizeInPlace(v []float32) bool {
	norm := L2Norm(v)
	if norm == 0 || !finite32(norm) {
		return false
	}
	inv := 1 / norm
	for i := range v {
		v[i] *= inv
	}
	return true
}

func finite32(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

// Scored is anything with a score and a document id, used by SortDescTake.
type Scored interface {
	ScoreValue() float32
	DocIDValue() uint32
}

// SortDescTake sorts hits in place by descending score, breaking ties by
// ascending document id, then truncates to at most k elements. The
// ordering is total and deterministic: identical inputs always produce an
// identical output slice, independent of the original order or of any
// parallel computation that produced the hits.
func SortDescTake[T Scored](hits []T, k int) []T {
	sort.Slice(hits, func(i, j int) bool {
		si, sj := hits[i].ScoreValue(), hits[j].ScoreValue()
		if si != sj {
			return si > sj
		}
		return hits[i].DocIDValue() < hits[j].DocIDValue()
	})
	if k >= 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits
}
