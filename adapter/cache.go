package adapter

import "math"

// put inserts vector into the per-request cache for id, overwriting any
// earlier entry. The adapter is the cache's sole owner: no other package
// reads or writes cacheMap directly.
func (a *StoreAdapter) put(id uint32, vector []float32) {
	a.cacheMap[id] = vector
}

// get returns the cached vector for id, if present.
func (a *StoreAdapter) get(id uint32) ([]float32, bool) {
	v, ok := a.cacheMap[id]
	return v, ok
}

// hasFiniteNonZeroNorm reports whether v's L2 norm is strictly positive
// and finite, i.e. whether v can be normalized.
func hasFiniteNonZeroNorm(v []float32) bool {
	var sumSq float64
	for _, f := range v {
		x := float64(f)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
		sumSq += x * x
	}
	return sumSq > 0 && !math.IsInf(sumSq, 0)
}
