// Package refine implements the iterative refiner: it re-searches the
// store with the PRF-reformulated query at growing limits, merges hits
// across rounds, and stops early once the Top-K has stabilized.
package refine

import (
	"context"
	"fmt"

	"github.com/keonho-kim/svve/adapter"
	"github.com/keonho-kim/svve/errs"
	"github.com/keonho-kim/svve/internal/mathx"
	"github.com/keonho-kim/svve/internal/setx"
)

// Schedule computes the per-round search limit L_r for round r
// (1-indexed): top_k * 2^min(r-1, capExponent). The exponent is capped to
// avoid unbounded growth across many rounds.
func Schedule(topK, round, capExponent int) int {
	exp := round - 1
	if exp > capExponent {
		exp = capExponent
	}
	return topK << exp
}

// round is one refinement iteration's running state, carried forward to
// compute the next round's stability metrics against.
type round struct {
	ids      []uint32
	scoreSum float32
}

// RerankUntilTopK runs up to maxRounds search/merge/stability-check
// iterations against adapt using qStar, honoring ctx cancellation at each
// round boundary. It returns once two consecutive rounds are stable
// (Jaccard overlap >= jaccardThreshold and relative score improvement <=
// improvementThreshold) or once maxRounds is reached; hitting the round
// cap ends the loop with whatever Top-K has been assembled, which is a
// quality heuristic, not a failure.
func RerankUntilTopK(
	ctx context.Context,
	adapt *adapter.StoreAdapter,
	qStar []float32,
	topK int,
	maxRounds int,
	capExponent int,
	jaccardThreshold float64,
	improvementThreshold float64,
	stableRoundsRequired int,
) ([]adapter.ScoredHit, error) {
	bestScore := make(map[uint32]float32)
	var prev *round
	consecutiveStable := 0

	var current []adapter.ScoredHit
	for r := 1; r <= maxRounds; r++ {
		if err := checkCanceled(ctx); err != nil {
			return nil, err
		}

		limit := Schedule(topK, r, capExponent)
		hits, err := adapt.Search(qStar, limit)
		if err != nil {
			return nil, fmt.Errorf("refine: round %d search: %w", r, err)
		}

		for _, hit := range hits {
			if existing, ok := bestScore[hit.DocId]; !ok || hit.Score > existing {
				bestScore[hit.DocId] = hit.Score
			}
		}

		current = make([]adapter.ScoredHit, 0, len(bestScore))
		for id, score := range bestScore {
			current = append(current, adapter.ScoredHit{DocId: id, Score: score})
		}
		current = mathx.SortDescTake(current, topK)

		thisRound := &round{ids: idsOf(current), scoreSum: sumScores(current)}

		if err := checkCanceled(ctx); err != nil {
			return nil, err
		}

		if prev != nil && isStable(prev, thisRound, jaccardThreshold, improvementThreshold) {
			consecutiveStable++
			if consecutiveStable >= stableRoundsRequired {
				return current, nil
			}
		} else {
			consecutiveStable = 0
		}
		prev = thisRound
	}

	return current, nil
}

func isStable(prev, cur *round, jaccardThreshold, improvementThreshold float64) bool {
	const epsilon = 1e-12

	jaccard := setx.Jaccard(setx.Of(prev.ids...), setx.Of(cur.ids...))
	improvement := (float64(cur.scoreSum) - float64(prev.scoreSum)) / max(float64(prev.scoreSum), epsilon)

	return jaccard >= jaccardThreshold && improvement <= improvementThreshold
}

func idsOf(hits []adapter.ScoredHit) []uint32 {
	ids := make([]uint32, len(hits))
	for i, h := range hits {
		ids[i] = h.DocId
	}
	return ids
}

func sumScores(hits []adapter.ScoredHit) float32 {
	var sum float32
	for _, h := range hits {
		sum += h.Score
	}
	return sum
}

func checkCanceled(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return errs.New(errs.KindCanceled, "refinement canceled")
	default:
		return nil
	}
}
