// Package vote implements the multi-segment vote aggregator: it merges
// per-segment hit lists into one record per document, classifies each by
// how many segments agreed on it, and selects the survivors PRF builds a
// centroid from.
package vote

import (
	"sort"

	"github.com/keonho-kim/svve/adapter"
)

// Class is the tier a document's vote record falls into.
type Class int

const (
	classBegin Class = iota

	// Strong means the document appeared in the top k_seg of at least 3
	// segments.
	Strong

	// Weak means the document appeared in exactly 2 segments' top k_seg.
	Weak

	// Noise means the document appeared in at most 1 segment; it is
	// excluded from PRF survivor selection.
	Noise

	classEnd
)

var classNames = [...]string{
	classBegin: "",
	Strong:     "Strong",
	Weak:       "Weak",
	Noise:      "Noise",
	classEnd:   "",
}

// String returns the class's stable name, or "Unknown" out of range.
func (c Class) String() string {
	if c <= classBegin || c >= classEnd {
		return "Unknown"
	}
	return classNames[c]
}

// Classify maps a vote count to its tier: >=3 Strong, ==2 Weak, else
// Noise.
func Classify(votes uint8) Class {
	switch {
	case votes >= 3:
		return Strong
	case votes == 2:
		return Weak
	default:
		return Noise
	}
}

// Record is one document's tallied evidence across all segment searches.
type Record struct {
	DocId     uint32
	Votes     uint8
	RankScore float32
	BestScore float32
}

// Class reports this record's vote tier.
func (r Record) Class() Class {
	return Classify(r.Votes)
}

// Merge folds every segment's hit list into one Record per document id.
// For a hit at zero-based rank r within a segment of per-segment limit
// kSeg, the record's vote count increments, rank_score gains (kSeg - r),
// and best_score tracks the maximum raw score seen. Records come back
// sorted by the priority order spec.md §4.4 requires: votes desc,
// rank_score desc, best_score desc, DocId asc — a total order, so the
// result is identical regardless of the order segments are supplied in.
func Merge(perSegmentHits [][]adapter.ScoredHit, kSeg int) []Record {
	tally := make(map[uint32]*Record)

	for _, hits := range perSegmentHits {
		for rank, hit := range hits {
			rec, ok := tally[hit.DocId]
			if !ok {
				rec = &Record{DocId: hit.DocId}
				tally[hit.DocId] = rec
			}
			rec.Votes++
			rec.RankScore += float32(kSeg - rank)
			if hit.Score > rec.BestScore {
				rec.BestScore = hit.Score
			}
		}
	}

	records := make([]Record, 0, len(tally))
	for _, rec := range tally {
		records = append(records, *rec)
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Votes != b.Votes {
			return a.Votes > b.Votes
		}
		if a.RankScore != b.RankScore {
			return a.RankScore > b.RankScore
		}
		if a.BestScore != b.BestScore {
			return a.BestScore > b.BestScore
		}
		return a.DocId < b.DocId
	})
	return records
}

// SelectSurvivors takes the non-Noise records, in the priority order Merge
// already produced, and truncates to at most m. Fewer than m non-Noise
// records is not an error here; the caller treats an empty result as
// terminal (PRF is mandatory).
func SelectSurvivors(records []Record, m int) []uint32 {
	survivors := make([]uint32, 0, m)
	for _, rec := range records {
		if rec.Class() == Noise {
			continue
		}
		survivors = append(survivors, rec.DocId)
		if len(survivors) == m {
			break
		}
	}
	return survivors
}
