package adapter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pinecone-io/go-pinecone/v4/pinecone"
)

// SearchFnFromPinecone turns a live Pinecone index connection into a
// SearchFn. Wired as the second provider shim so the sibling module's
// github.com/pinecone-io/go-pinecone/v4 dependency has a concrete home
// here, alongside the Qdrant shim.
func SearchFnFromPinecone(idx *pinecone.IndexConnection) SearchFn {
	return func(query []float32, limit int) ([]uint32, []float32, [][]float32, error) {
		resp, err := idx.QueryByVectorValues(context.Background(), &pinecone.QueryByVectorValuesRequest{
			Vector:          query,
			TopK:            uint32(limit),
			IncludeValues:   true,
			IncludeMetadata: false,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("pinecone: query index: %w", err)
		}

		ids := make([]uint32, len(resp.Matches))
		scores := make([]float32, len(resp.Matches))
		vectors := make([][]float32, len(resp.Matches))
		for i, match := range resp.Matches {
			id, parseErr := strconv.ParseUint(match.Vector.Id, 10, 32)
			if parseErr != nil {
				return nil, nil, nil, fmt.Errorf("pinecone: vector id %q is not a uint32: %w", match.Vector.Id, parseErr)
			}
			ids[i] = uint32(id)
			scores[i] = match.Score
			vectors[i] = match.Vector.Values
		}
		return ids, scores, vectors, nil
	}
}
