package adapter

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
)

// SearchFnFromQdrant turns a live Qdrant client into a SearchFn, so the
// engine can be pointed at a real collection instead of a test stub.
// Grounded on the query-building and result-conversion shape of the
// teacher's qdrant provider, adapted to hand back raw ids/scores/vectors
// triples (WithVectors requested) instead of assembled documents, since
// PRF needs the vectors themselves.
func SearchFnFromQdrant(client *qdrant.Client, collection string) SearchFn {
	return func(query []float32, limit int) ([]uint32, []float32, [][]float32, error) {
		resp, err := client.Query(context.Background(), &qdrant.QueryPoints{
			CollectionName: collection,
			Query:          qdrant.NewQuery(query...),
			Limit:          qdrant.PtrOf(uint64(limit)),
			WithVectors:    qdrant.NewWithVectors(true),
			WithPayload:    qdrant.NewWithPayload(false),
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("qdrant: query collection %s: %w", collection, err)
		}

		ids := make([]uint32, len(resp))
		scores := make([]float32, len(resp))
		vectors := make([][]float32, len(resp))
		for i, point := range resp {
			ids[i] = uint32(point.GetId().GetNum())
			scores[i] = point.GetScore()
			vectors[i] = point.GetVectors().GetVector().GetData()
		}
		return ids, scores, vectors, nil
	}
}
