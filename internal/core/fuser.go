// ABOUTME: Merges semantic and lexical result lists with Reciprocal Rank Fusion
// ABOUTME: Pure function, no I/O; ranks are 1-based, k=60 by default
package core

import (
	"sort"

	"github.com/fikalabs/pantry/internal/models"
)

// DefaultRRFK is the standard RRF smoothing constant
const DefaultRRFK = 60

// Fuse merges two independently ranked lists into one combined ranking.
// A chunk at 1-based rank r in a list contributes 1/(k+r) to its fused
// score; chunks are merged by persistent chunk id and tagged with the
// provenance of the list(s) they appeared in. The result is sorted by
// descending fused score and truncated to topN (topN <= 0 means no limit).
func Fuse(semantic, lexical []models.ScoredChunk, k, topN int) []models.RankedHit {
	if k <= 0 {
		k = DefaultRRFK
	}

	hits := make(map[int64]*models.RankedHit)

	for i, sc := range semantic {
		hits[sc.Chunk.ID] = &models.RankedHit{
			Chunk:      sc.Chunk,
			Score:      1.0 / float64(k+i+1),
			Provenance: models.ProvenanceSemantic,
		}
	}

	for i, sc := range lexical {
		contribution := 1.0 / float64(k+i+1)
		if hit, ok := hits[sc.Chunk.ID]; ok {
			hit.Score += contribution
			hit.Provenance = models.ProvenanceBoth
			continue
		}
		hits[sc.Chunk.ID] = &models.RankedHit{
			Chunk:      sc.Chunk,
			Score:      contribution,
			Provenance: models.ProvenanceLexical,
		}
	}

	fused := make([]models.RankedHit, 0, len(hits))
	for _, hit := range hits {
		fused = append(fused, *hit)
	}

	sort.Slice(fused, func(i, j int) bool {
		return fused[i].Score > fused[j].Score
	})

	if topN > 0 && len(fused) > topN {
		fused = fused[:topN]
	}

	return fused
}
