// ABOUTME: RankedHit is a fused search result with provenance tagging
// ABOUTME: Produced fresh per query, never persisted
package models

// Provenance records which underlying search produced a fused hit
type Provenance string

const (
	ProvenanceSemantic Provenance = "semantic"
	ProvenanceLexical  Provenance = "lexical"
	ProvenanceBoth     Provenance = "both"
)

// RankedHit is a Chunk plus its fused relevance score
type RankedHit struct {
	Chunk      Chunk      `json:"chunk"`
	Score      float64    `json:"score"`
	Provenance Provenance `json:"provenance"`
}
