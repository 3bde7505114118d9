package changelist

import (
	"context"

	"editor-backend/domain/core/valueobjects"
)

// ExplorationSummaryLookup resolves the summary stored on a collection node
// when an add_collection_node record is replayed. A nil summary with a nil
// error means the exploration is unknown.
type ExplorationSummaryLookup interface {
	ExplorationSummary(ctx context.Context, explorationID string) (*valueobjects.ExplorationSummary, error)
}

// SummaryMap is an in-memory ExplorationSummaryLookup keyed by exploration id
type SummaryMap map[string]*valueobjects.ExplorationSummary

// ExplorationSummary implements ExplorationSummaryLookup
func (m SummaryMap) ExplorationSummary(_ context.Context, explorationID string) (*valueobjects.ExplorationSummary, error) {
	return m[explorationID].Clone(), nil
}

// NewSummaryMap indexes summaries by id
func NewSummaryMap(summaries []*valueobjects.ExplorationSummary) SummaryMap {
	m := make(SummaryMap, len(summaries))
	for _, s := range summaries {
		if s != nil {
			m[s.ID] = s.Clone()
		}
	}
	return m
}
