package entities

import (
	"strings"

	"editor-backend/domain/core/valueobjects"
	pkgerrors "editor-backend/pkg/errors"
)

// CollectionNode is one exploration placed in a collection.
// The summary is whatever the backend knew about the exploration when the
// node was loaded or added; a nil summary means the exploration is missing.
type CollectionNode struct {
	explorationID string
	summary       *valueobjects.ExplorationSummary
}

// CollectionNodeDict is the backend shape of a collection node
type CollectionNodeDict struct {
	ExplorationID      string                           `json:"exploration_id" validate:"required"`
	ExplorationSummary *valueobjects.ExplorationSummary `json:"exploration_summary"`
}

// NewCollectionNode creates a node for the given exploration
func NewCollectionNode(explorationID string) (*CollectionNode, error) {
	if strings.TrimSpace(explorationID) == "" {
		return nil, pkgerrors.NewValidationError("exploration id cannot be empty")
	}
	return &CollectionNode{explorationID: explorationID}, nil
}

// CollectionNodeFromDict rebuilds a node from its backend dict
func CollectionNodeFromDict(d CollectionNodeDict) (*CollectionNode, error) {
	node, err := NewCollectionNode(d.ExplorationID)
	if err != nil {
		return nil, err
	}
	node.summary = d.ExplorationSummary.Clone()
	return node, nil
}

// ToDict converts the node to its backend dict
func (n *CollectionNode) ToDict() CollectionNodeDict {
	return CollectionNodeDict{
		ExplorationID:      n.explorationID,
		ExplorationSummary: n.summary.Clone(),
	}
}

// ExplorationID returns the id of the exploration this node wraps
func (n *CollectionNode) ExplorationID() string {
	return n.explorationID
}

// ExplorationSummary returns a copy of the summary, or nil
func (n *CollectionNode) ExplorationSummary() *valueobjects.ExplorationSummary {
	return n.summary.Clone()
}

// SetExplorationSummary replaces the summary with a copy of s
func (n *CollectionNode) SetExplorationSummary(s *valueobjects.ExplorationSummary) {
	n.summary = s.Clone()
}

// DoesExplorationExist reports whether the backend returned a summary
func (n *CollectionNode) DoesExplorationExist() bool {
	return n.summary != nil
}

// IsExplorationPrivate reports whether the exploration is unpublished
func (n *CollectionNode) IsExplorationPrivate() bool {
	return n.summary.IsPrivate()
}

// Clone returns a deep copy
func (n *CollectionNode) Clone() *CollectionNode {
	if n == nil {
		return nil
	}
	return &CollectionNode{
		explorationID: n.explorationID,
		summary:       n.summary.Clone(),
	}
}
