package services

import (
	"go.uber.org/zap"

	"editor-backend/application/undoredo"
	"editor-backend/domain/changes"
	"editor-backend/domain/core/aggregates"
	"editor-backend/domain/core/entities"
	"editor-backend/domain/core/valueobjects"
	"editor-backend/domain/operations"
)

// CollectionChange is a change registered against a collection
type CollectionChange = undoredo.Change[*aggregates.Collection]

// CollectionUpdateService turns collection edits into change records and
// registers them, with their inverses, on the session's coordinator.
type CollectionUpdateService struct {
	coordinator *undoredo.Coordinator[*aggregates.Collection]
	logger      *zap.Logger
}

// NewCollectionUpdateService creates a new collection update service
func NewCollectionUpdateService(
	coordinator *undoredo.Coordinator[*aggregates.Collection],
	logger *zap.Logger,
) *CollectionUpdateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollectionUpdateService{
		coordinator: coordinator,
		logger:      logger,
	}
}

// AddCollectionNode appends a node for explorationID carrying summary
func (s *CollectionUpdateService) AddCollectionNode(
	c *aggregates.Collection,
	explorationID string,
	summary *valueobjects.ExplorationSummary,
) error {
	node, err := entities.NewCollectionNode(explorationID)
	if err != nil {
		return err
	}
	node.SetExplorationSummary(summary)

	return s.applyChange(c,
		changes.AddCollectionNode{ExplorationID: explorationID},
		operations.InsertCollectionNode{Index: operations.AppendIndex, Node: node},
		operations.DeleteCollectionNode{ExplorationID: explorationID},
	)
}

// SwapNodes exchanges the nodes at two positions
func (s *CollectionUpdateService) SwapNodes(c *aggregates.Collection, firstIndex, secondIndex int) error {
	swap := operations.SwapCollectionNodes{First: firstIndex, Second: secondIndex}
	return s.applyChange(c,
		changes.SwapCollectionNodes{FirstIndex: firstIndex, SecondIndex: secondIndex},
		swap,
		swap,
	)
}

// DeleteCollectionNode removes the node for explorationID. Undo puts the
// same node back where it was.
func (s *CollectionUpdateService) DeleteCollectionNode(c *aggregates.Collection, explorationID string) error {
	index, err := c.CollectionNodeIndex(explorationID)
	if err != nil {
		return err
	}
	oldNode, err := c.GetCollectionNodeByIndex(index)
	if err != nil {
		return err
	}

	return s.applyChange(c,
		changes.DeleteCollectionNode{ExplorationID: explorationID},
		operations.DeleteCollectionNode{ExplorationID: explorationID},
		operations.InsertCollectionNode{Index: index, Node: oldNode},
	)
}

// SetCollectionTitle changes the title
func (s *CollectionUpdateService) SetCollectionTitle(c *aggregates.Collection, title string) error {
	return s.applyPropertyChange(c, changes.CollectionPropertyTitle, title, c.Title())
}

// SetCollectionCategory changes the category
func (s *CollectionUpdateService) SetCollectionCategory(c *aggregates.Collection, category string) error {
	return s.applyPropertyChange(c, changes.CollectionPropertyCategory, category, c.Category())
}

// SetCollectionObjective changes the objective
func (s *CollectionUpdateService) SetCollectionObjective(c *aggregates.Collection, objective string) error {
	return s.applyPropertyChange(c, changes.CollectionPropertyObjective, objective, c.Objective())
}

// SetCollectionLanguageCode changes the language code
func (s *CollectionUpdateService) SetCollectionLanguageCode(c *aggregates.Collection, languageCode string) error {
	return s.applyPropertyChange(c, changes.CollectionPropertyLanguageCode, languageCode, c.LanguageCode())
}

// SetCollectionTags replaces the tags
func (s *CollectionUpdateService) SetCollectionTags(c *aggregates.Collection, tags []string) error {
	return s.applyPropertyChange(c, changes.CollectionPropertyTags, cloneStrings(tags), c.Tags())
}

// IsAddingCollectionNode reports whether change adds a node to a collection
func (s *CollectionUpdateService) IsAddingCollectionNode(change *CollectionChange) bool {
	return change != nil && change.Command() == changes.CmdAddCollectionNode
}

// ExplorationIDFromChange returns the exploration id a change refers to.
// ok is false for changes that carry none.
func (s *CollectionUpdateService) ExplorationIDFromChange(change *CollectionChange) (id string, ok bool) {
	if change == nil {
		return "", false
	}
	switch r := change.Record().(type) {
	case changes.AddCollectionNode:
		return r.ExplorationID, true
	case changes.DeleteCollectionNode:
		return r.ExplorationID, true
	}
	return "", false
}

func (s *CollectionUpdateService) applyPropertyChange(
	c *aggregates.Collection,
	property changes.CollectionProperty,
	newValue, oldValue any,
) error {
	return s.applyChange(c,
		changes.EditCollectionProperty{
			PropertyName: property,
			NewValue:     changes.CloneValue(newValue),
			OldValue:     changes.CloneValue(oldValue),
		},
		operations.SetCollectionProperty{Property: property, Value: newValue},
		operations.SetCollectionProperty{Property: property, Value: oldValue},
	)
}

func (s *CollectionUpdateService) applyChange(
	c *aggregates.Collection,
	record changes.Record,
	forward, inverse operations.CollectionOperation,
) error {
	change := undoredo.NewChange[*aggregates.Collection](record, forward, inverse)
	if err := s.coordinator.ApplyChange(change, c); err != nil {
		s.logger.Warn("collection change rejected",
			zap.String("collection_id", c.ID()),
			zap.String("cmd", record.Command().String()),
			zap.Error(err))
		return err
	}
	return nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
