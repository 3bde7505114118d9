package operations

import (
	"editor-backend/domain/changes"
	"editor-backend/domain/core/aggregates"
	"editor-backend/domain/core/entities"
	pkgerrors "editor-backend/pkg/errors"
)

// CollectionOperation is one mutation of a collection
type CollectionOperation interface {
	Apply(c *aggregates.Collection) error
}

// SetCollectionProperty sets one scalar collection property
type SetCollectionProperty struct {
	Property changes.CollectionProperty
	Value    any
}

// Apply implements CollectionOperation
func (op SetCollectionProperty) Apply(c *aggregates.Collection) error {
	name := string(op.Property)
	if op.Property == changes.CollectionPropertyTags {
		tags, err := valueAs[[]string](name, op.Value)
		if err != nil {
			return err
		}
		c.SetTags(tags)
		return nil
	}

	v, err := valueAs[string](name, op.Value)
	if err != nil {
		return err
	}
	switch op.Property {
	case changes.CollectionPropertyTitle:
		c.SetTitle(v)
	case changes.CollectionPropertyCategory:
		c.SetCategory(v)
	case changes.CollectionPropertyObjective:
		c.SetObjective(v)
	case changes.CollectionPropertyLanguageCode:
		c.SetLanguageCode(v)
	default:
		return pkgerrors.NewValidationError("unknown collection property %q", op.Property)
	}
	return nil
}

// InsertCollectionNode places a node at Index, or appends it for AppendIndex
type InsertCollectionNode struct {
	Index int
	Node  *entities.CollectionNode
}

// Apply implements CollectionOperation
func (op InsertCollectionNode) Apply(c *aggregates.Collection) error {
	if op.Index == AppendIndex {
		return c.AddCollectionNode(op.Node)
	}
	return c.InsertCollectionNode(op.Index, op.Node)
}

// DeleteCollectionNode removes the node for an exploration
type DeleteCollectionNode struct {
	ExplorationID string
}

// Apply implements CollectionOperation
func (op DeleteCollectionNode) Apply(c *aggregates.Collection) error {
	return c.DeleteCollectionNode(op.ExplorationID)
}

// SwapCollectionNodes exchanges two node positions. It is its own inverse.
type SwapCollectionNodes struct {
	First  int
	Second int
}

// Apply implements CollectionOperation
func (op SwapCollectionNodes) Apply(c *aggregates.Collection) error {
	return c.SwapCollectionNodes(op.First, op.Second)
}
