package aggregates

import (
	"strings"

	"editor-backend/domain/core/entities"
	pkgerrors "editor-backend/pkg/errors"
)

// DefaultCollectionLanguage is used for collections created in the editor
const DefaultCollectionLanguage = "en"

// Collection is the aggregate root for an ordered set of explorations
// published together. Nodes are keyed by exploration id and their order is
// the order learners see.
type Collection struct {
	id            string
	title         string
	objective     string
	languageCode  string
	category      string
	tags          []string
	version       int
	schemaVersion int
	nodes         []*entities.CollectionNode
}

// CollectionDict is the backend shape of a collection
type CollectionDict struct {
	ID            string                        `json:"id" validate:"required"`
	Title         string                        `json:"title"`
	Objective     string                        `json:"objective"`
	LanguageCode  string                        `json:"language_code"`
	Category      string                        `json:"category"`
	Tags          []string                      `json:"tags"`
	Version       int                           `json:"version"`
	SchemaVersion int                           `json:"schema_version"`
	Nodes         []entities.CollectionNodeDict `json:"nodes" validate:"dive"`
}

// NewCollection creates an empty collection
func NewCollection(id string) (*Collection, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.NewValidationError("collection id is required")
	}
	return &Collection{
		id:           id,
		languageCode: DefaultCollectionLanguage,
		tags:         []string{},
		version:      1,
		nodes:        []*entities.CollectionNode{},
	}, nil
}

// NewCollectionFromBackendDict reconstructs a collection from stored data
func NewCollectionFromBackendDict(d CollectionDict) (*Collection, error) {
	c, err := NewCollection(d.ID)
	if err != nil {
		return nil, err
	}
	c.title = d.Title
	c.objective = d.Objective
	c.languageCode = d.LanguageCode
	c.category = d.Category
	c.tags = cloneStrings(d.Tags)
	c.version = d.Version
	c.schemaVersion = d.SchemaVersion

	for _, nd := range d.Nodes {
		node, err := entities.CollectionNodeFromDict(nd)
		if err != nil {
			return nil, err
		}
		if err := c.AddCollectionNode(node); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ToBackendDict converts the collection to its backend shape
func (c *Collection) ToBackendDict() CollectionDict {
	nodes := make([]entities.CollectionNodeDict, 0, len(c.nodes))
	for _, n := range c.nodes {
		nodes = append(nodes, n.ToDict())
	}
	return CollectionDict{
		ID:            c.id,
		Title:         c.title,
		Objective:     c.objective,
		LanguageCode:  c.languageCode,
		Category:      c.category,
		Tags:          cloneStrings(c.tags),
		Version:       c.version,
		SchemaVersion: c.schemaVersion,
		Nodes:         nodes,
	}
}

// ID returns the collection's unique identifier
func (c *Collection) ID() string {
	return c.id
}

// Title returns the collection title
func (c *Collection) Title() string {
	return c.title
}

// SetTitle sets the collection title
func (c *Collection) SetTitle(title string) {
	c.title = title
}

// Category returns the collection category
func (c *Collection) Category() string {
	return c.category
}

// SetCategory sets the collection category
func (c *Collection) SetCategory(category string) {
	c.category = category
}

// Objective returns the collection objective
func (c *Collection) Objective() string {
	return c.objective
}

// SetObjective sets the collection objective
func (c *Collection) SetObjective(objective string) {
	c.objective = objective
}

// LanguageCode returns the collection language code
func (c *Collection) LanguageCode() string {
	return c.languageCode
}

// SetLanguageCode sets the collection language code
func (c *Collection) SetLanguageCode(languageCode string) {
	c.languageCode = languageCode
}

// Tags returns a copy of the collection tags
func (c *Collection) Tags() []string {
	return cloneStrings(c.tags)
}

// SetTags replaces the collection tags with a copy of tags
func (c *Collection) SetTags(tags []string) {
	c.tags = cloneStrings(tags)
}

// Version returns the version the collection was loaded at
func (c *Collection) Version() int {
	return c.version
}

// SchemaVersion returns the collection schema version
func (c *Collection) SchemaVersion() int {
	return c.schemaVersion
}

// Nodes returns copies of the nodes in order
func (c *Collection) Nodes() []*entities.CollectionNode {
	nodes := make([]*entities.CollectionNode, len(c.nodes))
	for i, n := range c.nodes {
		nodes[i] = n.Clone()
	}
	return nodes
}

// NodeCount returns the number of nodes
func (c *Collection) NodeCount() int {
	return len(c.nodes)
}

// ExplorationIDs returns the exploration ids of all nodes in order
func (c *Collection) ExplorationIDs() []string {
	ids := make([]string, len(c.nodes))
	for i, n := range c.nodes {
		ids[i] = n.ExplorationID()
	}
	return ids
}

// ContainsCollectionNode reports whether a node for explorationID exists
func (c *Collection) ContainsCollectionNode(explorationID string) bool {
	return c.nodeIndex(explorationID) >= 0
}

// CollectionNodeIndex returns the position of the node for explorationID
func (c *Collection) CollectionNodeIndex(explorationID string) (int, error) {
	idx := c.nodeIndex(explorationID)
	if idx < 0 {
		return -1, pkgerrors.NewNotFoundError("collection node", explorationID)
	}
	return idx, nil
}

// GetCollectionNodeByExplorationID returns a copy of the node for explorationID
func (c *Collection) GetCollectionNodeByExplorationID(explorationID string) (*entities.CollectionNode, error) {
	idx, err := c.CollectionNodeIndex(explorationID)
	if err != nil {
		return nil, err
	}
	return c.nodes[idx].Clone(), nil
}

// GetCollectionNodeByIndex returns a copy of the node at index
func (c *Collection) GetCollectionNodeByIndex(index int) (*entities.CollectionNode, error) {
	if index < 0 || index >= len(c.nodes) {
		return nil, pkgerrors.NewValidationError("collection node index %d out of range [0, %d)", index, len(c.nodes))
	}
	return c.nodes[index].Clone(), nil
}

// StartingCollectionNode returns a copy of the first node, or nil
func (c *Collection) StartingCollectionNode() *entities.CollectionNode {
	if len(c.nodes) == 0 {
		return nil
	}
	return c.nodes[0].Clone()
}

// AddCollectionNode appends a copy of node
func (c *Collection) AddCollectionNode(node *entities.CollectionNode) error {
	return c.InsertCollectionNode(len(c.nodes), node)
}

// InsertCollectionNode places a copy of node at index, shifting later nodes
func (c *Collection) InsertCollectionNode(index int, node *entities.CollectionNode) error {
	if node == nil {
		return pkgerrors.NewValidationError("collection node cannot be nil")
	}
	if c.ContainsCollectionNode(node.ExplorationID()) {
		return pkgerrors.NewConflictError("collection already contains exploration %s", node.ExplorationID())
	}
	if index < 0 || index > len(c.nodes) {
		return pkgerrors.NewValidationError("collection node index %d out of range [0, %d]", index, len(c.nodes))
	}

	c.nodes = append(c.nodes, nil)
	copy(c.nodes[index+1:], c.nodes[index:])
	c.nodes[index] = node.Clone()
	return nil
}

// DeleteCollectionNode removes the node for explorationID
func (c *Collection) DeleteCollectionNode(explorationID string) error {
	idx, err := c.CollectionNodeIndex(explorationID)
	if err != nil {
		return err
	}
	c.nodes = append(c.nodes[:idx], c.nodes[idx+1:]...)
	return nil
}

// SwapCollectionNodes exchanges the nodes at the two positions
func (c *Collection) SwapCollectionNodes(first, second int) error {
	n := len(c.nodes)
	if first < 0 || first >= n || second < 0 || second >= n {
		return pkgerrors.NewValidationError("cannot swap nodes %d and %d in a collection of %d", first, second, n)
	}
	c.nodes[first], c.nodes[second] = c.nodes[second], c.nodes[first]
	return nil
}

// Clone returns a deep copy of the collection
func (c *Collection) Clone() *Collection {
	out := *c
	out.tags = cloneStrings(c.tags)
	out.nodes = c.Nodes()
	return &out
}

func (c *Collection) nodeIndex(explorationID string) int {
	for i, n := range c.nodes {
		if n.ExplorationID() == explorationID {
			return i
		}
	}
	return -1
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
