package graph

import "fmt"

// Batch is the set of nodes and relationships produced for one conversion
// unit.
type Batch struct {
	Nodes         []Node         `json:"nodes"`
	Relationships []Relationship `json:"relationships"`

	index map[string]int
}

// NewBatch creates a new empty Batch with initialized slices.
func NewBatch() *Batch {
	return &Batch{
		Nodes:         make([]Node, 0),
		Relationships: make([]Relationship, 0),
		index:         make(map[string]int),
	}
}

// AddNode adds a node to the batch and returns the batch for method chaining.
// A node whose ID is already present is not added again; its properties are
// merged into the existing node.
func (b *Batch) AddNode(n Node) *Batch {
	if b.index == nil {
		b.reindex()
	}
	if i, ok := b.index[n.ID]; ok && n.ID != "" {
		existing := &b.Nodes[i]
		for k, v := range n.Properties {
			if _, set := existing.Properties[k]; !set {
				existing.WithProperty(k, v)
			}
		}
		return b
	}
	b.index[n.ID] = len(b.Nodes)
	b.Nodes = append(b.Nodes, n)
	return b
}

// AddRelationship adds a relationship to the batch and returns the batch for method chaining.
func (b *Batch) AddRelationship(r Relationship) *Batch {
	b.Relationships = append(b.Relationships, r)
	return b
}

// Link adds a relationship of relType from fromID to every ID in toIDs.
func (b *Batch) Link(fromID, relType string, toIDs ...string) *Batch {
	for _, to := range toIDs {
		b.AddRelationship(*NewRelationship(fromID, to, relType))
	}
	return b
}

// LinkBoth adds a relationship of relType from fromID to toID together with
// its inverse. Types without an inverse are linked one way.
func (b *Batch) LinkBoth(fromID, relType, toID string) *Batch {
	r := NewRelationship(fromID, toID, relType)
	b.AddRelationship(*r)
	if inv, ok := r.Inverse(); ok {
		b.AddRelationship(inv)
	}
	return b
}

// NodeByID returns the node with the given ID.
func (b *Batch) NodeByID(id string) (*Node, bool) {
	if b.index == nil {
		b.reindex()
	}
	i, ok := b.index[id]
	if !ok {
		return nil, false
	}
	return &b.Nodes[i], true
}

// NodesOfKind returns the nodes of the given kind in insertion order.
func (b *Batch) NodesOfKind(kind EntityKind) []Node {
	var out []Node
	for _, n := range b.Nodes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// RelationshipsFrom returns the relationships of relType leaving id.
func (b *Batch) RelationshipsFrom(id, relType string) []Relationship {
	var out []Relationship
	for _, r := range b.Relationships {
		if r.FromID == id && r.Type == relType {
			out = append(out, r)
		}
	}
	return out
}

// Merge appends other's nodes and relationships to b.
func (b *Batch) Merge(other *Batch) *Batch {
	for _, n := range other.Nodes {
		b.AddNode(n)
	}
	b.Relationships = append(b.Relationships, other.Relationships...)
	return b
}

// Validate checks every node and relationship, and that every relationship
// connects two nodes of the batch.
func (b *Batch) Validate() error {
	seen := make(map[string]bool, len(b.Nodes))
	for i := range b.Nodes {
		n := &b.Nodes[i]
		if err := n.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBatch, err)
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: node %q repeated", ErrInvalidBatch, n.ID)
		}
		seen[n.ID] = true
	}
	for i := range b.Relationships {
		r := &b.Relationships[i]
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBatch, err)
		}
		if !seen[r.FromID] {
			return fmt.Errorf("%w: %s relationship from unknown node %q", ErrInvalidBatch, r.Type, r.FromID)
		}
		if !seen[r.ToID] {
			return fmt.Errorf("%w: %s relationship to unknown node %q", ErrInvalidBatch, r.Type, r.ToID)
		}
	}
	return nil
}

func (b *Batch) reindex() {
	b.index = make(map[string]int, len(b.Nodes))
	for i, n := range b.Nodes {
		b.index[n.ID] = i
	}
}
