package graph

import (
	"errors"
	"fmt"
)

// Node is one output entity.
type Node struct {
	// ID is the entity identifier: a namespaced URI or a blank-node
	// identifier.
	ID string `json:"id"`

	Kind EntityKind `json:"kind"`

	// TypeLabel refines Kind with a registered type, e.g. the source type
	// of a deed.
	TypeLabel string `json:"type_label,omitempty"`

	Properties map[string]any `json:"properties,omitempty"`
}

// NewNode creates a Node of the given kind.
func NewNode(kind EntityKind, id string) *Node {
	return &Node{
		ID:         id,
		Kind:       kind,
		Properties: make(map[string]any),
	}
}

// WithProperty sets a single property and returns the node for method chaining.
// Empty strings and nil values are not stored.
func (n *Node) WithProperty(key string, value any) *Node {
	if value == nil {
		return n
	}
	if s, ok := value.(string); ok && s == "" {
		return n
	}
	if n.Properties == nil {
		n.Properties = make(map[string]any)
	}
	n.Properties[key] = value
	return n
}

// WithProperties merges props into the node's properties.
func (n *Node) WithProperties(props map[string]string) *Node {
	for k, v := range props {
		n.WithProperty(k, v)
	}
	return n
}

// WithTypeLabel sets the type label and returns the node for method chaining.
func (n *Node) WithTypeLabel(label string) *Node {
	n.TypeLabel = label
	return n
}

// Validate checks that the node has an ID and a known kind.
func (n *Node) Validate() error {
	if n.ID == "" {
		return errors.New("node ID cannot be empty")
	}
	if !n.Kind.Valid() {
		return fmt.Errorf("node %q: %w: %q", n.ID, ErrUnknownKind, n.Kind)
	}
	return nil
}
