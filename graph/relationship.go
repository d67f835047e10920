package graph

import "fmt"

// Relationship is a directed edge between two entities.
type Relationship struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`

	// Type is one of the Rel constants.
	Type string `json:"type"`
}

var relationshipTypes = map[string]bool{
	RelHasMember:            true,
	RelMemberOf:             true,
	RelSubCollectionOf:      true,
	RelHasSubCollection:     true,
	RelIndexOf:              true,
	RelHasInput:             true,
	RelHasOutput:            true,
	RelHasScan:              true,
	RelHasGroupingCriterion: true,
	RelHasFilterValue:       true,
	RelHasType:              true,
}

// inverses pairs the relationship types that are always emitted together.
var inverses = map[string]string{
	RelHasMember:        RelMemberOf,
	RelMemberOf:         RelHasMember,
	RelSubCollectionOf:  RelHasSubCollection,
	RelHasSubCollection: RelSubCollectionOf,
}

// NewRelationship creates a Relationship from fromID to toID.
func NewRelationship(fromID, toID, relType string) *Relationship {
	return &Relationship{
		FromID: fromID,
		ToID:   toID,
		Type:   relType,
	}
}

// Inverse returns the relationship in the opposite direction, if the type
// has a named inverse.
func (r Relationship) Inverse() (Relationship, bool) {
	inv, ok := inverses[r.Type]
	if !ok {
		return Relationship{}, false
	}
	return Relationship{FromID: r.ToID, ToID: r.FromID, Type: inv}, true
}

// Validate checks that both endpoints are set and the type is known.
func (r *Relationship) Validate() error {
	if r.FromID == "" || r.ToID == "" {
		return fmt.Errorf("%s relationship %q -> %q: missing endpoint", r.Type, r.FromID, r.ToID)
	}
	if !relationshipTypes[r.Type] {
		return fmt.Errorf("%w: %q", ErrUnknownRelationship, r.Type)
	}
	return nil
}
