package graph

import "fmt"

// EntityKind is the fixed set of entity types the converter emits. Kinds are
// named after the classes of the output ontology.
type EntityKind string

const (
	KindIndexCollection     EntityKind = "IndexCollection"
	KindBookIndex           EntityKind = "BookIndex"
	KindInventoryCollection EntityKind = "InventoryCollection"
	KindInventoryBook       EntityKind = "InventoryBook"
	KindDocumentCreation    EntityKind = "DocumentCreation"
	KindCollectionCreation  EntityKind = "CollectionCreation"
	KindScan                EntityKind = "Scan"
	KindPersonName          EntityKind = "PersonName"
	KindConcept             EntityKind = "Concept"
	KindGroupingCriterion   EntityKind = "GroupingCriterion"
)

var allKinds = []EntityKind{
	KindIndexCollection,
	KindBookIndex,
	KindInventoryCollection,
	KindInventoryBook,
	KindDocumentCreation,
	KindCollectionCreation,
	KindScan,
	KindPersonName,
	KindConcept,
	KindGroupingCriterion,
}

// Kinds returns every entity kind.
func Kinds() []EntityKind {
	out := make([]EntityKind, len(allKinds))
	copy(out, allKinds)
	return out
}

// String implements fmt.Stringer.
func (k EntityKind) String() string { return string(k) }

// Valid reports whether k is one of the defined kinds.
func (k EntityKind) Valid() bool {
	for _, known := range allKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ParseEntityKind returns the kind named s.
func ParseEntityKind(s string) (EntityKind, error) {
	k := EntityKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Relationship types.
const (
	RelHasMember            = "hasMember"
	RelMemberOf             = "memberOf"
	RelSubCollectionOf      = "subCollectionOf"
	RelHasSubCollection     = "hasSubCollection"
	RelIndexOf              = "indexOf"
	RelHasInput             = "hasInput"
	RelHasOutput            = "hasOutput"
	RelHasScan              = "hasScan"
	RelHasGroupingCriterion = "hasGroupingCriterion"
	RelHasFilterValue       = "hasFilterValue"
	RelHasType              = "type"
)

// Property keys shared by several kinds.
const (
	PropLabel       = "label"
	PropDescription = "description"
	PropIdentifier  = "identifier"
	PropFilter      = "hasFilter"
	PropFilterValue = "hasFilterValue"
	PropFilterStart = "hasFilterStart"
	PropFilterEnd   = "hasFilterEnd"
)
