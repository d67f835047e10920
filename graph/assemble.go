package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goldenagents/saa/archive"
	"github.com/goldenagents/saa/identity"
	"github.com/goldenagents/saa/temporal"
)

// Grouping criterion filters.
const (
	FilterSourceType = "sourceType"
	FilterCreatedAt  = "createdAt"
	FilterCreatedBy  = "createdBy"
	FilterLanguage   = "language"
)

// collectionSourceType is the document type every archival collection is
// grouped under.
const collectionSourceType = "Inventaris"

// AssembleOption configures an Assembler.
type AssembleOption func(*Assembler)

// WithTypeRegistry sets the registry grouping criteria resolve their source
// type against.
func WithTypeRegistry(r *TypeRegistry) AssembleOption {
	return func(a *Assembler) {
		if r != nil {
			a.types = r
		}
	}
}

// Assembler turns built archives into output entities.
type Assembler struct {
	types *TypeRegistry
}

// NewAssembler creates an Assembler backed by the default type registry.
func NewAssembler(opts ...AssembleOption) *Assembler {
	a := &Assembler{types: NewDefaultTypeRegistry()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble converts res with a default Assembler.
func Assemble(res *archive.Result) (*Batch, error) {
	return NewAssembler().Assemble(res)
}

// Assemble converts the summaries of res into a validated batch:
//
//   - every collection becomes an IndexCollection with a CollectionCreation
//     event whose inputs are all book indexes below it;
//   - the root collection is the index of an InventoryCollection holding
//     every physical book;
//   - every file becomes a BookIndex that is the index of an InventoryBook,
//     whose DocumentCreation event carries the normalized date;
//   - scans hang off the InventoryBook.
func (a *Assembler) Assemble(res *archive.Result) (*Batch, error) {
	if res == nil || res.Root == nil {
		return nil, errors.New("graph: assemble: empty result")
	}

	b := NewBatch()
	if err := a.collection(b, res.Root, nil); err != nil {
		return nil, err
	}

	if physical, ok := res.PhysicalCollections[res.Key]; ok {
		inventory := NewNode(KindInventoryCollection, physical).
			WithProperty(PropIdentifier, res.Key).
			WithProperty(PropLabel, res.Root.Label)
		b.AddNode(*inventory)
		b.Link(res.Root.IndexURI, RelIndexOf, physical)
		b.Link(physical, RelHasMember, res.Root.AllPhysical...)
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("graph: assemble %s: %w", res.Key, err)
	}
	return b, nil
}

func (a *Assembler) collection(b *Batch, s, parent *archive.Summary) error {
	n := s.Node
	coll := NewNode(KindIndexCollection, s.IndexURI).
		WithProperty(PropLabel, s.Label).
		WithProperty(PropDescription, n.Description).
		WithProperty(PropIdentifier, n.Code).
		WithProperties(s.Date.Fields())
	b.AddNode(*coll)

	if parent != nil {
		b.LinkBoth(s.IndexURI, RelSubCollectionOf, parent.IndexURI)
	}

	creation := identity.Assign("", s.IndexURI, "creation").String()
	b.AddNode(*NewNode(KindCollectionCreation, creation))
	b.Link(creation, RelHasInput, s.AllIndex...)
	b.Link(creation, RelHasOutput, s.IndexURI)

	if err := a.criteria(b, s); err != nil {
		return err
	}

	for _, c := range s.Children() {
		if c.Level == archive.LevelFile {
			a.book(b, c, s)
			continue
		}
		if err := a.collection(b, c, s); err != nil {
			return err
		}
	}
	return nil
}

// criteria attaches the source type, date, creator and language grouping
// criteria of a collection.
func (a *Assembler) criteria(b *Batch, s *archive.Summary) error {
	entry, err := a.types.Lookup(collectionSourceType)
	if err != nil {
		return err
	}
	b.AddNode(entry.Node())
	id := a.criterion(b, s, FilterSourceType)
	b.Link(id, RelHasFilterValue, entry.Concept.ID.String())

	if begin, ok := s.Date.EarliestBegin(); ok {
		id := a.criterion(b, s, FilterCreatedAt)
		c, _ := b.NodeByID(id)
		c.WithProperty(PropFilterStart, begin.Format(temporal.DateLayout))
		if end, ok := s.Date.LatestEnd(); ok {
			c.WithProperty(PropFilterEnd, end.Format(temporal.DateLayout))
		}
	}

	if len(s.Node.Creators) > 0 {
		id := a.criterion(b, s, FilterCreatedBy)
		c, _ := b.NodeByID(id)
		c.WithProperty(PropFilterValue, strings.Join(s.Node.Creators, "; "))
	}

	if s.Node.Language != "" {
		id := a.criterion(b, s, FilterLanguage)
		c, _ := b.NodeByID(id)
		c.WithProperty(PropFilterValue, s.Node.Language)
	}
	return nil
}

func (a *Assembler) criterion(b *Batch, s *archive.Summary, filter string) string {
	id := identity.Assign("", s.IndexURI, "criterion", filter).String()
	b.AddNode(*NewNode(KindGroupingCriterion, id).WithProperty(PropFilter, filter))
	b.Link(s.IndexURI, RelHasGroupingCriterion, id)
	return id
}

func (a *Assembler) book(b *Batch, s, parent *archive.Summary) {
	n := s.Node

	index := NewNode(KindBookIndex, s.IndexURI).
		WithProperty(PropLabel, s.Label).
		WithProperty(PropDescription, n.Description).
		WithProperty(PropIdentifier, n.Code).
		WithProperty("interval", s.Date.Interval())
	b.AddNode(*index)
	b.LinkBoth(s.IndexURI, RelMemberOf, parent.IndexURI)

	b.AddNode(*NewNode(KindInventoryBook, s.PhysicalURI))
	b.Link(s.IndexURI, RelIndexOf, s.PhysicalURI)

	creation := NewNode(KindDocumentCreation, fragment(s, "creation")).
		WithProperties(s.Date.Fields())
	b.AddNode(*creation)
	b.Link(creation.ID, RelHasOutput, s.PhysicalURI)

	indexCreation := fragment(s, "indexCreation")
	b.AddNode(*NewNode(KindDocumentCreation, indexCreation))
	b.Link(indexCreation, RelHasInput, s.PhysicalURI)
	b.Link(indexCreation, RelHasOutput, s.IndexURI)

	for _, scan := range n.Scans {
		id := scanID(s, scan)
		b.AddNode(*NewNode(KindScan, id).
			WithProperty(PropLabel, scan).
			WithProperty(PropIdentifier, strings.TrimSuffix(scan, ".jpg")))
		b.Link(s.PhysicalURI, RelHasScan, id)
	}
}

// fragment derives the ID of an entity that belongs to a book: a fragment of
// its physical locator, or a blank node for anonymous books.
func fragment(s *archive.Summary, name string) string {
	if s.Anonymous {
		return identity.Assign("", s.PhysicalURI, name).String()
	}
	return s.PhysicalURI + "#" + name
}

func scanID(s *archive.Summary, scan string) string {
	if s.Anonymous {
		return identity.Assign("", s.PhysicalURI, "scan", scan).String()
	}
	return s.PhysicalURI + "/scans/" + scan
}
