package concordance

import (
	"github.com/goldenagents/saa/converr"
)

// DefaultPlaceholder is the locator substituted when a deed reference cannot
// be resolved.
const DefaultPlaceholder = "https://data.goldenagents.org/NOTHINGFOUNDHERE"

// Reference is how a flat deed record points at its containing unit: a
// collection code plus an inventory number, optionally a folio.
type Reference struct {
	Collection string `json:"collection"`
	Inventory  string `json:"inventory"`
	Folio      string `json:"folio,omitempty"`
}

// Location is a resolved Reference.
type Location struct {
	Reference

	// BookIndex is the index locator of the containing book.
	BookIndex string `json:"book_index"`

	// Book is the physical locator of the containing book.
	Book string `json:"book"`

	// PhysicalCollection is the physical locator of the collection root,
	// empty when unknown.
	PhysicalCollection string `json:"physical_collection,omitempty"`

	// Resolved is false when either locator is the placeholder.
	Resolved bool `json:"resolved"`
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithPlaceholder sets the locator used for lookup misses.
func WithPlaceholder(placeholder string) ResolverOption {
	return func(r *Resolver) {
		if placeholder != "" {
			r.placeholder = placeholder
		}
	}
}

// WithPhysicalCollections sets the collection code -> physical collection
// locator mapping.
func WithPhysicalCollections(collections map[string]string) ResolverOption {
	return func(r *Resolver) {
		r.collections = collections
	}
}

// Resolver links deed references to their containing book through the index
// and physical concordances. It only reads its tables and is safe for
// concurrent use when they are.
type Resolver struct {
	index       Lookuper
	physical    Lookuper
	collections map[string]string
	placeholder string
}

// NewResolver creates a Resolver over the two concordances.
func NewResolver(index, physical Lookuper, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		index:       index,
		physical:    physical,
		placeholder: DefaultPlaceholder,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Placeholder returns the locator used for lookup misses.
func (r *Resolver) Placeholder() string { return r.placeholder }

// Resolve looks ref up in both tables. On a miss the returned Location
// carries the placeholder for the missing side and the error wraps
// converr.ErrMissingLocator, which is not fatal: callers may keep the
// placeholder location and continue.
func (r *Resolver) Resolve(ref Reference) (Location, error) {
	loc := Location{
		Reference:          ref,
		PhysicalCollection: r.collections[ref.Collection],
		Resolved:           true,
	}

	var ok bool
	if loc.Book, ok = r.physical.Lookup(ref.Collection, ref.Inventory); !ok {
		loc.Book = r.placeholder
		loc.Resolved = false
	}
	if loc.BookIndex, ok = r.index.Lookup(ref.Collection, ref.Inventory); !ok {
		loc.BookIndex = r.placeholder
		loc.Resolved = false
	}

	if !loc.Resolved {
		return loc, converr.MissingLocator("concordance.Resolve", ref.Collection, ref.Inventory)
	}
	return loc, nil
}

// ResolveOrPlaceholder resolves ref and applies the placeholder fallback
// without reporting the miss.
func (r *Resolver) ResolveOrPlaceholder(ref Reference) Location {
	loc, _ := r.Resolve(ref)
	return loc
}
