package concordance

import (
	"fmt"
	"sort"
)

// Kind distinguishes the two concordances built for every archival root.
type Kind string

const (
	// Index tables map to index (metadata) documents.
	Index Kind = "index"

	// Physical tables map to the underlying physical units.
	Physical Kind = "physical"
)

// Valid reports whether k is a known table kind.
func (k Kind) Valid() bool { return k == Index || k == Physical }

// Lookuper resolves a (collection, local code) pair to a locator.
type Lookuper interface {
	Lookup(collection, code string) (string, bool)
}

// Table is a two-level mapping: collection identifier -> local code ->
// canonical locator.
//
// A Table is append-only while it is built and read-only once frozen. A
// frozen Table is never mutated again and may be shared between any number
// of goroutines without locking. Building is single-threaded.
type Table struct {
	kind    Kind
	entries map[string]map[string]string
	size    int
	frozen  bool
}

// NewTable creates an empty table of the given kind.
func NewTable(kind Kind) *Table {
	return &Table{
		kind:    kind,
		entries: make(map[string]map[string]string),
	}
}

// Kind returns the table kind.
func (t *Table) Kind() Kind { return t.kind }

// Insert records locator for (collection, code). An existing entry is never
// overwritten: Insert reports false and leaves the first locator in place.
// Insert panics on a frozen table.
func (t *Table) Insert(collection, code, locator string) bool {
	if t.frozen {
		panic(fmt.Sprintf("concordance: insert into frozen %s table", t.kind))
	}
	codes, ok := t.entries[collection]
	if !ok {
		codes = make(map[string]string)
		t.entries[collection] = codes
	}
	if _, exists := codes[code]; exists {
		return false
	}
	codes[code] = locator
	t.size++
	return true
}

// Lookup returns the locator registered for (collection, code).
func (t *Table) Lookup(collection, code string) (string, bool) {
	loc, ok := t.entries[collection][code]
	return loc, ok
}

// Contains reports whether (collection, code) is registered.
func (t *Table) Contains(collection, code string) bool {
	_, ok := t.Lookup(collection, code)
	return ok
}

// Len returns the number of registered entries across all collections.
func (t *Table) Len() int { return t.size }

// Collections returns the collection identifiers in sorted order.
func (t *Table) Collections() []string {
	out := make([]string, 0, len(t.entries))
	for c := range t.entries {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Codes returns the local codes registered under collection in sorted order.
func (t *Table) Codes(collection string) []string {
	codes := t.entries[collection]
	out := make([]string, 0, len(codes))
	for c := range codes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Entries returns a copy of the code -> locator map for collection.
func (t *Table) Entries(collection string) map[string]string {
	codes := t.entries[collection]
	out := make(map[string]string, len(codes))
	for k, v := range codes {
		out[k] = v
	}
	return out
}

// Freeze ends construction. Subsequent inserts panic.
func (t *Table) Freeze() { t.frozen = true }

// Frozen reports whether construction has ended.
func (t *Table) Frozen() bool { return t.frozen }
