package archive

import (
	"github.com/goldenagents/saa/concordance"
	"github.com/goldenagents/saa/temporal"
)

// Summary is what Build records for one visited node.
type Summary struct {
	Node  *Node
	Level Level

	// IndexURI and PhysicalURI are the namespaced locators of the node, or
	// two distinct blank-node identifiers when the node is Anonymous.
	IndexURI    string
	PhysicalURI string

	// Anonymous is set for nodes that could not be given a globally
	// addressable identity: suppressed duplicates and nodes without an ID.
	Anonymous bool

	Date  temporal.Envelope
	Label string

	// SubCollections and Members are the direct collection-level and
	// file-level children, in source order.
	SubCollections []*Summary
	Members        []*Summary

	// AllIndex, AllPhysical and AllCodes aggregate every file-level
	// descendant in pre-order. The three slices are index-aligned.
	AllIndex    []string
	AllPhysical []string
	AllCodes    []string

	// ordered holds every direct child in source order.
	ordered []*Summary
}

// Children returns the direct child summaries in source order.
func (s *Summary) Children() []*Summary { return s.ordered }

// Walk calls fn for s and every summary below it in pre-order. Walk stops
// when fn returns false.
func (s *Summary) Walk(fn func(*Summary) bool) bool {
	if !fn(s) {
		return false
	}
	for _, c := range s.ordered {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Duplicate records a node whose local code repeated under a known
// duplicate root and whose identity was therefore suppressed.
type Duplicate struct {
	Root    string `json:"root"`
	Code    string `json:"code"`
	Level   Level  `json:"level"`
	NodeID  string `json:"node_id"`
	FirstID string `json:"first_id"`
	BlankID string `json:"blank_id"`
}

// Result is the outcome of building one archival root.
type Result struct {
	// Key is the collection identifier the concordances are keyed under.
	Key  string
	Root *Summary

	// Index and Physical are frozen.
	Index    *concordance.Table
	Physical *concordance.Table

	// PhysicalCollections maps the root key to the physical locator of the
	// root collection.
	PhysicalCollections map[string]string

	Suppressed []Duplicate

	// Skipped lists the position of file-level nodes left out of the
	// concordances because they carry no ID.
	Skipped []string

	// Leaves counts the file-level nodes visited.
	Leaves int
}

// Resolver returns a concordance resolver over the result's tables.
func (r *Result) Resolver(opts ...concordance.ResolverOption) *concordance.Resolver {
	opts = append([]concordance.ResolverOption{concordance.WithPhysicalCollections(r.PhysicalCollections)}, opts...)
	return concordance.NewResolver(r.Index, r.Physical, opts...)
}
