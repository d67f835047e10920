package graph

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goldenagents/saa/identity"
)

// TypeCategory groups registered type labels by what they classify.
type TypeCategory string

const (
	// CategoryDocument classifies deeds and registers.
	CategoryDocument TypeCategory = "DocumentType"

	// CategoryEvent classifies registration events.
	CategoryEvent TypeCategory = "EventType"

	// CategoryRole classifies the roles persons play in an event.
	CategoryRole TypeCategory = "RoleType"
)

// SuperClass returns the ontology class every type of the category
// specializes.
func (c TypeCategory) SuperClass() string {
	switch c {
	case CategoryDocument:
		return "Document"
	case CategoryEvent:
		return "RegistrationEvent"
	case CategoryRole:
		return "Role"
	}
	return ""
}

// TypeEntry is a registered type label.
type TypeEntry struct {
	Category TypeCategory
	Concept  identity.Concept
}

// Node returns the concept node for the entry.
func (e TypeEntry) Node() Node {
	n := NewNode(KindConcept, e.Concept.ID.String()).
		WithTypeLabel(string(e.Category)).
		WithProperty(PropLabel, e.Concept.Label).
		WithProperty("subClassOf", e.Category.SuperClass())
	return *n
}

// TypeRegistry holds the closed set of type labels observed in the sources.
// Labels are matched on their thesaurus key, so case, diacritics and the
// "other:" marker do not matter. Unknown labels are reported, not
// synthesized.
//
// TypeRegistry is safe for concurrent use.
type TypeRegistry struct {
	mu        sync.RWMutex
	thesaurus *identity.Thesaurus
	entries   map[string]TypeEntry
}

// NewTypeRegistry creates an empty registry whose concepts live in namespace.
func NewTypeRegistry(namespace string) *TypeRegistry {
	return &TypeRegistry{
		thesaurus: identity.NewThesaurus(namespace),
		entries:   make(map[string]TypeEntry),
	}
}

// Document, event and role labels of the source archive's registers.
var (
	defaultDocumentTypes = []string{
		"Doopregisters",
		"Ondertrouwregisters",
		"Begraafregisters",
		"Confessieboeken",
		"Notariële archieven",
		"Poorterboeken",
		"Inventaris",
	}
	defaultEventTypes = []string{
		"Doop",
		"Ondertrouw",
		"Huwelijk",
		"Begraven",
		"Overlijden",
		"Confessie",
		"Registratie",
	}
	defaultRoleTypes = []string{
		"Dopeling",
		"Vader",
		"Moeder",
		"Getuige",
		"Bruidegom",
		"Bruid",
		"Overledene",
		"Notaris",
		"Geregistreerde",
	}
)

// NewDefaultTypeRegistry creates a registry in the thesaurus namespace
// seeded with the source archive's document, event and role types.
func NewDefaultTypeRegistry() *TypeRegistry {
	return NewSeededTypeRegistry(identity.ThesaurusNamespace)
}

// NewSeededTypeRegistry is NewDefaultTypeRegistry with concepts in namespace.
func NewSeededTypeRegistry(namespace string) *TypeRegistry {
	r := NewTypeRegistry(namespace)
	for _, l := range defaultDocumentTypes {
		r.mustRegister(l, CategoryDocument)
	}
	for _, l := range defaultEventTypes {
		r.mustRegister(l, CategoryEvent)
	}
	for _, l := range defaultRoleTypes {
		r.mustRegister(l, CategoryRole)
	}
	return r
}

func (r *TypeRegistry) mustRegister(label string, c TypeCategory) {
	if _, err := r.Register(label, c); err != nil {
		panic(err)
	}
}

// Register adds label under category and returns its entry. Registering a
// label twice returns the first entry.
func (r *TypeRegistry) Register(label string, category TypeCategory) (TypeEntry, error) {
	concept, ok := r.thesaurus.Concept(label)
	if !ok {
		return TypeEntry{}, fmt.Errorf("type label %q has no letters", label)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, exists := r.entries[concept.Key]; exists {
		return e, nil
	}
	e := TypeEntry{Category: category, Concept: concept}
	r.entries[concept.Key] = e
	return e, nil
}

// Lookup returns the entry registered for label, or ErrTypeNotRegistered.
func (r *TypeRegistry) Lookup(label string) (TypeEntry, error) {
	key := identity.NormalizeLabel(label)

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key]
	if !ok {
		return TypeEntry{}, fmt.Errorf("%w: %q", ErrTypeNotRegistered, label)
	}
	return e, nil
}

// IsRegistered reports whether label has an entry.
func (r *TypeRegistry) IsRegistered(label string) bool {
	_, err := r.Lookup(label)
	return err == nil
}

// Labels returns the registered labels of category in sorted order.
func (r *TypeRegistry) Labels(category TypeCategory) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, e := range r.entries {
		if e.Category == category {
			out = append(out, e.Concept.Label)
		}
	}
	sort.Strings(out)
	return out
}
