package identity

import "strings"

// Namespaces used by the archive's identity call sites. Person names and
// thesaurus concepts live in different namespaces so equal text in the two
// domains never yields the same URI.
const (
	PersonNameNamespace = "https://data.goldenagents.org/datasets/personname/"
	ThesaurusNamespace  = "https://data.goldenagents.org/thesaurus/"
)

// UnknownName labels a person name without any component.
const UnknownName = "Unknown"

// PersonName is a name split into its Dutch components. Empty strings mark
// absent components.
type PersonName struct {
	Given  string
	Prefix string // surname prefix, e.g. "van", "de"
	Base   string // base surname
}

// ParsePersonName splits an index entry of the form "Base, Given [prefix]".
// Text without ", " is taken as a bare surname.
//
// Examples:
//
//	"Dongen, Jan [van]" -> Given "Jan", Prefix "van", Base "Dongen"
//	"Dongen, Jan"       -> Given "Jan", Base "Dongen"
//	"Rembrandt"         -> Base "Rembrandt"
func ParsePersonName(s string) PersonName {
	idx := strings.LastIndex(s, ", ")
	if idx < 0 {
		return PersonName{Base: s}
	}

	pn := PersonName{Base: s[:idx], Given: s[idx+2:]}
	if given, prefix, ok := strings.Cut(pn.Given, "["); ok {
		pn.Given = strings.TrimSpace(given)
		pn.Prefix = strings.TrimSuffix(prefix, "]")
	}
	return pn
}

// Literal joins the present components with single spaces.
func (p PersonName) Literal() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Given, p.Prefix, p.Base} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Label is the literal name, or UnknownName when the name is empty.
func (p PersonName) Label() string {
	if l := p.Literal(); l != "" {
		return l
	}
	return UnknownName
}

// Identifier assigns the name its identity in PersonNameNamespace from the
// ordered (given, prefix, base) components.
func (p PersonName) Identifier() Identifier {
	return Assign(PersonNameNamespace, p.Given, p.Prefix, p.Base)
}

// IdentifierIn is Identifier in the namespace of a.
func (p PersonName) IdentifierIn(a *Assigner) Identifier {
	return a.Assign(p.Given, p.Prefix, p.Base)
}
