package graph

import "github.com/goldenagents/saa/identity"

// PersonNameNode returns the node of a parsed person name. Equal names share
// one node.
func PersonNameNode(p identity.PersonName) Node {
	return personNameNode(p.Identifier(), p)
}

// PersonNameNodeIn is PersonNameNode with the identity assigned by names.
func PersonNameNodeIn(names *identity.Assigner, p identity.PersonName) Node {
	return personNameNode(p.IdentifierIn(names), p)
}

func personNameNode(id identity.Identifier, p identity.PersonName) Node {
	n := NewNode(KindPersonName, id.String()).
		WithProperty(PropLabel, p.Label()).
		WithProperty("literalName", p.Literal()).
		WithProperty("givenName", p.Given).
		WithProperty("surnamePrefix", p.Prefix).
		WithProperty("baseSurname", p.Base)
	return *n
}

// ConceptNode returns the node of a thesaurus concept.
func ConceptNode(c identity.Concept) Node {
	n := NewNode(KindConcept, c.ID.String()).
		WithProperty(PropLabel, c.Label).
		WithProperty(PropIdentifier, c.Key)
	return *n
}
