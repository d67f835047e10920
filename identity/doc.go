// Package identity provides deterministic identity assignment for entities
// that have no natural key in the source records: person names, observation
// roles and thesaurus concepts.
//
// # Core Concepts
//
// An identity is derived from an ordered tuple of semantic values:
//   - Each value is rendered as text; nil becomes the empty string
//   - The texts are concatenated in order, without separator
//   - The result is hashed as an RFC 4122 version 5 UUID under a fixed
//     namespace constant (uuid.NameSpaceX500)
//
// # Identifier Format
//
// With a namespace the identifier is a URI, without one it is a blank node:
//
//	https://data.goldenagents.org/datasets/personname/3f0c...-...
//	_:3f0c...-...
//
// # Determinism Guarantees
//
// The same ordered values and namespace always produce the same identifier,
// in every process. Conversion workers running in parallel therefore agree on
// the identity of a recurring place, occupation or name without sharing a
// cache.
//
// The assigner only deduplicates exact structure. Spelling or diacritic
// variants are different entities; merging them is out of scope. Callers must
// choose parts that remain distinct once concatenated.
//
// # Thesaurus Concepts
//
// Free-text labels are turned into concept keys by NormalizeLabel (diacritics
// dropped, words title-cased, letters only) before an identity is assigned, so
// "nieuwe kerk" and "Nieuwe Kerk" share one concept:
//
//	c, ok := identity.ConceptFor("other: Nieuwe Kerk")
//	// c.Key == "NieuweKerk"
//
// # Person Names
//
// ParsePersonName reads the index notation "Base, Given [prefix]"; the
// resulting name's Identifier is assigned from (given, prefix, base) in
// PersonNameNamespace.
package identity
