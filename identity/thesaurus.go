package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// otherPrefix is the source's marker for free-text values outside a closed list.
const otherPrefix = "other:"

// Concept is a normalized, deduplicated thesaurus entry (place, occupation,
// religion, role) derived from a free-text source value.
type Concept struct {
	ID    Identifier
	Key   string // normalized label the identity is derived from
	Label string // source label with the "other:" marker removed
}

// Thesaurus assigns concept identities within one namespace.
type Thesaurus struct {
	assigner *Assigner
}

// NewThesaurus creates a Thesaurus in namespace.
func NewThesaurus(namespace string) *Thesaurus {
	return &Thesaurus{assigner: NewAssigner(namespace)}
}

// Concept derives the concept for label. It returns false when no letters
// survive normalization.
func (t *Thesaurus) Concept(label string) (Concept, bool) {
	clean := CleanLabel(label)
	key := NormalizeLabel(clean)
	if key == "" {
		return Concept{}, false
	}
	return Concept{
		ID:    t.assigner.Assign(key),
		Key:   key,
		Label: clean,
	}, true
}

var defaultThesaurus = NewThesaurus(ThesaurusNamespace)

// ConceptFor derives a concept in ThesaurusNamespace.
func ConceptFor(label string) (Concept, bool) {
	return defaultThesaurus.Concept(label)
}

// CleanLabel removes the "other:" marker (any case) and surrounding space.
func CleanLabel(label string) string {
	s := strings.TrimSpace(label)
	if len(s) >= len(otherPrefix) && strings.EqualFold(s[:len(otherPrefix)], otherPrefix) {
		s = s[len(otherPrefix):]
	}
	return strings.TrimSpace(s)
}

// letters maps the letters that carry no combining mark to their ASCII
// transliteration. NFD leaves them whole, so mark removal alone would drop
// them from the key.
var letters = strings.NewReplacer(
	"ø", "o", "Ø", "O",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ß", "ss",
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"ð", "d", "Ð", "D",
	"þ", "th", "Þ", "TH",
	"ı", "i",
	"ĳ", "ij", "Ĳ", "IJ",
)

// NormalizeLabel turns a free-text label into a thesaurus key: diacritics are
// dropped, every word is title-cased and everything but ASCII letters is
// removed, so "sint jans KERK" and "Sint Jans Kerk" share the key
// "SintJansKerk". Spelling variants are not merged.
func NormalizeLabel(label string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(fold, letters.Replace(CleanLabel(label)))
	if err != nil {
		return ""
	}
	s = cases.Title(language.Und).String(s)

	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
