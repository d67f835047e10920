package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Nieuwe Kerk", want: "NieuweKerk"},
		{in: "nieuwe kerk", want: "NieuweKerk"},
		{in: "NIEUWE KERK", want: "NieuweKerk"},
		{in: "other: Schoenmaker", want: "Schoenmaker"},
		{in: "Other:koopman", want: "Koopman"},
		{in: "Église wallonne", want: "EgliseWallonne"},
		{in: "Sørensen", want: "Sorensen"},
		{in: "Straße", want: "Strasse"},
		{in: "Łódź", want: "Lodz"},
		{in: "Ĳsselmonde", want: "Ijsselmonde"},
		{in: "æbleskiver", want: "Aebleskiver"},
		{in: "123", want: ""},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLabel(tt.in))
		})
	}
}

func TestCleanLabel(t *testing.T) {
	assert.Equal(t, "Koopman", CleanLabel("  other: Koopman "))
	assert.Equal(t, "Koopman", CleanLabel("OTHER:Koopman"))
	assert.Equal(t, "oth", CleanLabel("oth"))
}

func TestConcept(t *testing.T) {
	c, ok := ConceptFor("other: nieuwe kerk")
	require.True(t, ok)
	assert.Equal(t, "NieuweKerk", c.Key)
	assert.Equal(t, "nieuwe kerk", c.Label)
	assert.Equal(t, Assign(ThesaurusNamespace, "NieuweKerk"), c.ID)

	same, ok := ConceptFor("Nieuwe Kerk")
	require.True(t, ok)
	assert.Equal(t, c.ID, same.ID, "case variants share a concept")

	_, ok = ConceptFor("  ")
	assert.False(t, ok)

	_, ok = ConceptFor("?!")
	assert.False(t, ok)
}

func TestThesaurusNamespaceSeparation(t *testing.T) {
	places := NewThesaurus("https://example.org/place/")
	occupations := NewThesaurus("https://example.org/occupation/")

	p, ok := places.Concept("Amsterdam")
	require.True(t, ok)
	o, ok := occupations.Concept("Amsterdam")
	require.True(t, ok)

	assert.NotEqual(t, p.ID.String(), o.ID.String())
}
