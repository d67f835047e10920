package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeBuilderMethods(t *testing.T) {
	n := NewNode(KindScan, "scan-1").
		WithProperty(PropLabel, "A001.jpg").
		WithProperty(PropDescription, "").
		WithProperty("page", nil).
		WithProperties(map[string]string{"interval": "../.."}).
		WithTypeLabel("Scan")

	assert.Equal(t, "A001.jpg", n.Properties[PropLabel])
	assert.NotContains(t, n.Properties, PropDescription)
	assert.NotContains(t, n.Properties, "page")
	assert.Equal(t, "../..", n.Properties["interval"])
	assert.NoError(t, n.Validate())

	assert.Error(t, NewNode(KindScan, "").Validate())
	err := NewNode("Deed", "x").Validate()
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestRelationshipValidate(t *testing.T) {
	assert.NoError(t, NewRelationship("a", "b", RelHasMember).Validate())
	assert.Error(t, NewRelationship("", "b", RelHasMember).Validate())
	assert.Error(t, NewRelationship("a", "", RelHasMember).Validate())
	assert.ErrorIs(t, NewRelationship("a", "b", "").Validate(), ErrUnknownRelationship)
	assert.ErrorIs(t, NewRelationship("a", "b", "PART_OF").Validate(), ErrUnknownRelationship)
}

func TestRelationshipInverse(t *testing.T) {
	inv, ok := NewRelationship("book", "series", RelMemberOf).Inverse()
	require.True(t, ok)
	assert.Equal(t, Relationship{FromID: "series", ToID: "book", Type: RelHasMember}, inv)

	inv, ok = inv.Inverse()
	require.True(t, ok)
	assert.Equal(t, RelMemberOf, inv.Type)

	_, ok = NewRelationship("index", "book", RelIndexOf).Inverse()
	assert.False(t, ok)
}

func TestBatchAddNodeMerges(t *testing.T) {
	b := NewBatch()
	b.AddNode(*NewNode(KindConcept, "c").WithProperty(PropLabel, "Doop"))
	b.AddNode(*NewNode(KindConcept, "c").WithProperty(PropLabel, "other").WithProperty(PropIdentifier, "Doop"))

	require.Len(t, b.Nodes, 1)
	n, ok := b.NodeByID("c")
	require.True(t, ok)
	assert.Equal(t, "Doop", n.Properties[PropLabel], "existing properties are kept")
	assert.Equal(t, "Doop", n.Properties[PropIdentifier])

	_, ok = b.NodeByID("missing")
	assert.False(t, ok)
}

func TestBatchValidate(t *testing.T) {
	valid := func() *Batch {
		b := NewBatch()
		b.AddNode(*NewNode(KindIndexCollection, "coll"))
		b.AddNode(*NewNode(KindBookIndex, "book"))
		b.Link("coll", RelHasMember, "book")
		return b
	}
	require.NoError(t, valid().Validate())

	t.Run("dangling endpoint", func(t *testing.T) {
		b := valid().Link("coll", RelHasMember, "ghost")
		assert.ErrorIs(t, b.Validate(), ErrInvalidBatch)
	})

	t.Run("invalid node", func(t *testing.T) {
		b := valid()
		b.Nodes = append(b.Nodes, Node{ID: "x", Kind: "Deed"})
		err := b.Validate()
		assert.ErrorIs(t, err, ErrInvalidBatch)
	})

	t.Run("repeated node", func(t *testing.T) {
		b := valid()
		b.Nodes = append(b.Nodes, Node{ID: "book", Kind: KindBookIndex})
		assert.ErrorIs(t, b.Validate(), ErrInvalidBatch)
	})

	t.Run("zero batch", func(t *testing.T) {
		var b Batch
		b.AddNode(*NewNode(KindScan, "s"))
		_, ok := b.NodeByID("s")
		assert.True(t, ok)
		assert.NoError(t, b.Validate())
	})
}

func TestBatchMerge(t *testing.T) {
	a := NewBatch()
	a.AddNode(*NewNode(KindConcept, "c"))
	other := NewBatch()
	other.AddNode(*NewNode(KindConcept, "c"))
	other.AddNode(*NewNode(KindPersonName, "p"))
	other.Link("p", RelHasType, "c")

	a.Merge(other)
	assert.Len(t, a.Nodes, 2)
	assert.Len(t, a.Relationships, 1)
	assert.NoError(t, a.Validate())
}

func TestParseEntityKind(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseEntityKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParseEntityKind("Deed")
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Len(t, Kinds(), 10)
}
