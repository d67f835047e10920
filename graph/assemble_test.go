package graph

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldenagents/saa/archive"
	"github.com/goldenagents/saa/identity"
)

const (
	indexNS    = archive.DefaultIndexNamespace
	physicalNS = archive.DefaultPhysicalNamespace
)

func build(t *testing.T, root *archive.Node) *archive.Result {
	t.Helper()
	b, err := archive.NewBuilder(archive.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	res, err := b.Build(context.Background(), root)
	require.NoError(t, err)
	return res
}

func sampleArchive() *archive.Node {
	root := archive.NewCollection("root", "5075", "Archief van de Notarissen").WithDate("1600-1700")
	root.Language = "nl"
	root.Creators = []string{"Stadsarchief Amsterdam"}

	f1 := archive.NewFile("f1", "1", "Minuutacten").WithDate("1600")
	f1.Scans = []string{"A001.jpg", "A002.jpg"}

	return root.Add(
		f1,
		archive.NewCollection("c1", "B", "Repertoria").Add(
			archive.NewFile("f2", "2", "").WithDate("s.d."),
		),
	)
}

func TestAssembleEntities(t *testing.T) {
	batch, err := Assemble(build(t, sampleArchive()))
	require.NoError(t, err)
	require.NoError(t, batch.Validate())

	assert.Len(t, batch.NodesOfKind(KindIndexCollection), 2)
	assert.Len(t, batch.NodesOfKind(KindBookIndex), 2)
	assert.Len(t, batch.NodesOfKind(KindInventoryBook), 2)
	assert.Len(t, batch.NodesOfKind(KindScan), 2)
	assert.Len(t, batch.NodesOfKind(KindCollectionCreation), 2)
	// one creation and one index creation per book
	assert.Len(t, batch.NodesOfKind(KindDocumentCreation), 4)

	inventories := batch.NodesOfKind(KindInventoryCollection)
	require.Len(t, inventories, 1)
	assert.Equal(t, physicalNS+"root", inventories[0].ID)
	assert.Len(t, batch.RelationshipsFrom(physicalNS+"root", RelHasMember), 2)

	indexOf := batch.RelationshipsFrom(indexNS+"root", RelIndexOf)
	require.Len(t, indexOf, 1)
	assert.Equal(t, physicalNS+"root", indexOf[0].ToID)

	book, ok := batch.NodeByID(indexNS + "f1")
	require.True(t, ok)
	assert.Equal(t, KindBookIndex, book.Kind)
	assert.Equal(t, "Minuutacten", book.Properties[PropLabel])
	assert.Equal(t, "1", book.Properties[PropIdentifier])

	unnamed, ok := batch.NodeByID(indexNS + "f2")
	require.True(t, ok)
	assert.Equal(t, "Inventaris 2", unnamed.Properties[PropLabel])

	member := batch.RelationshipsFrom(indexNS+"f2", RelMemberOf)
	require.Len(t, member, 1)
	assert.Equal(t, indexNS+"c1", member[0].ToID)

	sub := batch.RelationshipsFrom(indexNS+"c1", RelSubCollectionOf)
	require.Len(t, sub, 1)
	assert.Equal(t, indexNS+"root", sub[0].ToID)

	down := batch.RelationshipsFrom(indexNS+"root", RelHasSubCollection)
	require.Len(t, down, 1)
	assert.Equal(t, indexNS+"c1", down[0].ToID)
	assert.Len(t, batch.RelationshipsFrom(indexNS+"c1", RelHasMember), 1)
}

func TestAssembleDocumentCreation(t *testing.T) {
	batch, err := Assemble(build(t, sampleArchive()))
	require.NoError(t, err)

	creation, ok := batch.NodeByID(physicalNS + "f1#creation")
	require.True(t, ok)
	assert.Equal(t, KindDocumentCreation, creation.Kind)
	assert.Equal(t, "1600-01-01", creation.Properties["earliest_begin"])
	assert.Equal(t, "1600-12-31", creation.Properties["latest_end"])
	assert.NotContains(t, creation.Properties, "exact")

	out := batch.RelationshipsFrom(creation.ID, RelHasOutput)
	require.Len(t, out, 1)
	assert.Equal(t, physicalNS+"f1", out[0].ToID)

	undated, ok := batch.NodeByID(physicalNS + "f2#creation")
	require.True(t, ok)
	assert.Equal(t, "../..", undated.Properties["interval"])
}

func TestAssembleScans(t *testing.T) {
	batch, err := Assemble(build(t, sampleArchive()))
	require.NoError(t, err)

	scans := batch.RelationshipsFrom(physicalNS+"f1", RelHasScan)
	require.Len(t, scans, 2)
	assert.Equal(t, physicalNS+"f1/scans/A001.jpg", scans[0].ToID)

	scan, ok := batch.NodeByID(scans[1].ToID)
	require.True(t, ok)
	assert.Equal(t, "A002", scan.Properties[PropIdentifier])
}

func TestAssembleCollectionCreation(t *testing.T) {
	batch, err := Assemble(build(t, sampleArchive()))
	require.NoError(t, err)

	creation := identity.Assign("", indexNS+"root", "creation").String()
	inputs := batch.RelationshipsFrom(creation, RelHasInput)
	require.Len(t, inputs, 2)
	assert.Equal(t, indexNS+"f1", inputs[0].ToID)
	assert.Equal(t, indexNS+"f2", inputs[1].ToID)
}

func TestAssembleGroupingCriteria(t *testing.T) {
	batch, err := Assemble(build(t, sampleArchive()))
	require.NoError(t, err)

	criteria := batch.RelationshipsFrom(indexNS+"root", RelHasGroupingCriterion)
	require.Len(t, criteria, 4)

	byFilter := map[string]*Node{}
	for _, r := range criteria {
		n, ok := batch.NodeByID(r.ToID)
		require.True(t, ok)
		byFilter[n.Properties[PropFilter].(string)] = n
	}

	require.Contains(t, byFilter, FilterCreatedAt)
	assert.Equal(t, "1600-01-01", byFilter[FilterCreatedAt].Properties[PropFilterStart])
	assert.Equal(t, "1700-12-31", byFilter[FilterCreatedAt].Properties[PropFilterEnd])
	assert.Equal(t, "nl", byFilter[FilterLanguage].Properties[PropFilterValue])
	assert.Equal(t, "Stadsarchief Amsterdam", byFilter[FilterCreatedBy].Properties[PropFilterValue])

	sourceType := batch.RelationshipsFrom(byFilter[FilterSourceType].ID, RelHasFilterValue)
	require.Len(t, sourceType, 1)
	concept, ok := batch.NodeByID(sourceType[0].ToID)
	require.True(t, ok)
	assert.Equal(t, KindConcept, concept.Kind)
	assert.Equal(t, identity.ThesaurusNamespace+identity.Assign("", "Inventaris").Local(), concept.ID)

	// the undated sub-collection only gets its source type
	assert.Len(t, batch.RelationshipsFrom(indexNS+"c1", RelHasGroupingCriterion), 1)
}

func TestAssembleAnonymousNodes(t *testing.T) {
	root := archive.NewCollection(archive.KnownDuplicateRoot, "5001", "").Add(
		archive.NewFile("a", "1", ""),
		&archive.Node{ID: "b", Code: "1", Level: archive.LevelFile, Scans: []string{"x.jpg"}},
	)
	res := build(t, root)
	require.Len(t, res.Suppressed, 1)

	batch, err := Assemble(res)
	require.NoError(t, err)

	dup := res.Root.Members[1]
	n, ok := batch.NodeByID(dup.IndexURI)
	require.True(t, ok)
	assert.Equal(t, KindBookIndex, n.Kind)

	// blank nodes take no fragments
	creation, ok := batch.NodeByID(identity.Assign("", dup.PhysicalURI, "creation").String())
	require.True(t, ok)
	assert.Equal(t, KindDocumentCreation, creation.Kind)
	for _, s := range batch.NodesOfKind(KindScan) {
		assert.True(t, strings.HasPrefix(s.ID, identity.BlankPrefix))
	}
}

func TestAssembleUnregisteredSourceType(t *testing.T) {
	a := NewAssembler(WithTypeRegistry(NewTypeRegistry(identity.ThesaurusNamespace)))
	_, err := a.Assemble(build(t, sampleArchive()))
	assert.ErrorIs(t, err, ErrTypeNotRegistered)
}

func TestAssembleEmptyResult(t *testing.T) {
	_, err := Assemble(nil)
	assert.Error(t, err)
	_, err = Assemble(&archive.Result{})
	assert.Error(t, err)
}

func TestPersonNameNode(t *testing.T) {
	p := identity.ParsePersonName("Dongen, Jan [van]")
	n := PersonNameNode(p)

	assert.Equal(t, KindPersonName, n.Kind)
	assert.Equal(t, p.Identifier().String(), n.ID)
	assert.Equal(t, "Jan van Dongen", n.Properties[PropLabel])
	assert.Equal(t, "van", n.Properties["surnamePrefix"])

	empty := PersonNameNode(identity.PersonName{})
	assert.Equal(t, identity.UnknownName, empty.Properties[PropLabel])
	assert.NotContains(t, empty.Properties, "givenName")
}

func TestConceptNode(t *testing.T) {
	c, ok := identity.ConceptFor("other:Sint Jans Kerk")
	require.True(t, ok)
	n := ConceptNode(c)
	assert.Equal(t, KindConcept, n.Kind)
	assert.Equal(t, "Sint Jans Kerk", n.Properties[PropLabel])
	assert.Equal(t, "SintJansKerk", n.Properties[PropIdentifier])
}
