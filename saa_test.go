package saa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldenagents/saa/archive"
	"github.com/goldenagents/saa/concordance"
	"github.com/goldenagents/saa/config"
	"github.com/goldenagents/saa/converr"
	"github.com/goldenagents/saa/graph"
	"github.com/goldenagents/saa/identity"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func notaries() *archive.Node {
	return archive.NewCollection("root-5075", "5075", "Archief van de Notarissen").Add(
		archive.NewCollection("series-a", "A", "Protocollen").Add(
			archive.NewFile("file-1", "1", "Minuutacten").WithDate("1578"),
			archive.NewFile("file-2", "2", "").WithDate("ca. 1600"),
		),
	)
}

// recordingPublisher records the kinds it was asked to publish.
type recordingPublisher struct {
	kinds  []concordance.Kind
	err    error
	closed bool
}

func (p *recordingPublisher) Publish(_ context.Context, kind concordance.Kind, _ *concordance.Table) error {
	if p.err != nil {
		return p.err
	}
	p.kinds = append(p.kinds, kind)
	return nil
}

func (p *recordingPublisher) Close() error {
	p.closed = true
	return nil
}

func TestNewDefaults(t *testing.T) {
	conv, err := New(nil, WithLogger(quietLogger()))
	require.NoError(t, err)
	defer conv.Close()

	assert.Equal(t, config.Default(), conv.Config())
	assert.True(t, conv.Types().IsRegistered("Inventaris"))
}

func TestNewLeavesConfigUntouched(t *testing.T) {
	cfg := &config.Config{Namespaces: config.NamespaceConfig{Index: "urn:index:"}}

	conv, err := New(cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	defer conv.Close()

	assert.Empty(t, cfg.Namespaces.Physical)
	assert.Nil(t, cfg.Temporal.CircaWindowDays)
	assert.Equal(t, "urn:index:", conv.Config().Namespaces.Index)
	assert.Equal(t, archive.DefaultPhysicalNamespace, conv.Config().Namespaces.Physical)
}

func TestNewDoesNotShareConfigSlices(t *testing.T) {
	cfg := &config.Config{Concordance: config.ConcordanceConfig{KnownDuplicateRoots: []string{"a", "b"}}}

	conv, err := New(cfg, WithLogger(quietLogger()))
	require.NoError(t, err)

	cfg.Concordance.KnownDuplicateRoots[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, conv.Config().Concordance.KnownDuplicateRoots)

	conv.Config().Concordance.KnownDuplicateRoots[1] = "also changed"
	assert.Equal(t, "b", cfg.Concordance.KnownDuplicateRoots[1])
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	days := -3
	cfg := &config.Config{Temporal: config.TemporalConfig{CircaWindowDays: &days}}

	_, err := New(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, converr.ErrInvalidConfig)
}

func TestNormalize(t *testing.T) {
	days := 30
	cfg := &config.Config{Temporal: config.TemporalConfig{CircaWindowDays: &days}}
	conv, err := New(cfg, WithLogger(quietLogger()))
	require.NoError(t, err)

	env, err := conv.Normalize("ca. 1600")
	require.NoError(t, err)
	assert.Equal(t, "1599-12-02/1601-01-30", env.Interval())

	_, err = conv.Normalize("gisteren")
	assert.ErrorIs(t, err, converr.ErrMalformedDate)
}

func TestPersonNameAndConcept(t *testing.T) {
	cfg := &config.Config{Namespaces: config.NamespaceConfig{
		PersonName: "urn:person:",
		Thesaurus:  "urn:thes:",
	}}
	conv, err := New(cfg, WithLogger(quietLogger()))
	require.NoError(t, err)

	p := conv.PersonName("Dongen, Jan [van]")
	assert.Equal(t, graph.KindPersonName, p.Kind)
	assert.Equal(t, identity.Assign("urn:person:", "Jan", "van", "Dongen").String(), p.ID)
	assert.Equal(t, "Jan van Dongen", p.Properties[graph.PropLabel])

	c, ok := conv.Concept("other:Nieuwe Kerk")
	require.True(t, ok)
	assert.Equal(t, graph.KindConcept, c.Kind)
	assert.Equal(t, identity.Assign("urn:thes:", "NieuweKerk").String(), c.ID)

	_, ok = conv.Concept("  ?? ")
	assert.False(t, ok)

	// equal text in the two namespaces never collides
	kerk, ok := conv.Concept("Kerk")
	require.True(t, ok)
	assert.NotEqual(t, conv.PersonName("Kerk").ID, kerk.ID)
}

func TestBuildAssembleResolve(t *testing.T) {
	cfg := &config.Config{Concordance: config.ConcordanceConfig{Placeholder: "urn:nothing"}}
	conv, err := New(cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	ctx := context.Background()

	res, err := conv.Build(ctx, notaries())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Leaves)

	batch, err := conv.Assemble(res)
	require.NoError(t, err)
	assert.Len(t, batch.NodesOfKind(graph.KindBookIndex), 2)
	assert.Len(t, batch.NodesOfKind(graph.KindIndexCollection), 2)

	r := conv.Resolver(res)
	loc, err := r.Resolve(concordance.Reference{Collection: "5075", Inventory: "2"})
	require.NoError(t, err)
	assert.Equal(t, archive.DefaultIndexNamespace+"file-2", loc.BookIndex)
	assert.Equal(t, archive.DefaultPhysicalNamespace+"file-2", loc.Book)
	assert.Equal(t, archive.DefaultPhysicalNamespace+"root-5075", loc.PhysicalCollection)

	loc, err = r.Resolve(concordance.Reference{Collection: "5075", Inventory: "99"})
	assert.ErrorIs(t, err, converr.ErrMissingLocator)
	assert.Equal(t, "urn:nothing", loc.Book)
	assert.False(t, loc.Resolved)
}

func TestPublishWithoutStore(t *testing.T) {
	conv, err := New(nil, WithLogger(quietLogger()))
	require.NoError(t, err)

	res, err := conv.Build(context.Background(), notaries())
	require.NoError(t, err)
	assert.ErrorIs(t, conv.Publish(context.Background(), res), ErrNoStore)
}

func TestPublishOrder(t *testing.T) {
	p := &recordingPublisher{}
	conv, err := New(nil, WithLogger(quietLogger()), WithStore(p))
	require.NoError(t, err)

	res, err := conv.Build(context.Background(), notaries())
	require.NoError(t, err)
	require.NoError(t, conv.Publish(context.Background(), res))
	assert.Equal(t, []concordance.Kind{concordance.Index, concordance.Physical}, p.kinds)

	assert.Error(t, conv.Publish(context.Background(), nil))

	// a store passed in stays open
	require.NoError(t, conv.Close())
	assert.False(t, p.closed)
}

func TestPublishError(t *testing.T) {
	p := &recordingPublisher{err: errors.New("connection reset")}
	conv, err := New(nil, WithLogger(quietLogger()), WithStore(p))
	require.NoError(t, err)

	res, err := conv.Build(context.Background(), notaries())
	require.NoError(t, err)

	err = conv.Publish(context.Background(), res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5075")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPublishToRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{Redis: &config.RedisConfig{
		URL:       fmt.Sprintf("redis://%s", mr.Addr()),
		KeyPrefix: "saa",
	}}

	conv, err := New(cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	defer CloseWithLog(conv, quietLogger(), "converter")

	res, err := conv.Build(context.Background(), notaries())
	require.NoError(t, err)
	require.NoError(t, conv.Publish(context.Background(), res))

	assert.Equal(t, archive.DefaultIndexNamespace+"file-1", mr.HGet("saa:index:5075", "1"))
	assert.Equal(t, archive.DefaultPhysicalNamespace+"file-2", mr.HGet("saa:physical:5075", "2"))
	ready, err := mr.Members("saa:physical:ready")
	require.NoError(t, err)
	assert.Equal(t, []string{"5075"}, ready)
}

func TestPublishKeepsEarlierRoots(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{Redis: &config.RedisConfig{
		URL:       fmt.Sprintf("redis://%s", mr.Addr()),
		KeyPrefix: "saa",
	}}
	conv, err := New(cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	defer conv.Close()
	ctx := context.Background()

	for _, root := range []*archive.Node{
		archive.NewCollection("ra", "5075", "Notarissen").Add(archive.NewFile("fa", "1", "")),
		archive.NewCollection("rb", "5001", "Burgerlijke Stand").Add(archive.NewFile("fb", "1", "")),
	} {
		res, err := conv.Build(ctx, root)
		require.NoError(t, err)
		require.NoError(t, conv.Publish(ctx, res))
	}

	assert.Equal(t, archive.DefaultPhysicalNamespace+"fa", mr.HGet("saa:physical:5075", "1"))
	assert.Equal(t, archive.DefaultPhysicalNamespace+"fb", mr.HGet("saa:physical:5001", "1"))
	assert.Equal(t, archive.DefaultIndexNamespace+"fa", mr.HGet("saa:index:5075", "1"))
}

func TestNewRedisUnreachable(t *testing.T) {
	cfg := &config.Config{Redis: &config.RedisConfig{
		URL:            "redis://localhost:99999",
		ConnectTimeout: "100ms",
	}}
	_, err := New(cfg, WithLogger(quietLogger()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to Redis")
}
