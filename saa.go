package saa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/goldenagents/saa/archive"
	"github.com/goldenagents/saa/concordance"
	"github.com/goldenagents/saa/config"
	"github.com/goldenagents/saa/graph"
	"github.com/goldenagents/saa/identity"
	"github.com/goldenagents/saa/store"
	"github.com/goldenagents/saa/temporal"
)

const instrumentationName = "github.com/goldenagents/saa"

// Converter converts archival descriptions under one configuration.
// Apart from Close, its methods are safe for concurrent use.
type Converter struct {
	cfg        *config.Config
	normalizer *temporal.Normalizer
	names      *identity.Assigner
	thesaurus  *identity.Thesaurus
	types      *graph.TypeRegistry
	builder    *archive.Builder
	assembler  *graph.Assembler
	logger     *slog.Logger

	store     store.Publisher
	ownsStore bool
}

// New creates a Converter from cfg. A nil cfg selects config.Default().
// Unset fields of cfg take their defaults; cfg is copied and never modified
// or shared.
//
// When cfg has a redis section and no store was passed with WithStore, New
// connects to Redis and the Converter owns the connection until Close.
func New(cfg *config.Config, opts ...Option) (*Converter, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.tracer == nil {
		o.tracer = noop.NewTracerProvider().Tracer(instrumentationName)
	}

	c := config.Default()
	if cfg != nil {
		copied := *cfg
		if cfg.Concordance.KnownDuplicateRoots != nil {
			copied.Concordance.KnownDuplicateRoots = slices.Clone(cfg.Concordance.KnownDuplicateRoots)
		}
		if cfg.Redis != nil {
			redisCfg := *cfg.Redis
			copied.Redis = &redisCfg
		}
		copied.ApplyDefaults()
		if err := copied.Validate(); err != nil {
			return nil, err
		}
		c = &copied
	}

	normalizer := c.Temporal.Normalizer()
	types := graph.NewSeededTypeRegistry(c.Namespaces.Thesaurus)

	builder, err := archive.NewBuilder(
		archive.WithIndexNamespace(c.Namespaces.Index),
		archive.WithPhysicalNamespace(c.Namespaces.Physical),
		archive.WithKnownDuplicateRoots(c.Concordance.KnownDuplicateRoots...),
		archive.WithNormalizer(normalizer),
		archive.WithLogger(o.logger),
		archive.WithTracer(o.tracer),
		archive.WithMeter(o.meter),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive builder: %w", err)
	}

	conv := &Converter{
		cfg:        c,
		normalizer: normalizer,
		names:      identity.NewAssigner(c.Namespaces.PersonName),
		thesaurus:  identity.NewThesaurus(c.Namespaces.Thesaurus),
		types:      types,
		builder:    builder,
		assembler:  graph.NewAssembler(graph.WithTypeRegistry(types)),
		logger:     o.logger,
		store:      o.store,
	}

	if conv.store == nil && c.Redis != nil {
		storeOpts := c.Redis.StoreOptions()
		storeOpts.Logger = o.logger
		storeOpts.Tracer = o.tracer
		s, err := store.NewRedisStore(storeOpts)
		if err != nil {
			return nil, err
		}
		conv.store = s
		conv.ownsStore = true
	}

	return conv, nil
}

// Config returns the effective configuration, defaults applied.
func (c *Converter) Config() *config.Config { return c.cfg }

// Types returns the registry of document, event and role types.
func (c *Converter) Types() *graph.TypeRegistry { return c.types }

// Normalize parses a free-text date with the configured circa window and
// defaults.
func (c *Converter) Normalize(raw string) (temporal.Envelope, error) {
	return c.normalizer.Normalize(raw)
}

// PersonName parses an index entry such as "Dongen, Jan [van]" and returns
// its node in the configured person name namespace.
func (c *Converter) PersonName(raw string) graph.Node {
	return graph.PersonNameNodeIn(c.names, identity.ParsePersonName(raw))
}

// Concept returns the thesaurus node for a free-text label. It returns false
// when the label carries no letters.
func (c *Converter) Concept(label string) (graph.Node, bool) {
	concept, ok := c.thesaurus.Concept(label)
	if !ok {
		return graph.Node{}, false
	}
	return graph.ConceptNode(concept), true
}

// Build walks the inventory tree rooted at root and builds its concordances.
func (c *Converter) Build(ctx context.Context, root *archive.Node) (*archive.Result, error) {
	return c.builder.Build(ctx, root)
}

// Assemble converts a built archive into output entities.
func (c *Converter) Assemble(res *archive.Result) (*graph.Batch, error) {
	return c.assembler.Assemble(res)
}

// Resolver returns a resolver over the concordances of res that falls back
// to the configured placeholder.
func (c *Converter) Resolver(res *archive.Result) *concordance.Resolver {
	return res.Resolver(concordance.WithPlaceholder(c.cfg.Concordance.Placeholder))
}

// Publish shares both concordances of res through the configured store. The
// index table is published first, so a reader that sees the physical table
// ready can rely on the index table too.
func (c *Converter) Publish(ctx context.Context, res *archive.Result) error {
	if c.store == nil {
		return ErrNoStore
	}
	if res == nil {
		return errors.New("publish: nil result")
	}

	if err := c.store.Publish(ctx, concordance.Index, res.Index); err != nil {
		return fmt.Errorf("publish %s: %w", res.Key, err)
	}
	if err := c.store.Publish(ctx, concordance.Physical, res.Physical); err != nil {
		return fmt.Errorf("publish %s: %w", res.Key, err)
	}

	c.logger.InfoContext(ctx, "archive published",
		"archive", res.Key,
		"index_entries", res.Index.Len(),
		"physical_entries", res.Physical.Len())
	return nil
}

// Close releases the store the Converter opened itself. A store passed with
// WithStore is left open.
func (c *Converter) Close() error {
	if !c.ownsStore || c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}
