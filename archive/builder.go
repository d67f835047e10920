package archive

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/goldenagents/saa/concordance"
	"github.com/goldenagents/saa/converr"
	"github.com/goldenagents/saa/identity"
	"github.com/goldenagents/saa/temporal"
)

const (
	// DefaultIndexNamespace prefixes the index locator of every node.
	DefaultIndexNamespace = "https://archief.amsterdam/inventarissen/file/"

	// DefaultPhysicalNamespace prefixes the physical locator of every node.
	DefaultPhysicalNamespace = "https://data.goldenagents.org/datasets/saa/ead/"

	// KnownDuplicateRoot is the one collection in the source archive whose
	// local codes are known to repeat across branches.
	KnownDuplicateRoot = "d5b98b7afa50a3af4fba8053b06fb961"

	instrumentationName = "github.com/goldenagents/saa/archive"
)

// Option configures a Builder.
type Option func(*Builder)

// WithIndexNamespace sets the prefix of index locators.
func WithIndexNamespace(ns string) Option {
	return func(b *Builder) { b.indexNS = ns }
}

// WithPhysicalNamespace sets the prefix of physical locators.
func WithPhysicalNamespace(ns string) Option {
	return func(b *Builder) { b.physicalNS = ns }
}

// WithKnownDuplicateRoots replaces the set of node IDs under which repeated
// local codes are tolerated.
func WithKnownDuplicateRoots(ids ...string) Option {
	return func(b *Builder) {
		b.known = make(map[string]bool, len(ids))
		for _, id := range ids {
			b.known[id] = true
		}
	}
}

// WithNormalizer sets the date normalizer applied to every node.
func WithNormalizer(n *temporal.Normalizer) Option {
	return func(b *Builder) {
		if n != nil {
			b.normalizer = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithTracer sets the tracer used for the archive.Build span.
func WithTracer(tracer trace.Tracer) Option {
	return func(b *Builder) {
		if tracer != nil {
			b.tracer = tracer
		}
	}
}

// WithMeter sets the meter the build counters are created from.
func WithMeter(meter metric.Meter) Option {
	return func(b *Builder) {
		if meter != nil {
			b.meter = meter
		}
	}
}

// Builder walks archival description trees and produces their concordances.
// A Builder holds no per-build state; one Builder may build several roots
// concurrently.
type Builder struct {
	indexNS    string
	physicalNS string
	known      map[string]bool
	normalizer *temporal.Normalizer
	logger     *slog.Logger
	tracer     trace.Tracer
	meter      metric.Meter
	metrics    *builderMetrics
}

type builderMetrics struct {
	leaves     metric.Int64Counter
	suppressed metric.Int64Counter
	skipped    metric.Int64Counter
}

// NewBuilder creates a Builder with the source archive's namespaces and known
// duplicate root.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		indexNS:    DefaultIndexNamespace,
		physicalNS: DefaultPhysicalNamespace,
		known:      map[string]bool{KnownDuplicateRoot: true},
		normalizer: temporal.New(),
		logger:     slog.Default(),
		tracer:     noop.NewTracerProvider().Tracer(instrumentationName),
		meter:      metricnoop.NewMeterProvider().Meter(instrumentationName),
	}
	for _, opt := range opts {
		opt(b)
	}

	m, err := newBuilderMetrics(b.meter)
	if err != nil {
		return nil, err
	}
	b.metrics = m
	return b, nil
}

func newBuilderMetrics(meter metric.Meter) (*builderMetrics, error) {
	m := &builderMetrics{}
	var err error

	m.leaves, err = meter.Int64Counter(
		"archive.leaves",
		metric.WithDescription("File-level nodes visited"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create leaves counter: %w", err)
	}

	m.suppressed, err = meter.Int64Counter(
		"archive.suppressed",
		metric.WithDescription("Nodes whose identity was suppressed as a known duplicate"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create suppressed counter: %w", err)
	}

	m.skipped, err = meter.Int64Counter(
		"archive.skipped",
		metric.WithDescription("File-level nodes left out of the concordances"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create skipped counter: %w", err)
	}

	return m, nil
}

// IsKnownDuplicateRoot reports whether repeated codes below the node with
// the given ID are tolerated.
func (b *Builder) IsKnownDuplicateRoot(id string) bool { return b.known[id] }

// Build walks the tree below root depth-first and returns the aggregated
// summaries together with the frozen concordances for the root.
//
// The concordances are keyed by the key of the top of the tree (see
// Node.Key). Every file-level node with both an ID and a code is registered
// in both tables. A local code that repeats under a known duplicate root is
// suppressed: the later node is given a blank identity and the first entry
// stays in the tables. The same repetition anywhere else fails the build
// with converr.ErrUnknownDuplicateCode.
func (b *Builder) Build(ctx context.Context, root *Node) (*Result, error) {
	const op = "archive.Build"

	ctx, span := b.tracer.Start(ctx, op)
	defer span.End()

	res, err := b.build(root)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		b.logger.ErrorContext(ctx, "archive build failed", "error", err)
		return nil, err
	}

	attrs := metric.WithAttributes(attribute.String("archive.root", res.Key))
	b.metrics.leaves.Add(ctx, int64(res.Leaves), attrs)
	b.metrics.suppressed.Add(ctx, int64(len(res.Suppressed)), attrs)
	b.metrics.skipped.Add(ctx, int64(len(res.Skipped)), attrs)

	span.SetAttributes(
		attribute.String("archive.root.id", root.ID),
		attribute.String("archive.root.key", res.Key),
		attribute.Int("archive.leaves", res.Leaves),
		attribute.Int("archive.suppressed", len(res.Suppressed)),
		attribute.Int("archive.skipped", len(res.Skipped)),
	)
	span.SetStatus(codes.Ok, "")

	b.logger.InfoContext(ctx, "archive built",
		"root", res.Key,
		"leaves", res.Leaves,
		"index_entries", res.Index.Len(),
		"suppressed", len(res.Suppressed),
		"skipped", len(res.Skipped),
	)
	return res, nil
}

func (b *Builder) build(root *Node) (*Result, error) {
	const op = "archive.Build"

	if root == nil {
		return nil, converr.StructuralTree(op, "", "nil root")
	}
	top := root.Root()
	if top == nil {
		return nil, converr.StructuralTree(op, root.ID, "parent chain loops")
	}
	key := top.Key()
	if key == "" {
		return nil, converr.StructuralTree(op, root.ID, "root has neither code nor id")
	}

	r := &run{
		b:               b,
		key:             key,
		index:           concordance.NewTable(concordance.Index),
		physical:        concordance.NewTable(concordance.Physical),
		visited:         make(map[*Node]bool),
		leafCodes:       make(map[string]string),
		collectionCodes: make(map[string]string),
	}

	known := false
	for n := root.Parent; n != nil; n = n.Parent {
		r.visited[n] = true
		known = known || b.known[n.ID]
	}

	sum, err := r.visit(root, root.Parent, "", known)
	if err != nil {
		return nil, err
	}
	r.index.Freeze()
	r.physical.Freeze()

	res := &Result{
		Key:                 key,
		Root:                sum,
		Index:               r.index,
		Physical:            r.physical,
		PhysicalCollections: map[string]string{},
		Suppressed:          r.suppressed,
		Skipped:             r.skipped,
		Leaves:              r.leaves,
	}
	if top.ID != "" {
		res.PhysicalCollections[key] = b.physicalNS + top.ID
	}
	return res, nil
}

// run is the state of a single Build call.
type run struct {
	b        *Builder
	key      string
	index    *concordance.Table
	physical *concordance.Table

	visited map[*Node]bool

	// leafCodes and collectionCodes map a local code to the ID of the first
	// node that carried it.
	leafCodes       map[string]string
	collectionCodes map[string]string

	suppressed []Duplicate
	skipped    []string
	leaves     int
}

func (r *run) visit(n, parent *Node, path string, known bool) (*Summary, error) {
	const op = "archive.Build"

	if r.visited[n] {
		return nil, converr.StructuralTree(op, n.ID, "node reached twice")
	}
	r.visited[n] = true
	n.Parent = parent
	known = known || r.b.known[n.ID]

	if n.IsLeaf() && len(n.Children) > 0 {
		return nil, converr.StructuralTree(op, n.ID, "file-level node has children")
	}

	env, err := r.b.normalizer.Normalize(n.DateRaw)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", n.ID, err)
	}

	s := &Summary{
		Node:  n,
		Level: n.Level,
		Date:  env,
		Label: label(n),
	}

	if n.IsLeaf() {
		return s, r.leaf(s, path, known)
	}

	if err := r.collection(s, parent == nil, path, known); err != nil {
		return nil, err
	}

	for i, c := range n.Children {
		childPath := path + "/" + strconv.Itoa(i)
		if c == nil {
			r.b.logger.Warn("archive: nil child skipped", "root", r.key, "parent", n.ID, "position", childPath)
			continue
		}
		cs, err := r.visit(c, n, childPath, known)
		if err != nil {
			return nil, err
		}
		s.ordered = append(s.ordered, cs)

		if cs.Level == LevelFile {
			s.Members = append(s.Members, cs)
			if cs.Node.ID == "" {
				continue
			}
			s.AllIndex = append(s.AllIndex, cs.IndexURI)
			s.AllPhysical = append(s.AllPhysical, cs.PhysicalURI)
			s.AllCodes = append(s.AllCodes, cs.Node.Code)
			continue
		}

		s.SubCollections = append(s.SubCollections, cs)
		s.AllIndex = append(s.AllIndex, cs.AllIndex...)
		s.AllPhysical = append(s.AllPhysical, cs.AllPhysical...)
		s.AllCodes = append(s.AllCodes, cs.AllCodes...)
	}
	return s, nil
}

func (r *run) leaf(s *Summary, path string, known bool) error {
	n := s.Node
	r.leaves++

	if n.ID == "" {
		s.Anonymous = true
		s.IndexURI = identity.Assign("", r.key, "unidentified", path).String()
		s.PhysicalURI = identity.Assign("", r.key, "unidentified", path, "physical").String()
		r.skipped = append(r.skipped, path)
		r.b.logger.Warn("archive: file without id skipped", "root", r.key, "code", n.Code, "position", path)
		return nil
	}

	s.IndexURI = r.b.indexNS + n.ID
	s.PhysicalURI = r.b.physicalNS + n.ID

	if n.Code == "" {
		r.b.logger.Warn("archive: file without code not registered", "root", r.key, "node", n.ID)
		return nil
	}

	if first, seen := r.leafCodes[n.Code]; seen {
		return r.duplicate(s, first, known)
	}
	r.leafCodes[n.Code] = n.ID
	r.index.Insert(r.key, n.Code, s.IndexURI)
	r.physical.Insert(r.key, n.Code, s.PhysicalURI)
	return nil
}

func (r *run) collection(s *Summary, isRoot bool, path string, known bool) error {
	n := s.Node

	if n.ID == "" {
		s.Anonymous = true
		s.IndexURI = identity.Assign("", r.key, "unidentified", path).String()
		s.PhysicalURI = identity.Assign("", r.key, "unidentified", path, "physical").String()
		return nil
	}

	s.IndexURI = r.b.indexNS + n.ID
	s.PhysicalURI = r.b.physicalNS + n.ID

	if isRoot || n.Code == "" {
		return nil
	}
	if first, seen := r.collectionCodes[n.Code]; seen {
		return r.duplicate(s, first, known)
	}
	r.collectionCodes[n.Code] = n.ID
	return nil
}

// duplicate applies the duplicate-code policy to s, whose code was first
// seen on the node with ID first.
func (r *run) duplicate(s *Summary, first string, known bool) error {
	n := s.Node
	if !known {
		err := converr.UnknownDuplicateCode("archive.Build", r.key, n.Code)
		r.b.logger.Error("archive: duplicate code outside known duplicate roots",
			"root", r.key, "code", n.Code, "node", n.ID, "first", first, "level", n.Level.String())
		return err
	}

	blank := identity.Assign("", r.key, "dup", n.ID).String()
	s.Anonymous = true
	s.IndexURI = blank
	s.PhysicalURI = identity.Assign("", r.key, "dup", n.ID, "physical").String()
	r.suppressed = append(r.suppressed, Duplicate{
		Root:    r.key,
		Code:    n.Code,
		Level:   n.Level,
		NodeID:  n.ID,
		FirstID: first,
		BlankID: blank,
	})
	r.b.logger.Warn("archive: duplicate code suppressed",
		"root", r.key, "code", n.Code, "node", n.ID, "first", first, "level", n.Level.String())
	return nil
}

func label(n *Node) string {
	if n.Title != "" {
		return n.Title
	}
	if n.IsLeaf() {
		return "Inventaris " + n.Code
	}
	return n.Code
}
