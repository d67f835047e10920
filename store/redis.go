package store

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/goldenagents/saa/concordance"
	"github.com/goldenagents/saa/converr"
)

// DefaultKeyPrefix prefixes every key the store writes.
const DefaultKeyPrefix = "concordance"

var (
	// ErrNotReady is returned when a concordance has not been published
	// completely yet.
	ErrNotReady = errors.New("concordance not ready")

	// ErrNotFrozen is returned when publishing a table that is still being
	// built.
	ErrNotFrozen = errors.New("concordance table not frozen")
)

// Publisher shares built concordances with other processes.
type Publisher interface {
	// Publish replaces the published table of kind with table.
	Publish(ctx context.Context, kind concordance.Kind, table *concordance.Table) error

	// Close releases the connection.
	Close() error
}

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration

	// KeyPrefix namespaces the keys, DefaultKeyPrefix when empty.
	KeyPrefix string

	Logger *slog.Logger
	Tracer trace.Tracer
}

// RedisStore publishes concordance tables to Redis and reads them back.
//
// Key layout, per table kind:
//
//	{prefix}:{kind}               set of published collection identifiers
//	{prefix}:{kind}:{collection}  hash of local code -> locator
//	{prefix}:{kind}:ready         set of collections whose hash is complete
//
// Publishing a table replaces only the collections the table holds, so the
// results of several archival roots accumulate. A collection leaves the
// ready set before its hash is rewritten and rejoins it afterwards; readers
// must observe it there before trusting lookups.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
	tracer trace.Tracer
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}

	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}

	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	if opts.KeyPrefix == "" {
		opts.KeyPrefix = DefaultKeyPrefix
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Tracer == nil {
		opts.Tracer = noop.NewTracerProvider().Tracer("github.com/goldenagents/saa/store")
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		prefix: opts.KeyPrefix,
		logger: opts.Logger,
		tracer: opts.Tracer,
	}, nil
}

func (s *RedisStore) setKey(kind concordance.Kind) string {
	return fmt.Sprintf("%s:%s", s.prefix, kind)
}

func (s *RedisStore) hashKey(kind concordance.Kind, collection string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, kind, collection)
}

func (s *RedisStore) readyKey(kind concordance.Kind) string {
	return fmt.Sprintf("%s:%s:ready", s.prefix, kind)
}

// Publish writes the collections of table under kind, replacing what was
// published before for those collections. Other collections are left as
// they are. The table must be frozen.
func (s *RedisStore) Publish(ctx context.Context, kind concordance.Kind, table *concordance.Table) (err error) {
	ctx, span := s.tracer.Start(ctx, "store.Publish", trace.WithAttributes(
		attribute.String("concordance.kind", string(kind)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if !kind.Valid() {
		return fmt.Errorf("publish: invalid concordance kind %q", kind)
	}
	if table == nil || !table.Frozen() {
		return fmt.Errorf("publish %s: %w", kind, ErrNotFrozen)
	}

	collections := table.Collections()
	if len(collections) == 0 {
		return nil
	}
	members := make([]any, len(collections))
	for i, c := range collections {
		members[i] = c
	}

	if err := s.client.SRem(ctx, s.readyKey(kind), members...).Err(); err != nil {
		return fmt.Errorf("failed to clear ready flags for %s: %w", kind, err)
	}

	pipe := s.client.TxPipeline()
	for _, c := range collections {
		pipe.Del(ctx, s.hashKey(kind, c))
		entries := table.Entries(c)
		values := make(map[string]any, len(entries))
		for code, loc := range entries {
			values[code] = loc
		}
		if len(values) > 0 {
			pipe.HSet(ctx, s.hashKey(kind, c), values)
		}
	}
	pipe.SAdd(ctx, s.setKey(kind), members...)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish %s concordance: %w", kind, err)
	}

	if err := s.client.SAdd(ctx, s.readyKey(kind), members...).Err(); err != nil {
		return fmt.Errorf("failed to mark %s concordance ready: %w", kind, err)
	}

	span.SetAttributes(
		attribute.Int("concordance.collections", len(collections)),
		attribute.Int("concordance.entries", table.Len()),
	)
	s.logger.InfoContext(ctx, "concordance published",
		"kind", string(kind),
		"collections", collections,
		"entries", table.Len(),
	)
	return nil
}

// Ready reports whether the given collections of kind are completely
// published. Without collections it reports whether anything of kind is
// published and every published collection is complete.
func (s *RedisStore) Ready(ctx context.Context, kind concordance.Kind, collections ...string) (bool, error) {
	if len(collections) == 0 {
		published, err := s.client.SMembers(ctx, s.setKey(kind)).Result()
		if err != nil {
			return false, fmt.Errorf("failed to list published %s collections: %w", kind, err)
		}
		if len(published) == 0 {
			return false, nil
		}
		collections = published
	}

	members := make([]any, len(collections))
	for i, c := range collections {
		members[i] = c
	}
	flags, err := s.client.SMIsMember(ctx, s.readyKey(kind), members...).Result()
	if err != nil {
		return false, fmt.Errorf("failed to read ready flags for %s: %w", kind, err)
	}
	for _, ok := range flags {
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Lookup returns the published locator for (collection, code). A miss wraps
// converr.ErrMissingLocator.
func (s *RedisStore) Lookup(ctx context.Context, kind concordance.Kind, collection, code string) (string, error) {
	loc, err := s.client.HGet(ctx, s.hashKey(kind, collection), code).Result()
	if errors.Is(err, redis.Nil) {
		return "", converr.MissingLocator("store.Lookup", collection, code)
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up %s %s/%s: %w", kind, collection, code, err)
	}
	return loc, nil
}

// Snapshot loads every completely published collection of kind into
// memory. The returned table is frozen.
func (s *RedisStore) Snapshot(ctx context.Context, kind concordance.Kind) (*concordance.Table, error) {
	ctx, span := s.tracer.Start(ctx, "store.Snapshot", trace.WithAttributes(
		attribute.String("concordance.kind", string(kind)),
	))
	defer span.End()

	collections, err := s.client.SMembers(ctx, s.readyKey(kind)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list ready %s collections: %w", kind, err)
	}
	if len(collections) == 0 {
		return nil, fmt.Errorf("snapshot %s: %w", kind, ErrNotReady)
	}

	pipe := s.client.Pipeline()
	cmds := make(map[string]*redis.MapStringStringCmd, len(collections))
	for _, c := range collections {
		cmds[c] = pipe.HGetAll(ctx, s.hashKey(kind, c))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to load %s concordance: %w", kind, err)
	}

	table := concordance.NewTable(kind)
	for c, cmd := range cmds {
		for code, loc := range cmd.Val() {
			table.Insert(c, code, loc)
		}
	}
	table.Freeze()

	span.SetAttributes(
		attribute.Int("concordance.collections", len(collections)),
		attribute.Int("concordance.entries", table.Len()),
	)
	return table, nil
}

// Lookuper adapts the published table of kind to concordance.Lookuper, so a
// Resolver can run directly against Redis. Transport errors count as misses
// and are logged.
//
// concordance.Lookuper carries no context, so the adapter is bound to ctx:
// create one per request and do not keep it beyond ctx's lifetime.
func (s *RedisStore) Lookuper(ctx context.Context, kind concordance.Kind) concordance.Lookuper {
	return &remoteTable{ctx: ctx, store: s, kind: kind}
}

type remoteTable struct {
	ctx   context.Context
	store *RedisStore
	kind  concordance.Kind
}

func (r *remoteTable) Lookup(collection, code string) (string, bool) {
	loc, err := r.store.Lookup(r.ctx, r.kind, collection, code)
	if err != nil {
		if converr.IsFatal(err) {
			r.store.logger.WarnContext(r.ctx, "concordance lookup failed",
				"kind", string(r.kind), "collection", collection, "code", code, "error", err)
		}
		return "", false
	}
	return loc, true
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
