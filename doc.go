// Package saa converts the archival inventories of the Stadsarchief
// Amsterdam into linked-data entities.
//
// A Converter ties the parts together. It normalizes free-text dates, gives
// person names and thesaurus concepts stable identities, and builds the
// concordance that resolves a deed's (collection, inventory number)
// reference to the book it was recorded in:
//
//	cfg, err := config.Load("saa.yaml")
//	if err != nil {
//	    return err
//	}
//
//	conv, err := saa.New(cfg, saa.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer saa.CloseWithLog(conv, logger, "converter")
//
//	res, err := conv.Build(ctx, root)
//	if err != nil {
//	    return err
//	}
//
//	batch, err := conv.Assemble(res)
//	...
//	loc := conv.Resolver(res).ResolveOrPlaceholder(ref)
//
// # Packages
//
//   - temporal: date normalization into uncertainty envelopes
//   - identity: deterministic identifiers, person names and concepts
//   - concordance: lookup tables and the reference resolver
//   - archive: walks an inventory tree and builds both concordances
//   - graph: output entities and their relationships
//   - store: publication of the concordances to Redis
//   - config: YAML configuration
//   - converr: error kinds shared by the packages
//
// # Publication
//
// When the configuration has a redis section, or a store is passed with
// WithStore, Publish shares the built concordances with worker processes.
// Without one, Publish returns ErrNoStore.
package saa
