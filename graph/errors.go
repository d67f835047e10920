package graph

import "errors"

// Sentinel errors for graph assembly.
var (
	// ErrUnknownKind is returned when a node carries a kind outside the fixed
	// set of entity kinds.
	ErrUnknownKind = errors.New("unknown entity kind")

	// ErrUnknownRelationship is returned for a relationship type outside the
	// Rel constants.
	ErrUnknownRelationship = errors.New("unknown relationship type")

	// ErrTypeNotRegistered indicates that a type label observed in the source
	// has no entry in the type registry. Labels are never turned into new
	// types at runtime.
	//
	// Example:
	//	entry, err := registry.Lookup("Huwelijksakte")
	//	if errors.Is(err, graph.ErrTypeNotRegistered) {
	//	    logger.Warn("unregistered source type", "label", "Huwelijksakte")
	//	}
	ErrTypeNotRegistered = errors.New("type not registered")

	// ErrInvalidBatch indicates that a batch fails validation: an invalid
	// node or relationship, a repeated node ID, or a relationship endpoint
	// that is not part of the batch.
	ErrInvalidBatch = errors.New("invalid batch")
)
