package converr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conversion core.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrMalformedDate indicates a raw date string could not be resolved by any
	// normalization rule. It is fatal for the enclosing record and must never be
	// replaced by a defaulted date.
	ErrMalformedDate = errors.New("malformed date")

	// ErrStructuralTree indicates the archival tree is broken: a cycle, a missing
	// root, or a file-level node that carries children.
	ErrStructuralTree = errors.New("structural tree error")

	// ErrUnknownDuplicateCode indicates a local code collision outside the set of
	// archival roots that are registered as known duplicates.
	ErrUnknownDuplicateCode = errors.New("unknown duplicate code")

	// ErrMissingLocator indicates a concordance lookup miss. It is soft: callers
	// substitute a placeholder locator and continue.
	ErrMissingLocator = errors.New("missing locator")

	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Kind categorizes conversion errors.
type Kind string

const (
	// KindMalformedDate marks unparseable date text.
	KindMalformedDate Kind = "malformed_date"

	// KindStructuralTree marks a broken archival hierarchy.
	KindStructuralTree Kind = "structural_tree"

	// KindUnknownDuplicateCode marks an undeclared local code collision.
	KindUnknownDuplicateCode Kind = "unknown_duplicate_code"

	// KindMissingLocator marks a concordance lookup miss.
	KindMissingLocator Kind = "missing_locator"

	// KindConfiguration marks invalid configuration.
	KindConfiguration Kind = "configuration"
)

// sentinelFor maps each kind to the sentinel its errors unwrap to when no
// explicit cause is given.
var sentinelFor = map[Kind]error{
	KindMalformedDate:        ErrMalformedDate,
	KindStructuralTree:       ErrStructuralTree,
	KindUnknownDuplicateCode: ErrUnknownDuplicateCode,
	KindMissingLocator:       ErrMissingLocator,
	KindConfiguration:        ErrInvalidConfig,
}

// Error is a structured error that wraps an underlying error with the
// operation that failed and the category of the failure.
//
// Error supports errors.Is and errors.As. Matching against another *Error
// compares Kind (and Op, when the target sets one); matching against a
// sentinel delegates to the wrapped error.
//
// Example usage:
//
//	err := &Error{
//		Op:   "temporal.Normalize",
//		Kind: KindMalformedDate,
//		Err:  ErrMalformedDate,
//	}
type Error struct {
	// Op is the operation that failed (e.g., "archive.Build").
	Op string

	// Kind categorizes the error.
	Kind Kind

	// Err is the underlying error.
	Err error

	// Context carries identifiers useful when the error is logged
	// (raw date text, node id, collection code).
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("%s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("%s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a copy of the error with the given context merged in.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	newErr.Context = make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		newErr.Context[k] = v
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// New creates an Error of the given kind. When err is nil the kind's
// sentinel is used so errors.Is keeps working.
func New(op string, kind Kind, err error) *Error {
	if err == nil {
		err = sentinelFor[kind]
	}
	return &Error{
		Op:   op,
		Kind: kind,
		Err:  err,
	}
}

// MalformedDate reports raw date text that no rule could resolve.
func MalformedDate(op, raw string, cause error) *Error {
	var err error
	if cause != nil {
		err = fmt.Errorf("%w: %q: %v", ErrMalformedDate, raw, cause)
	} else {
		err = fmt.Errorf("%w: %q", ErrMalformedDate, raw)
	}
	return New(op, KindMalformedDate, err).WithContext(map[string]any{"raw": raw})
}

// StructuralTree reports a broken archival hierarchy at the given node.
func StructuralTree(op, nodeID, reason string) *Error {
	return New(op, KindStructuralTree, fmt.Errorf("%w: node %q: %s", ErrStructuralTree, nodeID, reason))
}

// UnknownDuplicateCode reports a local code collision under an archival root
// that is not registered as a known duplicate.
func UnknownDuplicateCode(op, root, code string) *Error {
	return New(op, KindUnknownDuplicateCode,
		fmt.Errorf("%w: code %q repeats under root %q", ErrUnknownDuplicateCode, code, root))
}

// MissingLocator reports a concordance lookup miss.
func MissingLocator(op, collection, code string) *Error {
	return New(op, KindMissingLocator,
		fmt.Errorf("%w: collection %q, code %q", ErrMissingLocator, collection, code))
}

// KindOf extracts the Kind of err, or "" when err carries no *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsFatal reports whether err must abort the enclosing record. Every error is
// fatal except a missing locator, which callers resolve with a placeholder.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrMissingLocator)
}
