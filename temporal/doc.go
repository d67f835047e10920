// Package temporal normalizes heterogeneous archival date text into
// Envelopes: a canonical representation with earliest/latest bounds for the
// begin and the end of a (possibly imprecise) point or interval in time.
//
// # Rules
//
// The normalizer recognizes, in order:
//
//	""  or "s.d."        fully open envelope, not an error
//	"1700/1705"          range; each side resolved on its own
//	"1700-1705"          range, when the text holds exactly one "-"
//	"1734 ca."           approximate: widened by the circa window (365 days)
//	"1734"               bare year: Jan 1 as earliest begin, Dec 31 as latest end
//	"1734-05-02"         literal date; exact when fully specified
//
// Literal dates accept ISO order, day-first numeric order and Dutch or
// English month names. Components that are absent are filled from the
// configured default dates (2100-01-01 for the earlier side, 2100-12-31 for
// the later side), so "mei 1734" spans 1734-05-01 to 1734-05-31.
//
// Text no rule can resolve is reported as converr.ErrMalformedDate. The
// package never substitutes a default date for a date it cannot read.
//
// # Usage
//
//	env, err := temporal.Normalize("1700/1705")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(env.Interval()) // 1700-01-01/1705-12-31
//
// Normalizer values are immutable and safe for concurrent use.
package temporal
