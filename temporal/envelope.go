package temporal

import (
	"fmt"
	"time"
)

// DateLayout is the layout used for every date rendered by this package.
const DateLayout = "2006-01-02"

// OpenMarker stands in for an unknown outer bound in an interval.
const OpenMarker = ".."

// bound is a date that may be unknown. The zero value is an open bound.
type bound struct {
	t  time.Time
	ok bool
}

func closed(t time.Time) bound { return bound{t: t, ok: true} }

func (b bound) get() (time.Time, bool) { return b.t, b.ok }

func (b bound) equal(o bound) bool {
	if b.ok != o.ok {
		return false
	}
	return !b.ok || b.t.Equal(o.t)
}

func (b bound) String() string {
	if !b.ok {
		return OpenMarker
	}
	return b.t.Format(DateLayout)
}

// Envelope is a possibly imprecise point or interval in time, expressed as
// earliest/latest bounds for both its begin and its end.
//
// An Envelope is immutable. The zero value is fully open: nothing is known
// about the date. When Exact is set all four bounds equal it.
type Envelope struct {
	exact         bound
	earliestBegin bound
	latestBegin   bound
	earliestEnd   bound
	latestEnd     bound
}

// Open returns an envelope with every bound unknown.
func Open() Envelope { return Envelope{} }

// ExactDate returns an envelope collapsed onto a single known day.
func ExactDate(t time.Time) Envelope {
	b := closed(day(t))
	return Envelope{exact: b, earliestBegin: b, latestBegin: b, earliestEnd: b, latestEnd: b}
}

// Exact returns the exact date, if the envelope is precise.
func (e Envelope) Exact() (time.Time, bool) { return e.exact.get() }

// EarliestBegin returns the earliest possible begin date.
func (e Envelope) EarliestBegin() (time.Time, bool) { return e.earliestBegin.get() }

// LatestBegin returns the latest possible begin date.
func (e Envelope) LatestBegin() (time.Time, bool) { return e.latestBegin.get() }

// EarliestEnd returns the earliest possible end date.
func (e Envelope) EarliestEnd() (time.Time, bool) { return e.earliestEnd.get() }

// LatestEnd returns the latest possible end date.
func (e Envelope) LatestEnd() (time.Time, bool) { return e.latestEnd.get() }

// Begin returns the outer begin bound (the earliest begin).
func (e Envelope) Begin() (time.Time, bool) { return e.earliestBegin.get() }

// End returns the outer end bound (the latest end).
func (e Envelope) End() (time.Time, bool) { return e.latestEnd.get() }

// HasExact reports whether the envelope denotes a single precise day.
func (e Envelope) HasExact() bool { return e.exact.ok }

// IsOpen reports whether nothing at all is known about the date.
func (e Envelope) IsOpen() bool {
	return !e.exact.ok && !e.earliestBegin.ok && !e.latestBegin.ok && !e.earliestEnd.ok && !e.latestEnd.ok
}

// Interval renders the outer bounds as "{earliestBegin}/{latestEnd}", using
// ".." for an unknown side.
func (e Envelope) Interval() string {
	return fmt.Sprintf("%s/%s", e.earliestBegin, e.latestEnd)
}

// String implements fmt.Stringer.
func (e Envelope) String() string { return e.Interval() }

// Equal reports whether both envelopes carry the same bounds.
func (e Envelope) Equal(o Envelope) bool {
	return e.exact.equal(o.exact) &&
		e.earliestBegin.equal(o.earliestBegin) &&
		e.latestBegin.equal(o.latestBegin) &&
		e.earliestEnd.equal(o.earliestEnd) &&
		e.latestEnd.equal(o.latestEnd)
}

// Fields returns the known bounds keyed by name, dates formatted with
// DateLayout. Open bounds are omitted.
func (e Envelope) Fields() map[string]string {
	out := make(map[string]string, 6)
	out["interval"] = e.Interval()
	for name, b := range map[string]bound{
		"exact":          e.exact,
		"earliest_begin": e.earliestBegin,
		"latest_begin":   e.latestBegin,
		"earliest_end":   e.earliestEnd,
		"latest_end":     e.latestEnd,
	} {
		if b.ok {
			out[name] = b.String()
		}
	}
	return out
}

// day truncates t to midnight UTC on the same calendar day.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
