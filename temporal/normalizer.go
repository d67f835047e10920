package temporal

import (
	"strings"
	"time"

	"github.com/goldenagents/saa/converr"
)

const (
	// UnknownDate is the source's literal for "date unknown" (sine dato).
	UnknownDate = "s.d."

	// CircaMarker flags an approximate date.
	CircaMarker = "ca."

	// DefaultCircaWindowDays is the distance added on either side of an
	// approximate date.
	DefaultCircaWindowDays = 365
)

var (
	// DefaultBegin fills components missing from the earlier side of a date.
	DefaultBegin = time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC)

	// DefaultEnd fills components missing from the later side of a date.
	DefaultEnd = time.Date(2100, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithCircaWindow sets the number of days an approximate date extends on
// either side. Negative values are treated as zero.
func WithCircaWindow(days int) Option {
	return func(n *Normalizer) {
		if days < 0 {
			days = 0
		}
		n.circaWindow = days
	}
}

// WithDefaults sets the dates whose components fill the gaps in partially
// specified dates: begin for the earlier side, end for the later side.
func WithDefaults(begin, end time.Time) Option {
	return func(n *Normalizer) {
		n.defaultBegin = day(begin)
		n.defaultEnd = day(end)
	}
}

// Normalizer turns raw archival date text into Envelopes.
//
// A Normalizer holds only immutable settings; it is safe for concurrent use.
type Normalizer struct {
	circaWindow  int
	defaultBegin time.Time
	defaultEnd   time.Time
}

// New creates a Normalizer with a 365 day circa window and the 2100-01-01 /
// 2100-12-31 fill dates, adjusted by opts.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		circaWindow:  DefaultCircaWindowDays,
		defaultBegin: DefaultBegin,
		defaultEnd:   DefaultEnd,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var defaultNormalizer = New()

// Normalize parses raw with the default settings.
func Normalize(raw string) (Envelope, error) {
	return defaultNormalizer.Normalize(raw)
}

// CircaWindowDays returns the configured circa window.
func (n *Normalizer) CircaWindowDays() int { return n.circaWindow }

// Normalize parses raw into an Envelope.
//
// Rules, in order of precedence on the trimmed text:
//   - empty or "s.d.": fully open envelope
//   - contains "/": a range, each side resolved on its own
//   - contains exactly one "-": a range, as above
//   - contains "ca.": an approximate date widened by the circa window
//   - four characters: a bare year
//   - anything else: a single literal date
//
// Text that none of the rules can resolve yields an error wrapping
// converr.ErrMalformedDate; no defaulted date is ever substituted.
func (n *Normalizer) Normalize(raw string) (Envelope, error) {
	s := strings.TrimSpace(raw)
	if isUnknown(s) {
		return Open(), nil
	}

	if left, right, ok := strings.Cut(s, "/"); ok {
		if strings.Contains(right, "/") {
			return Envelope{}, converr.MalformedDate("temporal.Normalize", raw, errMultipleSlashes)
		}
		return n.rangeOf(raw, left, right)
	}

	if strings.Count(s, "-") == 1 {
		left, right, _ := strings.Cut(s, "-")
		return n.rangeOf(raw, left, right)
	}

	env, err := n.single(s)
	if err != nil {
		return Envelope{}, converr.MalformedDate("temporal.Normalize", raw, err)
	}
	return env, nil
}

// NormalizeRange builds an envelope from a structured begin/end pair, as
// found in sources that carry the two sides in separate fields.
func (n *Normalizer) NormalizeRange(begin, end string) (Envelope, error) {
	begin, end = strings.TrimSpace(begin), strings.TrimSpace(end)
	if isUnknown(begin) && isUnknown(end) {
		return Open(), nil
	}
	return n.rangeOf(begin+"/"+end, begin, end)
}

func (n *Normalizer) rangeOf(raw, left, right string) (Envelope, error) {
	lo, err := n.side(left)
	if err != nil {
		return Envelope{}, converr.MalformedDate("temporal.Normalize", raw, err)
	}
	hi, err := n.side(right)
	if err != nil {
		return Envelope{}, converr.MalformedDate("temporal.Normalize", raw, err)
	}
	if !lo.earliestBegin.ok && !hi.latestEnd.ok {
		return Envelope{}, converr.MalformedDate("temporal.Normalize", raw, errEmptyRange)
	}

	return Envelope{
		earliestBegin: lo.earliestBegin,
		latestBegin:   lo.latestEnd,
		earliestEnd:   hi.earliestBegin,
		latestEnd:     hi.latestEnd,
	}, nil
}

// side resolves one half of a range to its outer bounds. An empty or unknown
// half stays open.
func (n *Normalizer) side(s string) (Envelope, error) {
	s = strings.TrimSpace(s)
	if isUnknown(s) {
		return Open(), nil
	}
	return n.single(s)
}

// single applies the circa, bare year and literal rules.
func (n *Normalizer) single(s string) (Envelope, error) {
	if strings.Contains(s, CircaMarker) {
		rest := strings.TrimSpace(strings.Replace(s, CircaMarker, "", 1))
		lo, hi, err := n.resolve(rest)
		if err != nil {
			return Envelope{}, err
		}
		window := time.Duration(n.circaWindow) * 24 * time.Hour
		return Envelope{
			earliestBegin: closed(lo.Add(-window)),
			latestBegin:   closed(lo),
			earliestEnd:   closed(hi),
			latestEnd:     closed(hi.Add(window)),
		}, nil
	}

	if len(s) == 4 {
		year, err := parseYear(s)
		if err != nil {
			return Envelope{}, err
		}
		return Envelope{
			earliestBegin: closed(firstDay(year)),
			latestEnd:     closed(lastDay(year)),
		}, nil
	}

	lo, hi, err := n.resolve(s)
	if err != nil {
		return Envelope{}, err
	}
	if lo.Equal(hi) {
		return ExactDate(lo), nil
	}
	return Envelope{
		earliestBegin: closed(lo),
		latestBegin:   closed(lo),
		earliestEnd:   closed(hi),
		latestEnd:     closed(hi),
	}, nil
}

// resolve fills the components missing from s once with the begin defaults
// and once with the end defaults. A fully specified date yields lo == hi.
func (n *Normalizer) resolve(s string) (lo, hi time.Time, err error) {
	lo, err = parseLiteral(s, n.defaultBegin)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	hi, err = parseLiteral(s, n.defaultEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return lo, hi, nil
}

func isUnknown(s string) bool {
	return s == "" || strings.EqualFold(s, UnknownDate)
}
