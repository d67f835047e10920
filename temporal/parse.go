package temporal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	errMultipleSlashes = errors.New("more than one range separator")
	errEmptyRange      = errors.New("range without any bound")
	errNoComponents    = errors.New("no date components")
)

// months maps Dutch and English month names and abbreviations to months.
// Keys are lower case without a trailing period.
var months = map[string]time.Month{
	"januari": time.January, "january": time.January, "jan": time.January,
	"februari": time.February, "february": time.February, "feb": time.February, "febr": time.February,
	"maart": time.March, "march": time.March, "mrt": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"mei": time.May, "may": time.May,
	"juni": time.June, "june": time.June, "jun": time.June,
	"juli": time.July, "july": time.July, "jul": time.July,
	"augustus": time.August, "august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"oktober": time.October, "october": time.October, "okt": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// parseYear parses a four digit year.
func parseYear(s string) (int, error) {
	if len(s) != 4 || !allDigits(s) {
		return 0, fmt.Errorf("not a year: %q", s)
	}
	year := atoi(s)
	if year < 1 {
		return 0, fmt.Errorf("year %s out of range", s)
	}
	return year, nil
}

func firstDay(year int) time.Time { return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC) }

func lastDay(year int) time.Time { return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC) }

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// parseLiteral reads a single date in one of the shapes found in the
// archive's records and fills the missing components from def. Numeric dates
// are read year-first when the first component has four digits and day-first
// otherwise. A day taken from def is clamped to the length of the month; an
// explicit day that does not exist is an error. Only absent components are
// filled: a zero month, day or year in the text is an error.
func parseLiteral(s string, def time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if date, _, ok := strings.Cut(s, "T"); ok && len(date) == 10 {
		s = date
	}

	tokens := tokenize(s)
	if len(tokens) == 0 {
		return time.Time{}, errNoComponents
	}

	var (
		d       components
		numbers []string
	)

	for _, tok := range tokens {
		if allDigits(tok) {
			numbers = append(numbers, tok)
			continue
		}
		m, ok := months[strings.ToLower(tok)]
		if !ok || d.hasMonth {
			return time.Time{}, fmt.Errorf("unexpected token %q", tok)
		}
		d.setMonth(int(m))
	}

	switch {
	case d.hasMonth:
		for _, num := range numbers {
			switch {
			case len(num) == 4 && !d.hasYear:
				d.setYear(atoi(num))
			case len(num) <= 2 && !d.hasDay:
				d.setDay(atoi(num))
			default:
				return time.Time{}, fmt.Errorf("unexpected number %q", num)
			}
		}

	case len(numbers) == 1 && len(numbers[0]) == 8:
		d.setYear(atoi(numbers[0][:4]))
		d.setMonth(atoi(numbers[0][4:6]))
		d.setDay(atoi(numbers[0][6:]))

	case len(numbers) == 1 && len(numbers[0]) == 4:
		d.setYear(atoi(numbers[0]))

	case len(numbers) == 2:
		y, m, err := yearMonth(numbers[0], numbers[1])
		if err != nil {
			return time.Time{}, err
		}
		d.setYear(y)
		d.setMonth(int(m))

	case len(numbers) == 3:
		first, second, third := numbers[0], numbers[1], numbers[2]
		if len(first) == 4 {
			first, third = third, first
		}
		if len(third) != 4 || len(first) > 2 || len(second) > 2 {
			return time.Time{}, fmt.Errorf("unrecognized numeric date %q", s)
		}
		d.setDay(atoi(first))
		d.setMonth(atoi(second))
		d.setYear(atoi(third))

	default:
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}

	return d.resolve(def)
}

// components holds the parts of a date read from text. The has flags record
// presence, so a zero read from the text is never mistaken for an absent
// part.
type components struct {
	year, month, day          int
	hasYear, hasMonth, hasDay bool
}

func (c *components) setYear(v int)  { c.year, c.hasYear = v, true }
func (c *components) setMonth(v int) { c.month, c.hasMonth = v, true }
func (c *components) setDay(v int)   { c.day, c.hasDay = v, true }

// resolve fills the absent components from def and checks the present ones.
func (c components) resolve(def time.Time) (time.Time, error) {
	year, month, day := def.Year(), def.Month(), 0

	if c.hasYear {
		if c.year < 1 {
			return time.Time{}, fmt.Errorf("year %04d out of range", c.year)
		}
		year = c.year
	}
	if c.hasMonth {
		if c.month < 1 || c.month > 12 {
			return time.Time{}, fmt.Errorf("month %d out of range", c.month)
		}
		month = time.Month(c.month)
	}

	limit := daysIn(year, month)
	if c.hasDay {
		if c.day < 1 || c.day > limit {
			return time.Time{}, fmt.Errorf("day %d out of range for %s %d", c.day, month, year)
		}
		day = c.day
	} else {
		day = min(def.Day(), limit)
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// yearMonth orders a year/month pair given in either order.
func yearMonth(a, b string) (int, time.Month, error) {
	if len(b) == 4 {
		a, b = b, a
	}
	if len(a) != 4 || len(b) > 2 {
		return 0, 0, fmt.Errorf("unrecognized year/month %q %q", a, b)
	}
	y, _ := strconv.Atoi(a)
	m, _ := strconv.Atoi(b)
	return y, time.Month(m), nil
}

// tokenize splits s into runs of digits and runs of letters, dropping
// separators and trailing periods on abbreviations.
func tokenize(s string) []string {
	var (
		tokens []string
		cur    strings.Builder
		digits bool
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			if cur.Len() > 0 && !digits {
				flush()
			}
			digits = true
			cur.WriteRune(r)
		case unicode.IsLetter(r):
			if cur.Len() > 0 && digits {
				flush()
			}
			digits = false
			cur.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
