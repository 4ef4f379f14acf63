// Package booking holds the reservation core: calendar-date conventions,
// availability semantics, stay pricing and the reservation lifecycle.  All
// functions are stateless and take their inputs explicitly; persistence is
// reached only through the Store interface.
package booking

import (
	"fmt"
	"time"
)

// DateLayout is the canonical textual form for calendar dates at every
// boundary of this package.
const DateLayout = "2006-01-02"

// ParseDate parses a strict YYYY-MM-DD date.  The result carries no time
// component and is anchored in UTC so day arithmetic stays exact.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a date in the canonical YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// dayOf strips any time-of-day and zone information, leaving midnight UTC.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights counts the chargeable nights between arrival and departure.  The
// departure day itself is not a chargeable night, so a stay from the 1st to
// the 3rd is two nights and a same-day stay is zero.  Negative results mean
// the interval is inverted and must be rejected by the caller.
func Nights(from, to time.Time) int {
	return int(dayOf(to).Sub(dayOf(from)).Hours() / 24)
}

// Overlaps reports whether two reservation intervals block each other.
// Blocking is inclusive on both ends: a stay ending on day D conflicts with
// one starting on day D.  Same-day turnover is deliberately not allowed;
// this differs from the exclusive night count above and the two conventions
// must not be unified.
func Overlaps(aFrom, aTo, bFrom, bTo time.Time) bool {
	return !dayOf(aFrom).After(dayOf(bTo)) && !dayOf(bFrom).After(dayOf(aTo))
}

// VariableSymbol derives the payment variable symbol from the stay dates
// (ddmmyy of arrival followed by ddmmyy of departure).
func VariableSymbol(from, to time.Time) string {
	return from.Format("020106") + to.Format("020106")
}
