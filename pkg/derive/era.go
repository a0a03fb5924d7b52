// Package derive computes the presentation strings shown on printed reports:
// Japanese era dates, fiscal year labels, yen amounts, placeholder
// substitution and sales aggregation. Every function is pure; callers pass the
// current time explicitly.
package derive

import (
	"fmt"
	"time"
)

// Era is a named span of the Japanese calendar.
type Era struct {
	Name  string
	Start time.Time
}

// reiwaStart is the single cutoff used by the document date labels.
var reiwaStart = civil(2019, time.May, 1)

// eras lists the modern calendar in ascending order. Only fiscal labels
// consult the full table.
var eras = []Era{
	{Name: "明治", Start: civil(1868, time.January, 25)},
	{Name: "大正", Start: civil(1912, time.July, 30)},
	{Name: "昭和", Start: civil(1926, time.December, 25)},
	{Name: "平成", Start: civil(1989, time.January, 8)},
	{Name: "令和", Start: reiwaStart},
}

func civil(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// dateOnly drops the clock and location so comparisons happen on the
// calendar day the caller sees.
func dateOnly(t time.Time) time.Time {
	return civil(t.Year(), t.Month(), t.Day())
}

// shortEra applies the two-era rule: dates from 2019-05-01 are 令和, anything
// earlier is 平成.
func shortEra(t time.Time) (string, int) {
	if dateOnly(t).Before(reiwaStart) {
		return "平成", t.Year() - 1988
	}
	return "令和", t.Year() - 2018
}

// EraDate renders t as "令和8年1月3日".
func EraDate(t time.Time) string {
	era, year := shortEra(t)
	return fmt.Sprintf("%s%d年%d月%d日", era, year, int(t.Month()), t.Day())
}

// EraMonth renders t as "令和8年1月".
func EraMonth(t time.Time) string {
	era, year := shortEra(t)
	return fmt.Sprintf("%s%d年%d月", era, year, int(t.Month()))
}

// EraOf resolves t against the full era table. ok is false for dates before
// the first listed era.
func EraOf(t time.Time) (era Era, year int, ok bool) {
	day := dateOnly(t)
	for i := len(eras) - 1; i >= 0; i-- {
		if !day.Before(eras[i].Start) {
			return eras[i], t.Year() - eras[i].Start.Year() + 1, true
		}
	}
	return Era{}, 0, false
}
