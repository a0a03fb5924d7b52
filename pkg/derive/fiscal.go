package derive

import (
	"fmt"
	"time"
)

// FiscalYear returns the fiscal year containing t. Fiscal years start in
// April.
func FiscalYear(t time.Time) int {
	if t.Month() >= time.April {
		return t.Year()
	}
	return t.Year() - 1
}

// FiscalYearLabel renders the era-qualified fiscal year of t, e.g.
// "令和7年度". Years outside the era table fall back to "2025年度".
func FiscalYearLabel(t time.Time) string {
	fy := FiscalYear(t)
	era, year, ok := EraOf(civil(fy, time.April, 1))
	if !ok {
		return fmt.Sprintf("%d年度", fy)
	}
	return fmt.Sprintf("%s%d年度", era.Name, year)
}
