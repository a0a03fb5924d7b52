package derive

// Payment sources that always appear in payment totals.
const (
	SourceCash       = "cash"
	SourceCredit     = "credit"
	SourceMobile     = "mobile"
	SourceReceivable = "receivable"
)

// PaymentSources lists the named sources in print order.
var PaymentSources = []string{SourceCash, SourceCredit, SourceMobile, SourceReceivable}

// SourceAmount is one payment source line inside a category.
type SourceAmount struct {
	Source string `json:"source"`
	Amount int64  `json:"amount"`
}

// CategoryEntry groups the source amounts recorded for one sales category.
type CategoryEntry struct {
	Category string         `json:"category"`
	Sources  []SourceAmount `json:"sources"`
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

// PaymentTotals sums amounts per payment source across categories. The four
// named sources are always present; unknown sources keep their own key.
func PaymentTotals(categories []CategoryEntry) map[string]int64 {
	totals := make(map[string]int64, len(PaymentSources))
	for _, source := range PaymentSources {
		totals[source] = 0
	}
	for _, cat := range categories {
		for _, line := range cat.Sources {
			totals[line.Source] += line.Amount
		}
	}
	return totals
}

// CategoryTotals sums each category in input order and drops categories
// whose total is exactly zero.
func CategoryTotals(categories []CategoryEntry) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(categories))
	for _, cat := range categories {
		var total int64
		for _, line := range cat.Sources {
			total += line.Amount
		}
		if total == 0 {
			continue
		}
		out = append(out, CategoryTotal{Category: cat.Category, Total: total})
	}
	return out
}
