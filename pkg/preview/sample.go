package preview

import (
	"time"

	"github.com/goliatone/go-reportforms/pkg/derive"
)

// CashRow is one day of the remittance slip table.
type CashRow struct {
	Date      string `json:"date"`
	CashSales int64  `json:"cashSales"`
}

// Day is one business day as the daily sales report consumes it.
type Day struct {
	Date                 string                 `json:"date"`
	Total                int64                  `json:"total"`
	ReceivableCollection int64                  `json:"receivableCollection"`
	Categories           []derive.CategoryEntry `json:"categories"`
	derive.DailyMetrics
}

// Sample is the data the local previews are drawn with.
type Sample struct {
	RangeStart time.Time `json:"rangeStart"`
	RangeEnd   time.Time `json:"rangeEnd"`
	// SignatureDate is printed above the signature line.
	SignatureDate time.Time `json:"signatureDate"`
	Rows          []CashRow `json:"rows"`
	Target        Day       `json:"target"`
	Previous      []Day     `json:"previous"`
	Years         []int     `json:"years"`
	PrintedAt     time.Time `json:"printedAt"`
}

func line(source string, amount int64) derive.SourceAmount {
	return derive.SourceAmount{Source: source, Amount: amount}
}

// DefaultSample returns the fixed first-week-of-January data set.
func DefaultSample() Sample {
	date := func(day int) time.Time { return time.Date(2026, time.January, day, 0, 0, 0, 0, time.Local) }
	return Sample{
		RangeStart:    date(1),
		RangeEnd:      date(3),
		SignatureDate: date(3),
		Rows: []CashRow{
			{Date: "2026-01-01", CashSales: 47300},
			{Date: "2026-01-02", CashSales: 11900},
			{Date: "2026-01-03", CashSales: 9950},
		},
		Target: Day{
			Date:                 "2026-01-03",
			Total:                69150,
			ReceivableCollection: 3500,
			Categories: []derive.CategoryEntry{
				{Category: "鱒", Sources: []derive.SourceAmount{line(derive.SourceCash, 22000)}},
				{Category: "釣鱒", Sources: []derive.SourceAmount{line(derive.SourceCash, 28000), line(derive.SourceCredit, 4500)}},
				{Category: "竿", Sources: []derive.SourceAmount{line(derive.SourceCash, 9000)}},
				{Category: "雑", Sources: []derive.SourceAmount{line(derive.SourceMobile, 5650)}},
			},
			DailyMetrics: derive.DailyMetrics{Visitors: 43, FoodTrout: 12, AnglingTrout: 31, Rods: 5},
		},
		Previous: []Day{
			{
				Date:  "2026-01-02",
				Total: 54200,
				Categories: []derive.CategoryEntry{
					{Category: "鱒", Sources: []derive.SourceAmount{line(derive.SourceCash, 12000)}},
					{Category: "釣鱒", Sources: []derive.SourceAmount{line(derive.SourceCash, 24000)}},
					{Category: "竿", Sources: []derive.SourceAmount{line(derive.SourceCash, 6000)}},
					{Category: "雑", Sources: []derive.SourceAmount{line(derive.SourceCredit, 12200)}},
				},
			},
			{
				Date:  "2026-01-01",
				Total: 47800,
				Categories: []derive.CategoryEntry{
					{Category: "鱒", Sources: []derive.SourceAmount{line(derive.SourceCash, 11000)}},
					{Category: "釣鱒", Sources: []derive.SourceAmount{line(derive.SourceCash, 22000)}},
					{Category: "竿", Sources: []derive.SourceAmount{line(derive.SourceCash, 5800)}},
					{Category: "雑", Sources: []derive.SourceAmount{line(derive.SourceMobile, 9000)}},
				},
			},
		},
		Years:     []int{2024, 2025},
		PrintedAt: time.Date(2026, time.January, 3, 9, 0, 0, 0, time.Local),
	}
}
