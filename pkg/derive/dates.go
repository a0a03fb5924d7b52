package derive

import (
	"fmt"
	"strings"
	"time"
)

var weekdays = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// LongDate renders t as "2026年1月3日(土)".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d年%d月%d日(%s)", t.Year(), int(t.Month()), t.Day(), weekdays[t.Weekday()])
}

// ShortDate renders t as "1/2(金)".
func ShortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d(%s)", int(t.Month()), t.Day(), weekdays[t.Weekday()])
}

// Ymd renders t as the "2026-01-03" form used in query strings.
func Ymd(t time.Time) string {
	return t.Format(time.DateOnly)
}

// SlashDate turns "2026-01-03" into "2026/01/03".
func SlashDate(ymd string) string {
	return strings.ReplaceAll(ymd, "-", "/")
}

// ParseYmd reads a "2026-01-03" date in loc.
func ParseYmd(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("derive: parse date %q: %w", value, err)
	}
	return t, nil
}

// DailyMetrics are the headcounts printed under the daily sales title.
type DailyMetrics struct {
	Visitors     int `json:"visitorsEstimate"`
	FoodTrout    int `json:"foodTroutCount"`
	AnglingTrout int `json:"anglingTroutCount"`
	Rods         int `json:"rodCount"`
}

// MetricsLabel joins the positive metrics, e.g.
// "来場者数 43 / 食用鱒 12 / 鱒釣 31 / 竿 5". It is empty when nothing was
// counted.
func MetricsLabel(m DailyMetrics) string {
	var parts []string
	add := func(label string, n int) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", label, n))
		}
	}
	add("来場者数", m.Visitors)
	add("食用鱒", m.FoodTrout)
	add("鱒釣", m.AnglingTrout)
	add("竿", m.Rods)
	return strings.Join(parts, " / ")
}

// ReceivableLabel is the value substituted into the receivable template:
// "あり（¥3,500）" when anything was collected, none otherwise.
func ReceivableLabel(amount int64, none string) string {
	if amount > 0 {
		return "あり（" + Yen(amount) + "）"
	}
	return none
}
