package derive_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportforms/pkg/derive"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.Local)
}

func TestEraDate(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{day(2026, time.January, 3), "令和8年1月3日"},
		{day(2018, time.December, 31), "平成30年12月31日"},
		{day(2019, time.May, 1), "令和1年5月1日"},
		{day(2019, time.April, 30), "平成31年4月30日"},
	}
	for _, tc := range cases {
		if got := derive.EraDate(tc.in); got != tc.want {
			t.Fatalf("EraDate(%s): want %q, got %q", tc.in.Format(time.DateOnly), tc.want, got)
		}
	}
}

func TestEraMonth(t *testing.T) {
	if got := derive.EraMonth(day(2025, time.October, 20)); got != "令和7年10月" {
		t.Fatalf("unexpected month label %q", got)
	}
	if got := derive.EraMonth(day(2010, time.March, 1)); got != "平成22年3月" {
		t.Fatalf("unexpected month label %q", got)
	}
}

func TestFiscalYear(t *testing.T) {
	if got := derive.FiscalYear(day(2026, time.January, 3)); got != 2025 {
		t.Fatalf("January belongs to the previous fiscal year, got %d", got)
	}
	if got := derive.FiscalYear(day(2026, time.April, 1)); got != 2026 {
		t.Fatalf("April starts the fiscal year, got %d", got)
	}
	if got := derive.FiscalYear(day(2026, time.March, 31)); got != 2025 {
		t.Fatalf("March closes the fiscal year, got %d", got)
	}
}

func TestFiscalYearLabel(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{day(2026, time.January, 3), "令和7年度"},
		{day(2026, time.April, 1), "令和8年度"},
		{day(2019, time.June, 1), "平成31年度"},
		{day(1989, time.May, 1), "平成1年度"},
		{day(1988, time.May, 1), "昭和63年度"},
		{day(1800, time.May, 1), "1800年度"},
	}
	for _, tc := range cases {
		if got := derive.FiscalYearLabel(tc.in); got != tc.want {
			t.Fatalf("FiscalYearLabel(%s): want %q, got %q", tc.in.Format(time.DateOnly), tc.want, got)
		}
	}
}

func TestYen(t *testing.T) {
	cases := map[int64]string{
		69150:   "¥69,150",
		0:       "¥0",
		999:     "¥999",
		1234567: "¥1,234,567",
		-3500:   "-¥3,500",
	}
	for in, want := range cases {
		if got := derive.Yen(in); got != want {
			t.Fatalf("Yen(%d): want %q, got %q", in, want, got)
		}
	}
	if got := derive.YenSuffix(47300); got != "47,300円" {
		t.Fatalf("YenSuffix: got %q", got)
	}
}

func TestSubstitute(t *testing.T) {
	if got := derive.Substitute("{a}-{a}", map[string]string{"a": "x"}); got != "x-x" {
		t.Fatalf("expected global replacement, got %q", got)
	}

	got := derive.Substitute("{start}から{end}まで {other}", map[string]string{
		"start": "令和8年1月1日",
		"end":   "{start}",
	})
	if got != "令和8年1月1日から{start}まで {other}" {
		t.Fatalf("unexpected substitution %q", got)
	}

	got = derive.Substitute("{start}〜{end}", map[string]string{"start": "{end}", "end": "令和8年1月31日"})
	if got != "{end}〜令和8年1月31日" {
		t.Fatalf("values must not be substituted again, got %q", got)
	}

	if got := derive.Substitute("plain", nil); got != "plain" {
		t.Fatalf("unexpected passthrough %q", got)
	}
}

func TestPaymentTotals(t *testing.T) {
	categories := []derive.CategoryEntry{
		{Category: "鱒", Sources: []derive.SourceAmount{{Source: "cash", Amount: 22000}}},
		{Category: "釣鱒", Sources: []derive.SourceAmount{{Source: "cash", Amount: 28000}, {Source: "credit", Amount: 4500}}},
		{Category: "竿", Sources: []derive.SourceAmount{{Source: "cash", Amount: 9000}}},
		{Category: "雑", Sources: []derive.SourceAmount{{Source: "mobile", Amount: 5650}}},
	}

	want := map[string]int64{"cash": 59000, "credit": 4500, "mobile": 5650, "receivable": 0}
	if diff := cmp.Diff(want, derive.PaymentTotals(categories)); diff != "" {
		t.Fatalf("payment totals mismatch (-want +got):\n%s", diff)
	}

	wantCategories := []derive.CategoryTotal{
		{Category: "鱒", Total: 22000},
		{Category: "釣鱒", Total: 32500},
		{Category: "竿", Total: 9000},
		{Category: "雑", Total: 5650},
	}
	if diff := cmp.Diff(wantCategories, derive.CategoryTotals(categories)); diff != "" {
		t.Fatalf("category totals mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregation_UnknownSourcesAndZeroCategories(t *testing.T) {
	categories := []derive.CategoryEntry{
		{Category: "返金", Sources: []derive.SourceAmount{{Source: "cash", Amount: 1000}, {Source: "cash", Amount: -1000}}},
		{Category: "券", Sources: []derive.SourceAmount{{Source: "voucher", Amount: 800}}},
		{Category: "空"},
	}

	totals := derive.PaymentTotals(categories)
	if totals["voucher"] != 800 || totals["receivable"] != 0 || len(totals) != 5 {
		t.Fatalf("unexpected totals: %#v", totals)
	}

	got := derive.CategoryTotals(categories)
	if diff := cmp.Diff([]derive.CategoryTotal{{Category: "券", Total: 800}}, got); diff != "" {
		t.Fatalf("zero categories should be excluded (-want +got):\n%s", diff)
	}
}

func TestDates(t *testing.T) {
	if got := derive.LongDate(day(2026, time.January, 3)); got != "2026年1月3日(土)" {
		t.Fatalf("LongDate: %q", got)
	}
	if got := derive.ShortDate(day(2026, time.January, 2)); got != "1/2(金)" {
		t.Fatalf("ShortDate: %q", got)
	}
	if got := derive.SlashDate("2026-01-01"); got != "2026/01/01" {
		t.Fatalf("SlashDate: %q", got)
	}
	parsed, err := derive.ParseYmd("2026-01-03", time.UTC)
	if err != nil || derive.Ymd(parsed) != "2026-01-03" {
		t.Fatalf("ParseYmd: %v %v", parsed, err)
	}
	if _, err := derive.ParseYmd("03/01/2026", time.UTC); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMetricsAndReceivableLabels(t *testing.T) {
	got := derive.MetricsLabel(derive.DailyMetrics{Visitors: 43, FoodTrout: 12, AnglingTrout: 31, Rods: 5})
	if got != "来場者数 43 / 食用鱒 12 / 鱒釣 31 / 竿 5" {
		t.Fatalf("MetricsLabel: %q", got)
	}
	if got := derive.MetricsLabel(derive.DailyMetrics{Rods: 2}); got != "竿 2" {
		t.Fatalf("MetricsLabel partial: %q", got)
	}
	if got := derive.MetricsLabel(derive.DailyMetrics{}); got != "" {
		t.Fatalf("MetricsLabel empty: %q", got)
	}
	if got := derive.ReceivableLabel(3500, "なし"); got != "あり（¥3,500）" {
		t.Fatalf("ReceivableLabel: %q", got)
	}
	if got := derive.ReceivableLabel(0, "なし"); got != "なし" {
		t.Fatalf("ReceivableLabel none: %q", got)
	}
}
