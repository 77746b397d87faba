// Package salary formats and normalizes salary information. Amounts are
// stored in absolute VND; the crawler's raw text wins over min/max when
// present.
package salary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jobfinder/job-assistant/internal/types"
)

var intervalSuffix = map[string]string{
	"MONTH": "/tháng",
	"YEAR":  "/năm",
	"HOUR":  "/giờ",
}

// formatAmount renders an absolute amount with dot thousands-grouping, the
// way the site displays it: 15000000 -> "15.000.000 VND".
func formatAmount(value int64, currency string) string {
	cur := currency
	if cur == "" {
		cur = "VND"
	}
	s := strconv.FormatInt(value, 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String() + " " + cur
}

// formatMillions renders an absolute VND amount as the friendly "X triệu"
// form: 12_000_000 -> "12 triệu", 12_500_000 -> "12.5 triệu".
func formatMillions(value int64) string {
	millions := float64(value) / 1_000_000
	if millions == float64(int64(millions)) {
		return fmt.Sprintf("%d triệu", int64(millions))
	}
	s := strconv.FormatFloat(millions, 'f', 1, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + " triệu"
}

// Line builds the "Thu nhập: ..." line embedded into document content.
// Returns "" when the salary carries no information, so callers can omit the
// line entirely instead of printing a placeholder.
func Line(s types.Salary) string {
	if s.RawText != "" {
		return "Thu nhập: " + s.RawText
	}
	if s.Min == nil && s.Max == nil {
		return ""
	}

	suffix := intervalSuffix[strings.ToUpper(orDefault(s.Interval, "MONTH"))]

	switch {
	case s.Min != nil && s.Max != nil:
		return strings.TrimSpace(fmt.Sprintf("Thu nhập: từ %s đến %s %s",
			formatAmount(*s.Min, s.Currency), formatAmount(*s.Max, s.Currency), suffix))
	case s.Min != nil:
		return strings.TrimSpace(fmt.Sprintf("Thu nhập: từ %s %s", formatAmount(*s.Min, s.Currency), suffix))
	default:
		return strings.TrimSpace(fmt.Sprintf("Thu nhập: đến %s %s", formatAmount(*s.Max, s.Currency), suffix))
	}
}

// Text builds the short human-readable salary summary shown next to a job:
// "Thoả thuận" when nothing is known, otherwise "Từ 15 triệu đến 20
// triệu/tháng" style for VND, plain amounts for other currencies.
func Text(s types.Salary) string {
	if s.RawText != "" {
		return s.RawText
	}
	if s.Min == nil && s.Max == nil {
		return "Thoả thuận"
	}

	cur := strings.ToUpper(orDefault(s.Currency, "VND"))
	suffix := intervalSuffix[strings.ToUpper(s.Interval)]

	fmtOne := func(v int64) string {
		if cur == "VND" {
			return formatMillions(v)
		}
		return formatAmount(v, cur)
	}

	switch {
	case s.Min != nil && s.Max != nil:
		return fmt.Sprintf("Từ %s đến %s%s", fmtOne(*s.Min), fmtOne(*s.Max), suffix)
	case s.Min != nil:
		return fmt.Sprintf("Từ %s%s", fmtOne(*s.Min), suffix)
	default:
		return fmt.Sprintf("Đến %s%s", fmtOne(*s.Max), suffix)
	}
}

// NormalizeVND fixes up salary figures coming back from the query
// classifier. The model is told to answer in absolute VND, but small numbers
// slip through as millions shorthand ("15" meaning 15 million). Values below
// 1000 are scaled; everything else passes through.
func NormalizeVND(v float64) int64 {
	if v > 0 && v < 1000 {
		return int64(v * 1_000_000)
	}
	return int64(v)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
