package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type formatter func(value any) string

var viPrinter = message.NewPrinter(language.Vietnamese)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatDate renders dd/mm/yyyy and blanks values that are not dates.
func formatDate(value any) string {
	s := cellString(value)
	if s == "" {
		return ""
	}
	t, ok := parseDate(s)
	if !ok {
		return ""
	}
	return t.Format("02/01/2006")
}

// formatDateKeep is formatDate for exports: unparsable values pass through.
func formatDateKeep(value any) string {
	s := cellString(value)
	if s == "" {
		return ""
	}
	if t, ok := parseDate(s); ok {
		return t.Format("02/01/2006")
	}
	return s
}

func formatNumber(value any) string {
	return formatDecimal(value, 3)
}

func formatCurrency(value any) string {
	return formatDecimal(value, 2)
}

func formatDecimal(value any, maxFraction int) string {
	s := cellString(value)
	if s == "" {
		return ""
	}
	f, ok := toFloat(value)
	if !ok {
		return s
	}
	return viPrinter.Sprintf("%v", number.Decimal(f, number.MaxFractionDigits(maxFraction)))
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

// cellString is the unformatted text of a raw record value.
func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// relativeAge mirrors the "x minutes ago" freshness line of the run history.
func relativeAge(now, then time.Time) string {
	minutes := int(now.Sub(then).Round(time.Minute) / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%d phút trước", minutes)
	}
	hours := (minutes + 30) / 60
	if hours < 24 {
		return fmt.Sprintf("%d giờ trước", hours)
	}
	return fmt.Sprintf("%d ngày trước", (hours+12)/24)
}
