// Package normalize holds the pure field coercions shared by the transform
// and load stages. Every function maps a raw CSV cell to a canonical typed
// value; missing or unparseable input becomes nil (or a documented default),
// never a sentinel string.
package normalize

import (
	"strconv"
	"strings"
	"time"
)

// Multilang is the canonical in-memory form of a pipe-delimited multilingual
// field, keyed by language code.
type Multilang map[string]string

// ParseMultilang converts "int:Engineer|no:Ingeniør" into a Multilang map.
// Segments without a colon are skipped, as are segments whose key or value is
// empty after trimming. Duplicate codes are last-wins. Blank input yields an
// empty, non-nil map.
func ParseMultilang(raw string) Multilang {
	out := Multilang{}
	if strings.TrimSpace(raw) == "" {
		return out
	}
	for _, part := range strings.Split(raw, "|") {
		key, value, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key != "" && value != "" {
			out[key] = value
		}
	}
	return out
}

var dayFirstLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
	"2-1-2006",
	"2/1/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
}

var yearFirstLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// ToDate parses a date string into a *time.Time (UTC midnight). A string
// whose first dash-separated token is four digits is treated as year-first;
// anything else is tried day-first. Blank or unparseable input returns nil.
func ToDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	layouts := dayFirstLayouts
	if first, _, ok := strings.Cut(s, "-"); ok && len(first) == 4 {
		layouts = yearFirstLayouts
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			return &day
		}
	}
	return nil
}

// ToISODate is ToDate rendered back to YYYY-MM-DD. Idempotent for
// already-ISO input.
func ToISODate(raw string) *string {
	parsed := ToDate(raw)
	if parsed == nil {
		return nil
	}
	iso := parsed.Format("2006-01-02")
	return &iso
}

// ToBool maps loose CSV booleans to a tri-state *bool: blank input is nil,
// {"true","1","t","yes","y"} (case-insensitive) is true, anything else false.
func ToBool(raw string) *bool {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}
	var value bool
	switch s {
	case "true", "1", "t", "yes", "y":
		value = true
	}
	return &value
}

// CleanString trims raw and substitutes def when the result is empty.
func CleanString(raw, def string) string {
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		return trimmed
	}
	return def
}

// CleanStringPtr is CleanString with a nil default, for nullable columns.
func CleanStringPtr(raw string) *string {
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		return &trimmed
	}
	return nil
}

// ToIntPtr coerces raw to an int or nil. Float-formatted integers ("5.0")
// are truncated the way the source system emits them.
func ToIntPtr(raw string) *int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if parsed, err := strconv.Atoi(s); err == nil {
		return &parsed
	}
	if parsed, err := strconv.ParseFloat(s, 64); err == nil {
		truncated := int(parsed)
		return &truncated
	}
	return nil
}

// ToFloatPtr coerces raw to a float64 or nil.
func ToFloatPtr(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if parsed, err := strconv.ParseFloat(s, 64); err == nil {
		return &parsed
	}
	return nil
}

// ClampPercent coerces raw to an integer clamped to [0,100]; missing or
// unparseable input is 0.
func ClampPercent(raw string) int {
	parsed := ToFloatPtr(raw)
	if parsed == nil {
		return 0
	}
	pct := int(*parsed)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
