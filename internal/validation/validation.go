// Package validation holds the pure predicates enforced by the services'
// write paths. None of these touch storage.
package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Accepted input layouts for dates on the wire, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDuration converts a decoded JSON value (number or numeric string)
// into a duration in minutes. Missing, non-numeric, NaN and infinite inputs
// are all invalid.
func ParseDuration(v any) (float64, bool) {
	var f float64
	switch d := v.(type) {
	case float64:
		f = d
	case int:
		f = float64(d)
	case json.Number:
		parsed, err := d.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(d), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseDate parses an ISO-8601 date string. An empty string is valid and
// yields the zero time; defaulting to "now" happens upstream.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ValidID reports whether id is a syntactically valid identifier. Used as a
// cheap pre-check so malformed ids are rejected before any store access.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
