package validation

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
		ok    bool
	}{
		{"json number", float64(15), 15, true},
		{"numeric string", "15", 15, true},
		{"fractional string", "12.5", 12.5, true},
		{"padded string", " 30 ", 30, true},
		{"int", 7, 7, true},
		{"json.Number", json.Number("42"), 42, true},
		{"non-numeric string", "abc", 0, false},
		{"empty string", "", 0, false},
		{"missing", nil, 0, false},
		{"nan string", "NaN", 0, false},
		{"inf string", "Inf", 0, false},
		{"nan float", math.NaN(), 0, false},
		{"bool", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDuration(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseDateEmptyIsValid(t *testing.T) {
	got, ok := ParseDate("")
	require.True(t, ok)
	assert.True(t, got.IsZero())

	got, ok = ParseDate("   ")
	require.True(t, ok)
	assert.True(t, got.IsZero())
}

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC)

	got, ok := ParseDate("2023-01-05")
	require.True(t, ok)
	assert.Equal(t, want, got)

	got, ok = ParseDate("2023-01-05T00:00:00Z")
	require.True(t, ok)
	assert.Equal(t, want, got)

	got, ok = ParseDate("2023-01-05T10:30:00")
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, time.January, 5, 10, 30, 0, 0, time.UTC), got)
}

func TestParseDateGarbage(t *testing.T) {
	for _, s := range []string{"not-a-date", "2023-13-45", "yesterday", "05/01/2023x"} {
		_, ok := ParseDate(s)
		assert.False(t, ok, "expected %q to be invalid", s)
	}
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("f47ac10b-58cc-4372-a567-0e02b2c3d479"))
	assert.False(t, ValidID("not-an-id"))
	assert.False(t, ValidID(""))
	assert.False(t, ValidID("12345"))
}
