package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{"Two digit year", "Publicado 05/01/24", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"Four digit year", "05/01/2024 08:15", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"First date wins", "18/10/2026 - 20/10/2026", time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), true},
		{"No date", "sin fecha", time.Time{}, false},
		{"Empty", "", time.Time{}, false},
		{"Invalid day and month", "32/13/2024", time.Time{}, false},
		{"February 30th", "30/02/2024", time.Time{}, false},
		{"Leap day", "29/02/2024", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), true},
		{"Single digit day", "5/1/2024", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestDateOf(t *testing.T) {
	in := time.Date(2026, 10, 19, 23, 59, 0, 0, time.FixedZone("ART", -3*60*60))
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), DateOf(in))
}
