package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.Local)

func testCriteria() Criteria {
	return NewCriteria(testNow, "Secundario",
		[]string{"SAN MARTIN", "JUNIN", "CAPITAL", "GODOY CRUZ", "MAIPU"},
		[]string{"LENGUA", "QUIMICA", "PRECEPT", "DIRECTOR"},
	)
}

func TestCriteria_Evaluate(t *testing.T) {
	base := Listing{
		Level:      "Secundario Orientado",
		Department: "San Martín",
		Published:  "19/10/2026",
		Subject:    "Matemática",
		Role:       "Profesor",
	}

	tests := []struct {
		name     string
		modify   func(l *Listing)
		expected Decision
	}{
		{
			name:     "Full match",
			modify:   func(l *Listing) {},
			expected: Match,
		},
		{
			name:     "Published yesterday with two digit year",
			modify:   func(l *Listing) { l.Published = "Publicado 18/10/26" },
			expected: Match,
		},
		{
			name:     "Department outside allow-list",
			modify:   func(l *Listing) { l.Department = "Luján de Cuyo" },
			expected: Reject,
		},
		{
			name:     "Blocked subject",
			modify:   func(l *Listing) { l.Subject = "Química" },
			expected: Reject,
		},
		{
			name:     "Blocked role",
			modify:   func(l *Listing) { l.Role = "Vicedirector" },
			expected: Reject,
		},
		{
			name:     "Blocked pattern inside longer subject",
			modify:   func(l *Listing) { l.Subject = "Lengua Extranjera - Inglés" },
			expected: Reject,
		},
		{
			name:     "Primary level",
			modify:   func(l *Listing) { l.Level = "Primario" },
			expected: Reject,
		},
		{
			name:     "Unparsable date is rejected, not stale",
			modify:   func(l *Listing) { l.Published = "sin fecha" },
			expected: Reject,
		},
		{
			name:     "Future date",
			modify:   func(l *Listing) { l.Published = "20/10/2026" },
			expected: Reject,
		},
		{
			name:     "Two days old is stale",
			modify:   func(l *Listing) { l.Published = "17/10/2026" },
			expected: Stale,
		},
		{
			name:     "Three days old is stale even when other fields fail",
			modify:   func(l *Listing) { l.Published = "16/10/2026"; l.Level = "Primario" },
			expected: Stale,
		},
		{
			name:     "Missing subject and role columns",
			modify:   func(l *Listing) { l.Subject = ""; l.Role = "" },
			expected: Match,
		},
	}

	c := testCriteria()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := base
			tt.modify(&l)
			got := c.Evaluate(l)
			if got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestNewCriteria_ReferenceDates(t *testing.T) {
	c := testCriteria()

	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), c.Today())
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), c.Yesterday())
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), c.StopThreshold())
}

func TestNewCriteria_NormalizesLists(t *testing.T) {
	c := NewCriteria(testNow, "secundario", []string{"Guaymallén", " junín ", ""}, []string{"química", ""})

	assert.Equal(t, "SECUNDARIO", c.Level())
	assert.Equal(t, []string{"GUAYMALLEN", "JUNIN"}, c.Departments())
	assert.True(t, c.IsBlocked("QUIMICA ORGANICA", ""))
	assert.False(t, c.IsBlocked("", ""))
}
