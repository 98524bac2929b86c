package filter

import (
	"sort"
	"strings"
	"time"
)

// Criteria is the read-only filter configuration of one run. It is built once
// at start-up and passed explicitly to whoever needs it.
type Criteria struct {
	level         string
	departments   map[string]struct{}
	blockPatterns []string

	today         time.Time
	yesterday     time.Time
	stopThreshold time.Time
}

// NewCriteria normalizes the configured lists and derives the reference dates
// from now: today, yesterday, and the stop threshold two days back.
func NewCriteria(now time.Time, level string, departments, blockPatterns []string) Criteria {
	today := DateOf(now)

	c := Criteria{
		level:         Normalize(level),
		departments:   make(map[string]struct{}, len(departments)),
		today:         today,
		yesterday:     today.AddDate(0, 0, -1),
		stopThreshold: today.AddDate(0, 0, -2),
	}
	for _, d := range departments {
		if n := Normalize(d); n != "" {
			c.departments[n] = struct{}{}
		}
	}
	for _, p := range blockPatterns {
		if n := Normalize(p); n != "" {
			c.blockPatterns = append(c.blockPatterns, n)
		}
	}
	return c
}

func (c Criteria) Level() string { return c.level }

func (c Criteria) Today() time.Time { return c.today }

func (c Criteria) Yesterday() time.Time { return c.yesterday }

func (c Criteria) StopThreshold() time.Time { return c.stopThreshold }

// Departments returns the allowed departments, sorted.
func (c Criteria) Departments() []string {
	names := make([]string, 0, len(c.departments))
	for name := range c.departments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c Criteria) allowsDepartment(department string) bool {
	_, ok := c.departments[Normalize(department)]
	return ok
}

// IsBlocked reports whether the normalized subject or role contains any of
// the block patterns.
func (c Criteria) IsBlocked(subject, role string) bool {
	subject, role = Normalize(subject), Normalize(role)
	for _, p := range c.blockPatterns {
		if strings.Contains(subject, p) || strings.Contains(role, p) {
			return true
		}
	}
	return false
}
