package filter

import (
	"strings"
)

// Listing is the subset of a table row the filter looks at. Subject and Role
// are empty when the table has no such column.
type Listing struct {
	Level      string
	Department string
	Published  string
	Subject    string
	Role       string
}

// Decision is the outcome of evaluating one listing.
type Decision int

const (
	Reject Decision = iota
	Match
	// Stale means the listing was published on or before the stop threshold.
	// Rows arrive newest first, so everything after it is at least as old and
	// the scan should stop.
	Stale
)

func (d Decision) String() string {
	switch d {
	case Match:
		return "match"
	case Stale:
		return "stale"
	default:
		return "reject"
	}
}

// Evaluate applies the business rules to one listing.
func (c Criteria) Evaluate(l Listing) Decision {
	published, hasDate := ParseDate(l.Published)

	//early stop: 2+ days old
	if hasDate && !published.After(c.stopThreshold) {
		return Stale
	}

	if !strings.Contains(Normalize(l.Level), c.level) {
		return Reject
	}

	if !c.allowsDepartment(l.Department) {
		return Reject
	}

	//must be published today or yesterday
	if !hasDate || (!published.Equal(c.today) && !published.Equal(c.yesterday)) {
		return Reject
	}

	if c.IsBlocked(l.Subject, l.Role) {
		return Reject
	}

	return Match
}
