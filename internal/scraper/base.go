// Shared types for the listing scraper.
// The orchestrator only talks to a Source and a Pager, so the browser
// specific code stays in the site packages.

package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-avisos-monitor/internal/filter"
)

// Row maps header names to the cell text of one table row.
type Row map[string]string

// NewRow keys cells by position. Cells beyond the header list get a
// synthetic col_N name (1-based).
func NewRow(headers, cells []string) Row {
	row := make(Row, len(cells))
	for i, v := range cells {
		name := fmt.Sprintf("col_%d", i+1)
		if i < len(headers) {
			name = headers[i]
		}
		row[name] = v
	}
	return row
}

// Columns holds the resolved header index of each column role, -1 when the
// role is absent. Subject and Role are optional.
type Columns struct {
	Level      int
	Department int
	Published  int
	Subject    int
	Role       int
}

// Header fragments that identify each column role.
const (
	LevelFragment      = "nivel"
	DepartmentFragment = "depart"
	PublishedFragment  = "public"
	SubjectFragment    = "mater"
	RoleFragment       = "cargo"
)

// FindColumn returns the index of the first header containing part
// (case-insensitive), or -1.
func FindColumn(headers []string, part string) int {
	part = strings.ToLower(part)
	for i, h := range headers {
		if strings.Contains(strings.ToLower(h), part) {
			return i
		}
	}
	return -1
}

// ResolveColumns maps every column role to its header index. Level,
// department and published date are mandatory.
func ResolveColumns(headers []string) (Columns, error) {
	cols := Columns{
		Level:      FindColumn(headers, LevelFragment),
		Department: FindColumn(headers, DepartmentFragment),
		Published:  FindColumn(headers, PublishedFragment),
		Subject:    FindColumn(headers, SubjectFragment),
		Role:       FindColumn(headers, RoleFragment),
	}

	var missing []string
	if cols.Level < 0 {
		missing = append(missing, LevelFragment)
	}
	if cols.Department < 0 {
		missing = append(missing, DepartmentFragment)
	}
	if cols.Published < 0 {
		missing = append(missing, PublishedFragment)
	}
	if len(missing) > 0 {
		return cols, &MissingColumnsError{Headers: headers, Missing: missing}
	}
	return cols, nil
}

// Listing extracts the fields the row filter needs.
func (c Columns) Listing(headers []string, row Row) filter.Listing {
	cell := func(idx int) string {
		if idx < 0 || idx >= len(headers) {
			return ""
		}
		return row[headers[idx]]
	}
	return filter.Listing{
		Level:      cell(c.Level),
		Department: cell(c.Department),
		Published:  cell(c.Published),
		Subject:    cell(c.Subject),
		Role:       cell(c.Role),
	}
}

// Source is one listing page as seen by the orchestrator.
type Source interface {
	// Open navigates to the listing and waits for the table.
	Open(ctx context.Context) error

	// Headers reads the header row of the table.
	Headers(ctx context.Context) ([]string, error)

	// Prepare narrows and enlarges the table where the page allows it and
	// picks the pagination strategy.
	Prepare(ctx context.Context, cols Columns) (Pager, error)
}

// Pager walks the pages of the table.
type Pager interface {
	// Strategy names the pagination strategy, for logs.
	Strategy() string

	// Rows returns the cell texts of every row on the current page.
	Rows(ctx context.Context) ([][]string, error)

	// Next moves to the following page. It returns false when there is no
	// further page; that is not an error.
	Next(ctx context.Context) (bool, error)
}

// StopReason tells why the page loop ended.
type StopReason string

const (
	StopStale   StopReason = "stale"
	StopEnd     StopReason = "end"
	StopPageCap StopReason = "page-cap"
)

// Result is the outcome of one run.
type Result struct {
	Headers   []string
	Matches   []Row
	Today     time.Time
	Yesterday time.Time
	Pages     int
	Strategy  string
	Stop      StopReason
}
