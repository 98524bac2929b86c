package scraper

import (
	"fmt"
	"strings"
	"time"
)

// MissingHeadersError is returned when the table has no header cells.
type MissingHeadersError struct{}

func (e *MissingHeadersError) Error() string {
	return "no table headers detected"
}

// MissingColumnsError is returned when a mandatory column role cannot be
// resolved. It carries the full header list for diagnosis.
type MissingColumnsError struct {
	Headers []string
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("required columns not found (%s). Headers: [%s]",
		strings.Join(e.Missing, ", "), strings.Join(e.Headers, " | "))
}

// TableTimeoutError is returned when the page or the table did not show up
// within the allowed time.
type TableTimeoutError struct {
	URL      string
	Selector string
	Timeout  time.Duration
}

func (e *TableTimeoutError) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("timed out after %s loading %s", e.Timeout, e.URL)
	}
	return fmt.Sprintf("timed out after %s waiting for %q on %s", e.Timeout, e.Selector, e.URL)
}
