package scraper

import (
	"context"
	"fmt"

	"go-avisos-monitor/internal/filter"

	"go.uber.org/zap"
)

// Orchestrator drives one run over a Source: open, read headers, resolve
// columns, prepare, then collect and filter page by page.
//
// Rows are assumed to arrive newest first. The stale early stop depends on
// it; if the site changes its default sort the run under-collects.
type Orchestrator struct {
	criteria filter.Criteria
	maxPages int
	log      *zap.SugaredLogger
}

func NewOrchestrator(criteria filter.Criteria, maxPages int, log *zap.SugaredLogger) *Orchestrator {
	return &Orchestrator{
		criteria: criteria,
		maxPages: maxPages,
		log:      log,
	}
}

func (o *Orchestrator) Run(ctx context.Context, src Source) (*Result, error) {
	if err := src.Open(ctx); err != nil {
		return nil, err
	}

	headers, err := src.Headers(ctx)
	if err != nil {
		return nil, err
	}
	o.log.Debugf("· Headers: %v", headers)

	cols, err := ResolveColumns(headers)
	if err != nil {
		return nil, err
	}

	pager, err := src.Prepare(ctx, cols)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare table: %w", err)
	}
	o.log.Debugf("· Pagination strategy: %s", pager.Strategy())

	res := &Result{
		Headers:   headers,
		Today:     o.criteria.Today(),
		Yesterday: o.criteria.Yesterday(),
		Strategy:  pager.Strategy(),
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cells, err := pager.Rows(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", res.Pages+1, err)
		}
		res.Pages++

		matches, stale := o.collect(headers, cols, cells)
		res.Matches = append(res.Matches, matches...)
		o.log.Debugf("· Page %d: %d rows, %d matches", res.Pages, len(cells), len(matches))

		if stale {
			o.log.Debug("· Found a row published 2+ days ago. Stopping early.")
			res.Stop = StopStale
			break
		}

		advanced, err := pager.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to advance from page %d: %w", res.Pages, err)
		}
		if !advanced {
			res.Stop = StopEnd
			break
		}

		//only a page that exists but will not be read counts as cut off
		if res.Pages >= o.maxPages {
			o.log.Warnf("⚠️ Page cap reached (%d pages), stopping pagination", o.maxPages)
			res.Stop = StopPageCap
			break
		}
	}

	return res, nil
}

// collect filters one page. stale is true when a row old enough to end the
// scan was found; rows after it are not looked at.
func (o *Orchestrator) collect(headers []string, cols Columns, cells [][]string) (matches []Row, stale bool) {
	for _, rowCells := range cells {
		if len(rowCells) == 0 {
			continue
		}
		row := NewRow(headers, rowCells)
		switch o.criteria.Evaluate(cols.Listing(headers, row)) {
		case filter.Stale:
			return matches, true
		case filter.Match:
			matches = append(matches, row)
		}
	}
	return matches, false
}
