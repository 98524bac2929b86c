package mendoza

import (
	"context"
	"fmt"
	"strings"

	"go-avisos-monitor/internal/scraper"
)

const nextSelector = "a.paginate_button.next, .dataTables_paginate a.next, a:has-text('Siguiente')"

// linkPager clicks the "next" control and waits for the first row to change.
type linkPager struct {
	s *Scraper
}

func (p *linkPager) Strategy() string { return "next-link" }

func (p *linkPager) Rows(ctx context.Context) ([][]string, error) {
	return p.s.currentRows(ctx)
}

func (p *linkPager) Next(ctx context.Context) (bool, error) {
	page := p.s.page
	log := p.s.log

	if count, err := page.Locator(nextSelector).Count(); err != nil || count == 0 {
		log.Debug("· No \"Siguiente\" button")
		return false, err
	}
	next := page.Locator(nextSelector).First()

	class, _ := next.GetAttribute("class")
	ariaDisabled, _ := next.GetAttribute("aria-disabled")
	if strings.Contains(class, "disabled") || ariaDisabled == "true" {
		log.Debug("· \"Siguiente\" is disabled")
		return false, nil
	}

	before, err := p.firstRowText()
	if err != nil {
		return false, err
	}
	if err := next.Click(); err != nil {
		return false, fmt.Errorf("failed to click next: %w", err)
	}

	res, err := scraper.Await(ctx, pageWait, pollInterval, func(context.Context) (bool, error) {
		after, err := p.firstRowText()
		return after != "" && after != before, err
	})
	if err != nil {
		return false, err
	}
	if res == scraper.Unchanged {
		log.Debug("· First row did not change (assuming last page)")
		return false, nil
	}
	log.Debug("· First row changed (moved to next page)")
	return true, nil
}

func (p *linkPager) firstRowText() (string, error) {
	v, err := p.s.page.Evaluate(`() => {
  const el = document.querySelector('table tbody tr:first-child');
  return el ? el.innerText : '';
}`)
	if err != nil {
		return "", fmt.Errorf("failed to read first row: %w", err)
	}
	text, _ := v.(string)
	return text, nil
}
