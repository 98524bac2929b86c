// Package mendoza drives the public job-call listing of educacionales.mendoza.edu.ar
// with Playwright. The table is either a jQuery DataTable or a plain table
// with a "Siguiente" link; both shapes are handled.
package mendoza

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-avisos-monitor/internal/scraper"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

const (
	pollInterval    = 200 * time.Millisecond
	pageWait        = 10 * time.Second
	rowsWait        = 10 * time.Second
	afterLengthWait = 1200 * time.Millisecond
)

// Options tune one scraping session.
type Options struct {
	URL             string
	LevelKeyword    string
	PageLength      int
	TableTimeout    time.Duration
	AfterFilterWait time.Duration
}

// Scraper implements scraper.Source on top of a Playwright page.
type Scraper struct {
	page playwright.Page
	opts Options
	log  *zap.SugaredLogger
}

func NewScraper(page playwright.Page, opts Options, log *zap.SugaredLogger) *Scraper {
	return &Scraper{
		page: page,
		opts: opts,
		log:  log,
	}
}

func (s *Scraper) Open(ctx context.Context) error {
	s.log.Debugf("📋 Opening listing %s", s.opts.URL)
	if _, err := s.page.Goto(s.opts.URL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(s.opts.TableTimeout.Milliseconds())),
	}); err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return &scraper.TableTimeoutError{URL: s.opts.URL, Timeout: s.opts.TableTimeout}
		}
		return fmt.Errorf("error navigating to %s: %w", s.opts.URL, err)
	}

	return s.waitFor(ctx, "table", s.opts.TableTimeout)
}

func (s *Scraper) Headers(ctx context.Context) ([]string, error) {
	if err := s.waitFor(ctx, "table thead", s.opts.TableTimeout); err != nil {
		return nil, err
	}
	html, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return scraper.ParseHeaders(html)
}

func (s *Scraper) Prepare(ctx context.Context, cols scraper.Columns) (scraper.Pager, error) {
	if name, ok := scraper.FirstSuccess(ctx, s.log, "level filter", s.levelFilterAttempts(cols.Level)); ok {
		s.log.Debugf("· Filtered Nivel=%s via %s", s.opts.LevelKeyword, name)
		if err := scraper.Sleep(ctx, s.opts.AfterFilterWait); err != nil {
			return nil, err
		}
	} else {
		s.log.Debug("· No filter input found, scanning unfiltered")
	}

	if _, ok := scraper.FirstSuccess(ctx, s.log, fmt.Sprintf("page length %d", s.opts.PageLength), s.pageLengthAttempts()); ok {
		if err := scraper.Sleep(ctx, afterLengthWait); err != nil {
			return nil, err
		}
	}

	//capability probe: DataTables API or plain "next" link
	info, err := s.pageInfo()
	if err != nil {
		return nil, err
	}
	if info != nil && info.Pages > 0 {
		s.log.Debugf("· DT info: page=%d pages=%d length=%d records=%d", info.Page, info.Pages, info.Length, info.Records)
		return &dataTablePager{s: s, current: info.Page}, nil
	}
	return &linkPager{s: s}, nil
}

// levelFilterAttempts narrows the table to the wanted level at the source:
// the per-column filter input first, then the global search box.
func (s *Scraper) levelFilterAttempts(levelIdx int) []scraper.Attempt {
	columnInput := fmt.Sprintf("table thead tr:nth-of-type(2) th:nth-of-type(%d) input", levelIdx+1)
	attempts := []scraper.Attempt{{
		Name: "column filter",
		Try: func(ctx context.Context) (bool, error) {
			return s.fillIfPresent(columnInput, false)
		},
	}}
	for _, sel := range []string{
		"input[type='search']",
		"input[placeholder*='Buscar']",
		"input[aria-label*='Buscar']",
	} {
		attempts = append(attempts, scraper.Attempt{
			Name: "global search " + sel,
			Try: func(ctx context.Context) (bool, error) {
				return s.fillIfPresent(sel, true)
			},
		})
	}
	return attempts
}

func (s *Scraper) fillIfPresent(selector string, typed bool) (bool, error) {
	input := s.page.Locator(selector).First()
	if count, err := s.page.Locator(selector).Count(); err != nil || count == 0 {
		return false, err
	}
	if !typed {
		return true, input.Fill(s.opts.LevelKeyword)
	}
	//search boxes usually listen to key events
	if err := input.Fill(""); err != nil {
		return false, err
	}
	return true, input.PressSequentially(s.opts.LevelKeyword)
}

func (s *Scraper) pageLengthAttempts() []scraper.Attempt {
	attempts := []scraper.Attempt{{
		Name: "DataTables API",
		Try: func(ctx context.Context) (bool, error) {
			return s.setDataTableLength(s.opts.PageLength)
		},
	}}
	for _, sel := range []string{"select[name$='_length']", ".dataTables_length select", "select"} {
		attempts = append(attempts, scraper.Attempt{
			Name: "<select> " + sel,
			Try: func(ctx context.Context) (bool, error) {
				if count, err := s.page.Locator(sel).Count(); err != nil || count == 0 {
					return false, err
				}
				value := fmt.Sprint(s.opts.PageLength)
				if _, err := s.page.Locator(sel).First().SelectOption(playwright.SelectOptionValues{
					Values: &[]string{value},
				}, playwright.LocatorSelectOptionOptions{
					Timeout: playwright.Float(2000),
				}); err != nil {
					return false, err
				}
				return true, nil
			},
		})
	}
	return attempts
}

// currentRows waits briefly for a first data cell and returns the cells of
// every body row. A page that never shows a cell is reported as empty.
func (s *Scraper) currentRows(ctx context.Context) ([][]string, error) {
	res, err := scraper.Await(ctx, rowsWait, pollInterval, s.present("table tbody tr:first-child td"))
	if err != nil {
		return nil, err
	}
	if res == scraper.Unchanged {
		s.log.Debug("· No visible rows on this page")
		return nil, nil
	}

	html, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return scraper.ParseRows(html)
}

func (s *Scraper) waitFor(ctx context.Context, selector string, timeout time.Duration) error {
	res, err := scraper.Await(ctx, timeout, pollInterval, s.present(selector))
	if err != nil {
		return err
	}
	if res == scraper.Unchanged {
		return &scraper.TableTimeoutError{URL: s.opts.URL, Selector: selector, Timeout: timeout}
	}
	return nil
}

func (s *Scraper) present(selector string) func(context.Context) (bool, error) {
	return func(context.Context) (bool, error) {
		count, err := s.page.Locator(selector).Count()
		return count > 0, err
	}
}

// snapshot returns the outer HTML of every table on the page.
func (s *Scraper) snapshot() (string, error) {
	v, err := s.page.Evaluate(`() => Array.from(document.querySelectorAll('table')).map(t => t.outerHTML).join('\n')`)
	if err != nil {
		return "", fmt.Errorf("failed to read table html: %w", err)
	}
	html, _ := v.(string)
	return html, nil
}
