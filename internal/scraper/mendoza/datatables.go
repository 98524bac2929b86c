package mendoza

import (
	"context"
	"encoding/json"
	"fmt"

	"go-avisos-monitor/internal/scraper"
)

// dataTableJS resolves `t` to the DataTables API of the first enhanced table
// on the page, or returns null from the enclosing function.
const dataTableJS = `
  const $ = window.jQuery || window.$;
  if (!$ || !$.fn || !$.fn.dataTable) return null;
  const tables = $('table').filter(function () { return $.fn.dataTable.isDataTable(this); });
  if (!tables.length) return null;
  const t = tables.first().DataTable();
`

// PageInfo mirrors DataTables' page.info().
type PageInfo struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	Length  int `json:"length"`
	Records int `json:"records"`
}

// pageInfo returns nil when the page has no DataTable.
func (s *Scraper) pageInfo() (*PageInfo, error) {
	v, err := s.page.Evaluate(`() => {` + dataTableJS + `
  const i = t.page.info();
  return JSON.stringify({page: i.page, pages: i.pages, length: i.length, records: (i.recordsDisplay ?? i.recordsTotal)});
}`)
	if err != nil {
		return nil, fmt.Errorf("failed to read DataTables page info: %w", err)
	}
	raw, ok := v.(string)
	if !ok {
		return nil, nil
	}
	var info PageInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, fmt.Errorf("failed to decode DataTables page info: %w", err)
	}
	return &info, nil
}

func (s *Scraper) setDataTableLength(length int) (bool, error) {
	v, err := s.page.Evaluate(`(len) => {`+dataTableJS+`
  t.page.len(len).draw('page');
  return true;
}`, length)
	if err != nil {
		return false, err
	}
	ok, _ := v.(bool)
	return ok, nil
}

func (s *Scraper) nextDataTablePage() (bool, error) {
	v, err := s.page.Evaluate(`() => {` + dataTableJS + `
  t.page('next').draw('page');
  return true;
}`)
	if err != nil {
		return false, err
	}
	ok, _ := v.(bool)
	return ok, nil
}

// dataTablePager pages through the DataTables API and waits for the
// reported page index to change.
type dataTablePager struct {
	s       *Scraper
	current int
}

func (p *dataTablePager) Strategy() string { return "datatables" }

func (p *dataTablePager) Rows(ctx context.Context) ([][]string, error) {
	return p.s.currentRows(ctx)
}

func (p *dataTablePager) Next(ctx context.Context) (bool, error) {
	ok, err := p.s.nextDataTablePage()
	if err != nil {
		return false, fmt.Errorf("failed to request next page: %w", err)
	}
	if !ok {
		return false, nil
	}

	newPage := p.current
	res, err := scraper.Await(ctx, pageWait, pollInterval, func(context.Context) (bool, error) {
		info, err := p.s.pageInfo()
		if err != nil || info == nil {
			return false, err
		}
		newPage = info.Page
		return newPage != p.current, nil
	})
	if err != nil {
		return false, err
	}
	if res == scraper.Unchanged {
		p.s.log.Debug("· Page did not change (probably the last one)")
		return false, nil
	}

	p.s.log.Debugf("· Page changed: %d -> %d", p.current, newPage)
	p.current = newPage
	return true, nil
}
