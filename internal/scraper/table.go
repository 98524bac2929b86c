package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseHeaders returns the trimmed text of every header cell in the first
// header row of the first table that has one.
func ParseHeaders(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse table html: %w", err)
	}

	var headers []string
	doc.Find("table thead").EachWithBreak(func(_ int, thead *goquery.Selection) bool {
		thead.Find("tr").First().ChildrenFiltered("th").Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, strings.Join(strings.Fields(th.Text()), " "))
		})
		return len(headers) == 0
	})

	if len(headers) == 0 {
		return nil, &MissingHeadersError{}
	}
	return headers, nil
}

// ParseRows returns the trimmed cell texts of every body row. Rows without
// td cells are skipped.
func ParseRows(html string) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse table html: %w", err)
	}

	var rows [][]string
	doc.Find("table tbody tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.ChildrenFiltered("td")
		if tds.Length() == 0 {
			return
		}
		cells := make([]string, 0, tds.Length())
		tds.Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		rows = append(rows, cells)
	})
	return rows, nil
}
