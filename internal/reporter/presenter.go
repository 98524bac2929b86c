package reporter

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"go-avisos-monitor/internal/scraper"
)

// Presenter renders a run's matches for the console and for the email body.
// Rendering the same result twice yields identical output.
type Presenter struct {
	Preferred   []string
	Level       string
	Departments []string
	SourceURL   string
}

// Columns picks the preferred columns present in headers, in preferred
// order, falling back to every header when none match.
func (p Presenter) Columns(headers []string) []string {
	byName := make(map[string]string, len(headers))
	for _, h := range headers {
		byName[strings.ToLower(h)] = h
	}
	var chosen []string
	for _, c := range p.Preferred {
		if h, ok := byName[strings.ToLower(c)]; ok {
			chosen = append(chosen, h)
		}
	}
	if len(chosen) == 0 {
		return headers
	}
	return chosen
}

// Text renders a numbered list, one line per match.
func (p Presenter) Text(res *scraper.Result) string {
	cols := p.Columns(res.Headers)
	lines := make([]string, 0, len(res.Matches))
	for i, row := range res.Matches {
		parts := make([]string, 0, len(cols))
		for _, h := range cols {
			parts = append(parts, fmt.Sprintf("%s: %s", h, row[h]))
		}
		lines = append(lines, fmt.Sprintf("%02d) %s", i+1, strings.Join(parts, " | ")))
	}
	return strings.Join(lines, "\n")
}

// Subject is the email subject line.
func (p Presenter) Subject(res *scraper.Result) string {
	return fmt.Sprintf("[Avisos] %d coincidencias • %s • Hoy/Ayer • Deptos seleccionados", len(res.Matches), p.Level)
}

var emailTemplate = template.Must(template.New("email").Parse(`<html>
  <head>
    <style>
      body { font-family: system-ui,-apple-system,"Segoe UI",Roboto,"Helvetica Neue",Arial; color:#111; }
      .meta { margin: 0 0 12px 0; color:#444; }
      table { border-collapse: collapse; width: 100%; font-size: 14px; }
      th, td { border: 1px solid #e5e5e5; padding: 6px 8px; text-align: left; vertical-align: top; }
      thead th { background: #f6f8fa; position: sticky; top: 0; }
      tbody tr:nth-child(odd) { background: #fafafa; }
      .muted { color:#666; font-size:12px; }
    </style>
  </head>
  <body>
    <p class="meta"><b>{{.Count}}</b> coincidencia(s). Filtros: Nivel={{.Level}}; Departamentos={{.Departments}}; Publicado en hoy ({{.Today}}) o ayer ({{.Yesterday}}).</p>
    <table>
      <thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
      <tbody>
{{- range .Rows}}
        <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
      </tbody>
    </table>
    <p class="muted">Fuente: {{.SourceURL}}</p>
  </body>
</html>
`))

type emailData struct {
	Count       int
	Level       string
	Departments string
	Today       string
	Yesterday   string
	Columns     []string
	Rows        [][]string
	SourceURL   string
}

// HTML renders the email body. All cell text is escaped by html/template.
func (p Presenter) HTML(res *scraper.Result) (string, error) {
	cols := p.Columns(res.Headers)
	data := emailData{
		Count:       len(res.Matches),
		Level:       p.Level,
		Departments: strings.Join(p.Departments, ", "),
		Today:       formatDate(res.Today),
		Yesterday:   formatDate(res.Yesterday),
		Columns:     cols,
		SourceURL:   p.SourceURL,
	}
	for _, row := range res.Matches {
		cells := make([]string, 0, len(cols))
		for _, h := range cols {
			cells = append(cells, row[h])
		}
		data.Rows = append(data.Rows, cells)
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return buf.String(), nil
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
