package mendoza

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"go-avisos-monitor/internal/filter"
	"go-avisos-monitor/internal/scraper"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

//helper start headless browser
func setupPlaywright(t *testing.T) (*playwright.Playwright, playwright.Browser, playwright.Page) {
	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("could not launch playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("could not launch browser: %v", err)
	}
	page, err := browser.NewPage()
	if err != nil {
		t.Fatalf("could not create page: %v", err)
	}
	return pw, browser, page
}

// linkListingHTML renders a plain table whose "Siguiente" link swaps the body
// rows client-side.
func linkListingHTML(pages [][][]string) string {
	data, _ := json.Marshal(pages)
	return fmt.Sprintf(`<html><body>
<table>
  <thead><tr><th>Llamado</th><th>Nivel</th><th>Departamento</th><th>Materia</th><th>Publicado</th></tr></thead>
  <tbody id="rows"></tbody>
</table>
<a id="next" class="paginate_button next" href="#">Siguiente</a>
<script>
  const pages = %s;
  let current = 0;
  const next = document.getElementById('next');
  function render() {
    document.getElementById('rows').innerHTML = pages[current]
      .map(r => '<tr>' + r.map(c => '<td>' + c + '</td>').join('') + '</tr>').join('');
    if (current >= pages.length - 1) next.classList.add('disabled');
  }
  next.addEventListener('click', e => {
    e.preventDefault();
    if (current < pages.length - 1) { current++; setTimeout(render, 100); }
  });
  render();
</script>
</body></html>`, data)
}

func TestScraper_LinkPagination(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}

	pw, browser, page := setupPlaywright(t)
	defer pw.Stop()
	defer browser.Close()

	now := time.Now()
	today := now.Format("02/01/2006")
	old := now.AddDate(0, 0, -5).Format("02/01/2006")

	pages := [][][]string{
		{
			{"1", "Secundario", "Capital", "Historia", today},
			{"2", "Secundario", "Capital", "Química", today},
		},
		{
			{"3", "Secundario", "Maipú", "Física", today},
			{"4", "Primario", "Capital", "Historia", today},
		},
		{
			{"5", "Secundario", "Capital", "Historia", old},
		},
	}

	html := linkListingHTML(pages)
	page.Route("**/*", func(route playwright.Route) {
		route.Fulfill(playwright.RouteFulfillOptions{
			Status:      playwright.Int(200),
			ContentType: playwright.String("text/html"),
			Body:        html,
		})
	})

	log := zap.NewNop().Sugar()
	src := NewScraper(page, Options{
		URL:             "https://listado.test/",
		LevelKeyword:    "Secundario",
		PageLength:      100,
		TableTimeout:    10 * time.Second,
		AfterFilterWait: 0,
	}, log)
	criteria := filter.NewCriteria(now, "Secundario", []string{"CAPITAL", "MAIPU"}, []string{"QUIMICA"})

	res, err := scraper.NewOrchestrator(criteria, 200, log).Run(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, "next-link", res.Strategy)
	assert.Equal(t, scraper.StopStale, res.Stop)
	assert.Equal(t, 3, res.Pages)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, "1", res.Matches[0]["Llamado"])
	assert.Equal(t, "3", res.Matches[1]["Llamado"])
}

func TestScraper_MissingTable(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}

	pw, browser, page := setupPlaywright(t)
	defer pw.Stop()
	defer browser.Close()

	//home page instead of the listing
	page.Route("**/*", func(route playwright.Route) {
		route.Fulfill(playwright.RouteFulfillOptions{
			Status:      playwright.Int(200),
			ContentType: playwright.String("text/html"),
			Body:        `<html><title>Inicio</title><body><h1>Bienvenidos</h1></body></html>`,
		})
	})

	src := NewScraper(page, Options{
		URL:          "https://listado.test/",
		LevelKeyword: "Secundario",
		TableTimeout: time.Second,
	}, zap.NewNop().Sugar())

	err := src.Open(context.Background())

	var timeout *scraper.TableTimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, "table", timeout.Selector)
}
