package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go-avisos-monitor/internal/config"
	"go-avisos-monitor/internal/filter"
	"go-avisos-monitor/internal/reporter"
	"go-avisos-monitor/internal/scraper"

	"go.uber.org/zap"
)

type mailer interface {
	Send(ctx context.Context, subject, htmlBody string) error
	Recipient() string
}

type summarySender interface {
	SendSummary(count int, listing string) error
}

// app is one CLI run: scrape, print, deliver.
type app struct {
	out     io.Writer
	log     *zap.SugaredLogger
	cfg     *config.Config
	noEmail bool

	scrape      func(ctx context.Context, criteria filter.Criteria) (*scraper.Result, error)
	mailer      mailer
	newTelegram func() (summarySender, error)
}

func (a *app) run(ctx context.Context, now time.Time) {
	criteria := filter.NewCriteria(now, a.cfg.LevelKeyword, a.cfg.AllowedDepartments, a.cfg.BlockPatterns)

	res, err := a.scrape(ctx, criteria)
	if err != nil {
		var timeout *scraper.TableTimeoutError
		if errors.As(err, &timeout) {
			fmt.Fprintln(a.out, "⏳ Timeout al cargar/leer la tabla. Verificá que la URL sea la del LISTADO (no la home).")
			a.log.Debugf("timeout detail: %v", err)
			return
		}
		fmt.Fprintf(a.out, "❌ Error: %v\n", err)
		return
	}

	if len(res.Matches) == 0 {
		fmt.Fprintf(a.out, "ℹ️ No hubo coincidencias con los filtros (Nivel=%s + dptos elegidos + Publicado hoy/ayer, excluyendo materias/cargos bloqueados).\n", a.cfg.LevelKeyword)
		return
	}

	p := reporter.Presenter{
		Preferred:   a.cfg.PreferredColumns,
		Level:       a.cfg.LevelKeyword,
		Departments: criteria.Departments(),
		SourceURL:   a.cfg.ListingURL,
	}
	listing := p.Text(res)

	fmt.Fprintf(a.out, "\n✅ %d coincidencia(s) totales:\n\n", len(res.Matches))
	fmt.Fprintln(a.out, listing)

	if a.noEmail {
		return
	}

	if err := a.sendEmail(ctx, p, res); err != nil {
		fmt.Fprintf(a.out, "\n📭 No se pudo enviar el correo: %v\n", err)
	} else {
		fmt.Fprintf(a.out, "\n📧 Email enviado a %s.\n", a.mailer.Recipient())
	}

	if a.newTelegram != nil {
		a.sendTelegram(len(res.Matches), listing)
	}
}

func (a *app) sendEmail(ctx context.Context, p reporter.Presenter, res *scraper.Result) error {
	body, err := p.HTML(res)
	if err != nil {
		return err
	}
	return a.mailer.Send(ctx, p.Subject(res), body)
}

func (a *app) sendTelegram(count int, listing string) {
	bot, err := a.newTelegram()
	if err != nil {
		a.log.Warnf("⚠️ Failed to init Telegram: %v", err)
		return
	}
	if err := bot.SendSummary(count, listing); err != nil {
		a.log.Warnf("⚠️ Failed to send summary to Telegram: %v", err)
		return
	}
	a.log.Info("🤖 Summary sent to Telegram")
}
