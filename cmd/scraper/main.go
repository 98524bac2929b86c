package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go-avisos-monitor/internal/browser"
	"go-avisos-monitor/internal/config"
	"go-avisos-monitor/internal/filter"
	"go-avisos-monitor/internal/logging"
	"go-avisos-monitor/internal/reporter"
	"go-avisos-monitor/internal/scraper"
	"go-avisos-monitor/internal/scraper/mendoza"
	"go-avisos-monitor/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// run-wide budget, the scheduler re-invokes us for the next attempt
const runTimeout = 10 * time.Minute

type flags struct {
	url        string
	noEmail    bool
	debug      bool
	headful    bool
	chromium   bool
	configPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "scraper",
		Short: "Scrape the teaching job-call listing and email today's matches",
		Long: `scraper opens the public job-call listing, keeps the secondary-level calls
published today or yesterday in the selected departments (minus blocked
subjects and roles), prints them and emails them as an HTML table.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.url, "url", config.DefaultURL, "URL of the job-call LISTING (not the home page)")
	cmd.Flags().BoolVar(&f.noEmail, "no-email", false, "only print to the console, do not send email")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "verbose progress logs")
	cmd.Flags().BoolVar(&f.headful, "headful", false, "show the browser window")
	cmd.Flags().BoolVar(&f.chromium, "chromium", false, "use Chromium instead of Firefox")
	cmd.Flags().StringVar(&f.configPath, "config", config.DefaultPath, "path to the YAML filter overrides")
	return cmd
}

func runRoot(cmd *cobra.Command, f *flags) error {
	out := cmd.OutOrStdout()

	log, err := logging.New(f.debug)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer log.Sync()

	//load config
	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(out, "❌ Error: %v\n", err)
		return nil
	}
	if cmd.Flags().Changed("url") {
		cfg.ListingURL = f.url
	}
	log.Debugf("🔧 Config loaded. Departments: %v", cfg.AllowedDepartments)

	ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
	defer cancel()

	a := &app{
		out:     out,
		log:     log,
		cfg:     cfg,
		noEmail: f.noEmail,
		scrape: func(ctx context.Context, criteria filter.Criteria) (*scraper.Result, error) {
			return scrapeListing(ctx, cfg, criteria, f, log)
		},
		mailer: reporter.NewMailNotifier(cfg.Mail),
	}
	if cfg.TelegramEnabled() && !f.noEmail {
		a.newTelegram = telegramFactory(cfg)
	}

	a.run(ctx, time.Now())
	return nil
}

func telegramFactory(cfg *config.Config) func() (summarySender, error) {
	return func() (summarySender, error) {
		chatID, err := cfg.ParseTelegramChatID()
		if err != nil {
			return nil, err
		}
		return reporter.NewTelegramReporter(cfg.TelegramToken, chatID)
	}
}

// scrapeListing owns the browser for one run; it is closed on every path.
func scrapeListing(ctx context.Context, cfg *config.Config, criteria filter.Criteria, f *flags, log *zap.SugaredLogger) (*scraper.Result, error) {
	opts := browser.Options{Headless: !f.headful, Chromium: f.chromium}
	log.Debugf("🚀 Launching %s (headless=%t)", opts.Engine(), opts.Headless)

	pwManager, err := browser.NewPlaywright(opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := pwManager.Close(); err != nil {
			log.Warnf("⚠️ Failed to close browser: %v", err)
		}
	}()

	page, err := pwManager.NewPage()
	if err != nil {
		return nil, err
	}

	src := mendoza.NewScraper(page, mendoza.Options{
		URL:             cfg.ListingURL,
		LevelKeyword:    cfg.LevelKeyword,
		PageLength:      cfg.PageLength,
		TableTimeout:    cfg.TableTimeout,
		AfterFilterWait: cfg.AfterFilterWait,
	}, log)

	res, err := scraper.NewOrchestrator(criteria, cfg.MaxPages, log).Run(ctx, src)
	if err != nil {
		if f.debug {
			utils.NewScreenShotDebugger("", log).CaptureAndLog(page, "scrape-failure", "🚨 Scrape failed, capturing page")
		}
		return nil, err
	}

	log.Debugf("📦 Visited %d page(s) via %s, stop: %s", res.Pages, res.Strategy, res.Stop)
	return res, nil
}
