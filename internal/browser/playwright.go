package browser

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Options select the engine and whether a window is shown.
type Options struct {
	Headless bool
	// Chromium switches from the default Firefox engine.
	Chromium bool
}

// Engine names the browser engine the options select.
func (o Options) Engine() string {
	if o.Chromium {
		return "chromium"
	}
	return "firefox"
}

type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewPlaywright starts the Playwright driver and launches one browser.
// Callers must Close it on every path.
func NewPlaywright(opts Options) (*PlaywrightManager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browserType := pw.Firefox
	if opts.Chromium {
		browserType = pw.Chromium
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch %s browser: %w", opts.Engine(), err)
	}

	return &PlaywrightManager{
		pw:      pw,
		browser: browser,
	}, nil
}

func (pm *PlaywrightManager) NewPage() (playwright.Page, error) {
	page, err := pm.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	return page, nil
}

// Close shuts the browser down and stops the driver.
func (pm *PlaywrightManager) Close() error {
	var errs []error
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if pm.pw != nil {
		if err := pm.pw.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
