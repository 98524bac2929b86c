package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// ScreenShotDebugger saves full-page screenshots when a run fails, so the
// page the scraper actually saw can be inspected afterwards.
type ScreenShotDebugger struct {
	outputDir string
	log       *zap.SugaredLogger
}

func NewScreenShotDebugger(outputDir string, log *zap.SugaredLogger) *ScreenShotDebugger {
	if outputDir == "" {
		outputDir = filepath.Join(".", "logs", "screenshots")
	}
	return &ScreenShotDebugger{
		outputDir: outputDir,
		log:       log,
	}
}

// Path returns the file a capture named name would be written to at t.
func (s *ScreenShotDebugger) Path(name string, t time.Time) string {
	filename := fmt.Sprintf("%s_%s.png", name, t.Format("2006-01-02_15-04-05"))
	return filepath.Join(s.outputDir, filename)
}

func (s *ScreenShotDebugger) CaptureAndLog(page playwright.Page, name, message string) error {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		s.log.Warnf("⚠️ Failed to create screenshot directory: %v", err)
		return err
	}
	path := s.Path(name, time.Now())
	s.log.Infof("📸 %s", message)

	//Take screenshot
	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		s.log.Warnf("⚠️ Failed to capture screenshot: %v", err)
		return err
	}

	s.log.Infof("   Screenshot saved: %s", path)
	return nil
}
