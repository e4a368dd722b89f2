package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ScreenShotDebugger saves what the browser saw when a search went wrong, so operators
// can tell a sign-in wall from a markup change
type ScreenShotDebugger struct {
	outputDir string
}

// NewScreenShotDebugger writes into dir. An empty dir returns nil, and a nil debugger is a no-op.
func NewScreenShotDebugger(dir string) *ScreenShotDebugger {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("⚠️ Failed to create screenshot directory: %v", err)
	}
	return &ScreenShotDebugger{
		outputDir: dir,
	}
}

func (s *ScreenShotDebugger) path(name, ext string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(s.outputDir, fmt.Sprintf("%s_%s.%s", name, timestamp, ext))
}

func (s *ScreenShotDebugger) CaptureAndLog(page playwright.Page, name, message string) error {
	if s == nil {
		return nil
	}
	filepath := s.path(name, "png")
	log.Printf("📸 %s", message)

	//Take screenshot
	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(filepath),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return err
	}

	log.Printf("   Screenshot saved: %s", filepath)
	return nil
}

// SaveHTML dumps the current page markup; `scraper parse` can replay it offline
func (s *ScreenShotDebugger) SaveHTML(page playwright.Page, name string) (string, error) {
	if s == nil {
		return "", nil
	}
	content, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}
	filepath := s.path(name, "html")
	if err := os.WriteFile(filepath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write html snapshot: %w", err)
	}
	log.Printf("   HTML snapshot saved: %s", filepath)
	return filepath, nil
}
