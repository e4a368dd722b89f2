package browser

import (
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"
)

// Flags needed to run chromium inside slim containers (Alpine/ARM64)
var launchArgs = []string{"--no-sandbox", "--disable-setuid-sandbox", "--disable-dev-shm-usage"}

// LaunchOptions configures the shared chromium process
type LaunchOptions struct {
	Headless bool
	//ExecutablePath points at a system chromium; empty uses the playwright-managed one
	ExecutablePath string
}

// ContextOptions configures one isolated browser session
type ContextOptions struct {
	UserAgent string
	Headers   map[string]string
	Cookies   []playwright.OptionalCookie
}

// PlaywrightManager owns the playwright driver and one launched browser.
// Every search gets its own BrowserContext so sessions never share cookies or storage.
type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewPlaywright(opts LaunchOptions) (*PlaywrightManager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     launchArgs,
	}
	if opts.ExecutablePath != "" {
		launch.ExecutablePath = playwright.String(opts.ExecutablePath)
	}

	browser, err := pw.Chromium.Launch(launch)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch chromium browser: %w", err)
	}
	log.Printf("🌐 Chromium launched (headless=%t)", opts.Headless)

	return &PlaywrightManager{
		pw:      pw,
		browser: browser,
	}, nil
}

func (pm *PlaywrightManager) NewContext(opts ContextOptions) (playwright.BrowserContext, error) {
	ctxOpts := playwright.BrowserNewContextOptions{
		Locale:           playwright.String("en-US"),
		ExtraHttpHeaders: opts.Headers,
	}
	if opts.UserAgent != "" {
		ctxOpts.UserAgent = playwright.String(opts.UserAgent)
	}

	browserCtx, err := pm.browser.NewContext(ctxOpts)
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	if len(opts.Cookies) > 0 {
		if err := browserCtx.AddCookies(opts.Cookies); err != nil {
			browserCtx.Close()
			return nil, fmt.Errorf("could not add cookies: %w", err)
		}
	}
	return browserCtx, nil
}

func (pm *PlaywrightManager) Close() error {
	if err := pm.browser.Close(); err != nil {
		log.Printf("⚠️ Failed to close browser: %v", err)
	}
	if err := pm.pw.Stop(); err != nil {
		return fmt.Errorf("could not stop playwright: %w", err)
	}
	return nil
}
