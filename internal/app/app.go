package app

import (
	"context"
	"fmt"
	"log"

	"github.com/assapir/jobflow/internal/browser"
	"github.com/assapir/jobflow/internal/cache"
	"github.com/assapir/jobflow/internal/config"
	"github.com/assapir/jobflow/internal/database"
	"github.com/assapir/jobflow/internal/scraper"
	"github.com/assapir/jobflow/internal/scraper/linkedin"
	"github.com/assapir/jobflow/internal/search"
	"github.com/assapir/jobflow/internal/telegram"
	"github.com/assapir/jobflow/utils"
)

// App is the wired search pipeline shared by the server and the CLI
type App struct {
	Service *search.Service
	//Runs is nil when DATABASE_URL is empty
	Runs database.RunStore

	browser *browser.PlaywrightManager
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	pwManager, err := browser.NewPlaywright(browser.LaunchOptions{
		Headless:       cfg.Headless,
		ExecutablePath: cfg.ChromiumPath,
	})
	if err != nil {
		return nil, err
	}

	opts := linkedin.DefaultOptions()
	if cfg.UserAgent != "" {
		opts.UserAgent = cfg.UserAgent
	}
	opts.LoadTimeout = cfg.LoadTimeout
	opts.SelectorTimeout = cfg.SelectorTimeout
	opts.ScrollIterations = cfg.ScrollIterations
	opts.ScrollPause = cfg.ScrollPause

	if cfg.CookiesPath != "" {
		cookies, err := browser.LoadCookies(cfg.CookiesPath)
		if err != nil {
			log.Printf("⚠️ Could not load LinkedIn cookies: %v. Continuing as guest.", err)
		} else {
			opts.Cookies = cookies
			log.Printf("🍪 Loaded %d LinkedIn cookies", len(cookies))
		}
	}

	var s scraper.Scraper = linkedin.NewLinkedInScraper(pwManager, opts, utils.NewScreenShotDebugger(cfg.DebugDir))
	if cfg.NavigationRetries > 0 {
		s = search.NewRetryScraper(s, cfg.NavigationRetries, cfg.RetryDelay)
	}

	app := &App{browser: pwManager}

	var recorders []search.Recorder
	if cfg.DatabaseURL != "" {
		store, err := database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			pwManager.Close()
			return nil, fmt.Errorf("open run log: %w", err)
		}
		app.Runs = store
		recorders = append(recorders, store)
		log.Println("🗄️ Search run log enabled.")
	}
	if cfg.AlertsEnabled() {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID, cfg.AlertEvery)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("init telegram bot: %w", err)
		}
		recorders = append(recorders, bot)
		log.Println("🤖 Telegram alerts enabled.")
	}

	app.Service = search.NewService(s, cache.NewResultCache(cfg.CacheTTL), linkedin.BuildSearchURL, recorders...)
	return app, nil
}

// Close stops the browser and the run log
func (a *App) Close() {
	if a.Runs != nil {
		if err := a.Runs.Close(); err != nil {
			log.Printf("⚠️ Failed to close run log: %v", err)
		}
	}
	if err := a.browser.Close(); err != nil {
		log.Printf("⚠️ %v", err)
	}
}
