// Package aegisweb serves the Aegiscan console shell: the page layout,
// navigation and link-preview metadata built from the site configuration,
// plus sitemap, robots, web manifest and privacy-first page view counting.
//
// Site identity comes from package site and is read once at startup;
// everything else is configured through ServerConfig.
package aegisweb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/digitranslab/aegisweb/analytics"
	"github.com/digitranslab/aegisweb/site"
)

// App is the central web shell application. It wires together the site
// configuration, middleware, handlers and the analytics store.
type App struct {
	Config ServerConfig
	Site   *site.Config
	Routes site.RouteTable
	Echo   *echo.Echo
	Logger *zap.Logger

	apiLimiter     *RateLimiter
	analyticsStore *analytics.Store
	stopCleanup    func()
	ogImage        func() ([]byte, error)
	customRoutes   []func(*App)
	staticDir      string
	setupOnce      sync.Once
	setupErr       error
}

// New creates an App. siteCfg must come from site.Load or site.New; a nil
// logger discards logs.
func New(cfg ServerConfig, siteCfg *site.Config, routes site.RouteTable, logger *zap.Logger, opts ...Option) *App {
	cfg.setDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config:    cfg,
		Site:      siteCfg,
		Routes:    routes,
		Echo:      e,
		Logger:    logger,
		staticDir: cfg.StaticDir,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Setup opens the analytics store, installs middleware and mounts routes.
// It runs once; later calls return the first result.
func (a *App) Setup() error {
	a.setupOnce.Do(func() {
		a.setupErr = a.setup()
	})
	return a.setupErr
}

func (a *App) setup() error {
	if a.Site == nil {
		return errors.New("aegisweb: site configuration is required")
	}
	if err := a.Config.Validate(); err != nil {
		return err
	}

	if a.Config.AnalyticsEnabled {
		store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("aegisweb: init analytics: %w", err)
		}
		a.analyticsStore = store
		a.stopCleanup = store.StartCleanupScheduler(a.Config.AnalyticsRetentionDays, 24*time.Hour, a.Logger)
	}

	if a.Config.APIRateLimit > 0 {
		a.apiLimiter = NewRateLimiter(a.Config.APIRateLimit, time.Minute)
	}

	a.ogImage = (&ogImageCache{staticDir: a.staticDir}).get

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the app up and serves HTTP until ctx is cancelled, then shuts
// down gracefully within ShutdownTimeout.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("listening",
			zap.String("addr", a.Config.Addr),
			zap.String("base_url", a.Site.BaseURL()),
			zap.String("env", a.Config.AppEnv),
		)
		errCh <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("aegisweb: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer cancel()
	a.Logger.Info("shutting down")
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("aegisweb: shutdown: %w", err)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/site.webmanifest", a.handleManifest)
	e.GET(site.OGImagePath, a.handleOGImage)
	e.GET("/healthz", handleHealth)

	e.GET("/", a.handleRoot)
	e.GET(a.Routes.Home, a.handleHome)

	var apiMW []echo.MiddlewareFunc
	if a.apiLimiter != nil {
		apiMW = append(apiMW, a.apiLimiter.Middleware())
	}
	e.GET("/api/site", a.handleSiteConfig, apiMW...)

	if a.analyticsStore != nil {
		analytics.NewHandler(a.analyticsStore, a.Logger).RegisterRoutes(e, apiMW...)
	}
}

// AnalyticsStore returns the open analytics store, or nil when disabled.
func (a *App) AnalyticsStore() *analytics.Store {
	return a.analyticsStore
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopCleanup != nil {
		a.stopCleanup()
		a.stopCleanup = nil
	}
	if a.apiLimiter != nil {
		a.apiLimiter.Stop()
	}
	if a.analyticsStore != nil {
		store := a.analyticsStore
		a.analyticsStore = nil
		return store.Close()
	}
	return nil
}
