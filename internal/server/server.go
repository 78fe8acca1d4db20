package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/policypilot/policypilot/config"
	"github.com/policypilot/policypilot/internal/cache"
	"github.com/policypilot/policypilot/internal/chat"
	"github.com/policypilot/policypilot/internal/crawl"
	"github.com/policypilot/policypilot/internal/export"
	"github.com/policypilot/policypilot/internal/llm"
	"github.com/policypilot/policypilot/internal/policy"
)

// Run wires every dependency and serves HTTP until the listener fails.
func Run(cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if err := cfg.LLM.Validate(); err != nil {
		return err
	}
	if err := cfg.Cache.Validate(); err != nil {
		return err
	}
	provider := llm.NewAzureClient(cfg.LLM)

	var store cache.Store
	if cfg.Cache.Enabled {
		switch cfg.Cache.Backend {
		case "redis":
			store = cache.NewRedisStore(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB,
				log.New(log.Writer(), "[CACHE] ", log.LstdFlags))
		default:
			store = cache.NewMemoryStore()
		}
	}

	crawlLogger := log.New(log.Writer(), "[CRAWL] ", log.LstdFlags)
	var fetcher crawl.PageFetcher
	if cfg.Crawl.BaseURL != "" {
		fetcher = crawl.NewClient(cfg.Crawl, crawlLogger)
	} else {
		fetcher = crawl.NewDirectFetcher(cfg.Crawl.Timeout)
	}
	digests := crawl.NewService(fetcher, store, cfg.Cache.TTL, crawlLogger)

	synth := policy.NewSynthesizer(provider, log.New(log.Writer(), "[POLICY] ", log.LstdFlags))
	engine := chat.NewService(provider, digests, synth, log.New(log.Writer(), "[CHAT] ", log.LstdFlags))

	api := e.Group("/api")
	ch := &ChatHandler{Engine: engine, Logger: log.New(log.Writer(), "[CHAT] ", log.LstdFlags)}
	ch.Register(api)
	eh := NewExportHandler(export.NewRenderer(0), nil)
	eh.Register(api)

	baseLogger.Printf("listening on %s", cfg.Server.Address)
	return e.Start(cfg.Server.Address)
}
