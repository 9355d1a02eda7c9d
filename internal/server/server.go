package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/osse101/BuzzHive_Go/internal/aitips"
	"github.com/osse101/BuzzHive_Go/internal/handler"
	"github.com/osse101/BuzzHive_Go/internal/metrics"
	"github.com/osse101/BuzzHive_Go/internal/snapshot"
	"github.com/osse101/BuzzHive_Go/internal/sse"
)

// HiveService is everything the routes need from the session manager
type HiveService interface {
	handler.HiveService
	handler.SessionCounter
}

// Config holds the listener and access settings
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	TipsRateLimit  float64 // requests per second per client
	TipsRateBurst  int
}

// Deps are the services the routes are served from
type Deps struct {
	Hives   HiveService
	Advisor aitips.Advisor
	Store   handler.Pinger
	Hub     *sse.Hub
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(cfg Config, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, deps),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the route tree. Chi middleware executes in the order it
// is added, outermost first.
func NewRouter(cfg Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	detector := NewSuspiciousActivityDetector()
	global := NewClientLimiter(GlobalRateLimit, GlobalRateBurst)
	tips := NewClientLimiter(rate.Limit(cfg.TipsRateLimit), cfg.TipsRateBurst)

	r.Use(SecurityHeadersMiddleware())
	r.Use(RequestLogMiddleware)
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(global, cfg.TrustedProxies, RouteLabelGlobal))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Store, deps.Hives))
	r.Get("/version", handler.HandleVersion(snapshot.FormatTag))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	hiveHandler := handler.NewHiveHandler(deps.Hives)
	tipsHandler := handler.NewTipsHandler(deps.Hives, deps.Advisor)
	limitTips := RateLimitMiddleware(tips, cfg.TrustedProxies, RouteLabelTips)

	r.Route("/api/v1", func(r chi.Router) {
		r.With(limitTips).Post("/tips", tipsHandler.HandleOptimize)

		r.Route("/hives", func(r chi.Router) {
			r.Post("/", hiveHandler.HandleCreate)

			r.Route("/{"+handler.URLParamHiveID+"}", func(r chi.Router) {
				r.Use(handler.HiveContext)
				r.Get("/", hiveHandler.HandleGet)
				r.Post("/bonus", hiveHandler.HandleBonus)
				r.Post("/upgrade", hiveHandler.HandleUpgrade)
				r.Post("/workers", hiveHandler.HandleWorkers)
				r.Post("/sell", hiveHandler.HandleSell)
				r.Post("/buy", hiveHandler.HandleBuy)
				r.With(limitTips).Post("/tips", tipsHandler.HandleHiveTips)
				r.Get("/events", handler.HandleHiveEvents(deps.Hives, deps.Hub))
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
