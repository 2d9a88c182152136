// Package server exposes the parsing pipeline over a JSON HTTP API.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"traderdesk/internal/agents"
	"traderdesk/internal/catalog"
	"traderdesk/internal/config"
	"traderdesk/internal/pipeline"
	"traderdesk/internal/store"
)

// Server hosts the HTTP API around the pipeline and extractors.
type Server struct {
	cfg      config.ServerConfig
	logger   zerolog.Logger
	version  string
	pipeline *pipeline.Pipeline
	agent    *agents.ParserAgent
	catalog  *catalog.Catalog
	audit    store.AuditStore // nil when auditing is disabled

	httpServer *http.Server
}

// New creates a server. audit may be nil.
func New(
	cfg config.ServerConfig,
	logger zerolog.Logger,
	version string,
	pl *pipeline.Pipeline,
	agent *agents.ParserAgent,
	cat *catalog.Catalog,
	audit store.AuditStore,
) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		version:  version,
		pipeline: pl,
		agent:    agent,
		catalog:  cat,
		audit:    audit,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery(), corsMiddleware(cfg.AllowedOrigins))
	s.registerRoutes(router)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/", s.handleRoot)

	api := router.Group("/api")
	{
		api.POST("/parse-order", s.handleParseOrder)
		api.POST("/parse-trader-text", s.handleParseTraderText)
		api.POST("/autocomplete", s.handleAutocomplete)
		api.GET("/securities", s.handleListSecurities)
		api.GET("/securities/:symbol", s.handleGetSecurity)
		api.GET("/health", s.handleHealth)
		api.GET("/audit", s.handleAudit)
	}
}

// Handler returns the HTTP handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("addr", s.cfg.Addr).Msg("HTTP API listening")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
