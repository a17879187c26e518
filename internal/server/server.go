package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/foodsnap/backend/config"
	"github.com/pageza/foodsnap/backend/internal/api"
	"github.com/pageza/foodsnap/backend/internal/middleware"
	"github.com/pageza/foodsnap/backend/internal/service"
)

const (
	readHeaderTimeout = 10 * time.Second
	// two sequential completion calls of up to 30s each, plus persistence
	writeTimeout = 90 * time.Second
	idleTimeout  = 120 * time.Second
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// Options carries the optional collaborators of the server
type Options struct {
	// RateLimiter guards POST /analyze when set
	RateLimiter *middleware.RateLimiter
}

// New creates a new server instance
func New(cfg *config.Config, analysis service.IAnalysisService, logger *zap.Logger, opts Options) *Server {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	var analyzeMiddleware []gin.HandlerFunc
	if opts.RateLimiter != nil {
		analyzeMiddleware = append(analyzeMiddleware, opts.RateLimiter.Middleware())
	}
	api.RegisterRoutes(router, analysis, logger, analyzeMiddleware...)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
		logger: logger,
	}
}

// Handler returns the HTTP handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and blocks until the server is shut down
func (s *Server) Start() error {
	s.logger.Info("Starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
