package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/scribe-api/api/types"
	"github.com/killallgit/scribe-api/pkg/config"
)

// Server represents the HTTP server
type Server struct {
	engine             *gin.Engine
	httpServer         *http.Server
	cfg                *config.Config
	rateLimiters       *sync.Map
	cleanupInitialized sync.Once
	cleanupStop        chan struct{}
	stopOnce           sync.Once

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server from the server section of cfg.
// Transcription requests block for the whole poll budget, so the write
// timeout must exceed the active profile's budget.
func NewServer(cfg *config.Config) *Server {
	// Create Gin engine with recovery middleware only
	engine := gin.New()
	engine.Use(gin.Recovery())

	sc := cfg.Server
	maxHeader := sc.MaxHeaderBytes
	if maxHeader <= 0 {
		maxHeader = 1 << 20 // 1 MB
	}

	return &Server{
		engine:       engine,
		cfg:          cfg,
		rateLimiters: &sync.Map{},
		cleanupStop:  make(chan struct{}),
		httpServer: &http.Server{
			Addr:           fmt.Sprintf("%s:%d", sc.Host, sc.Port),
			Handler:        engine,
			ReadTimeout:    sc.ReadTimeout,
			WriteTimeout:   sc.WriteTimeout,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: maxHeader,
		},
	}
}

// SetDependencies sets all handler dependencies
func (s *Server) SetDependencies(deps *types.Dependencies) {
	s.dependencies = deps
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	if s.dependencies == nil || s.dependencies.Pipeline == nil {
		return fmt.Errorf("server dependencies must include a pipeline")
	}

	s.setupMiddleware()

	return RegisterRoutes(s.engine, s.dependencies, s.cfg, s.rateLimiters, s.cleanupStop, &s.cleanupInitialized)
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	s.engine.Use(RequestID())
	s.engine.Use(gin.Logger())
	s.engine.Use(Metrics(s.dependencies.Metrics))
	s.engine.Use(CORS())

	if s.cfg.Server.MaxBodyBytes > 0 {
		s.engine.Use(RequestSizeLimitWithSize(s.cfg.Server.MaxBodyBytes))
	} else {
		s.engine.Use(RequestSizeLimit())
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Stop the rate limiter cleanup goroutine
	s.stopOnce.Do(func() { close(s.cleanupStop) })

	return s.httpServer.Shutdown(ctx)
}
