// Package server exposes the question resolution pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	temporal "github.com/yatender-oktalk/OpenDeepSearch-sub000"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/config"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/server/handlers"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/store"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/telemetry"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

// Server represents the HTTP server
type Server struct {
	config    *config.Config
	router    *gin.Engine
	agent     temporal.Agent
	store     store.Client
	telemetry *telemetry.AnswerWriter
	server    *http.Server
}

// New creates a new server instance. storeClient backs the readiness
// probe; writer may be nil when answer telemetry is disabled.
func New(cfg *config.Config, agent temporal.Agent, storeClient store.Client, writer *telemetry.AnswerWriter) *Server {
	return &Server{
		config:    cfg,
		agent:     agent,
		store:     storeClient,
		telemetry: writer,
	}
}

// Setup sets up the server routes and middleware
func (s *Server) Setup() {
	gin.SetMode(s.config.Server.Mode)

	s.router = gin.New()

	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())
	s.router.Use(contextMiddleware())

	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
}

// setupRoutes sets up all the routes
func (s *Server) setupRoutes() {
	healthHandler := handlers.NewHealthHandler(s.store)
	answerHandler := handlers.NewAnswerHandler(s.agent, s.telemetry, nil)

	// Health endpoints
	s.router.GET("/health", healthHandler.HealthCheck)
	s.router.GET("/ready", healthHandler.ReadinessCheck)
	s.router.GET("/live", healthHandler.LivenessCheck)
	s.router.GET("/health/detailed", healthHandler.DetailedHealthCheck)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/answer", answerHandler.Answer)
	}
}

// Start starts the server
func (s *Server) Start() error {
	fmt.Printf("Starting server on %s\n", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	fmt.Println("Stopping server...")
	if s.telemetry != nil {
		_ = s.telemetry.Flush()
	}
	return s.server.Shutdown(ctx)
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// contextMiddleware attaches a request ID and source marker to the request
// context so downstream logging and telemetry can correlate records.
func contextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx = context.WithValue(ctx, types.ContextKeyRequestID, requestID)
		ctx = context.WithValue(ctx, types.ContextKeyRequestSource, "server")

		c.Header("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
