package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clientbook/internal/api/handler"
	"github.com/martijn/clientbook/internal/api/middleware"
	"github.com/martijn/clientbook/internal/core/repository"
	"github.com/martijn/clientbook/pkg/config"
	"github.com/rs/zerolog"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	log    zerolog.Logger
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	log zerolog.Logger,
	clientRepo repository.ClientRepository,
	db handler.Pinger,
) *Server {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandlerMiddleware(log))

	// Initialize handlers
	clientHandler := handler.NewClientHandler(clientRepo)
	healthHandler := handler.NewHealthHandler(db)

	// Clients
	clients := router.Group("/clients")
	{
		clients.POST("", clientHandler.CreateClient)
		clients.GET("", clientHandler.ListClients)
		clients.GET("/search", clientHandler.SearchClients)
		clients.GET("/:id", clientHandler.GetClient)
		clients.PATCH("/:id", clientHandler.UpdateClient)
		clients.DELETE("/:id", clientHandler.DeleteClient)
	}

	// Health check
	router.GET("/health", healthHandler.Health)

	return &Server{
		router: router,
		config: cfg,
		log:    log,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	s.log.Info().Str("addr", addr).Msg("starting HTTP server")
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
