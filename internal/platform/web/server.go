// Package web serves remote single-player strike5 sessions over HTTP and
// websockets.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/strike5/internal/storage"
)

// ScoreStore is the storage the server needs. storage.Store implements it.
type ScoreStore interface {
	ScoreSaver
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
}

// Options configures a Server.
type Options struct {
	Addr         string
	Scores       ScoreStore // Optional
	MaxSessions  int
	IdleTimeout  time.Duration
	ReapInterval time.Duration
	CORSOrigins  []string // "*" allows any origin
	Logger       *log.Logger
}

// Server is the HTTP API.
type Server struct {
	opts     Options
	router   *gin.Engine
	sessions *SessionManager
	logger   *log.Logger
	started  time.Time
}

// NewServer builds the router and session manager.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	router.Use(cors.New(corsConfig(opts.CORSOrigins)))

	var saver ScoreSaver
	if opts.Scores != nil {
		saver = opts.Scores
	}

	s := &Server{
		opts:     opts,
		router:   router,
		sessions: NewSessionManager(opts.MaxSessions, saver, logger),
		logger:   logger,
		started:  time.Now(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.Group("/api/v1")
	api.GET("/health", s.handleHealth)
	api.POST("/games", s.handleCreateGame)
	api.GET("/games/:id", s.handleGetGame)
	api.POST("/games/:id/moves", s.handleMove)
	api.DELETE("/games/:id", s.handleDeleteGame)
	api.GET("/games/:id/ws", s.handleWebSocket)
	api.GET("/scores/:variant", s.handleScores)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.sessions.StartReaper(ctx, s.opts.ReapInterval, s.opts.IdleTimeout)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", "addr", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("web: server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown failed: %w", err)
	}
	return nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Length", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// requestLogger logs each request through the structured logger.
func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
