package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"feedloop/pkg/domain"
	"feedloop/pkg/service"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/reader.go -pkg mocks -skip-ensure -fmt goimports . Reader

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	reader  Reader
	version string
	debug   bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Reader provides the feed reader operations exposed over the API
type Reader interface {
	Subscribe(ctx context.Context, userID int64, rawURL, folderName string) (*domain.Subscription, error)
	Unsubscribe(ctx context.Context, userID, feedID int64) error
	RefreshFeed(ctx context.Context, feedID int64) (domain.RefreshResult, error)
	MarkEntry(ctx context.Context, userID, entryID int64, read bool) error
	MarkFeedRead(ctx context.Context, userID, feedID int64) error
	MoveToFolder(ctx context.Context, userID, feedID int64, folderName string) error
	Unread(ctx context.Context, userID int64) (*service.UnreadSummary, error)
	FeedEntries(ctx context.Context, userID, feedID int64, limit int) ([]*domain.Entry, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, reader Reader, version string, debug bool) *Server {
	s := &Server{
		config:  cfg,
		reader:  reader,
		version: version,
		debug:   debug,
		router:  routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("feedloop", "feedloop", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // 64K, the API bodies are tiny
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("POST /feeds/{id}/refresh", s.refreshFeedHandler)

		r.HandleFunc("POST /users/{id}/subscriptions", s.subscribeHandler)
		r.HandleFunc("DELETE /users/{id}/subscriptions/{feedID}", s.unsubscribeHandler)
		r.HandleFunc("PUT /users/{id}/subscriptions/{feedID}/folder", s.moveFolderHandler)

		r.HandleFunc("GET /users/{id}/unread", s.unreadHandler)
		r.HandleFunc("GET /users/{id}/feeds/{feedID}/entries", s.feedEntriesHandler)
		r.HandleFunc("POST /users/{id}/feeds/{feedID}/read", s.markFeedReadHandler)
		r.HandleFunc("PUT /users/{id}/entries/{entryID}/read", s.markEntryHandler)
	})
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends error response as JSON
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, map[string]string{"error": errMsg})
}
