package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"gorm.io/gorm"

	"cocktaildb/internal/handlers"
	applog "cocktaildb/internal/log"
)

const (
	defaultSessionLifetime = 12 * time.Hour
	defaultCookieName      = "cocktaildb_session"
	shutdownTimeout        = 5 * time.Second
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr     string
	Session  SessionConfig
	Database *gorm.DB
}

// SessionConfig controls session behavior for the HTTP server.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// Server wraps an http.Server serving the catalog pages and fragments.
type Server struct {
	config     Config
	httpServer *http.Server
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"sessionLifetime", cfg.Session.Lifetime.String(),
		"sessionCookie", cfg.Session.CookieName,
	)

	sessionManager := newSessionManager(cfg.Session)
	handlers.Configure(sessionManager, cfg.Database)

	handler := sessionManager.LoadAndSave(newRouter())

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

func newSessionManager(cfg SessionConfig) *scs.SessionManager {
	if cfg.Lifetime <= 0 {
		applog.Debug(context.Background(), "session lifetime not provided, using default")
		cfg.Lifetime = defaultSessionLifetime
	}
	if strings.TrimSpace(cfg.CookieName) == "" {
		applog.Debug(context.Background(), "session cookie name not provided, using default")
		cfg.CookieName = defaultCookieName
	}

	sessionManager := scs.New()
	sessionManager.Store = memstore.New()
	sessionManager.Lifetime = cfg.Lifetime
	sessionManager.Cookie.Name = cfg.CookieName
	sessionManager.Cookie.Domain = cfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.CookieSecure
	sessionManager.ErrorFunc = func(w http.ResponseWriter, r *http.Request, err error) {
		applog.Error(r.Context(), "session load failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}

	applog.Debug(context.Background(), "session manager configured",
		"cookieName", cfg.CookieName,
		"cookieDomain", cfg.CookieDomain,
		"cookieSecure", cfg.CookieSecure,
	)
	return sessionManager
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Info(context.Background(), "http server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	applog.Info(ctx, "http server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
