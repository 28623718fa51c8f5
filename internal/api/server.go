// Package api provides the HTTP API server for the invitation service.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/toyxona/toycard/internal/api/handlers"
	"github.com/toyxona/toycard/internal/api/health"
	"github.com/toyxona/toycard/internal/api/middleware"
	"github.com/toyxona/toycard/internal/auth"
	"github.com/toyxona/toycard/internal/card"
	"github.com/toyxona/toycard/internal/notify"
	"github.com/toyxona/toycard/internal/store"
	"github.com/toyxona/toycard/internal/uploads"
	"github.com/toyxona/toycard/pkg/config"
)

// Version is the current version of the API server.
// This should be set at build time using ldflags.
var Version = "dev"

// Server represents the HTTP API server.
type Server struct {
	router        chi.Router
	httpServer    *http.Server
	store         store.Store
	auth          *auth.Service
	signer        *uploads.Signer
	blobs         *uploads.Store
	notifier      *notify.Notifier
	registry      *card.Registry
	config        *config.Config
	logger        *slog.Logger
	healthChecker *health.Checker
}

// NewServer creates a new API server with the given dependencies.
func NewServer(cfg *config.Config, st store.Store, authSvc *auth.Service, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry, err := card.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load template catalog: %w", err)
	}

	blobs, err := uploads.NewStore(cfg.MediaDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open media store: %w", err)
	}

	var notifier *notify.Notifier
	if cfg.WishNotifications {
		notifier, err = notify.New(cfg.BotToken, logger)
		if err != nil {
			logger.Warn("wish notifications disabled", "error", err)
		}
	}

	s := &Server{
		store:    st,
		auth:     authSvc,
		signer:   uploads.NewSigner([]byte(cfg.UploadSigningKey), cfg.BaseURL, cfg.UploadURLTTL),
		blobs:    blobs,
		notifier: notifier,
		registry: registry,
		config:   cfg,
		logger:   logger,
	}

	s.healthChecker = health.NewChecker(st, Version)

	s.setupRouter()
	return s, nil
}

// setupRouter configures the router with middleware and routes.
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(middleware.Recovery(s.logger))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Health check endpoint (no auth required)
	r.Get("/health-check", s.healthChecker.Handler())

	// Auth exchange (no auth required; the Telegram init data is the credential)
	authHandler := handlers.NewAuthHandler(s.store, s.auth, s.config.BotToken, s.logger)
	r.Post("/auth", authHandler.Exchange)

	invitationsHandler := handlers.NewInvitationsHandler(s.store, s.signer, s.registry, s.logger)
	wishesHandler := handlers.NewWishesHandler(s.store, s.notifier, s.logger)
	uploadsHandler := handlers.NewUploadsHandler(s.store, s.signer, s.blobs, s.logger)

	// Public routes: cards are shared with guests who carry no token.
	r.Get("/templates", invitationsHandler.Templates)
	r.Route("/invitations/{invitationID}", func(r chi.Router) {
		r.Get("/", invitationsHandler.Get)
		r.Get("/card", invitationsHandler.Card)
		r.Get("/wishes", wishesHandler.List)
		r.Get("/wishes/ws", wishesHandler.Stream)
	})
	r.Post("/wishes", wishesHandler.Create)

	// Pre-signed uploads carry their own authorization in the token.
	r.Put("/uploads/{token}", uploadsHandler.Put)
	r.Get("/media/{invitationID}/{slot}", uploadsHandler.Serve)

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		authMiddleware := middleware.NewAuthMiddleware(s.auth, s.logger)
		r.Use(authMiddleware.Authenticate)

		r.Route("/invitations", func(r chi.Router) {
			r.Post("/init", invitationsHandler.Init)
			r.Get("/self", invitationsHandler.ListSelf)
			r.Get("/self/count", invitationsHandler.CountSelf)
		})

		usersHandler := handlers.NewUsersHandler(s.store, s.logger)
		r.Get("/users/by-telegram-id/{telegramID}", usersHandler.GetByTelegramID)

		receivedHandler := handlers.NewReceivedHandler(s.store, s.logger)
		r.Route("/received", func(r chi.Router) {
			r.Post("/", receivedHandler.Append)
			r.Get("/", receivedHandler.List)
		})

		preferencesHandler := handlers.NewPreferencesHandler(s.store, s.logger)
		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", preferencesHandler.Get)
			r.Put("/", preferencesHandler.Put)
		})
	})

	s.router = r
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// Router returns the chi router for testing purposes.
func (s *Server) Router() chi.Router {
	return s.router
}
