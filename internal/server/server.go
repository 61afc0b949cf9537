// Package server wires the HTTP surface: routing, session handling,
// template rendering and the assessment flow.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	greenbridge "github.com/goliatone/greenbridge"
	"github.com/goliatone/greenbridge/internal/config"
	"github.com/goliatone/greenbridge/pkg/forms"
	"github.com/goliatone/greenbridge/pkg/render"
	"github.com/goliatone/greenbridge/pkg/session"
	"github.com/goliatone/greenbridge/pkg/verdict"
)

// Server holds every dependency the handlers share.
type Server struct {
	cfg      config.Config
	log      *zap.Logger
	sessions *session.Manager
	views    *render.Engine
	catalog  *forms.Catalog
	verdicts *verdict.Generator // nil when no API key is configured
	theme    render.ThemeContext
}

// New assembles a server from the given configuration.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	catalog, err := forms.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewManager([]byte(cfg.SessionSecret),
		session.WithTTL(cfg.SessionTTL),
		session.WithSecure(cfg.CookieSecure),
	)
	if err != nil {
		return nil, err
	}

	views, err := render.NewEngine(
		render.WithFS(greenbridge.Templates()),
		render.WithBaseDir("templates"),
	)
	if err != nil {
		return nil, err
	}

	palette, err := render.DefaultPalette()
	if err != nil {
		return nil, err
	}
	if cfg.ThemeFile != "" {
		if err := palette.LoadFile(cfg.ThemeFile); err != nil {
			return nil, err
		}
	}
	theme, err := palette.Resolve(cfg.Theme, cfg.ThemeVariant)
	if err != nil {
		return nil, err
	}

	var verdicts *verdict.Generator
	if cfg.GeminiAPIKey != "" {
		verdicts, err = verdict.NewGenerator(ctx, cfg.GeminiAPIKey, verdict.WithModel(cfg.GeminiModel))
		if err != nil {
			return nil, err
		}
	} else {
		log.Info("gemini api key not set, verdicts disabled")
	}

	return &Server{
		cfg:      cfg,
		log:      log,
		sessions: sessions,
		views:    views,
		catalog:  catalog,
		verdicts: verdicts,
		theme:    theme,
	}, nil
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleContactPage)
	r.Post("/submit-form", s.handleContactSubmit)
	r.Get("/onboarding", s.handleOnboardingPage)
	r.Post("/onboarding", s.handleOnboardingSubmit)
	r.Get("/intake/{category}", s.handleIntakePage)
	r.Post("/intake/submit", s.handleIntakeSubmit)
	r.Get("/dashboard", s.handleDashboard)
	r.Get("/healthz", s.handleHealth)
	r.NotFound(s.handleNotFound)

	return r
}

// Run serves until ctx is canceled, then shuts down within the
// configured grace period.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down", zap.Duration("grace", s.cfg.ShutdownGrace))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
