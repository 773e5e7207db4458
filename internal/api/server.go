// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/folio/internal/core/achievement"
	"github.com/taibuivan/folio/internal/core/blog"
	"github.com/taibuivan/folio/internal/core/certification"
	"github.com/taibuivan/folio/internal/core/contact"
	"github.com/taibuivan/folio/internal/core/dashboard"
	"github.com/taibuivan/folio/internal/core/media"
	"github.com/taibuivan/folio/internal/core/message"
	"github.com/taibuivan/folio/internal/core/project"
	"github.com/taibuivan/folio/internal/core/setting"
	"github.com/taibuivan/folio/internal/core/site"
	"github.com/taibuivan/folio/internal/core/skill"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/metrics"
	"github.com/taibuivan/folio/internal/platform/middleware"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/users/account"
	"github.com/taibuivan/folio/internal/users/auth"
	"github.com/taibuivan/folio/internal/users/authctx"
	"github.com/taibuivan/folio/internal/users/guard"
	"github.com/taibuivan/folio/internal/users/role"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Session serves sign-in, sign-up, sign-out, refresh and the current auth state.
	Session *authctx.Handler

	// Auth serves email verification.
	Auth *auth.Handler

	// Account lets a signed-in user edit their profile and password.
	Account *account.Handler

	// Role manages role assignments (admin only).
	Role *role.Handler

	Site          *site.Handler
	Contact       *contact.Handler
	Project       *project.Handler
	Achievement   *achievement.Handler
	Certification *certification.Handler
	Skill         *skill.Handler
	Blog          *blog.Handler
	Message       *message.Handler
	Setting       *setting.Handler
	Media         *media.Handler
	Dashboard     *dashboard.Handler
}

// # Server Initialization

/*
NewServer constructs the chi router with the full middleware chain and
registers all route groups.

# Route Groups
  - Infrastructure: /health, /ready, /metrics
  - Public: /, /about, /contact, /projects, /skills, /achievements, /certifications, /blog
  - Auth: /auth/* (CSRF protected, strict rate limit on credential endpoints)
  - Admin: /admin/* (Route Guard, CSRF protected)
*/
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, factory *authctx.Factory, h Handlers) *Server {
	r := chi.NewRouter()

	csrf := middleware.CSRF(middleware.CSRFConfig{CookieSecure: cfg.CookieSecure})
	strict := middleware.RateLimitWith(context, middleware.StrictProfile)

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	if cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.StructuredLogger(log))
	r.Use(metrics.Middleware)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)
	r.Use(authctx.Middleware(factory, auth.CookieConfig{Secure: cfg.CookieSecure}))

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// # Public Site
	h.Site.RegisterRoutes(r)
	r.With(strict).Group(h.Contact.RegisterRoutes)

	r.Route("/projects", h.Project.RegisterRoutes)
	r.Route("/achievements", h.Achievement.RegisterRoutes)
	r.Route("/certifications", h.Certification.RegisterRoutes)
	r.Route("/skills", h.Skill.RegisterRoutes)
	r.Route("/blog", h.Blog.RegisterRoutes)

	// # Authentication
	r.Route("/auth", func(session chi.Router) {
		session.Use(csrf)
		h.Session.RegisterRoutes(session)
		h.Auth.RegisterRoutes(session)
	})

	// # Admin Area
	// Every admin route sits behind the Route Guard. Role checks happen in the services.
	r.Route("/admin", func(admin chi.Router) {
		admin.Use(guard.Protect(log))
		admin.Use(csrf)

		h.Dashboard.RegisterAdminRoutes(admin)
		admin.Route("/projects", h.Project.RegisterAdminRoutes)
		admin.Route("/achievements", h.Achievement.RegisterAdminRoutes)
		admin.Route("/certifications", h.Certification.RegisterAdminRoutes)
		admin.Route("/skills", h.Skill.RegisterAdminRoutes)
		admin.Route("/blog", h.Blog.RegisterAdminRoutes)
		admin.Route("/messages", h.Message.RegisterAdminRoutes)
		admin.Route("/settings", h.Setting.RegisterAdminRoutes)
		admin.Route("/media", h.Media.RegisterAdminRoutes)
		admin.Route("/account", h.Account.RegisterRoutes)
		admin.With(middleware.RequireRole(sec.RoleAdmin)).Route("/users", h.Role.RegisterRoutes)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
