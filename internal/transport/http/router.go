package http

import (
	"context"
	"net/http"
	"time"

	"github.com/bidhub-api/internal/application/account"
	"github.com/bidhub-api/internal/application/admin"
	"github.com/bidhub-api/internal/application/guard"
	"github.com/bidhub-api/internal/application/session"
	"github.com/bidhub-api/internal/config"
	"github.com/bidhub-api/internal/domain"
	jwtinfra "github.com/bidhub-api/internal/infrastructure/jwt"
	"github.com/bidhub-api/internal/transport/http/handler"
	appmiddleware "github.com/bidhub-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AccountRepo AccountRepository
	UserRepo    UserRepository
	SessionRepo SessionRepository
	JWTProvider *jwtinfra.Provider
	Toasts      ToastQueue
	Routes      *guard.Table
	Shell       handler.ShellSource // nil serves the built-in page
	Logger      zerolog.Logger
}

// NewRouter builds and returns the application router. ctx bounds background
// work owned by the router, such as rate-limiter cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(hlog.NewHandler(deps.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	}))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Client-Info", "Apikey"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10, on the unauthenticated write endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(5), 10)

	accountSvc := account.NewService(deps.AccountRepo, 0)
	sessionSvc := session.NewService(session.ServiceDeps{
		Accounts:    accountSvc,
		SessionRepo: deps.SessionRepo,
		UserRepo:    deps.UserRepo,
		Tokens:      deps.JWTProvider,
		TTL:         cfg.JWTExpiry,
	})
	adminLogger := deps.Logger.With().Str("component", "admin").Logger()
	adminSvc := admin.NewService(admin.ServiceDeps{
		Users:    deps.UserRepo,
		Accounts: accountSvc,
		Admin:    cfg.Admin,
		Logger:   &adminLogger,
	})

	authMw := appmiddleware.Auth(sessionSvc)

	healthH := handler.NewHealthHandler()
	sessionH := handler.NewSessionHandler(sessionSvc, cfg.CookieSecure)
	toastH := handler.NewToastHandler(deps.Toasts)
	adminH := handler.NewAdminHandler(adminSvc, deps.Toasts)
	pagesH := handler.NewPagesHandler(deps.Routes, deps.Shell)

	r.Route("/v1", func(r chi.Router) {
		r.NotFound(handler.NotFound)

		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)
		r.With(sensitiveRL.Limit).Post("/init-admin", adminH.InitAdmin)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/sessions", sessionH.GetCurrent)
			r.Post("/sessions/logout", sessionH.Logout)

			r.Get("/toasts", toastH.List)
			r.Get("/toasts/stream", toastH.Stream)

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin, domain.RoleUser))

				r.Post("/toasts", toastH.Create)
				r.Delete("/toasts/{id}", toastH.Dismiss)
			})
		})
	})

	// ── Pages (route guard) ──────────────────────────────────────────────────
	// Every other path is a page navigation; unknown pages 404 after the guard.
	r.Group(func(r chi.Router) {
		r.Use(appmiddleware.RouteGuard(deps.Routes, sessionSvc))
		r.NotFound(pagesH.Serve)
	})

	return r
}
