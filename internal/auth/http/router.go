// Package http wires the authentication service's handlers, middleware,
// and routes onto a single http.Handler.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lunamart/lunamart/internal/auth/service"
	"github.com/lunamart/lunamart/internal/auth/store"
	"github.com/lunamart/lunamart/pkg/httpx"
	"github.com/lunamart/lunamart/pkg/slogx"

	_ "github.com/lunamart/lunamart/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	SessionService *service.SessionService
	ResetService   *service.ResetService
	UserService    *service.UserService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSessions()
	r.registerReset()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			LunaMart Authentication Service API
//	@version		0.1.0
//	@description	Authentication and session-token lifecycle service for the LunaMart
//	@description	storefront: signup, login, silent access-token refresh, and the
//	@description	OTP-gated password-reset flow.
//	@description
//	@description				Access and refresh tokens are HS256 JWTs signed with independent secrets.
//
//	@contact.name				LunaMart Platform Team
//	@contact.url				https://github.com/lunamart/lunamart
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSessions() {
	// POST /signup - strict rate limit by IP (account creation)
	r.Mux.Handle("POST /v1/auth/signup",
		httpx.Chain(&SignupHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login - strict rate limit by IP (credential guessing surface)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(&LoginHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /logout - moderate limit; deliberately outside the gate so a
	// dead token can still log out cleanly
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(&LogoutHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /check-auth-status - polled by UIs, lenient limit, no gate
	r.Mux.Handle("GET /v1/auth/check-auth-status",
		httpx.Chain(&AuthStatusHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /change-password - behind the gate, moderate limit by user
	r.Mux.Handle("POST /v1/auth/change-password",
		httpx.Chain(&ChangePasswordHandler{SessionService: r.SessionService},
			AuthMiddleware(r.SessionService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerReset() {
	// The whole reset flow is unauthenticated and brute-forceable, so
	// every step sits behind the strict per-IP limit.
	r.Mux.Handle("POST /v1/auth/forgot-password",
		httpx.Chain(&ForgotPasswordHandler{ResetService: r.ResetService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/verify-otp",
		httpx.Chain(&VerifyOtpHandler{ResetService: r.ResetService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/reset-password",
		httpx.Chain(&ResetPasswordHandler{ResetService: r.ResetService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	// GET /admin/users - gate first, then the admin claim check
	r.Mux.Handle("GET /v1/admin/users",
		httpx.Chain(&AdminUsersHandler{UserService: r.UserService},
			AuthMiddleware(r.SessionService),
			RequireAdmin(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
