package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/domain"
	"github.com/aussiebroadwan/hireproof/internal/verify/metrics"
	"github.com/aussiebroadwan/hireproof/internal/verify/service"
	"github.com/aussiebroadwan/hireproof/internal/verify/store"
	"github.com/aussiebroadwan/hireproof/pkg/httpx"
	"github.com/aussiebroadwan/hireproof/pkg/jwtx"
	"github.com/aussiebroadwan/hireproof/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/aussiebroadwan/hireproof/api/verify" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store
	gatherer     prometheus.Gatherer

	// Challenges is probed by /readyz when MFA challenges live outside
	// the database.
	Challenges Pinger

	UserService         *service.UserService
	SessionService      *service.SessionService
	MFAService          *service.MFAService
	UploadService       *service.UploadService
	VerificationService *service.VerificationService
	ReviewService       *service.ReviewService
	AuditService        *service.AuditService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		gatherer:     gatherer,
		logger:       logger,
	}

	// slogx copies the request, so metrics has to run after it to see the
	// pattern set by the mux.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		metricsMiddleware(m),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUploads()
	r.registerVerification()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			HireProof Identity Verification API
//	@version		0.1.0
//	@description	Identity verification for a hiring platform: presigned document uploads, a single-flight
//	@description	verification request per user, and an MFA-gated, audited admin review queue.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/hireproof
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
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		Users:    r.UserService,
		Sessions: r.SessionService,
		MFA:      r.MFAService,
	}

	// Unauthenticated credential endpoints - strict rate limit by IP
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// MFA endpoints - admin password session, strict limit against code guessing
	mfa := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(string(domain.RoleAdmin)),
			httpx.RateLimitByUser(httpx.StrictLimit),
		)
	}
	r.Mux.Handle("POST /auth/mfa/verify", mfa(h.HandleMFAVerify))
	r.Mux.Handle("POST /auth/mfa/resend", mfa(h.HandleMFAResend))
}

func (r *Router) registerUploads() {
	h := &UploadHandler{Uploads: r.UploadService}

	r.Mux.Handle("POST /upload/presign",
		httpx.Chain(http.HandlerFunc(h.HandlePresign),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerVerification() {
	h := &VerificationHandler{Verifications: r.VerificationService}

	// Submissions are rate limited per user on top of the single-pending rule
	r.Mux.Handle("POST /verify-id",
		httpx.Chain(http.HandlerFunc(h.HandleSubmit),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /verify-id",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{
		Verifications: r.VerificationService,
		Reviews:       r.ReviewService,
		Audit:         r.AuditService,
	}

	admin := func(fn http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAdminMFA(string(domain.RoleAdmin), jwtx.AMRMFA),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("GET /admin/verifications", admin(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("GET /admin/verifications/{id}", admin(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("POST /admin/verifications/{id}/review", admin(h.HandleReview, httpx.ModerateLimit))
	r.Mux.Handle("POST /admin/users/{id}/suspend", admin(h.HandleSuspend, httpx.ModerateLimit))
	r.Mux.Handle("POST /admin/users/{id}/activate", admin(h.HandleActivate, httpx.ModerateLimit))
	r.Mux.Handle("GET /admin/audit-logs", admin(h.HandleAuditLogs, httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	// Probes and scrapes are not rate limited; they come from the orchestrator
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.Challenges))
	r.Mux.Handle("GET /metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))
}
