package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/trigger/internal/dashboard/service"
	"github.com/aussiebroadwan/trigger/internal/dashboard/store"
	"github.com/aussiebroadwan/trigger/pkg/httpx"
	"github.com/aussiebroadwan/trigger/pkg/slogx"
	"github.com/aussiebroadwan/trigger/pkg/triggersdk"

	_ "github.com/aussiebroadwan/trigger/api/dashboard" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// uploadOverhead is added to the file limit to leave room for the other
// multipart fields and boundaries.
const uploadOverhead = 64 << 10

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion   string
	startTime      time.Time
	logger         *slog.Logger
	accessToken    string
	maxUploadBytes int64
	strict         httpx.RateLimit
	lenient        httpx.RateLimit
	trustProxy     bool

	store              store.Store
	Client             *triggersdk.Client
	RemediationService *service.RemediationService
}

// RouterOptions configure the operator surface.
type RouterOptions struct {
	BuildVersion string

	// AccessToken guards /v1/*. Empty leaves the API open.
	AccessToken string

	// MaxUploadBytes bounds CSV uploads. Zero means 10 MiB.
	MaxUploadBytes int64

	// StrictLimit applies to calls that reach the trigger API and
	// LenientLimit to local reads. Invalid values fall back to the httpx
	// profiles of the same name.
	StrictLimit  httpx.RateLimit
	LenientLimit httpx.RateLimit

	// TrustProxy keys rate limits on X-Forwarded-For / X-Real-IP.
	TrustProxy bool
}

func NewRouter(st store.Store, logger *slog.Logger, opts RouterOptions) *Router {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if !opts.StrictLimit.Valid() {
		opts.StrictLimit = httpx.StrictLimit
	}
	if !opts.LenientLimit.Valid() {
		opts.LenientLimit = httpx.LenientLimit
	}

	r := &Router{
		Mux:            http.NewServeMux(),
		buildVersion:   opts.BuildVersion,
		startTime:      time.Now(),
		logger:         logger,
		accessToken:    opts.AccessToken,
		maxUploadBytes: opts.MaxUploadBytes,
		strict:         opts.StrictLimit,
		lenient:        opts.LenientLimit,
		trustProxy:     opts.TrustProxy,
		store:          st,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerConfig()
	r.registerToken()
	r.registerRefresh()
	r.registerProperties()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Refresh Trigger Dashboard API
//	@version		0.1.0
//	@description	Operator API for the refresh trigger remediation service: manage the API configuration,
//	@description	generate signed access tokens and upload CSV files that add or stop refresh triggers.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/trigger
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Static operator token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured applies the operator guard followed by a rate limit.
func (r *Router) secured(h http.Handler, limit httpx.RateLimit, extra ...httpx.Middleware) http.Handler {
	mws := append([]httpx.Middleware{
		httpx.RequireBearerToken(r.accessToken),
		httpx.RateLimitByOperator(limit, r.trustProxy),
	}, extra...)
	return httpx.Chain(h, mws...)
}

func (r *Router) registerConfig() {
	h := &ConfigHandler{Client: r.Client}

	r.Mux.Handle("GET /v1/config", r.secured(http.HandlerFunc(h.HandleGet), r.lenient))

	// PUT rewrites credentials, so it shares the strict budget
	r.Mux.Handle("PUT /v1/config", r.secured(http.HandlerFunc(h.HandlePut), r.strict,
		httpx.MaxBytes(64<<10),
	))
}

func (r *Router) registerToken() {
	h := &TokenHandler{Client: r.Client}

	// POST /token - strict, every call reaches the token endpoint
	r.Mux.Handle("POST /v1/token", r.secured(http.HandlerFunc(h.HandleGenerate), r.strict))
	r.Mux.Handle("GET /v1/token/status", r.secured(http.HandlerFunc(h.HandleStatus), r.lenient))
}

func (r *Router) registerRefresh() {
	h := &RefreshHandler{RemediationService: r.RemediationService}
	bodyLimit := httpx.MaxBytes(r.maxUploadBytes + uploadOverhead)

	r.Mux.Handle("POST /v1/refresh/add", r.secured(http.HandlerFunc(h.HandleAdd), r.strict, bodyLimit))
	r.Mux.Handle("POST /v1/refresh/stop", r.secured(http.HandlerFunc(h.HandleStop), r.strict, bodyLimit))
	r.Mux.Handle("GET /v1/submissions", r.secured(SubmissionsHandler(r.RemediationService), r.lenient))
}

func (r *Router) registerProperties() {
	r.Mux.Handle("GET /v1/properties", r.secured(PropertiesHandler(r.Client), r.lenient))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.lenient, r.trustProxy),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.lenient, r.trustProxy),
		),
	)
}
