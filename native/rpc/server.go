// Package rpc exposes the protocol's World as a read-mostly HTTP+WebSocket
// API: vault health, stability pool levels, savings totals, and oracle
// freshness for anyone to poll or subscribe to, plus a narrow bearer-token
// gated admin surface (module pause, ledger export) for operators.
package rpc

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/covenant-finance/covenant/native/ledger"
	"github.com/covenant-finance/covenant/native/storage"
)

// Config groups a Server's dependencies.
type Config struct {
	Store       *storage.Store
	LedgerLog   *ledger.Log
	QuotaStore  *QuotaStore
	ExportDir   string
	JWTSecret   string
	JWTIssuer   string
	ReadRateQPS float64
	ReadBurst   int
}

// Server holds the protocol's read and admin HTTP surface.
type Server struct {
	store      *storage.Store
	ledgerLog  *ledger.Log
	quotaStore *QuotaStore
	pauses     *PauseRegistry
	exportDir  string
	auth       *Authenticator
	rateLimit  *RateLimiter
}

// New builds a Server and its chi router, wrapped with OpenTelemetry HTTP
// instrumentation.
func New(cfg Config) (*Server, http.Handler) {
	qps := cfg.ReadRateQPS
	if qps <= 0 {
		qps = 20
	}
	burst := cfg.ReadBurst
	if burst <= 0 {
		burst = 40
	}
	s := &Server{
		store:      cfg.Store,
		ledgerLog:  cfg.LedgerLog,
		quotaStore: cfg.QuotaStore,
		pauses:     NewPauseRegistry(),
		exportDir:  cfg.ExportDir,
		auth:       NewAuthenticator(cfg.JWTSecret, cfg.JWTIssuer),
		rateLimit:  NewRateLimiter(qps, burst),
	}

	r := chi.NewRouter()
	r.Use(metricsMiddleware)
	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", handleMetrics())

	r.Group(func(pub chi.Router) {
		pub.Use(s.rateLimit.Middleware)
		pub.Get("/world", s.handleWorld)
		pub.Get("/vaults/{owner}", s.handleVault)
		pub.Get("/stability/{mint}", s.handleStabilityPool)
		pub.Get("/savings/{owner}", s.handleSavings)
		pub.Get("/collateral/{mint}", s.handleCollateral)
		pub.Get("/stream/{action}", s.handleStreamAction)
	})

	r.Group(func(admin chi.Router) {
		admin.Use(s.auth.Middleware)
		admin.Post("/admin/modules/{module}/pause", s.handlePauseModule)
		admin.Post("/admin/export/{action}", s.handleExportAction)
	})

	return s, otelhttp.NewHandler(r, "covenant-rpc")
}
