package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tvalert_go/internal/domain"
	"tvalert_go/internal/infra"
)

// Server wires the webhook and liveness endpoints together with the
// middleware stack. The notifier is an injected dependency so tests can
// substitute a fake with the same capability set.
type Server struct {
	cfg       *infra.Config
	notifier  domain.AlertNotifier
	logger    *slog.Logger
	startedAt time.Time
	limiter   *addressLimiter
}

type errorResponse struct {
	Error string `json:"error"`
}

type ackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

// New creates a Server. The notifier must not be nil; when chat delivery is
// disabled the caller passes the permanently not-ready notifier instead.
func New(cfg *infra.Config, notifier domain.AlertNotifier, logger *slog.Logger) *Server {
	return &Server{
		cfg:       cfg,
		notifier:  notifier,
		logger:    logger,
		startedAt: time.Now(),
		limiter:   newAddressLimiter(cfg.Server.RateLimit.WindowSec, cfg.Server.RateLimit.MaxRequests),
	}
}

// Handler returns the full HTTP handler chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook/tradingview", s.routeWebhook)
	mux.HandleFunc("/health", s.routeHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", s.routeNotFound)

	var h http.Handler = mux
	h = s.withBodyLimit(h)
	h = s.withRateLimit(h)
	h = s.withSecurityHeaders(h)
	h = s.withMetrics(h)
	h = s.withRecovery(h)
	return h
}

// Unmatched methods fall through to 404, matching the catch-all contract:
// any other path or method gets the same generic body.
func (s *Server) routeWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.routeNotFound(w, r)
		return
	}
	s.handleWebhook(w, r)
}

func (s *Server) routeHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.routeNotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(s.startedAt).Seconds(),
	})
}

func (s *Server) routeNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "Route not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response", slog.Any("error", err))
	}
}
