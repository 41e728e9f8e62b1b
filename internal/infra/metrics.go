package infra

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequests counts every HTTP request by route and status code.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP requests by route and status"},
		[]string{"route", "status"},
	)

	// AlertsAccepted counts validated, authenticated alerts by action.
	AlertsAccepted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "alerts_accepted_total", Help: "Alerts accepted for delivery, by action"},
		[]string{"action"},
	)

	// AlertsRejected counts rejected webhooks by reason (shape, secret).
	AlertsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "alerts_rejected_total", Help: "Rejected webhook payloads, by reason"},
		[]string{"reason"},
	)

	// DiscordSends counts Discord delivery attempts by outcome.
	DiscordSends = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "discord_sends_total", Help: "Discord delivery attempts by outcome"},
		[]string{"outcome"},
	)

	// RateLimited counts requests dropped by the per-address rate limiter.
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "rate_limited_total", Help: "Requests rejected by the rate limiter"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, AlertsAccepted, AlertsRejected, DiscordSends, RateLimited)
}
