package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectionsActive      = promauto.NewGauge(prometheus.GaugeOpts{Name: "waygate_connections_active", Help: "Open game client connections"})
	HandshakeFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{Name: "waygate_handshake_failures_total", Help: "Connections that failed before authentication, by stage"}, []string{"stage"})
	RequestsTotal          = promauto.NewCounterVec(prometheus.CounterOpts{Name: "waygate_requests_total", Help: "Dispatched requests by operation and status"}, []string{"operation", "status"})
	RequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{Name: "waygate_request_duration_seconds", Help: "Handler latency by operation", Buckets: prometheus.ExponentialBuckets(0.0005, 2, 16)}, []string{"operation"})
	PushesTotal            = promauto.NewCounterVec(prometheus.CounterOpts{Name: "waygate_pushes_total", Help: "Push deliveries by result"}, []string{"result"})
	BansRejectedTotal      = promauto.NewCounter(prometheus.CounterOpts{Name: "waygate_bans_rejected_total", Help: "Connections refused because the player is banned"})
)
