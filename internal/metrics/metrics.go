package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg              *prometheus.Registry
	WebhooksReceived prometheus.Counter
	OrdersSynced     prometheus.Counter
	OrdersFailed     prometheus.Counter
	PrintsFailed     prometheus.Counter
	SyncLatencySec   prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	webhooks := prometheus.NewCounter(prometheus.CounterOpts{Name: "cloversync_webhooks_received_total"})
	synced := prometheus.NewCounter(prometheus.CounterOpts{Name: "cloversync_orders_synced_total"})
	failed := prometheus.NewCounter(prometheus.CounterOpts{Name: "cloversync_orders_failed_total"})
	printsFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "cloversync_prints_failed_total"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cloversync_sync_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(webhooks, synced, failed, printsFailed, latency)
	return &Registry{
		reg:              r,
		WebhooksReceived: webhooks,
		OrdersSynced:     synced,
		OrdersFailed:     failed,
		PrintsFailed:     printsFailed,
		SyncLatencySec:   latency,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
