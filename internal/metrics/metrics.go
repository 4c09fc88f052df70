package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the service's Prometheus collectors.
type Registry struct {
	registry  *prometheus.Registry
	downloads *prometheus.CounterVec
	served    prometheus.Counter
}

// NewRegistry creates a registry with the service counters and the
// standard Go runtime collector
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	return &Registry{
		registry: reg,
		downloads: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ytwebhook_downloads_total",
			Help: "Download requests by outcome.",
		}, []string{"outcome"}),
		served: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ytwebhook_files_served_total",
			Help: "Staged files served to clients.",
		}),
	}
}

// ObserveDownload records a finished download request
func (r *Registry) ObserveDownload(outcome string) {
	r.downloads.WithLabelValues(outcome).Inc()
}

// ObserveFileServed records a staged file being served
func (r *Registry) ObserveFileServed() {
	r.served.Inc()
}

// Handler returns the scrape endpoint handler
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
