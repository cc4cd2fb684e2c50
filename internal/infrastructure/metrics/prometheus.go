package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder exports storefront metrics on its own registry
type Recorder struct {
	registry       *prometheus.Registry
	catalogFetches *prometheus.CounterVec
	catalogPlants  prometheus.Gauge
	cartOperations *prometheus.CounterVec
}

// NewRecorder creates a Recorder with Go runtime and process collectors registered
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		catalogFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plantshop",
			Name:      "catalog_fetch_total",
			Help:      "Catalog loads by source (network, cache) and result (success, failure).",
		}, []string{"source", "result"}),
		catalogPlants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "plantshop",
			Name:      "catalog_plants",
			Help:      "Number of plants in the current catalog snapshot.",
		}),
		cartOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plantshop",
			Name:      "cart_operations_total",
			Help:      "Cart mutations by operation.",
		}, []string{"op"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.catalogFetches,
		r.catalogPlants,
		r.cartOperations,
	)

	return r
}

// CatalogFetched records one catalog load; plants is only used on success
func (r *Recorder) CatalogFetched(source, result string, plants int) {
	r.catalogFetches.WithLabelValues(source, result).Inc()
	if result == "success" {
		r.catalogPlants.Set(float64(plants))
	}
}

// CartOperation records one cart mutation
func (r *Recorder) CartOperation(op string) {
	r.cartOperations.WithLabelValues(op).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
