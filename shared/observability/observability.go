package observability

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
)

// storeOps counts load/save cycles per persisted collection. Every store
// mutation is a whole-collection rewrite, so this doubles as a write
// amplification signal.
var storeOps = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "character_studio_store_operations_total",
		Help: "Collection load/save operations by collection and operation.",
	},
	[]string{"collection", "operation"},
)

func init() {
	prometheus.MustRegister(storeOps)
}

// CountStoreOp records one load or save of a collection.
func CountStoreOp(collection, operation string) {
	storeOps.WithLabelValues(collection, operation).Inc()
}

// SetupPrometheusMetrics initializes the Prometheus metrics exporter and
// exposes the /metrics endpoint on the given port.
func SetupPrometheusMetrics(port string) *metric.MeterProvider {
	exp, err := otelprom.New()
	if err != nil {
		log.Fatalf("failed to initialize prometheus exporter: %v", err)
	}
	mp := metric.NewMeterProvider(metric.WithReader(exp))
	otel.SetMeterProvider(mp)
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		_ = http.ListenAndServe(":"+port, mux)
	}()
	return mp
}
