package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

// Domain-specific metric collectors.
//
// These complement the generic controller-runtime metrics (reconcile counts,
// durations, work queue depth, etc.) with the effective configuration the
// resolver computed, which the framework cannot know about.
var (
	domainShuttingDown = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "weblogic_operator_domain_shutting_down",
			Help: "1 when the whole domain is being shut down, 0 otherwise.",
		},
		[]string{"name", "namespace"},
	)

	clusterReplicas = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "weblogic_operator_cluster_replicas",
			Help: "Effective replica count of a WebLogic cluster.",
		},
		[]string{"domain", "cluster", "namespace"},
	)

	serverShouldStart = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "weblogic_operator_server_should_start",
			Help: "1 when the server is expected to be running, 0 otherwise.",
		},
		[]string{"domain", "server", "cluster", "namespace"},
	)

	resolutionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weblogic_operator_resolution_total",
			Help: "Total number of effective configuration resolutions per domain.",
		},
		[]string{"domain", "namespace", "result"},
	)

	webhookRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weblogic_operator_webhook_request_total",
			Help: "Total number of webhook admission requests.",
		},
		[]string{"operation", "resource", "result"},
	)

	webhookRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weblogic_operator_webhook_request_duration_seconds",
			Help:    "Latency of webhook admission handling in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "resource"},
	)
)

func init() {
	metrics.Registry.MustRegister(Collectors()...)
}

// Collectors returns all registered metric collectors. This is useful for
// testing that metrics are properly registered.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		domainShuttingDown,
		clusterReplicas,
		serverShouldStart,
		resolutionTotal,
		webhookRequestTotal,
		webhookRequestDuration,
	}
}
