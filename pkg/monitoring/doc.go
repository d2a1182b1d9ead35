// Package monitoring provides Prometheus metrics, recording helpers and tracing for
// the WebLogic Operator. It exposes domain-specific gauges and counters that
// complement the generic controller-runtime metrics already registered by the
// framework.
//
// All metrics follow the naming convention weblogic_operator_<metric>_<unit>
// and are registered against controller-runtime's default Prometheus registry
// on import.
//
// Usage in controllers:
//
//	monitoring.SetDomainShuttingDown(domain.Name, domain.Namespace, f.IsShuttingDown())
//	monitoring.SetClusterReplicas(domain.Name, "cluster-1", domain.Namespace, f.GetReplicaCount("cluster-1"))
//
// Usage in webhooks:
//
//	monitoring.RecordWebhookRequest("CREATE", "Domain", err, elapsed)
package monitoring
