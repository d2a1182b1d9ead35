package monitoring

import "time"

// SetDomainShuttingDown sets the shutdown gauge of a Domain.
func SetDomainShuttingDown(name, namespace string, shuttingDown bool) {
	domainShuttingDown.WithLabelValues(name, namespace).Set(boolToFloat(shuttingDown))
}

// SetClusterReplicas sets the effective replica gauge of a cluster.
func SetClusterReplicas(domain, cluster, namespace string, replicas int32) {
	clusterReplicas.WithLabelValues(domain, cluster, namespace).Set(float64(replicas))
}

// SetServerShouldStart sets the start decision gauge of a server. cluster is "" for
// unclustered servers and the admin server.
func SetServerShouldStart(domain, server, cluster, namespace string, shouldStart bool) {
	serverShouldStart.WithLabelValues(domain, server, cluster, namespace).Set(boolToFloat(shouldStart))
}

// ForgetDomain drops every series recorded for a Domain, e.g. after it was deleted or
// a cluster was removed from it.
func ForgetDomain(name, namespace string) {
	domainShuttingDown.DeletePartialMatch(map[string]string{"name": name, "namespace": namespace})
	clusterReplicas.DeletePartialMatch(map[string]string{"domain": name, "namespace": namespace})
	serverShouldStart.DeletePartialMatch(map[string]string{"domain": name, "namespace": namespace})
}

// RecordResolution counts one resolution pass over a Domain.
func RecordResolution(domain, namespace string, err error) {
	resolutionTotal.WithLabelValues(domain, namespace, result(err)).Inc()
}

// RecordWebhookRequest records a webhook admission request's result and duration.
func RecordWebhookRequest(operation, resource string, err error, duration time.Duration) {
	webhookRequestTotal.WithLabelValues(operation, resource, result(err)).Inc()
	webhookRequestDuration.WithLabelValues(operation, resource).Observe(duration.Seconds())
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
