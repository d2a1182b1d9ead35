package resolver

import (
	weblogicv1alpha1 "github.com/numtide/weblogic-operator/api/v1alpha1"
)

// ResolveReplicas returns the cluster's own replica count when it declares one, otherwise
// the domain-wide default, otherwise zero.
func ResolveReplicas(cluster *weblogicv1alpha1.Cluster, domainDefault *int32) int32 {
	if cluster != nil && cluster.Replicas != nil {
		return *cluster.Replicas
	}
	if domainDefault != nil {
		return *domainDefault
	}
	return 0
}
