package resolver

import (
	weblogicv1alpha1 "github.com/numtide/weblogic-operator/api/v1alpha1"
)

const (
	// DefaultServerStartPolicy applies when no level of the domain declares a start policy.
	DefaultServerStartPolicy = weblogicv1alpha1.ServerStartPolicyIfNeeded

	// DefaultReplicas is the replica count of a cluster when neither the cluster nor the domain declares one.
	DefaultReplicas int32 = 0

	// DefaultReplicaLimit is the replica limit reported for unclustered servers.
	DefaultReplicaLimit int32 = 0
)

// PopulateDomainDefaults writes the implicit domain-wide defaults into spec so that they are
// visible on the stored object. Fields that are already set are left alone.
//
// Only the domain level is touched: cluster and server overrides keep inheriting from it.
func PopulateDomainDefaults(spec *weblogicv1alpha1.DomainSpec) {
	if spec == nil {
		return
	}
	if spec.ServerStartPolicy == "" {
		spec.ServerStartPolicy = DefaultServerStartPolicy
	}
	// Pull policy derives from the image, so it must be computed first.
	if spec.ImagePullPolicy == "" {
		spec.ImagePullPolicy = spec.EffectiveImagePullPolicy()
	}
	if spec.Image == "" {
		spec.Image = weblogicv1alpha1.DefaultImage
	}
}
