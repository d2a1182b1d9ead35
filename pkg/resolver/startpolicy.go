package resolver

import (
	weblogicv1alpha1 "github.com/numtide/weblogic-operator/api/v1alpha1"
	"github.com/numtide/weblogic-operator/pkg/merge"
)

// ResolveStartPolicy returns the most specific declared start policy, or IF_NEEDED when
// no level declares one.
func ResolveStartPolicy(
	server, cluster, domain weblogicv1alpha1.ServerStartPolicy,
) weblogicv1alpha1.ServerStartPolicy {
	return merge.String(server, merge.String(cluster, merge.String(domain, DefaultServerStartPolicy)))
}
