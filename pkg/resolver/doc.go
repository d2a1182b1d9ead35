// Package resolver provides the central logic for calculating the "Effective Specification" of a
// single WebLogic server.
//
// In the WebLogic Operator, a server's configuration can come from three levels of a Domain:
//  1. Server Overrides (spec.managedServers[] or spec.adminServer).
//  2. Cluster Overrides (spec.clusters[], only for members of that cluster).
//  3. Domain Defaults (spec.serverPod, spec.serverStartPolicy, spec.replicas).
//
// The Resolver is the single source of truth for determining the final configuration. The
// Reconciler, the Webhook and the offline CLI all call into it, so they always agree.
//
// # Logic Hierarchy
//
// When calculating the final configuration for a server, the following precedence applies
// (highest to lowest):
//
//  1. Server Override (only for the fields it actually sets).
//  2. Cluster Override (only for the fields it actually sets).
//  3. Domain Defaults.
//  4. Hardcoded Defaults (IF_NEEDED start policy, zero replicas, the default image).
//
// A more general level only ever fills gaps. It never overwrites a value that a more specific
// level provided, and keyed lists (env, volumes, volume mounts) never end up with two entries of
// the same name. See package merge for the per-shape rules.
//
// # Purity
//
// Resolution is a pure function of the DomainSpec: nothing here talks to the API server, and
// no read path modifies its input. The one write path, Factory.SetReplicaCount, is named as
// such and serialized against reads.
//
// Usage:
//
//	f := resolver.NewFactory(&domain.Spec)
//
//	// Effective configuration for a clustered managed server
//	spec := f.GetServerSpec("ms1", "cluster-1")
//	if spec.ShouldStart(running) {
//	    // build the pod from spec.ServerPod()
//	}
//
//	// Whole-domain shutdown signal
//	if f.IsShuttingDown() {
//	    // ...
//	}
package resolver
