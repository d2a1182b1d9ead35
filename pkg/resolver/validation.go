package resolver

import (
	"errors"
	"fmt"

	weblogicv1alpha1 "github.com/numtide/weblogic-operator/api/v1alpha1"
)

var (
	// ErrIncompleteDomainDefaults reports a missing required domain-level identity field.
	ErrIncompleteDomainDefaults = errors.New("incomplete domain defaults")

	// ErrInvalidReplicaCount reports a negative replica count.
	ErrInvalidReplicaCount = errors.New("invalid replica count")

	// ErrDuplicateName reports two overrides declared under the same name.
	ErrDuplicateName = errors.New("duplicate name")
)

// ValidateDomainSpec checks the invariants the resolver relies on and returns every violation
// joined into one error, or nil.
func ValidateDomainSpec(spec *weblogicv1alpha1.DomainSpec) error {
	if spec == nil {
		return fmt.Errorf("%w: spec is nil", ErrIncompleteDomainDefaults)
	}

	var errs []error
	required := []struct {
		field string
		ok    bool
	}{
		{"domainUID", spec.DomainUID != ""},
		{"domainName", spec.DomainName != ""},
		{"asName", spec.AsName != ""},
		{"adminSecret.name", spec.AdminSecret.Name != ""},
		{"asPort", spec.AsPort > 0},
	}
	for _, r := range required {
		if !r.ok {
			errs = append(errs, fmt.Errorf("%w: %s is required", ErrIncompleteDomainDefaults, r.field))
		}
	}

	if spec.Replicas != nil && *spec.Replicas < 0 {
		errs = append(errs, fmt.Errorf("%w: spec.replicas is %d", ErrInvalidReplicaCount, *spec.Replicas))
	}

	clusters := make(map[string]bool, len(spec.Clusters))
	for _, c := range spec.Clusters {
		if clusters[c.ClusterName] {
			errs = append(errs, fmt.Errorf("%w: cluster %q", ErrDuplicateName, c.ClusterName))
		}
		clusters[c.ClusterName] = true

		if c.Replicas != nil && *c.Replicas < 0 {
			errs = append(errs, fmt.Errorf("%w: cluster %q has replicas %d",
				ErrInvalidReplicaCount, c.ClusterName, *c.Replicas))
		}
	}

	servers := make(map[string]bool, len(spec.ManagedServers))
	for _, ms := range spec.ManagedServers {
		if servers[ms.ServerName] {
			errs = append(errs, fmt.Errorf("%w: managed server %q", ErrDuplicateName, ms.ServerName))
		}
		servers[ms.ServerName] = true
	}

	return errors.Join(errs...)
}

// StartPolicyWarnings lists declared start policies that are accepted but have no effect.
// ADMIN_ONLY is only meaningful on the domain and on the admin server.
func StartPolicyWarnings(spec *weblogicv1alpha1.DomainSpec) []string {
	if spec == nil {
		return nil
	}
	var warnings []string
	for _, c := range spec.Clusters {
		if c.ServerStartPolicy == weblogicv1alpha1.ServerStartPolicyAdminOnly {
			warnings = append(warnings, fmt.Sprintf(
				"cluster %q: serverStartPolicy ADMIN_ONLY has no effect on a cluster", c.ClusterName))
		}
	}
	for _, ms := range spec.ManagedServers {
		if ms.ServerStartPolicy == weblogicv1alpha1.ServerStartPolicyAdminOnly {
			warnings = append(warnings, fmt.Sprintf(
				"managed server %q: serverStartPolicy ADMIN_ONLY has no effect on a managed server", ms.ServerName))
		}
	}
	return warnings
}
