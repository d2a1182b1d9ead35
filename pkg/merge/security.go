package merge

import (
	"fmt"

	"dario.cat/mergo"
	corev1 "k8s.io/api/core/v1"
)

// PodSecurityContext fills every unset field of specific from general. A nil
// specific adopts a copy of general wholesale.
func PodSecurityContext(specific, general *corev1.PodSecurityContext) *corev1.PodSecurityContext {
	if specific == nil {
		return general.DeepCopy()
	}
	out := specific.DeepCopy()
	if general != nil {
		absorbFields(out, general.DeepCopy())
	}
	return out
}

// SecurityContext fills every unset field of specific from general. Capability
// lists are unioned rather than replaced; see Capabilities.
func SecurityContext(specific, general *corev1.SecurityContext) *corev1.SecurityContext {
	if specific == nil {
		return general.DeepCopy()
	}
	out := specific.DeepCopy()
	if general == nil {
		return out
	}
	absorbFields(out, general.DeepCopy())
	if specific.Capabilities != nil {
		out.Capabilities = Capabilities(specific.Capabilities, general.Capabilities)
	}
	return out
}

// Capabilities adopts general wholesale when specific is nil. Otherwise the add and
// drop lists are each the ordered union of specific then general.
func Capabilities(specific, general *corev1.Capabilities) *corev1.Capabilities {
	if specific == nil {
		return general.DeepCopy()
	}
	if general == nil {
		return specific.DeepCopy()
	}
	return &corev1.Capabilities{
		Add:  Union(specific.Add, general.Add),
		Drop: Union(specific.Drop, general.Drop),
	}
}

// absorbFields sets every nil pointer and empty slice of dst to the matching field
// of src. Non-nil pointers in dst are left alone, even when they point at a zero
// value, so an explicit false or 0 survives.
func absorbFields[T any](dst, src *T) {
	if err := mergo.Merge(dst, src, mergo.WithoutDereference); err != nil {
		// Only reachable on a type mismatch, which T rules out.
		panic(fmt.Sprintf("merge: absorbing %T: %v", src, err))
	}
}
