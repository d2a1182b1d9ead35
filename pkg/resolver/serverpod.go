package resolver

import (
	weblogicv1alpha1 "github.com/numtide/weblogic-operator/api/v1alpha1"
	"github.com/numtide/weblogic-operator/pkg/merge"
)

// ResolveServerPod returns a fresh ServerPod holding everything specific set, with the
// remaining gaps filled from general. Either argument may be nil, which is treated as a
// template with nothing set. Neither argument is modified.
//
// Resolving a template that already sets every field returns an equal template, and
// ResolveServerPod(p, p) is equal to p.
func ResolveServerPod(specific, general *weblogicv1alpha1.ServerPod) *weblogicv1alpha1.ServerPod {
	out := specific.DeepCopy()
	if out == nil {
		out = &weblogicv1alpha1.ServerPod{}
	}
	if general == nil {
		return out
	}

	// Safety: everything adopted from general below must not alias the caller's object.
	g := general.DeepCopy()

	out.Env = merge.EnvVars(out.Env, g.Env)
	out.LivenessProbe = resolveProbeTuning(out.LivenessProbe, g.LivenessProbe)
	out.ReadinessProbe = resolveProbeTuning(out.ReadinessProbe, g.ReadinessProbe)
	out.Volumes = merge.Volumes(out.Volumes, g.Volumes)
	out.VolumeMounts = merge.VolumeMounts(out.VolumeMounts, g.VolumeMounts)
	out.PodLabels = merge.Map(out.PodLabels, g.PodLabels)
	out.PodAnnotations = merge.Map(out.PodAnnotations, g.PodAnnotations)
	out.ServiceLabels = merge.Map(out.ServiceLabels, g.ServiceLabels)
	out.ServiceAnnotations = merge.Map(out.ServiceAnnotations, g.ServiceAnnotations)
	out.NodeSelector = merge.Map(out.NodeSelector, g.NodeSelector)
	out.Resources = merge.ResourceRequirements(out.Resources, g.Resources)
	out.PodSecurityContext = merge.PodSecurityContext(out.PodSecurityContext, g.PodSecurityContext)
	out.ContainerSecurityContext = merge.SecurityContext(out.ContainerSecurityContext, g.ContainerSecurityContext)

	return out
}

// FoldServerPods resolves the given levels ordered from most specific to most general,
// e.g. FoldServerPods(server, cluster, domain). Nil levels are skipped over. The result is
// never nil.
func FoldServerPods(levels ...*weblogicv1alpha1.ServerPod) *weblogicv1alpha1.ServerPod {
	var acc *weblogicv1alpha1.ServerPod
	for i := len(levels) - 1; i >= 0; i-- {
		acc = ResolveServerPod(levels[i], acc)
	}
	if acc == nil {
		return &weblogicv1alpha1.ServerPod{}
	}
	return acc
}

func resolveProbeTuning(specific, general weblogicv1alpha1.ProbeTuning) weblogicv1alpha1.ProbeTuning {
	return weblogicv1alpha1.ProbeTuning{
		InitialDelaySeconds: merge.Value(specific.InitialDelaySeconds, general.InitialDelaySeconds),
		TimeoutSeconds:      merge.Value(specific.TimeoutSeconds, general.TimeoutSeconds),
		PeriodSeconds:       merge.Value(specific.PeriodSeconds, general.PeriodSeconds),
	}
}
