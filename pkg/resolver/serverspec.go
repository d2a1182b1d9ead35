package resolver

import (
	"maps"
	"slices"

	corev1 "k8s.io/api/core/v1"

	weblogicv1alpha1 "github.com/numtide/weblogic-operator/api/v1alpha1"
)

// ServerSpec is the effective, read-only configuration of a single server. It is computed
// once by the Factory and never changes afterwards; every getter returns a copy.
type ServerSpec struct {
	serverName  string
	clusterName string
	admin       bool

	pod          *weblogicv1alpha1.ServerPod
	startPolicy  weblogicv1alpha1.ServerStartPolicy
	domainPolicy weblogicv1alpha1.ServerStartPolicy
	clusterLimit *int32

	image            string
	imagePullPolicy  corev1.PullPolicy
	imagePullSecrets []corev1.LocalObjectReference
}

// ServerName is the name the spec was resolved for.
func (s *ServerSpec) ServerName() string { return s.serverName }

// ClusterName is the cluster the spec was resolved against, or "".
func (s *ServerSpec) ClusterName() string { return s.clusterName }

// IsAdminServer reports whether this is the admin server spec.
func (s *ServerSpec) IsAdminServer() bool { return s.admin }

// ServerPod returns a deep copy of the fully resolved pod template.
func (s *ServerSpec) ServerPod() *weblogicv1alpha1.ServerPod { return s.pod.DeepCopy() }

// StartPolicy is the most specific declared start policy, or IF_NEEDED.
func (s *ServerSpec) StartPolicy() weblogicv1alpha1.ServerStartPolicy { return s.startPolicy }

// ClusterLimit is the replica count of the server's cluster, or nil for unclustered servers.
func (s *ServerSpec) ClusterLimit() *int32 {
	if s.clusterLimit == nil {
		return nil
	}
	v := *s.clusterLimit
	return &v
}

// ShouldStart reports whether the server is expected to be running, given how many members of
// its cluster are already running.
func (s *ServerSpec) ShouldStart(currentReplicas int32) bool {
	if s.domainPolicy == weblogicv1alpha1.ServerStartPolicyNever {
		return false
	}
	if s.admin {
		return s.startPolicy != weblogicv1alpha1.ServerStartPolicyNever
	}
	if s.domainPolicy == weblogicv1alpha1.ServerStartPolicyAdminOnly {
		return false
	}

	switch s.startPolicy {
	case weblogicv1alpha1.ServerStartPolicyAlways:
		return true
	case weblogicv1alpha1.ServerStartPolicyIfNeeded:
		return s.clusterLimit == nil || currentReplicas < *s.clusterLimit
	default:
		return false
	}
}

// Image is the domain image the server runs.
func (s *ServerSpec) Image() string { return s.image }

// ImagePullPolicy is the declared pull policy, or the one derived from the image tag.
func (s *ServerSpec) ImagePullPolicy() corev1.PullPolicy { return s.imagePullPolicy }

// ImagePullSecrets returns a copy of the domain image pull secrets.
func (s *ServerSpec) ImagePullSecrets() []corev1.LocalObjectReference {
	return slices.Clone(s.imagePullSecrets)
}

// Env is the resolved container environment.
func (s *ServerSpec) Env() []corev1.EnvVar { return s.ServerPod().Env }

// LivenessProbe is the resolved liveness probe tuning.
func (s *ServerSpec) LivenessProbe() weblogicv1alpha1.ProbeTuning { return s.ServerPod().LivenessProbe }

// ReadinessProbe is the resolved readiness probe tuning.
func (s *ServerSpec) ReadinessProbe() weblogicv1alpha1.ProbeTuning {
	return s.ServerPod().ReadinessProbe
}

// NodeSelector returns a copy of the resolved node selector.
func (s *ServerSpec) NodeSelector() map[string]string { return maps.Clone(s.pod.NodeSelector) }

// Resources returns a copy of the resolved resource requests and limits.
func (s *ServerSpec) Resources() corev1.ResourceRequirements { return *s.pod.Resources.DeepCopy() }

// PodLabels returns a copy of the labels added to the server pod.
func (s *ServerSpec) PodLabels() map[string]string { return maps.Clone(s.pod.PodLabels) }

// PodAnnotations returns a copy of the annotations added to the server pod.
func (s *ServerSpec) PodAnnotations() map[string]string { return maps.Clone(s.pod.PodAnnotations) }

// ServiceLabels returns a copy of the labels added to the server service.
func (s *ServerSpec) ServiceLabels() map[string]string { return maps.Clone(s.pod.ServiceLabels) }

// ServiceAnnotations returns a copy of the annotations added to the server service.
func (s *ServerSpec) ServiceAnnotations() map[string]string {
	return maps.Clone(s.pod.ServiceAnnotations)
}

// AdditionalVolumes are the volumes declared on top of the ones the operator always mounts.
func (s *ServerSpec) AdditionalVolumes() []corev1.Volume { return s.ServerPod().Volumes }

// AdditionalVolumeMounts are the mounts declared on top of the ones the operator always mounts.
func (s *ServerSpec) AdditionalVolumeMounts() []corev1.VolumeMount { return s.ServerPod().VolumeMounts }

// PodSecurityContext returns a copy of the resolved pod security context, or nil.
func (s *ServerSpec) PodSecurityContext() *corev1.PodSecurityContext {
	return s.pod.PodSecurityContext.DeepCopy()
}

// ContainerSecurityContext returns a copy of the resolved container security context, or nil.
func (s *ServerSpec) ContainerSecurityContext() *corev1.SecurityContext {
	return s.pod.ContainerSecurityContext.DeepCopy()
}
