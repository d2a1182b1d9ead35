/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	corev1 "k8s.io/api/core/v1"
)

// ============================================================================
// Shared Configuration Structs
// ============================================================================
//
// These structs appear at every override level (Domain, Cluster, ManagedServer,
// AdminServer) so that a more specific level can fill in only what it needs.

// ServerStartPolicy declares whether a server should be running.
// +kubebuilder:validation:Enum=NEVER;IF_NEEDED;ADMIN_ONLY;ALWAYS
type ServerStartPolicy string

const (
	// ServerStartPolicyNever keeps the server (or the whole domain) shut down.
	ServerStartPolicyNever ServerStartPolicy = "NEVER"
	// ServerStartPolicyIfNeeded starts the server when its cluster needs more replicas.
	ServerStartPolicyIfNeeded ServerStartPolicy = "IF_NEEDED"
	// ServerStartPolicyAdminOnly starts only the admin server. Only meaningful at domain level.
	ServerStartPolicyAdminOnly ServerStartPolicy = "ADMIN_ONLY"
	// ServerStartPolicyAlways starts the server regardless of cluster sizing.
	ServerStartPolicyAlways ServerStartPolicy = "ALWAYS"
)

// ProbeTuning holds the tunables of a liveness or readiness probe.
// Any value left unset defaults to the value of a more general level.
type ProbeTuning struct {
	// InitialDelaySeconds is the number of seconds before the probe is first run.
	// +kubebuilder:validation:Minimum=0
	// +optional
	InitialDelaySeconds *int32 `json:"initialDelaySeconds,omitempty"`

	// TimeoutSeconds is the number of seconds after which the probe times out.
	// +kubebuilder:validation:Minimum=1
	// +optional
	TimeoutSeconds *int32 `json:"timeoutSeconds,omitempty"`

	// PeriodSeconds is how often to perform the probe.
	// +kubebuilder:validation:Minimum=1
	// +optional
	PeriodSeconds *int32 `json:"periodSeconds,omitempty"`
}

// ServerPod describes the pod-level settings of a server. It is the unit that is
// merged across override levels.
type ServerPod struct {
	// Env is a list of environment variables to add to a server.
	// +optional
	// +listType=map
	// +listMapKey=name
	Env []corev1.EnvVar `json:"env,omitempty"`

	// LivenessProbe tunes the liveness probe associated with a server.
	// +optional
	LivenessProbe ProbeTuning `json:"livenessProbe,omitempty"`

	// ReadinessProbe tunes the readiness probe associated with a server.
	// +optional
	ReadinessProbe ProbeTuning `json:"readinessProbe,omitempty"`

	// NodeSelector must match a node's labels for the pod to be scheduled on that node.
	// +optional
	NodeSelector map[string]string `json:"nodeSelector,omitempty"`

	// Resources holds memory and cpu minimum requirements and limits for the server.
	// +optional
	Resources corev1.ResourceRequirements `json:"resources,omitempty"`

	// PodSecurityContext holds pod-level security attributes.
	// +optional
	PodSecurityContext *corev1.PodSecurityContext `json:"podSecurityContext,omitempty"`

	// ContainerSecurityContext holds container-level security attributes.
	// Values here take precedence over matching pod-level attributes.
	// +optional
	ContainerSecurityContext *corev1.SecurityContext `json:"containerSecurityContext,omitempty"`

	// Volumes are additional volumes to be created in the server pod.
	// +optional
	// +listType=map
	// +listMapKey=name
	Volumes []corev1.Volume `json:"volumes,omitempty"`

	// VolumeMounts are additional volume mounts for the server pod.
	// +optional
	// +listType=map
	// +listMapKey=name
	VolumeMounts []corev1.VolumeMount `json:"volumeMounts,omitempty"`

	// PodLabels are labels applied to pods. Keys must not start with 'weblogic.'.
	// +optional
	// +kubebuilder:validation:XValidation:rule="self.all(k, !k.startsWith('weblogic.'))",message="label keys must not start with 'weblogic.'"
	PodLabels map[string]string `json:"podLabels,omitempty"`

	// PodAnnotations are annotations applied to pods.
	// +optional
	PodAnnotations map[string]string `json:"podAnnotations,omitempty"`

	// ServiceLabels are labels applied to services. Keys must not start with 'weblogic.'.
	// +optional
	// +kubebuilder:validation:XValidation:rule="self.all(k, !k.startsWith('weblogic.'))",message="label keys must not start with 'weblogic.'"
	ServiceLabels map[string]string `json:"serviceLabels,omitempty"`

	// ServiceAnnotations are annotations applied to services.
	// +optional
	ServiceAnnotations map[string]string `json:"serviceAnnotations,omitempty"`
}

// ServerConfig is the configuration shared by every override level.
type ServerConfig struct {
	// ServerStartPolicy declares whether servers at this level should run.
	// +optional
	ServerStartPolicy ServerStartPolicy `json:"serverStartPolicy,omitempty"`

	// ServerPod holds pod settings applied to servers at this level.
	// +optional
	ServerPod *ServerPod `json:"serverPod,omitempty"`
}

// GetServerPod returns the declared pod template, or nil.
func (c *ServerConfig) GetServerPod() *ServerPod {
	if c == nil {
		return nil
	}
	return c.ServerPod
}

// GetServerStartPolicy returns the declared start policy, or "" when unset.
func (c *ServerConfig) GetServerStartPolicy() ServerStartPolicy {
	if c == nil {
		return ""
	}
	return c.ServerStartPolicy
}
