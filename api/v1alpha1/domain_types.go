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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ============================================================================
// DomainSpec (User-editable API)
// ============================================================================

// DomainSpec defines the desired state of a WebLogic domain.
type DomainSpec struct {
	// ServerConfig holds the domain-wide defaults for every server.
	ServerConfig `json:",inline"`

	// DomainUID is the domain unique identifier. Must be unique across the Kubernetes cluster.
	// +kubebuilder:validation:MinLength=1
	// +kubebuilder:validation:MaxLength=45
	DomainUID string `json:"domainUID"`

	// DomainName is the name of the WebLogic domain.
	// +kubebuilder:validation:MinLength=1
	DomainName string `json:"domainName"`

	// AdminSecret references a secret with the 'username' and 'password' keys of the
	// domain administrator.
	AdminSecret corev1.SecretReference `json:"adminSecret"`

	// AsName is the admin server name.
	// +kubebuilder:validation:MinLength=1
	AsName string `json:"asName"`

	// AsPort is the admin server port.
	// +kubebuilder:validation:Minimum=1
	// +kubebuilder:validation:Maximum=65535
	AsPort int32 `json:"asPort"`

	// Image is the WebLogic container image. Defaults to store/oracle/weblogic:12.2.1.3.
	// +optional
	Image string `json:"image,omitempty"`

	// ImagePullPolicy defaults to Always if the image ends in :latest, IfNotPresent otherwise.
	// +optional
	ImagePullPolicy corev1.PullPolicy `json:"imagePullPolicy,omitempty"`

	// ImagePullSecrets is a list of image pull secrets for the WebLogic image.
	// +optional
	ImagePullSecrets []corev1.LocalObjectReference `json:"imagePullSecrets,omitempty"`

	// ImagePullSecret is a single image pull secret, used only when ImagePullSecrets is empty.
	// Deprecated: use ImagePullSecrets.
	// +optional
	ImagePullSecret *corev1.LocalObjectReference `json:"imagePullSecret,omitempty"`

	// ExportT3Channels lists the T3 channels of the admin server exposed through a NodePort Service.
	// +optional
	ExportT3Channels []string `json:"exportT3Channels,omitempty"`

	// Replicas is the desired number of running managed servers in each cluster that
	// does not declare its own replica count.
	// +kubebuilder:validation:Minimum=0
	// +optional
	Replicas *int32 `json:"replicas,omitempty"`

	// DomainHomeInImage is true when the domain home is part of the image.
	// +optional
	DomainHomeInImage bool `json:"domainHomeInImage,omitempty"`

	// Storage is the storage used for this domain.
	// +optional
	Storage *DomainStorage `json:"storage,omitempty"`

	// AdminServer holds configuration for the admin server.
	// +optional
	AdminServer *AdminServer `json:"adminServer,omitempty"`

	// ManagedServers holds configuration for individual managed servers.
	// +optional
	// +listType=map
	// +listMapKey=serverName
	ManagedServers []ManagedServer `json:"managedServers,omitempty"`

	// Clusters holds configuration for clusters.
	// +optional
	// +listType=map
	// +listMapKey=clusterName
	Clusters []Cluster `json:"clusters,omitempty"`
}

// DomainStorage describes the persistent storage of a domain.
type DomainStorage struct {
	// PersistentVolumeClaimName is the claim holding the domain home and logs.
	// Defaults to "<domainUID>-weblogic-domain-pvc".
	// +optional
	PersistentVolumeClaimName string `json:"persistentVolumeClaimName,omitempty"`
}

// AdminServer holds the admin server overrides.
type AdminServer struct {
	ServerConfig `json:",inline"`

	// ExportedNetworkAccessPoints are the admin server channels exposed through services.
	// +optional
	// +listType=map
	// +listMapKey=name
	ExportedNetworkAccessPoints []ExportedNetworkAccessPoint `json:"exportedNetworkAccessPoints,omitempty"`
}

// ExportedNetworkAccessPoint is an admin server channel exposed outside the pod.
type ExportedNetworkAccessPoint struct {
	// Name of the network access point (channel).
	// +kubebuilder:validation:MinLength=1
	Name string `json:"name"`

	// Labels applied to the channel service.
	// +optional
	Labels map[string]string `json:"labels,omitempty"`

	// Annotations applied to the channel service.
	// +optional
	Annotations map[string]string `json:"annotations,omitempty"`
}

// ManagedServer holds the overrides for a single named managed server.
type ManagedServer struct {
	ServerConfig `json:",inline"`

	// ServerName is the name of the server in the WebLogic domain configuration.
	// +kubebuilder:validation:MinLength=1
	ServerName string `json:"serverName"`
}

// Cluster holds the overrides for members of a single named cluster.
type Cluster struct {
	ServerConfig `json:",inline"`

	// ClusterName is the name of the cluster in the WebLogic domain configuration.
	// +kubebuilder:validation:MinLength=1
	ClusterName string `json:"clusterName"`

	// Replicas is the desired number of running members of this cluster.
	// +kubebuilder:validation:Minimum=0
	// +optional
	Replicas *int32 `json:"replicas,omitempty"`
}

// ============================================================================
// DomainStatus (Read-only API)
// ============================================================================

// ServerStatus reports the resolved lifecycle intent of a server.
type ServerStatus struct {
	// ServerName is the name of the server.
	ServerName string `json:"serverName"`

	// ClusterName is the cluster the server was resolved against, if any.
	// +optional
	ClusterName string `json:"clusterName,omitempty"`

	// StartPolicy is the effective start policy.
	StartPolicy ServerStartPolicy `json:"startPolicy"`

	// ShouldStart is true when the server is expected to be running.
	ShouldStart bool `json:"shouldStart"`
}

// ClusterStatus reports the resolved sizing of a cluster.
type ClusterStatus struct {
	// ClusterName is the name of the cluster.
	ClusterName string `json:"clusterName"`

	// Replicas is the effective replica count.
	Replicas int32 `json:"replicas"`
}

// DomainStatus defines the observed state of Domain.
type DomainStatus struct {
	// ObservedGeneration is the most recent generation observed.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// ShuttingDown is true when the domain as a whole is being shut down.
	// +optional
	ShuttingDown bool `json:"shuttingDown,omitempty"`

	// AdminServer is the resolved state of the admin server.
	// +optional
	AdminServer *ServerStatus `json:"adminServer,omitempty"`

	// Servers is the resolved state of each declared managed server.
	// +optional
	Servers []ServerStatus `json:"servers,omitempty"`

	// Clusters is the resolved sizing of each declared cluster.
	// +optional
	Clusters []ClusterStatus `json:"clusters,omitempty"`

	// Conditions represent the latest available observations.
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=dom
// +kubebuilder:printcolumn:name="UID",type="string",JSONPath=".spec.domainUID"
// +kubebuilder:printcolumn:name="ShuttingDown",type="boolean",JSONPath=".status.shuttingDown"
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"

// Domain is the Schema for the domains API.
type Domain struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   DomainSpec   `json:"spec,omitempty"`
	Status DomainStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// DomainList contains a list of Domain.
type DomainList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Domain `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Domain{}, &DomainList{})
}
