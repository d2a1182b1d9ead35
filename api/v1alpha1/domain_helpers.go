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
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
)

const (
	// DefaultImage is the WebLogic image used when spec.image is empty.
	DefaultImage = "store/oracle/weblogic:12.2.1.3"

	// pvcNamePattern computes the default persistent volume claim name from the domain UID.
	pvcNamePattern = "%s-weblogic-domain-pvc"

	latestImageSuffix = ":latest"
)

// GetManagedServer returns the override declared for serverName, or nil.
func (s *DomainSpec) GetManagedServer(serverName string) *ManagedServer {
	for i := range s.ManagedServers {
		if s.ManagedServers[i].ServerName == serverName {
			return &s.ManagedServers[i]
		}
	}
	return nil
}

// GetCluster returns the override declared for clusterName, or nil.
func (s *DomainSpec) GetCluster(clusterName string) *Cluster {
	for i := range s.Clusters {
		if s.Clusters[i].ClusterName == clusterName {
			return &s.Clusters[i]
		}
	}
	return nil
}

// GetOrCreateCluster returns the override declared for clusterName, appending a
// default-valued Cluster first if none exists. This mutates the spec.
func (s *DomainSpec) GetOrCreateCluster(clusterName string) *Cluster {
	if c := s.GetCluster(clusterName); c != nil {
		return c
	}
	s.Clusters = append(s.Clusters, Cluster{ClusterName: clusterName})
	return &s.Clusters[len(s.Clusters)-1]
}

// GetOrCreateAdminServer returns the admin server overrides, creating an empty
// AdminServer named adminServerName if none were declared. This mutates the spec.
func (s *DomainSpec) GetOrCreateAdminServer(adminServerName string) *AdminServer {
	if s.AdminServer != nil {
		return s.AdminServer
	}
	s.AsName = adminServerName
	s.AdminServer = &AdminServer{}
	return s.AdminServer
}

// PersistentVolumeClaimName returns the claim holding the domain home, or "" when
// the domain declares no storage.
func (s *DomainSpec) PersistentVolumeClaimName() string {
	if s.Storage == nil {
		return ""
	}
	if s.Storage.PersistentVolumeClaimName != "" {
		return s.Storage.PersistentVolumeClaimName
	}
	return fmt.Sprintf(pvcNamePattern, s.DomainUID)
}

// EffectiveImage returns the declared image or DefaultImage.
func (s *DomainSpec) EffectiveImage() string {
	if s.Image == "" {
		return DefaultImage
	}
	return s.Image
}

// EffectiveImagePullPolicy returns the declared pull policy, or one derived from the image tag.
func (s *DomainSpec) EffectiveImagePullPolicy() corev1.PullPolicy {
	if s.ImagePullPolicy != "" {
		return s.ImagePullPolicy
	}
	if strings.HasSuffix(s.EffectiveImage(), latestImageSuffix) {
		return corev1.PullAlways
	}
	return corev1.PullIfNotPresent
}

// EffectiveImagePullSecrets returns ImagePullSecrets, or the deprecated single ImagePullSecret
// when the list is empty and the secret is named, or nil.
func (s *DomainSpec) EffectiveImagePullSecrets() []corev1.LocalObjectReference {
	if len(s.ImagePullSecrets) > 0 {
		return s.ImagePullSecrets
	}
	if s.ImagePullSecret != nil && s.ImagePullSecret.Name != "" {
		return []corev1.LocalObjectReference{*s.ImagePullSecret}
	}
	return nil
}

// GetExportedNetworkAccessPoint returns the channel named name, or nil.
func (a *AdminServer) GetExportedNetworkAccessPoint(name string) *ExportedNetworkAccessPoint {
	if a == nil {
		return nil
	}
	for i := range a.ExportedNetworkAccessPoints {
		if a.ExportedNetworkAccessPoints[i].Name == name {
			return &a.ExportedNetworkAccessPoints[i]
		}
	}
	return nil
}

// GetExportedNetworkAccessPointNames lists the exported channel names in declaration order.
func (a *AdminServer) GetExportedNetworkAccessPointNames() []string {
	if a == nil {
		return nil
	}
	names := make([]string, 0, len(a.ExportedNetworkAccessPoints))
	for _, nap := range a.ExportedNetworkAccessPoints {
		names = append(names, nap.Name)
	}
	return names
}
