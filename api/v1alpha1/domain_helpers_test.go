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
	"testing"

	"github.com/google/go-cmp/cmp"
	corev1 "k8s.io/api/core/v1"
)

func TestDomainSpec_Lookups(t *testing.T) {
	t.Parallel()

	spec := &DomainSpec{
		ManagedServers: []ManagedServer{{ServerName: "ms1"}, {ServerName: "ms2"}},
		Clusters:       []Cluster{{ClusterName: "c1"}},
	}

	if got := spec.GetManagedServer("ms2"); got == nil || got.ServerName != "ms2" {
		t.Errorf("GetManagedServer(ms2) = %v, want ms2", got)
	}
	if got := spec.GetManagedServer("missing"); got != nil {
		t.Errorf("GetManagedServer(missing) = %v, want nil", got)
	}
	if got := spec.GetCluster("c1"); got == nil || got.ClusterName != "c1" {
		t.Errorf("GetCluster(c1) = %v, want c1", got)
	}
	if got := spec.GetCluster(""); got != nil {
		t.Errorf("GetCluster(\"\") = %v, want nil", got)
	}
}

func TestDomainSpec_GetOrCreateCluster(t *testing.T) {
	t.Parallel()

	spec := &DomainSpec{Clusters: []Cluster{{ClusterName: "c1"}}}

	existing := spec.GetOrCreateCluster("c1")
	if len(spec.Clusters) != 1 {
		t.Fatalf("existing cluster lookup appended an entry: %v", spec.Clusters)
	}
	if existing != &spec.Clusters[0] {
		t.Error("expected pointer into the existing slice element")
	}

	created := spec.GetOrCreateCluster("c2")
	if created.ClusterName != "c2" || created.Replicas != nil {
		t.Errorf("created cluster = %+v, want default-valued c2", created)
	}
	if len(spec.Clusters) != 2 {
		t.Errorf("len(Clusters) = %d, want 2", len(spec.Clusters))
	}
}

func TestDomainSpec_GetOrCreateAdminServer(t *testing.T) {
	t.Parallel()

	spec := &DomainSpec{}
	admin := spec.GetOrCreateAdminServer("admin")
	if admin == nil || spec.AdminServer != admin {
		t.Fatal("expected admin server to be created and stored")
	}
	if spec.AsName != "admin" {
		t.Errorf("AsName = %q, want admin", spec.AsName)
	}

	spec.AsName = "renamed"
	if again := spec.GetOrCreateAdminServer("other"); again != admin || spec.AsName != "renamed" {
		t.Error("existing admin server must be returned untouched")
	}
}

func TestDomainSpec_PersistentVolumeClaimName(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		spec DomainSpec
		want string
	}{
		"no storage": {
			spec: DomainSpec{DomainUID: "uid1"},
			want: "",
		},
		"storage without claim name uses pattern": {
			spec: DomainSpec{DomainUID: "uid1", Storage: &DomainStorage{}},
			want: "uid1-weblogic-domain-pvc",
		},
		"explicit claim name": {
			spec: DomainSpec{DomainUID: "uid1", Storage: &DomainStorage{PersistentVolumeClaimName: "mine"}},
			want: "mine",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := tc.spec.PersistentVolumeClaimName(); got != tc.want {
				t.Errorf("PersistentVolumeClaimName() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDomainSpec_ImageDefaults(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		spec       DomainSpec
		wantImage  string
		wantPolicy corev1.PullPolicy
	}{
		"defaults": {
			wantImage:  DefaultImage,
			wantPolicy: corev1.PullIfNotPresent,
		},
		"latest tag pulls always": {
			spec:       DomainSpec{Image: "weblogic:latest"},
			wantImage:  "weblogic:latest",
			wantPolicy: corev1.PullAlways,
		},
		"explicit policy wins": {
			spec:       DomainSpec{Image: "weblogic:latest", ImagePullPolicy: corev1.PullNever},
			wantImage:  "weblogic:latest",
			wantPolicy: corev1.PullNever,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := tc.spec.EffectiveImage(); got != tc.wantImage {
				t.Errorf("EffectiveImage() = %q, want %q", got, tc.wantImage)
			}
			if got := tc.spec.EffectiveImagePullPolicy(); got != tc.wantPolicy {
				t.Errorf("EffectiveImagePullPolicy() = %q, want %q", got, tc.wantPolicy)
			}
		})
	}
}

func TestDomainSpec_EffectiveImagePullSecrets(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		spec DomainSpec
		want []corev1.LocalObjectReference
	}{
		"none": {},
		"list": {
			spec: DomainSpec{ImagePullSecrets: []corev1.LocalObjectReference{{Name: "a"}, {Name: "b"}}},
			want: []corev1.LocalObjectReference{{Name: "a"}, {Name: "b"}},
		},
		"legacy single secret": {
			spec: DomainSpec{ImagePullSecret: &corev1.LocalObjectReference{Name: "legacy"}},
			want: []corev1.LocalObjectReference{{Name: "legacy"}},
		},
		"list wins over legacy": {
			spec: DomainSpec{
				ImagePullSecrets: []corev1.LocalObjectReference{{Name: "a"}},
				ImagePullSecret:  &corev1.LocalObjectReference{Name: "legacy"},
			},
			want: []corev1.LocalObjectReference{{Name: "a"}},
		},
		"unnamed legacy secret is ignored": {
			spec: DomainSpec{ImagePullSecret: &corev1.LocalObjectReference{}},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.want, tc.spec.EffectiveImagePullSecrets()); diff != "" {
				t.Errorf("EffectiveImagePullSecrets() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAdminServer_ExportedNetworkAccessPoints(t *testing.T) {
	t.Parallel()

	var nilAdmin *AdminServer
	if got := nilAdmin.GetExportedNetworkAccessPointNames(); got != nil {
		t.Errorf("nil admin names = %v, want nil", got)
	}
	if got := nilAdmin.GetExportedNetworkAccessPoint("t3"); got != nil {
		t.Errorf("nil admin lookup = %v, want nil", got)
	}

	admin := &AdminServer{
		ExportedNetworkAccessPoints: []ExportedNetworkAccessPoint{
			{Name: "t3", Labels: map[string]string{"a": "b"}},
			{Name: "http"},
		},
	}
	if diff := cmp.Diff([]string{"t3", "http"}, admin.GetExportedNetworkAccessPointNames()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if got := admin.GetExportedNetworkAccessPoint("t3"); got == nil || got.Labels["a"] != "b" {
		t.Errorf("lookup t3 = %v", got)
	}
}

func TestServerPod_DeepCopyIsIndependent(t *testing.T) {
	t.Parallel()

	orig := &ServerPod{
		Env:       []corev1.EnvVar{{Name: "A", Value: "1"}},
		PodLabels: map[string]string{"k": "v"},
		ContainerSecurityContext: &corev1.SecurityContext{
			Capabilities: &corev1.Capabilities{Add: []corev1.Capability{"NET_ADMIN"}},
		},
	}
	cp := orig.DeepCopy()
	cp.Env[0].Value = "2"
	cp.PodLabels["k"] = "changed"
	cp.ContainerSecurityContext.Capabilities.Add[0] = "SYS_TIME"

	if orig.Env[0].Value != "1" || orig.PodLabels["k"] != "v" ||
		orig.ContainerSecurityContext.Capabilities.Add[0] != "NET_ADMIN" {
		t.Errorf("DeepCopy shares state with the original: %+v", orig)
	}
}
