package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	weblogicv1alpha1 "github.com/numtide/weblogic-operator/api/v1alpha1"
)

func TestDomainDefaulter_Default(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   *weblogicv1alpha1.Domain
		want    *weblogicv1alpha1.Domain
		wantErr string
	}{
		"Happy Path: empty domain gets defaults": {
			input: &weblogicv1alpha1.Domain{
				ObjectMeta: metav1.ObjectMeta{Name: "domain1", Namespace: "default"},
			},
			want: &weblogicv1alpha1.Domain{
				ObjectMeta: metav1.ObjectMeta{Name: "domain1", Namespace: "default"},
				Spec: weblogicv1alpha1.DomainSpec{
					ServerConfig: weblogicv1alpha1.ServerConfig{
						ServerStartPolicy: weblogicv1alpha1.ServerStartPolicyIfNeeded,
					},
					Image:           weblogicv1alpha1.DefaultImage,
					ImagePullPolicy: corev1.PullIfNotPresent,
				},
			},
		},
		"Happy Path: overrides stay sparse": {
			input: &weblogicv1alpha1.Domain{
				Spec: weblogicv1alpha1.DomainSpec{
					Image:    "weblogic:latest",
					Clusters: []weblogicv1alpha1.Cluster{{ClusterName: "c1", Replicas: ptr.To[int32](2)}},
				},
			},
			want: &weblogicv1alpha1.Domain{
				Spec: weblogicv1alpha1.DomainSpec{
					ServerConfig: weblogicv1alpha1.ServerConfig{
						ServerStartPolicy: weblogicv1alpha1.ServerStartPolicyIfNeeded,
					},
					Image:           "weblogic:latest",
					ImagePullPolicy: corev1.PullAlways,
					Clusters:        []weblogicv1alpha1.Cluster{{ClusterName: "c1", Replicas: ptr.To[int32](2)}},
				},
			},
		},
		"Happy Path: explicit values survive": {
			input: &weblogicv1alpha1.Domain{
				Spec: weblogicv1alpha1.DomainSpec{
					ServerConfig: weblogicv1alpha1.ServerConfig{
						ServerStartPolicy: weblogicv1alpha1.ServerStartPolicyNever,
					},
					Image:           "my/weblogic:14",
					ImagePullPolicy: corev1.PullNever,
				},
			},
			want: &weblogicv1alpha1.Domain{
				Spec: weblogicv1alpha1.DomainSpec{
					ServerConfig: weblogicv1alpha1.ServerConfig{
						ServerStartPolicy: weblogicv1alpha1.ServerStartPolicyNever,
					},
					Image:           "my/weblogic:14",
					ImagePullPolicy: corev1.PullNever,
				},
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			d := NewDomainDefaulter()
			err := d.Default(context.Background(), tc.input)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("Default() error = %v, want %q", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Default() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, tc.input); diff != "" {
				t.Errorf("Default() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDomainDefaulter_WrongType(t *testing.T) {
	t.Parallel()

	err := NewDomainDefaulter().Default(context.Background(), &corev1.Pod{})
	if err == nil || !strings.Contains(err.Error(), "expected Domain") {
		t.Errorf("Default() error = %v, want type error", err)
	}
}
