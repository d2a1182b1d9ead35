package domain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	"k8s.io/utils/ptr"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"

	weblogicv1alpha1 "github.com/numtide/weblogic-operator/api/v1alpha1"
)

// ============================================================================
// Shared Test Types & Helpers
// ============================================================================

type reconcileTestCase struct {
	domain         *weblogicv1alpha1.Domain
	skipCreate     bool
	interceptors   *interceptor.Funcs
	wantErrMsg     string
	expectedEvents []string
	validate       func(testing.TB, *weblogicv1alpha1.Domain)
}

func setupScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	_ = weblogicv1alpha1.AddToScheme(scheme)
	_ = corev1.AddToScheme(scheme)
	return scheme
}

func baseDomain() *weblogicv1alpha1.Domain {
	return &weblogicv1alpha1.Domain{
		ObjectMeta: metav1.ObjectMeta{Name: "domain1", Namespace: "default"},
		Spec: weblogicv1alpha1.DomainSpec{
			DomainUID:   "domain1",
			DomainName:  "base_domain",
			AsName:      "admin-server",
			AsPort:      7001,
			AdminSecret: corev1.SecretReference{Name: "domain1-weblogic-credentials"},
			Replicas:    ptr.To[int32](2),
			ManagedServers: []weblogicv1alpha1.ManagedServer{
				{ServerName: "ms1"},
				{
					ServerName:   "ms2",
					ServerConfig: weblogicv1alpha1.ServerConfig{ServerStartPolicy: weblogicv1alpha1.ServerStartPolicyNever},
				},
			},
			Clusters: []weblogicv1alpha1.Cluster{
				{ClusterName: "c1", Replicas: ptr.To[int32](4)},
				{ClusterName: "c2"},
			},
		},
	}
}

func runReconcileTest(t *testing.T, tests map[string]reconcileTestCase) {
	t.Helper()

	scheme := setupScheme()

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			domain := tc.domain
			if domain == nil {
				domain = baseDomain()
			}

			builder := fake.NewClientBuilder().
				WithScheme(scheme).
				WithStatusSubresource(&weblogicv1alpha1.Domain{})
			if !tc.skipCreate {
				builder = builder.WithObjects(domain)
			}
			if tc.interceptors != nil {
				builder = builder.WithInterceptorFuncs(*tc.interceptors)
			}
			c := builder.Build()

			fakeRecorder := record.NewFakeRecorder(100)
			reconciler := &DomainReconciler{Client: c, Scheme: scheme, Recorder: fakeRecorder}

			req := ctrl.Request{NamespacedName: types.NamespacedName{Name: domain.Name, Namespace: domain.Namespace}}
			_, err := reconciler.Reconcile(t.Context(), req)

			if tc.wantErrMsg != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErrMsg) {
					t.Fatalf("Reconcile() error = %v, want substring %q", err, tc.wantErrMsg)
				}
			} else if err != nil {
				t.Fatalf("Unexpected error from Reconcile: %v", err)
			}

			if len(tc.expectedEvents) > 0 {
				close(fakeRecorder.Events)
				var gotEvents []string
				for evt := range fakeRecorder.Events {
					gotEvents = append(gotEvents, evt)
				}
				for _, want := range tc.expectedEvents {
					found := false
					for _, got := range gotEvents {
						if strings.Contains(got, want) {
							found = true
							break
						}
					}
					if !found {
						t.Errorf("Expected event containing %q not found. Got events: %v", want, gotEvents)
					}
				}
			}

			if tc.validate != nil {
				got := &weblogicv1alpha1.Domain{}
				if err := c.Get(t.Context(), req.NamespacedName, got); err != nil {
					t.Fatalf("failed to get domain after reconcile: %v", err)
				}
				tc.validate(t, got)
			}
		})
	}
}

// ============================================================================
// Tests
// ============================================================================

func TestDomainReconciler_Reconcile(t *testing.T) {
	t.Parallel()

	ignoreConditions := cmpopts.IgnoreFields(weblogicv1alpha1.DomainStatus{}, "Conditions", "ObservedGeneration")

	runReconcileTest(t, map[string]reconcileTestCase{
		"Happy Path: status published": {
			validate: func(tb testing.TB, d *weblogicv1alpha1.Domain) {
				want := weblogicv1alpha1.DomainStatus{
					AdminServer: &weblogicv1alpha1.ServerStatus{
						ServerName:  "admin-server",
						StartPolicy: weblogicv1alpha1.ServerStartPolicyIfNeeded,
						ShouldStart: true,
					},
					Servers: []weblogicv1alpha1.ServerStatus{
						{ServerName: "ms1", StartPolicy: weblogicv1alpha1.ServerStartPolicyIfNeeded, ShouldStart: true},
						{ServerName: "ms2", StartPolicy: weblogicv1alpha1.ServerStartPolicyNever, ShouldStart: false},
					},
					Clusters: []weblogicv1alpha1.ClusterStatus{
						{ClusterName: "c1", Replicas: 4},
						{ClusterName: "c2", Replicas: 2},
					},
				}
				if diff := cmp.Diff(want, d.Status, ignoreConditions); diff != "" {
					tb.Errorf("status mismatch (-want +got):\n%s", diff)
				}
				if !meta.IsStatusConditionTrue(d.Status.Conditions, ConditionResolved) {
					tb.Errorf("expected %s condition to be true, got %v", ConditionResolved, d.Status.Conditions)
				}
				if d.Spec.ServerStartPolicy != "" || d.Spec.Image != "" {
					tb.Error("reconciler must not write defaults into the stored spec")
				}
			},
		},
		"Happy Path: admin NEVER shuts the domain down": {
			domain: func() *weblogicv1alpha1.Domain {
				d := baseDomain()
				d.Spec.AdminServer = &weblogicv1alpha1.AdminServer{
					ServerConfig: weblogicv1alpha1.ServerConfig{ServerStartPolicy: weblogicv1alpha1.ServerStartPolicyNever},
				}
				return d
			}(),
			expectedEvents: []string{"ShuttingDown"},
			validate: func(tb testing.TB, d *weblogicv1alpha1.Domain) {
				if !d.Status.ShuttingDown {
					tb.Error("expected domain to be shutting down")
				}
				if d.Status.AdminServer == nil || d.Status.AdminServer.ShouldStart {
					tb.Errorf("admin status = %+v, want ShouldStart=false", d.Status.AdminServer)
				}
			},
		},
		"Happy Path: domain ADMIN_ONLY stops managed servers": {
			domain: func() *weblogicv1alpha1.Domain {
				d := baseDomain()
				d.Spec.ServerStartPolicy = weblogicv1alpha1.ServerStartPolicyAdminOnly
				d.Spec.ManagedServers[0].ServerStartPolicy = weblogicv1alpha1.ServerStartPolicyAlways
				return d
			}(),
			validate: func(tb testing.TB, d *weblogicv1alpha1.Domain) {
				if d.Status.ShuttingDown {
					tb.Error("ADMIN_ONLY must keep the admin server running")
				}
				for _, s := range d.Status.Servers {
					if s.ShouldStart {
						tb.Errorf("server %s should not start under ADMIN_ONLY", s.ServerName)
					}
				}
			},
		},
		"Error: invalid spec is reported on the status": {
			domain: func() *weblogicv1alpha1.Domain {
				d := baseDomain()
				d.Spec.AdminSecret.Name = ""
				return d
			}(),
			expectedEvents: []string{"InvalidSpec"},
			validate: func(tb testing.TB, d *weblogicv1alpha1.Domain) {
				cond := meta.FindStatusCondition(d.Status.Conditions, ConditionResolved)
				if cond == nil || cond.Status != metav1.ConditionFalse || cond.Reason != reasonInvalidSpec {
					tb.Fatalf("Resolved condition = %+v, want False/InvalidSpec", cond)
				}
				if !strings.Contains(cond.Message, "adminSecret.name") {
					tb.Errorf("condition message %q does not name the missing field", cond.Message)
				}
				if d.Status.AdminServer != nil {
					tb.Error("invalid spec must not publish resolved servers")
				}
			},
		},
		"Object Not Found: ignored": {
			skipCreate: true,
		},
		"Error: get fails": {
			interceptors: &interceptor.Funcs{
				Get: func(ctx context.Context, c client.WithWatch, key client.ObjectKey, obj client.Object, opts ...client.GetOption) error {
					return errors.New("api down")
				},
			},
			wantErrMsg: "failed to get Domain",
		},
		"Error: status update fails": {
			interceptors: &interceptor.Funcs{
				SubResourceUpdate: func(ctx context.Context, c client.Client, subResourceName string, obj client.Object, opts ...client.SubResourceUpdateOption) error {
					return errors.New("conflict")
				},
			},
			wantErrMsg: "failed to update status",
		},
	})
}

func TestDomainReconciler_StatusOnlyWrittenOnChange(t *testing.T) {
	t.Parallel()

	scheme := setupScheme()
	updates := 0
	c := fake.NewClientBuilder().
		WithScheme(scheme).
		WithStatusSubresource(&weblogicv1alpha1.Domain{}).
		WithObjects(baseDomain()).
		WithInterceptorFuncs(interceptor.Funcs{
			SubResourceUpdate: func(ctx context.Context, c client.Client, subResourceName string, obj client.Object, opts ...client.SubResourceUpdateOption) error {
				updates++
				return c.SubResource(subResourceName).Update(ctx, obj, opts...)
			},
		}).
		Build()

	reconciler := &DomainReconciler{Client: c, Scheme: scheme, Recorder: record.NewFakeRecorder(10)}
	req := ctrl.Request{NamespacedName: types.NamespacedName{Name: "domain1", Namespace: "default"}}

	for range 3 {
		if _, err := reconciler.Reconcile(t.Context(), req); err != nil {
			t.Fatalf("Reconcile() error = %v", err)
		}
	}
	if updates != 1 {
		t.Errorf("status updated %d times, want 1", updates)
	}
}

func TestComputeStatus(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		spec         *weblogicv1alpha1.DomainSpec
		wantShutdown bool
		wantClusters []weblogicv1alpha1.ClusterStatus
	}{
		"domain default replicas": {
			spec: &baseDomain().Spec,
			wantClusters: []weblogicv1alpha1.ClusterStatus{
				{ClusterName: "c1", Replicas: 4},
				{ClusterName: "c2", Replicas: 2},
			},
		},
		"no replicas anywhere": {
			spec: &weblogicv1alpha1.DomainSpec{
				AsName:   "admin",
				Clusters: []weblogicv1alpha1.Cluster{{ClusterName: "c1"}},
			},
			wantClusters: []weblogicv1alpha1.ClusterStatus{{ClusterName: "c1", Replicas: 0}},
		},
		"domain NEVER": {
			spec: &weblogicv1alpha1.DomainSpec{
				AsName:       "admin",
				ServerConfig: weblogicv1alpha1.ServerConfig{ServerStartPolicy: weblogicv1alpha1.ServerStartPolicyNever},
			},
			wantShutdown: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := ComputeStatus(tc.spec)
			if got.ShuttingDown != tc.wantShutdown {
				t.Errorf("ShuttingDown = %v, want %v", got.ShuttingDown, tc.wantShutdown)
			}
			if diff := cmp.Diff(tc.wantClusters, got.Clusters); diff != "" {
				t.Errorf("clusters mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
