package domain

import (
	"context"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/attribute"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	weblogicv1alpha1 "github.com/numtide/weblogic-operator/api/v1alpha1"
	"github.com/numtide/weblogic-operator/pkg/monitoring"
	"github.com/numtide/weblogic-operator/pkg/resolver"
)

// DomainReconciler reconciles a Domain object.
type DomainReconciler struct {
	client.Client
	Scheme   *runtime.Scheme
	Recorder record.EventRecorder
}

// Reconcile resolves the effective configuration of a Domain and publishes it in the
// Domain status and in metrics.
//
// +kubebuilder:rbac:groups=weblogic.oracle,resources=domains,verbs=get;list;watch
// +kubebuilder:rbac:groups=weblogic.oracle,resources=domains/status,verbs=get;update;patch
// +kubebuilder:rbac:groups="",resources=events,verbs=create;patch
func (r *DomainReconciler) Reconcile(
	ctx context.Context,
	req ctrl.Request,
) (_ ctrl.Result, err error) {
	ctx, span := monitoring.StartReconcileSpan(ctx, "Domain.Reconcile", req.Name, req.Namespace, "Domain")
	defer func() {
		monitoring.RecordSpanError(span, err)
		span.End()
	}()
	ctx = monitoring.EnrichLoggerWithTrace(ctx)
	l := log.FromContext(ctx)

	domain := &weblogicv1alpha1.Domain{}
	if err := r.Get(ctx, req.NamespacedName, domain); err != nil {
		if errors.IsNotFound(err) {
			monitoring.ForgetDomain(req.Name, req.Namespace)
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, fmt.Errorf("failed to get Domain: %w", err)
	}

	// Resolve against a defaulted copy; the stored spec is owned by the user and the webhook.
	spec := domain.Spec.DeepCopy()
	resolver.PopulateDomainDefaults(spec)

	newStatus, resolveErr := r.resolveStatus(ctx, domain, spec)
	monitoring.RecordResolution(domain.Name, domain.Namespace, resolveErr)
	if resolveErr != nil {
		l.Info("Domain spec is invalid", "error", resolveErr.Error())
		r.Recorder.Event(domain, corev1.EventTypeWarning, "InvalidSpec", resolveErr.Error())
	} else {
		recordMetrics(domain, newStatus)
		r.recordTransitions(domain, newStatus)
	}

	if err := r.updateStatus(ctx, domain, newStatus); err != nil {
		l.Error(err, "Failed to update status")
		return ctrl.Result{}, err
	}

	// An invalid spec is not retried: the next spec change triggers a new reconcile.
	return ctrl.Result{}, nil
}

func (r *DomainReconciler) resolveStatus(
	ctx context.Context,
	domain *weblogicv1alpha1.Domain,
	spec *weblogicv1alpha1.DomainSpec,
) (weblogicv1alpha1.DomainStatus, error) {
	_, span := monitoring.StartChildSpan(ctx, "ResolveDomain",
		attribute.Int("clusters", len(spec.Clusters)),
		attribute.Int("managedServers", len(spec.ManagedServers)),
	)
	defer span.End()

	status := *domain.Status.DeepCopy()
	status.ObservedGeneration = domain.Generation

	if err := resolver.ValidateDomainSpec(spec); err != nil {
		monitoring.RecordSpanError(span, err)
		setResolvedCondition(&status, domain.Generation, err)
		return status, err
	}

	computed := ComputeStatus(spec)
	status.ShuttingDown = computed.ShuttingDown
	status.AdminServer = computed.AdminServer
	status.Servers = computed.Servers
	status.Clusters = computed.Clusters
	setResolvedCondition(&status, domain.Generation, nil)
	return status, nil
}

// ComputeStatus resolves the lifecycle intent of every declared server and cluster of spec.
// Conditions and ObservedGeneration are left to the caller.
func ComputeStatus(spec *weblogicv1alpha1.DomainSpec) weblogicv1alpha1.DomainStatus {
	f := resolver.NewFactory(spec)

	admin := f.GetAdminServerSpec()
	status := weblogicv1alpha1.DomainStatus{
		ShuttingDown: f.IsShuttingDown(),
		AdminServer: &weblogicv1alpha1.ServerStatus{
			ServerName:  admin.ServerName(),
			StartPolicy: admin.StartPolicy(),
			ShouldStart: admin.ShouldStart(0),
		},
	}

	for _, c := range spec.Clusters {
		status.Clusters = append(status.Clusters, weblogicv1alpha1.ClusterStatus{
			ClusterName: c.ClusterName,
			Replicas:    f.GetReplicaCount(c.ClusterName),
		})
	}

	for _, ms := range spec.ManagedServers {
		s := f.GetServerSpec(ms.ServerName, "")
		status.Servers = append(status.Servers, weblogicv1alpha1.ServerStatus{
			ServerName:  s.ServerName(),
			StartPolicy: s.StartPolicy(),
			ShouldStart: s.ShouldStart(0),
		})
	}

	return status
}

func recordMetrics(domain *weblogicv1alpha1.Domain, status weblogicv1alpha1.DomainStatus) {
	// Drop series of clusters and servers that are no longer declared.
	monitoring.ForgetDomain(domain.Name, domain.Namespace)

	monitoring.SetDomainShuttingDown(domain.Name, domain.Namespace, status.ShuttingDown)
	if status.AdminServer != nil {
		monitoring.SetServerShouldStart(domain.Name, status.AdminServer.ServerName, "",
			domain.Namespace, status.AdminServer.ShouldStart)
	}
	for _, c := range status.Clusters {
		monitoring.SetClusterReplicas(domain.Name, c.ClusterName, domain.Namespace, c.Replicas)
	}
	for _, s := range status.Servers {
		monitoring.SetServerShouldStart(domain.Name, s.ServerName, s.ClusterName, domain.Namespace, s.ShouldStart)
	}
}

func (r *DomainReconciler) recordTransitions(
	domain *weblogicv1alpha1.Domain,
	status weblogicv1alpha1.DomainStatus,
) {
	if domain.Status.ShuttingDown == status.ShuttingDown {
		return
	}
	if status.ShuttingDown {
		r.Recorder.Event(domain, corev1.EventTypeNormal, "ShuttingDown",
			"Domain is shutting down: the admin server should not be running")
		return
	}
	// A fresh Domain starts with ShuttingDown=false, so this only fires on a real transition.
	r.Recorder.Event(domain, corev1.EventTypeNormal, "Starting", "Domain is no longer shutting down")
}

func (r *DomainReconciler) updateStatus(
	ctx context.Context,
	domain *weblogicv1alpha1.Domain,
	status weblogicv1alpha1.DomainStatus,
) error {
	if cmp.Equal(domain.Status, status) {
		return nil
	}

	domain.Status = status
	if err := r.Status().Update(ctx, domain); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return nil
}

// SetupWithManager sets up the controller with the Manager.
func (r *DomainReconciler) SetupWithManager(
	mgr ctrl.Manager,
	opts ...controller.Options,
) error {
	controllerOpts := controller.Options{}
	if len(opts) > 0 {
		controllerOpts = opts[0]
	}

	return ctrl.NewControllerManagedBy(mgr).
		For(&weblogicv1alpha1.Domain{}, builder.WithPredicates(predicate.GenerationChangedPredicate{})).
		Named("domain").
		WithOptions(controllerOpts).
		Complete(r)
}
