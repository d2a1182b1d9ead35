package handlers

import (
	"context"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/webhook"

	weblogicv1alpha1 "github.com/numtide/weblogic-operator/api/v1alpha1"
	"github.com/numtide/weblogic-operator/pkg/monitoring"
	"github.com/numtide/weblogic-operator/pkg/resolver"
)

// +kubebuilder:webhook:path=/mutate-weblogic-oracle-v1alpha1-domain,mutating=true,failurePolicy=fail,sideEffects=None,groups=weblogic.oracle,resources=domains,verbs=create;update,versions=v1alpha1,name=mdomain.weblogic.oracle,admissionReviewVersions=v1

// DomainDefaulter handles the mutation of Domain resources.
type DomainDefaulter struct{}

var _ webhook.CustomDefaulter = &DomainDefaulter{}

// NewDomainDefaulter creates a new defaulter handler.
func NewDomainDefaulter() *DomainDefaulter {
	return &DomainDefaulter{}
}

// Default implements webhook.CustomDefaulter.
func (d *DomainDefaulter) Default(ctx context.Context, obj runtime.Object) (err error) {
	start := time.Now()
	defer func() { monitoring.RecordWebhookRequest("DEFAULT", "Domain", err, time.Since(start)) }()

	domain, ok := obj.(*weblogicv1alpha1.Domain)
	if !ok {
		return fmt.Errorf("expected Domain, got %T", obj)
	}

	// Only the domain level is defaulted. Cluster and server overrides stay sparse so that
	// they keep inheriting later changes to the domain.
	resolver.PopulateDomainDefaults(&domain.Spec)

	log.FromContext(ctx).V(1).Info("Defaulted domain",
		"domain", domain.Name, "startPolicy", domain.Spec.ServerStartPolicy, "image", domain.Spec.Image)
	return nil
}
