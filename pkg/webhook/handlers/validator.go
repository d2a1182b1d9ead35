package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/webhook"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"

	weblogicv1alpha1 "github.com/numtide/weblogic-operator/api/v1alpha1"
	"github.com/numtide/weblogic-operator/pkg/monitoring"
	"github.com/numtide/weblogic-operator/pkg/resolver"
)

// ErrImmutableField is returned when an update changes a field that identifies the domain.
var ErrImmutableField = errors.New("field is immutable")

// +kubebuilder:webhook:path=/validate-weblogic-oracle-v1alpha1-domain,mutating=false,failurePolicy=fail,sideEffects=None,groups=weblogic.oracle,resources=domains,verbs=create;update,versions=v1alpha1,name=vdomain.weblogic.oracle,admissionReviewVersions=v1

// DomainValidator validates Create and Update events for Domains.
type DomainValidator struct{}

var _ webhook.CustomValidator = &DomainValidator{}

// NewDomainValidator creates a new validator for Domains.
func NewDomainValidator() *DomainValidator {
	return &DomainValidator{}
}

func (v *DomainValidator) ValidateCreate(
	ctx context.Context,
	obj runtime.Object,
) (warnings admission.Warnings, err error) {
	start := time.Now()
	defer func() { monitoring.RecordWebhookRequest("CREATE", "Domain", err, time.Since(start)) }()

	domain, err := asDomain(obj)
	if err != nil {
		return nil, err
	}
	return v.validate(domain)
}

func (v *DomainValidator) ValidateUpdate(
	ctx context.Context,
	oldObj, newObj runtime.Object,
) (warnings admission.Warnings, err error) {
	start := time.Now()
	defer func() { monitoring.RecordWebhookRequest("UPDATE", "Domain", err, time.Since(start)) }()

	oldDomain, err := asDomain(oldObj)
	if err != nil {
		return nil, err
	}
	newDomain, err := asDomain(newObj)
	if err != nil {
		return nil, err
	}

	warnings, err = v.validate(newDomain)
	if oldDomain.Spec.DomainUID != "" && oldDomain.Spec.DomainUID != newDomain.Spec.DomainUID {
		err = errors.Join(err, fmt.Errorf("%w: spec.domainUID cannot change from %q to %q",
			ErrImmutableField, oldDomain.Spec.DomainUID, newDomain.Spec.DomainUID))
	}
	return warnings, err
}

func (v *DomainValidator) ValidateDelete(
	ctx context.Context,
	obj runtime.Object,
) (admission.Warnings, error) {
	return nil, nil
}

func (v *DomainValidator) validate(domain *weblogicv1alpha1.Domain) (admission.Warnings, error) {
	warnings := admission.Warnings(resolver.StartPolicyWarnings(&domain.Spec))
	if err := resolver.ValidateDomainSpec(&domain.Spec); err != nil {
		return warnings, fmt.Errorf("invalid Domain %s/%s: %w", domain.Namespace, domain.Name, err)
	}
	return warnings, nil
}

func asDomain(obj runtime.Object) (*weblogicv1alpha1.Domain, error) {
	domain, ok := obj.(*weblogicv1alpha1.Domain)
	if !ok {
		return nil, fmt.Errorf("expected Domain, got %T", obj)
	}
	return domain, nil
}
