package domain

import (
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	weblogicv1alpha1 "github.com/numtide/weblogic-operator/api/v1alpha1"
)

const (
	// ConditionResolved is True when the effective configuration could be computed.
	ConditionResolved = "Resolved"

	reasonResolved    = "Resolved"
	reasonInvalidSpec = "InvalidSpec"
)

func setResolvedCondition(status *weblogicv1alpha1.DomainStatus, generation int64, err error) {
	cond := metav1.Condition{
		Type:               ConditionResolved,
		Status:             metav1.ConditionTrue,
		Reason:             reasonResolved,
		Message:            "Effective server configuration resolved",
		ObservedGeneration: generation,
	}
	if err != nil {
		cond.Status = metav1.ConditionFalse
		cond.Reason = reasonInvalidSpec
		cond.Message = err.Error()
	}
	// SetStatusCondition keeps LastTransitionTime unless the status flips, so an unchanged
	// outcome compares equal to the stored status.
	meta.SetStatusCondition(&status.Conditions, cond)
}
