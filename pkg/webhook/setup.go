package webhook

import (
	"fmt"

	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/webhook"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"

	weblogicv1alpha1 "github.com/numtide/weblogic-operator/api/v1alpha1"
	"github.com/numtide/weblogic-operator/pkg/webhook/handlers"
)

const (
	// DefaulterPath must match the +kubebuilder:webhook marker on handlers.DomainDefaulter.
	DefaulterPath = "/mutate-weblogic-oracle-v1alpha1-domain"
	// ValidatorPath must match the +kubebuilder:webhook marker on handlers.DomainValidator.
	ValidatorPath = "/validate-weblogic-oracle-v1alpha1-domain"

	// DefaultPort is the port the webhook server listens on when none is configured.
	DefaultPort = 9443
)

// Options contains the configuration required to set up the webhook server.
type Options struct {
	// Enable indicates whether to start the webhook server.
	Enable bool
	// CertDir is the directory holding tls.crt and tls.key, mounted or written by pkg/webhook/cert.
	CertDir string
	// Port is the port the webhook server listens on.
	Port int
}

// ServerOptions returns the controller-runtime webhook server options for opts.
func ServerOptions(opts Options) webhook.Options {
	port := opts.Port
	if port == 0 {
		port = DefaultPort
	}
	return webhook.Options{
		CertDir: opts.CertDir,
		Port:    port,
	}
}

// Setup registers the Domain admission handlers with the manager's webhook server.
// It is a no-op when the webhook is disabled.
func Setup(mgr ctrl.Manager, opts Options) error {
	if !opts.Enable {
		return nil
	}

	logger := mgr.GetLogger().WithName("webhook-setup")
	logger.Info("Setting up webhook server", "certDir", opts.CertDir)

	scheme := mgr.GetScheme()
	gvk := weblogicv1alpha1.GroupVersion.WithKind("Domain")
	if !scheme.Recognizes(gvk) {
		return fmt.Errorf("scheme does not recognize %s", gvk)
	}

	server := mgr.GetWebhookServer()

	// -- Mutating Webhook (Defaulter) --
	server.Register(
		DefaulterPath,
		admission.WithCustomDefaulter(scheme, &weblogicv1alpha1.Domain{}, handlers.NewDomainDefaulter()),
	)

	// -- Validating Webhook (Validator) --
	server.Register(
		ValidatorPath,
		admission.WithCustomValidator(scheme, &weblogicv1alpha1.Domain{}, handlers.NewDomainValidator()),
	)

	return nil
}
