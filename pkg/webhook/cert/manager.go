package cert

// +kubebuilder:rbac:groups="",resources=secrets,verbs=get;create;update
// +kubebuilder:rbac:groups=admissionregistration.k8s.io,resources=mutatingwebhookconfigurations,verbs=get;patch
// +kubebuilder:rbac:groups=admissionregistration.k8s.io,resources=validatingwebhookconfigurations,verbs=get;patch

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	admissionregistrationv1 "k8s.io/api/admissionregistration/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

const (
	// CertFileName is the name of the certificate file expected by controller-runtime.
	CertFileName = "tls.crt"
	// KeyFileName is the name of the key file expected by controller-runtime.
	KeyFileName = "tls.key"

	caCertKey = "ca.crt"
	caKeyKey  = "ca.key"

	// RotationThreshold is the buffer period before expiration when the certificate is rotated.
	RotationThreshold = 30 * 24 * time.Hour

	// DefaultCheckInterval is how often a running Manager re-checks the stored certificate.
	DefaultCheckInterval = 12 * time.Hour

	// DefaultServiceName is the Service fronting the webhook server.
	DefaultServiceName = "weblogic-operator-webhook"
	// DefaultSecretName is the Secret holding the generated CA and server certificate.
	DefaultSecretName = "weblogic-operator-webhook-certs" //nolint:gosec // resource name, not a credential
	// DefaultMutatingWebhookName is the MutatingWebhookConfiguration that receives the CA bundle.
	DefaultMutatingWebhookName = "weblogic-operator-mutating-webhook-configuration"
	// DefaultValidatingWebhookName is the ValidatingWebhookConfiguration that receives the CA bundle.
	DefaultValidatingWebhookName = "weblogic-operator-validating-webhook-configuration"
)

// Options configures the certificate manager. Empty names fall back to the Default* constants.
type Options struct {
	// Namespace is the namespace where the operator and its webhook Service run.
	Namespace string
	// ServiceName is the webhook Service the certificate is issued for.
	ServiceName string
	// SecretName is the Secret the CA and server certificate are stored in.
	SecretName string
	// CertDir is the directory the server certificate is written to for the webhook server.
	CertDir string
	// MutatingWebhookName and ValidatingWebhookName are patched with the CA bundle.
	MutatingWebhookName   string
	ValidatingWebhookName string
	// CheckInterval is the rotation check period of Start.
	CheckInterval time.Duration
}

// Manager handles the lifecycle of the webhook certificates.
type Manager struct {
	Client  client.Client
	Options Options

	rng io.Reader
	now func() time.Time
}

// NewManager creates a certificate manager with defaults applied to opts.
func NewManager(c client.Client, opts Options) *Manager {
	if opts.ServiceName == "" {
		opts.ServiceName = DefaultServiceName
	}
	if opts.SecretName == "" {
		opts.SecretName = DefaultSecretName
	}
	if opts.MutatingWebhookName == "" {
		opts.MutatingWebhookName = DefaultMutatingWebhookName
	}
	if opts.ValidatingWebhookName == "" {
		opts.ValidatingWebhookName = DefaultValidatingWebhookName
	}
	if opts.CheckInterval <= 0 {
		opts.CheckInterval = DefaultCheckInterval
	}
	return &Manager{
		Client:  c,
		Options: opts,
		rng:     rand.Reader,
		now:     time.Now,
	}
}

// Bootstrap makes sure a valid certificate is on disk before the webhook server starts.
func (m *Manager) Bootstrap(ctx context.Context) error {
	return m.EnsureCerts(ctx)
}

// Start re-checks the certificate every CheckInterval until ctx is done.
// It implements manager.Runnable; failures are logged and retried on the next tick.
func (m *Manager) Start(ctx context.Context) error {
	logger := log.FromContext(ctx).WithName("webhook-cert-manager")
	ticker := time.NewTicker(m.Options.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := m.EnsureCerts(ctx); err != nil {
				logger.Error(err, "certificate rotation check failed")
			}
		}
	}
}

// NeedLeaderElection is false: every replica serves webhooks and needs the files on its own disk.
func (m *Manager) NeedLeaderElection() bool {
	return false
}

// EnsureCerts loads the stored certificate, regenerates it when missing, expiring or issued
// for another Service, writes it to CertDir and injects the CA bundle into the webhook configurations.
func (m *Manager) EnsureCerts(ctx context.Context) error {
	logger := log.FromContext(ctx).WithName("webhook-cert-manager")

	artifacts, err := m.ensureSecret(ctx)
	if err != nil {
		return fmt.Errorf("failed to ensure cert secret: %w", err)
	}

	if err := m.writeCertsToDisk(artifacts); err != nil {
		return fmt.Errorf("failed to write certs to disk: %w", err)
	}

	if err := m.patchWebhookConfigurations(ctx, artifacts.CACertPEM); err != nil {
		return fmt.Errorf("failed to patch webhook configurations: %w", err)
	}

	logger.V(1).Info("webhook certificates configured", "secret", m.Options.SecretName)
	return nil
}

func (m *Manager) ensureSecret(ctx context.Context) (*Artifacts, error) {
	logger := log.FromContext(ctx)

	secret := &corev1.Secret{}
	err := m.Client.Get(ctx, types.NamespacedName{Name: m.Options.SecretName, Namespace: m.Options.Namespace}, secret)
	secretFound := err == nil
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	var stored *Artifacts
	if secretFound {
		stored = &Artifacts{
			CACertPEM:     secret.Data[caCertKey],
			CAKeyPEM:      secret.Data[caKeyKey],
			ServerCertPEM: secret.Data[corev1.TLSCertKey],
			ServerKeyPEM:  secret.Data[corev1.TLSPrivateKeyKey],
		}
		if m.isValid(stored) {
			return stored, nil
		}
		logger.Info("webhook certificate is missing, expiring or issued for another service; rotating",
			"secret", m.Options.SecretName)
	}

	artifacts, err := m.generate(stored)
	if err != nil {
		return nil, err
	}

	secret.Type = corev1.SecretTypeTLS
	secret.Data = map[string][]byte{
		corev1.TLSCertKey:       artifacts.ServerCertPEM,
		corev1.TLSPrivateKeyKey: artifacts.ServerKeyPEM,
		caCertKey:               artifacts.CACertPEM,
		caKeyKey:                artifacts.CAKeyPEM,
	}

	if secretFound {
		if err := m.Client.Update(ctx, secret); err != nil {
			return nil, fmt.Errorf("failed to update cert secret: %w", err)
		}
	} else {
		secret.ObjectMeta = metav1.ObjectMeta{Name: m.Options.SecretName, Namespace: m.Options.Namespace}
		if err := m.Client.Create(ctx, secret); err != nil {
			return nil, fmt.Errorf("failed to create cert secret: %w", err)
		}
	}
	return artifacts, nil
}

// generate issues a new server certificate. The stored CA is reused while it is valid so the
// CA bundle already injected into the webhook configurations keeps working.
func (m *Manager) generate(stored *Artifacts) (*Artifacts, error) {
	commonName := fmt.Sprintf("%s.%s.svc", m.Options.ServiceName, m.Options.Namespace)
	dnsNames := []string{
		m.Options.ServiceName,
		fmt.Sprintf("%s.%s", m.Options.ServiceName, m.Options.Namespace),
		commonName,
		commonName + ".cluster.local",
	}

	if stored != nil {
		ca, err := ParseCA(stored.CACertPEM, stored.CAKeyPEM)
		if err == nil && !m.expiring(ca.Cert) {
			return issue(m.rng, ca, commonName, dnsNames)
		}
	}
	return GenerateSelfSignedArtifacts(m.rng, commonName, dnsNames)
}

func (m *Manager) isValid(a *Artifacts) bool {
	if len(a.CACertPEM) == 0 {
		return false
	}
	if _, err := tls.X509KeyPair(a.ServerCertPEM, a.ServerKeyPEM); err != nil {
		return false
	}

	block, _ := pem.Decode(a.ServerCertPEM)
	if block == nil {
		return false
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil || m.expiring(cert) {
		return false
	}

	return len(cert.DNSNames) > 0 && cert.DNSNames[0] == m.Options.ServiceName
}

func (m *Manager) expiring(cert *x509.Certificate) bool {
	return m.now().Add(RotationThreshold).After(cert.NotAfter)
}

func (m *Manager) writeCertsToDisk(a *Artifacts) error {
	if err := os.MkdirAll(m.Options.CertDir, 0o755); err != nil {
		return err
	}

	certPath := filepath.Join(m.Options.CertDir, CertFileName)
	keyPath := filepath.Join(m.Options.CertDir, KeyFileName)

	// Unchanged files are left alone so the webhook server's cert watcher does not reload.
	if current, err := os.ReadFile(certPath); err == nil && bytes.Equal(current, a.ServerCertPEM) {
		return nil
	}

	if err := os.WriteFile(keyPath, a.ServerKeyPEM, 0o600); err != nil {
		return err
	}
	return os.WriteFile(certPath, a.ServerCertPEM, 0o644) //nolint:gosec // certificate is public
}

func (m *Manager) patchWebhookConfigurations(ctx context.Context, caBundle []byte) error {
	logger := log.FromContext(ctx)

	mutating := &admissionregistrationv1.MutatingWebhookConfiguration{}
	patched, err := m.patchCABundle(ctx, m.Options.MutatingWebhookName, mutating, func() bool {
		changed := false
		for i := range mutating.Webhooks {
			if !bytes.Equal(mutating.Webhooks[i].ClientConfig.CABundle, caBundle) {
				mutating.Webhooks[i].ClientConfig.CABundle = caBundle
				changed = true
			}
		}
		return changed
	})
	if err != nil {
		return err
	}
	if patched {
		logger.Info("patched CA bundle", "kind", "MutatingWebhookConfiguration", "name", mutating.Name)
	}

	validating := &admissionregistrationv1.ValidatingWebhookConfiguration{}
	patched, err = m.patchCABundle(ctx, m.Options.ValidatingWebhookName, validating, func() bool {
		changed := false
		for i := range validating.Webhooks {
			if !bytes.Equal(validating.Webhooks[i].ClientConfig.CABundle, caBundle) {
				validating.Webhooks[i].ClientConfig.CABundle = caBundle
				changed = true
			}
		}
		return changed
	})
	if err != nil {
		return err
	}
	if patched {
		logger.Info("patched CA bundle", "kind", "ValidatingWebhookConfiguration", "name", validating.Name)
	}
	return nil
}

// patchCABundle fetches the named configuration into obj, lets mutate update it in place and
// sends a merge patch when something changed. A missing configuration is not an error.
func (m *Manager) patchCABundle(ctx context.Context, name string, obj client.Object, mutate func() bool) (bool, error) {
	if err := m.Client.Get(ctx, types.NamespacedName{Name: name}, obj); err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	base := obj.DeepCopyObject().(client.Object)
	if !mutate() {
		return false, nil
	}
	return true, m.Client.Patch(ctx, obj, client.MergeFrom(base))
}
