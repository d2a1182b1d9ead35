// Package cert manages the TLS certificate of the admission webhook server when no external
// issuer (such as cert-manager) has mounted one.
//
// The Manager keeps a self-signed CA and a server certificate for the webhook Service in a
// Secret, writes the server pair to the webhook server's certificate directory and injects the
// CA bundle into the operator's MutatingWebhookConfiguration and ValidatingWebhookConfiguration.
// Certificates within RotationThreshold of expiry are re-issued; the CA is kept while valid.
//
// Usage:
//
//	rotator := cert.NewManager(c, cert.Options{Namespace: ns, CertDir: dir})
//	if err := rotator.Bootstrap(ctx); err != nil {
//	    // handle error
//	}
//	_ = mgr.Add(rotator)
package cert
