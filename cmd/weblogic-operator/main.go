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

package main

import (
	"context"
	"crypto/tls"
	"flag"
	"os"
	"path/filepath"
	"strings"

	// Import all Kubernetes client auth plugins (e.g. Azure, GCP, OIDC, etc.)
	_ "k8s.io/client-go/plugin/pkg/client/auth"

	admissionregistrationv1 "k8s.io/api/admissionregistration/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/cache"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/metrics/filters"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"
	ctrlwebhook "sigs.k8s.io/controller-runtime/pkg/webhook"

	weblogicv1alpha1 "github.com/numtide/weblogic-operator/api/v1alpha1"
	domaincontroller "github.com/numtide/weblogic-operator/pkg/controller/domain"
	weblogicwebhook "github.com/numtide/weblogic-operator/pkg/webhook"
	"github.com/numtide/weblogic-operator/pkg/webhook/cert"
)

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(weblogicv1alpha1.AddToScheme(scheme))
	// +kubebuilder:scaffold:scheme
}

func main() {
	var metricsAddr string
	var enableLeaderElection bool
	var probeAddr string
	var secureMetrics bool
	var enableHTTP2 bool
	var targetNamespaces string
	var tlsOpts []func(*tls.Config)

	// Webhook Flags
	var webhookEnabled bool
	var webhookCertDir string
	var webhookPort int
	var webhookServiceName string
	var webhookCertSecret string

	defaultNS := os.Getenv("POD_NAMESPACE")
	if defaultNS == "" {
		defaultNS = "weblogic-operator-system"
	}

	// General Flags
	flag.StringVar(&metricsAddr, "metrics-bind-address", "0", "The address the metrics endpoint binds to.")
	flag.StringVar(&probeAddr, "health-probe-bind-address", ":8081", "The address the probe endpoint binds to.")
	flag.BoolVar(&enableLeaderElection, "leader-elect", false, "Enable leader election for controller manager.")
	flag.BoolVar(&secureMetrics, "metrics-secure", true, "If set, the metrics endpoint is served securely via HTTPS.")
	flag.BoolVar(&enableHTTP2, "enable-http2", false, "If set, HTTP/2 will be enabled for the metrics and webhook servers")
	flag.StringVar(&targetNamespaces, "target-namespaces", os.Getenv("TARGET_NAMESPACES"),
		"Comma-separated namespaces whose Domains are managed. Empty means all namespaces.")

	// Webhook Flag Configuration
	flag.BoolVar(&webhookEnabled, "webhook-enable", true, "Enable the admission webhook server")
	flag.StringVar(&webhookCertDir, "webhook-cert-dir", "/var/run/secrets/webhook", "Directory to read webhook certificates from")
	flag.IntVar(&webhookPort, "webhook-port", weblogicwebhook.DefaultPort, "Port the webhook server listens on")
	flag.StringVar(&webhookServiceName, "webhook-service-name", cert.DefaultServiceName,
		"Service fronting the webhook server, used for self-signed certificates")
	flag.StringVar(&webhookCertSecret, "webhook-cert-secret", cert.DefaultSecretName,
		"Secret storing self-signed webhook certificates")

	opts := zap.Options{Development: true}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))
	setupLog.Info("operator namespace", "namespace", defaultNS)

	disableHTTP2 := func(c *tls.Config) {
		setupLog.Info("disabling http/2")
		c.NextProtos = []string{"http/1.1"}
	}
	if !enableHTTP2 {
		tlsOpts = append(tlsOpts, disableHTTP2)
	}

	metricsServerOptions := metricsserver.Options{
		BindAddress:   metricsAddr,
		SecureServing: secureMetrics,
		TLSOpts:       tlsOpts,
	}

	if secureMetrics {
		metricsServerOptions.FilterProvider = filters.WithAuthenticationAndAuthorization
	}

	// If the cert files already exist (e.g. mounted by cert-manager), internal generation is skipped.
	useInternalCerts := false
	if webhookEnabled {
		if !certsExist(webhookCertDir) {
			setupLog.Info("webhook certificates not found on disk; enabling internal certificate rotation")
			useInternalCerts = true
		} else {
			setupLog.Info("webhook certificates found on disk; using external certificate management")
		}
	}

	webhookOpts := weblogicwebhook.Options{
		Enable:  webhookEnabled,
		CertDir: webhookCertDir,
		Port:    webhookPort,
	}
	serverOpts := weblogicwebhook.ServerOptions(webhookOpts)
	serverOpts.TLSOpts = tlsOpts

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme:                 scheme,
		Metrics:                metricsServerOptions,
		HealthProbeBindAddress: probeAddr,
		LeaderElection:         enableLeaderElection,
		LeaderElectionID:       "weblogic-operator.weblogic.oracle",
		WebhookServer:          ctrlwebhook.NewServer(serverOpts),
		Cache:                  cacheOptions(targetNamespaces),
		Client: client.Options{
			// Certificate rotation reads outside the watched namespaces.
			Cache: &client.CacheOptions{
				DisableFor: []client.Object{
					&corev1.Secret{},
					&admissionregistrationv1.MutatingWebhookConfiguration{},
					&admissionregistrationv1.ValidatingWebhookConfiguration{},
				},
			},
		},
	})
	if err != nil {
		setupLog.Error(err, "unable to start manager")
		os.Exit(1)
	}

	if useInternalCerts {
		// The manager's client is not usable before Start, so bootstrap with a direct one.
		bootstrapClient, err := client.New(mgr.GetConfig(), client.Options{Scheme: scheme})
		if err != nil {
			setupLog.Error(err, "failed to create bootstrap client")
			os.Exit(1)
		}

		rotator := cert.NewManager(bootstrapClient, cert.Options{
			Namespace:   defaultNS,
			ServiceName: webhookServiceName,
			SecretName:  webhookCertSecret,
			CertDir:     webhookCertDir,
		})
		if err := rotator.Bootstrap(context.Background()); err != nil {
			setupLog.Error(err, "failed to bootstrap webhook certificates")
			os.Exit(1)
		}

		rotator.Client = mgr.GetClient()
		if err := mgr.Add(rotator); err != nil {
			setupLog.Error(err, "unable to add certificate rotator to manager")
			os.Exit(1)
		}
	}

	if err = (&domaincontroller.DomainReconciler{
		Client:   mgr.GetClient(),
		Scheme:   mgr.GetScheme(),
		Recorder: mgr.GetEventRecorderFor("weblogic-operator"),
	}).SetupWithManager(mgr); err != nil {
		setupLog.Error(err, "unable to create controller", "controller", "Domain")
		os.Exit(1)
	}

	if err := weblogicwebhook.Setup(mgr, webhookOpts); err != nil {
		setupLog.Error(err, "unable to set up webhook")
		os.Exit(1)
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up health check")
		os.Exit(1)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		setupLog.Error(err, "unable to set up ready check")
		os.Exit(1)
	}

	setupLog.Info("starting manager")
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		setupLog.Error(err, "problem running manager")
		os.Exit(1)
	}
}

// cacheOptions restricts the manager's cache to the given comma-separated namespaces.
func cacheOptions(namespaces string) cache.Options {
	opts := cache.Options{}
	for _, ns := range strings.Split(namespaces, ",") {
		ns = strings.TrimSpace(ns)
		if ns == "" {
			continue
		}
		if opts.DefaultNamespaces == nil {
			opts.DefaultNamespaces = map[string]cache.Config{}
		}
		opts.DefaultNamespaces[ns] = cache.Config{}
	}
	return opts
}

func certsExist(dir string) bool {
	_, errCrt := os.Stat(filepath.Join(dir, "tls.crt"))
	_, errKey := os.Stat(filepath.Join(dir, "tls.key"))
	return !os.IsNotExist(errCrt) && !os.IsNotExist(errKey)
}
