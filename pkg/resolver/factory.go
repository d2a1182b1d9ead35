package resolver

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"k8s.io/utils/ptr"

	weblogicv1alpha1 "github.com/numtide/weblogic-operator/api/v1alpha1"
	"github.com/numtide/weblogic-operator/pkg/merge"
)

// nullAdminServer stands in for a domain that declares no admin server overrides.
// It is only ever read.
var nullAdminServer = &weblogicv1alpha1.AdminServer{}

// Factory computes effective server specifications from a DomainSpec.
//
// All reads are side-effect free. SetReplicaCount is the only write and is serialized
// against reads.
type Factory struct {
	mu   sync.RWMutex
	spec *weblogicv1alpha1.DomainSpec
}

// NewFactory returns a Factory reading from spec. The spec is not copied: callers that keep
// modifying it must not do so concurrently with resolution.
func NewFactory(spec *weblogicv1alpha1.DomainSpec) *Factory {
	if spec == nil {
		spec = &weblogicv1alpha1.DomainSpec{}
	}
	return &Factory{spec: spec}
}

// GetServerSpec returns the effective spec of the managed server serverName, resolved as a
// member of clusterName. An empty clusterName means the server is not clustered.
func (f *Factory) GetServerSpec(serverName, clusterName string) *ServerSpec {
	f.mu.RLock()
	defer f.mu.RUnlock()

	server := f.spec.GetManagedServer(serverName)
	var cluster *weblogicv1alpha1.Cluster
	var limit *int32
	if clusterName != "" {
		cluster = f.spec.GetCluster(clusterName)
		limit = ptr.To(ResolveReplicas(cluster, f.spec.Replicas))
	}

	// Nil overrides resolve to empty ServerConfigs through the nil-safe getters.
	var serverConfig, clusterConfig *weblogicv1alpha1.ServerConfig
	if server != nil {
		serverConfig = &server.ServerConfig
	}
	if cluster != nil {
		clusterConfig = &cluster.ServerConfig
	}

	s := f.newServerSpec(serverName,
		FoldServerPods(serverConfig.GetServerPod(), clusterConfig.GetServerPod(), f.spec.ServerPod),
		ResolveStartPolicy(serverConfig.GetServerStartPolicy(), clusterConfig.GetServerStartPolicy(),
			f.spec.ServerStartPolicy),
	)
	s.clusterName = clusterName
	s.clusterLimit = limit
	return s
}

// GetAdminServerSpec returns the effective spec of the admin server.
func (f *Factory) GetAdminServerSpec() *ServerSpec {
	f.mu.RLock()
	defer f.mu.RUnlock()

	admin := f.adminServer()
	s := f.newServerSpec(f.spec.AsName,
		FoldServerPods(admin.ServerPod, f.spec.ServerPod),
		ResolveStartPolicy(admin.ServerStartPolicy, "", f.spec.ServerStartPolicy),
	)
	s.admin = true
	return s
}

// GetReplicaCount returns the effective replica count of clusterName. It never modifies the spec.
func (f *Factory) GetReplicaCount(clusterName string) int32 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return ResolveReplicas(f.spec.GetCluster(clusterName), f.spec.Replicas)
}

// SetReplicaCount records replicas on clusterName, declaring the cluster first if the domain
// has no override for it yet. This mutates the underlying DomainSpec.
func (f *Factory) SetReplicaCount(clusterName string, replicas int32) error {
	if replicas < 0 {
		return fmt.Errorf("%w: cluster %q: %d", ErrInvalidReplicaCount, clusterName, replicas)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.spec.GetOrCreateCluster(clusterName).Replicas = ptr.To(replicas)
	return nil
}

// IsShuttingDown reports whether the whole domain is being shut down.
func (f *Factory) IsShuttingDown() bool {
	return !f.GetAdminServerSpec().ShouldStart(0)
}

// DefaultReplicaLimit is the limit used for servers outside any cluster.
func (f *Factory) DefaultReplicaLimit() int32 {
	return DefaultReplicaLimit
}

// ExportedNetworkAccessPointNames lists the admin server channels exposed through services.
func (f *Factory) ExportedNetworkAccessPointNames() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.spec.AdminServer.GetExportedNetworkAccessPointNames()
}

// ExportT3Channels lists the admin server T3 channels exposed through a NodePort Service.
func (f *Factory) ExportT3Channels() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return slices.Clone(f.spec.ExportT3Channels)
}

// ChannelServiceLabels returns the labels declared for the service of channel nap, or nil.
func (f *Factory) ChannelServiceLabels(nap string) map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if ch := f.spec.AdminServer.GetExportedNetworkAccessPoint(nap); ch != nil {
		return maps.Clone(ch.Labels)
	}
	return nil
}

// ChannelServiceAnnotations returns the annotations declared for the service of channel nap, or nil.
func (f *Factory) ChannelServiceAnnotations(nap string) map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if ch := f.spec.AdminServer.GetExportedNetworkAccessPoint(nap); ch != nil {
		return maps.Clone(ch.Annotations)
	}
	return nil
}

func (f *Factory) adminServer() *weblogicv1alpha1.AdminServer {
	if f.spec.AdminServer == nil {
		return nullAdminServer
	}
	return f.spec.AdminServer
}

// newServerSpec must be called with the read lock held.
func (f *Factory) newServerSpec(
	serverName string,
	pod *weblogicv1alpha1.ServerPod,
	policy weblogicv1alpha1.ServerStartPolicy,
) *ServerSpec {
	return &ServerSpec{
		serverName:       serverName,
		pod:              pod,
		startPolicy:      policy,
		domainPolicy:     merge.String(f.spec.ServerStartPolicy, DefaultServerStartPolicy),
		image:            f.spec.EffectiveImage(),
		imagePullPolicy:  f.spec.EffectiveImagePullPolicy(),
		imagePullSecrets: slices.Clone(f.spec.EffectiveImagePullSecrets()),
	}
}
