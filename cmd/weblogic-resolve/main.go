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

// Command weblogic-resolve prints the effective configuration of one server of a Domain
// manifest without talking to a cluster.
//
//	weblogic-resolve -f domain.yaml --server ms1 --cluster cluster-1
//	weblogic-resolve -f domain.yaml --admin
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/yaml"

	weblogicv1alpha1 "github.com/numtide/weblogic-operator/api/v1alpha1"
	"github.com/numtide/weblogic-operator/pkg/resolver"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

// effectiveServer is the printed form of a resolver.ServerSpec.
type effectiveServer struct {
	ServerName      string                             `json:"serverName"`
	ClusterName     string                             `json:"clusterName,omitempty"`
	AdminServer     bool                               `json:"adminServer,omitempty"`
	StartPolicy     weblogicv1alpha1.ServerStartPolicy `json:"startPolicy"`
	ShouldStart     bool                               `json:"shouldStart"`
	ClusterLimit    *int32                             `json:"clusterLimit,omitempty"`
	ShuttingDown    bool                               `json:"domainShuttingDown"`
	Image           string                             `json:"image"`
	ImagePullPolicy string                             `json:"imagePullPolicy"`
	ServerPod       *weblogicv1alpha1.ServerPod        `json:"serverPod"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("weblogic-resolve", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		file            string
		serverName      string
		clusterName     string
		admin           bool
		currentReplicas int
	)
	fs.StringVar(&file, "file", "-", "Domain manifest (YAML or JSON); - reads stdin")
	fs.StringVar(&file, "f", "-", "Shorthand for --file")
	fs.StringVar(&serverName, "server", "", "Managed server to resolve")
	fs.StringVar(&clusterName, "cluster", "", "Cluster the managed server belongs to, if any")
	fs.BoolVar(&admin, "admin", false, "Resolve the admin server instead of a managed server")
	fs.IntVar(&currentReplicas, "current-replicas", 0, "Running members of the cluster, for the start decision")

	opts := zap.Options{Development: true, DestWriter: stderr}
	opts.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	logger := zap.New(zap.UseFlagOptions(&opts)).WithName("weblogic-resolve")

	if admin == (serverName != "") {
		logger.Error(errors.New("exactly one of --server or --admin is required"), "invalid arguments")
		return exitUsage
	}
	if currentReplicas < 0 || currentReplicas > math.MaxInt32 {
		logger.Error(fmt.Errorf("--current-replicas must be between 0 and %d, got %d", math.MaxInt32, currentReplicas),
			"invalid arguments")
		return exitUsage
	}

	domain, err := readDomain(file, stdin)
	if err != nil {
		logger.Error(err, "unable to read domain", "file", file)
		return exitInvalid
	}

	out, err := resolve(logger, domain, serverName, clusterName, admin, int32(currentReplicas))
	if err != nil {
		logger.Error(err, "domain is invalid", "domain", domain.Name)
		return exitInvalid
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		logger.Error(err, "unable to encode result")
		return exitInvalid
	}
	if _, err := stdout.Write(data); err != nil {
		return exitInvalid
	}
	return exitOK
}

func readDomain(file string, stdin io.Reader) (*weblogicv1alpha1.Domain, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, err
	}

	domain := &weblogicv1alpha1.Domain{}
	if err := yaml.UnmarshalStrict(data, domain); err != nil {
		return nil, fmt.Errorf("decoding Domain: %w", err)
	}
	return domain, nil
}

func resolve(
	logger logr.Logger,
	domain *weblogicv1alpha1.Domain,
	serverName, clusterName string,
	admin bool,
	currentReplicas int32,
) (*effectiveServer, error) {
	spec := domain.Spec.DeepCopy()
	resolver.PopulateDomainDefaults(spec)
	if err := resolver.ValidateDomainSpec(spec); err != nil {
		return nil, err
	}
	for _, w := range resolver.StartPolicyWarnings(spec) {
		logger.Info("warning: " + w)
	}

	f := resolver.NewFactory(spec)
	var s *resolver.ServerSpec
	if admin {
		s = f.GetAdminServerSpec()
	} else {
		s = f.GetServerSpec(serverName, clusterName)
	}

	return &effectiveServer{
		ServerName:      s.ServerName(),
		ClusterName:     s.ClusterName(),
		AdminServer:     s.IsAdminServer(),
		StartPolicy:     s.StartPolicy(),
		ShouldStart:     s.ShouldStart(currentReplicas),
		ClusterLimit:    s.ClusterLimit(),
		ShuttingDown:    f.IsShuttingDown(),
		Image:           s.Image(),
		ImagePullPolicy: string(s.ImagePullPolicy()),
		ServerPod:       s.ServerPod(),
	}, nil
}
