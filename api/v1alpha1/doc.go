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

// Package v1alpha1 defines the API types for the WebLogic Operator.
//
// This package contains the Go type definitions for the Domain custom resource
// in the weblogic.oracle API group. These types are used by controller-gen to generate:
//   - CustomResourceDefinitions (CRDs)
//   - DeepCopy methods (zz_generated.deepcopy.go)
//
// # Override Levels
//
// A Domain declares server configuration at three levels, from most general
// to most specific:
//
//	Domain (spec.serverPod, spec.serverStartPolicy, spec.replicas)
//	├── Cluster (spec.clusters[].serverPod, .serverStartPolicy, .replicas)
//	│   └── ManagedServer (spec.managedServers[].serverPod, .serverStartPolicy)
//	└── AdminServer (spec.adminServer.serverPod, .serverStartPolicy)
//
// The types here only carry what the user declared. Computing the effective
// configuration for a single server is the job of the resolver package.
//
// # Versioning
//
// This is the v1alpha1 version, indicating the API is in early development
// and may change in backward-incompatible ways.
package v1alpha1

//go:generate go run sigs.k8s.io/controller-tools/cmd/controller-gen@v0.17.2 object paths=./...
