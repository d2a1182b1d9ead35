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

// Package webhook provides the entry point for configuring Kubernetes admission
// webhooks for the WebLogic Operator.
//
// The package exposes a [Setup] function that registers all webhook handlers with
// the controller-runtime manager. It wires together:
//
//   - Mutating Webhook: Writes the implicit domain defaults (start policy, image,
//     pull policy) into Domain resources before they are persisted.
//
//   - Validating Webhook: Rejects Domains the resolver cannot work with (missing
//     identity fields, negative replica counts, duplicate override names) and warns
//     about start policies that have no effect.
//
// Both handlers live in pkg/webhook/handlers and call into pkg/resolver, so admission
// and reconciliation always agree.
//
// # TLS Certificates
//
// Certificates are provisioned outside the operator (e.g. by cert-manager) and mounted
// into [Options.CertDir].
package webhook
