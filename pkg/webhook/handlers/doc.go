// Package handlers implements the admission logic for Domain resources.
//
// It contains implementations of the controller-runtime CustomDefaulter and
// CustomValidator interfaces:
//
//  1. Mutation (DomainDefaulter):
//     Intercepts CREATE and UPDATE requests and writes the implicit domain-wide
//     defaults into the stored object, using the same 'pkg/resolver' code that the
//     reconciler relies on.
//
//  2. Validation (DomainValidator):
//     Intercepts CREATE and UPDATE requests and enforces the invariants the resolver
//     assumes (complete domain identity, non-negative replica counts, unique override
//     names), plus rules that need the old object such as an immutable domainUID.
package handlers
