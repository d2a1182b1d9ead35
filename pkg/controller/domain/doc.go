// Package domain implements the controller for the Domain resource.
//
// The Domain controller does not create pods or services. It turns the declared
// configuration into the effective lifecycle intent of every server and publishes it:
//
//  1. Resolution:
//     It applies in-memory defaults (robustness against webhook unavailability), validates
//     the spec and builds a 'pkg/resolver' Factory from it.
//
//  2. Status:
//     It records whether the domain is shutting down, the effective replica count of each
//     declared cluster and the start decision of the admin server and each declared managed
//     server. The status is only written when it actually changed.
//
//  3. Observability:
//     It mirrors the same values into Prometheus gauges, emits events on shutdown
//     transitions and invalid specs, and traces each reconciliation.
//
// Declared managed servers carry no cluster membership in the Domain spec, so their start
// decision is resolved as unclustered servers.
package domain
