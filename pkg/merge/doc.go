// Package merge implements the "absorb missing values" primitives used to layer
// a more specific configuration over a more general one.
//
// Every function takes a specific and a general value and returns a value in which
// the specific side wins for anything it set, and gaps are filled from the general
// side. Neither argument is modified, but the result may share nested storage with
// them; callers that need an independent result pass deep copies in.
//
// The primitives are shaped by the kind of field being merged rather than by the
// record that contains it:
//
//   - Value / String: single-valued fields, where nil or "" means unset.
//   - KeyedList: ordered lists whose entries are identified by a name (env vars,
//     volumes, volume mounts). The specific entry for a name wins whole.
//   - Map: label, annotation, selector and quantity maps. General keys are only
//     added where the specific map has none.
//   - Union: ordered, de-duplicated union used for capability add/drop lists.
//
// PodSecurityContext, SecurityContext, Capabilities and ResourceRequirements compose
// these for the Kubernetes types that appear in a server pod.
//
// An empty list or map is treated exactly like an absent one. Kubernetes drops
// empty collections on the wire (omitempty), so the two cannot be told apart once
// a manifest has been stored.
package merge
