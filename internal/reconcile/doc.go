// Package reconcile implements the mapping-table-driven transformation
// between the provider's heterogeneous endpoint payloads, the merged
// domain object, and the flat storage record.
//
// The package works on untyped JSON (map[string]any trees decoded with
// encoding/json). Typed domain structs are only imposed after
// reconciliation, by the caller, via a final decode step.
//
// Three stages:
//
//  1. Path: dotted-path Get/Set over nested JSON, with k[n] index and
//     k[] wildcard segments on the read side.
//
//  2. Provider→Domain: ReconcileOne / ReconcileList project one endpoint
//     envelope into a domain object using the provider mapping table,
//     optionally merging into an accumulator from a previous endpoint.
//     Monetary fields are normalized from minor units in the same pass.
//
//  3. Domain→Storage: ToRecord flattens a fully merged domain object into
//     a column-keyed record using the storage mapping table, then runs the
//     table's finisher (defaults, synthetic fields, bedroom enumeration).
//
// Mapping tables are static configuration embedded in mappings/ and loaded
// once with LoadMaps.
package reconcile
