// Package mirror implements the one-way mirror lifecycle: creating a
// local+hosted mirror pair from an upstream URL and reconciling existing
// mirrors against their upstreams.
//
// The package owns the remote topology invariants (origin pushable, upstream
// push-blocked), pull-request ref sanitization, idempotent README provenance
// annotation, default branch resolution, and the Create and Sync-All
// orchestrators with their error and exit semantics.
package mirror
