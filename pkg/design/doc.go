// Package design stores plant designs and their owners.
//
// A [Design] is a named, saved set of plant parameters owned by a [User].
// The package validates inputs at the boundary, persists through a [Store]
// and exposes the operations the CLI and HTTP service need through
// [Service].
//
// # Stores
//
// Two backends implement [Store]:
//   - [MemoryStore]: process-local maps for tests and single-shot CLI use
//   - [MongoStore]: MongoDB collections "designs" and "users"
//
// Both return errors carrying the codes from pkg/errors, so callers can map
// DESIGN_NOT_FOUND, USER_NOT_FOUND and CONFLICT without knowing the backend.
//
// # Ownership
//
// Every design belongs to exactly one user. Owner-scoped operations treat a
// design owned by someone else as missing. Admin operations bypass the
// owner check and are guarded by [Service.RequireAdmin].
package design
