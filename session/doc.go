// Package session owns the session lifecycle: creation of unguessable
// session IDs, lookup with time-based validity, idempotent destruction, and
// optional Redis persistence.
//
// # Composition
//
// The lifecycle is built from decorators sharing the [Store] contract:
//
//   - [MemoryStore] — mutex-guarded in-process map, the base store.
//   - [ExpiringStore] — adds a fixed validity window; expired lookups behave
//     exactly like lookups of a never-created ID.
//   - [PersistentStore] — mirrors every create into a durable [Repository]
//     and treats the repository as the source of truth for lookup and
//     destroy, so sessions survive process restarts.
//
// # Binary encoding
//
// Durable records are stored as a compact binary format (schema v1) with the
// session ID kept in the key, not the value. The encoder is append-only: new
// versions add fields but never reinterpret old ones.
//
// # Architecture boundaries
//
// This package decides session validity only. It does NOT resolve principals,
// parse credentials, or enforce authentication policy — those belong to the
// gate and its strategies.
package session
