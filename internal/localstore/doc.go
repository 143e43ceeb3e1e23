// Package localstore persists records the user created while the show
// service could not accept them.
//
// # Layout
//
// A Backend is a durable key-value primitive where Save overwrites the whole
// value for a key. Three backends ship:
//
//   - FileBackend: <data_dir>/<key>.json, written via temp file, fsync, rename
//   - SQLiteBackend: one kv table in <data_dir>/setlist.db (modernc.org/sqlite)
//   - MemoryBackend: process memory, for tests and ephemeral runs
//
// A Collection is the JSON array of records stored under one key
// (KeyCreatedBands, KeyCreatedReviews, and the KeyDeletedReviews tombstones).
// It is loaded once when opened and rewritten in full on every mutation.
// Volumes are a single user's offline edits, so the O(n) rewrite is fine.
//
// # Failure behavior
//
// Open never fails: a missing key or undecodable JSON both start an empty
// collection (corruption is logged). A failed Save leaves the in-memory list
// unchanged and returns the error, so memory and storage agree after every
// call.
//
// # Concurrency
//
// All Collection methods are safe for concurrent use. Mutations hold a single
// mutex across the read-modify-persist sequence.
//
// Records are never pruned automatically.
package localstore
