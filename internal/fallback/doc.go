// Package fallback is the data client the rest of setlist talks to.
//
// Every operation tries the show service first. Reads that fail for any
// reason (network, timeout, non-2xx, bad JSON) return the seed set merged
// with the user's local records instead of an error. Reads that succeed
// return the service data merged on top of the same offline records, so a
// band created offline stays visible after the service comes back.
//
// Writes that fail are stored locally under a local id and reported
// PendingLocal, or Unsaved when the local store cannot persist them either.
// Edits and deletes of local-only reviews never reach the
// service. A confirmed create retires pending local records with the same
// natural key.
//
// The client never consults the availability monitor.
package fallback
