// Package app is the composition root shared by the setlist CLI and the
// terminal browser.
//
// # Overview
//
// New loads configuration and wires the components in dependency order:
//
//	┌──────────────┐
//	│   New()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read ~/.config/setlist/config.toml
//	       ├─────> logging.NewLogger()    zap logger (stderr, file, or nop)
//	       ├─────> openBackend()          file, sqlite or memory store
//	       ├─────> remote.NewClient()     HTTP client for the show service
//	       ├─────> fallback.New()         seed + local + remote data client
//	       └─────> monitor.New()          stopped availability monitor
//
// Browse starts the monitor, runs the browser until it exits, and stops the
// monitor again. CLI commands use Data directly and never start the
// monitor; the status command calls Monitor.Check once.
//
// # Error Handling
//
// Only startup problems are fatal: an invalid config file, an unusable data
// directory, or a malformed base URL. Once running, remote failures are
// absorbed by the fallback client and only show up in logs and in the
// pending state of write results.
//
// # Logging
//
// Non-interactive runs log to stderr at log_level. Interactive runs log to
// log_file when set and discard logs otherwise.
package app
