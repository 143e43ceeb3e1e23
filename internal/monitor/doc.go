// Package monitor tracks whether the show service is reachable so the UI
// can show a status indicator.
//
// # Overview
//
// A Monitor owns one background goroutine that probes the service
// (GET /api/shows/) at a fixed cadence, 30 seconds by default. Each result
// overwrites the recorded state: a success means Online, any failure means
// Offline. Before the first probe finishes the state is Unknown, which the
// indicator renders as "Checking".
//
//	Producer (probe loop):          Consumer (UI):
//	┌────────────────┐             ┌──────────────────┐
//	│ prober.Ping()  │             │                  │
//	│      ↓         │             │                  │
//	│ record(err)    │────────────→│ m.Snapshot()     │
//	│      ↓         │  (RWMutex)  │      ↓           │
//	│ wait for tick  │             │ render indicator │
//	└────────────────┘             └──────────────────┘
//
// # Lifecycle
//
// Start returns immediately. The loop ends when its context is cancelled or
// Stop is called; Stop waits for the goroutine and is idempotent, so no
// update lands after the owning view is gone.
//
// # Independence
//
// The fallback client never reads the monitor. Every data operation makes
// its own remote attempt, so the indicator may lag reality by up to one
// interval without affecting what data is shown.
//
// # Snapshots
//
// Snapshot returns a value copy under a read lock. OnChange, when set, runs
// after each state transition outside the lock.
package monitor
