package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultInterval is the time between probes.
	DefaultInterval     = 30 * time.Second
	defaultProbeTimeout = 10 * time.Second
)

// State is the last observed availability of the show service.
type State int

const (
	// Unknown is the state until the first probe finishes.
	Unknown State = iota
	Online
	Offline
)

func (s State) String() string {
	switch s {
	case Online:
		return "online"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}

// Label is the text shown in the status indicator.
func (s State) Label() string {
	switch s {
	case Online:
		return "Backend Connected"
	case Offline:
		return "Backend Offline"
	default:
		return "Checking"
	}
}

// Snapshot is the state of the monitor at one point in time.
type Snapshot struct {
	State               State
	LastChecked         time.Time
	LastError           error
	ConsecutiveFailures int
}

// Label is shorthand for s.State.Label().
func (s Snapshot) Label() string {
	return s.State.Label()
}

// Prober checks whether the service answers. *remote.Client satisfies it.
type Prober interface {
	Ping(ctx context.Context) error
}

// Options configure a Monitor. The zero value is usable.
type Options struct {
	Interval     time.Duration
	ProbeTimeout time.Duration
	Logger       *zap.Logger
	// OnChange runs after every state transition, outside the monitor's lock.
	OnChange func(Snapshot)
	Now      func() time.Time
}

// Monitor periodically probes the service and records whether it answered.
// It only informs the display; nothing else consults it.
type Monitor struct {
	prober   Prober
	interval time.Duration
	timeout  time.Duration
	log      *zap.Logger
	onChange func(Snapshot)
	now      func() time.Time

	mu       sync.RWMutex
	snapshot Snapshot

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New returns a stopped monitor for prober.
func New(prober Prober, opts Options) *Monitor {
	m := &Monitor{
		prober:   prober,
		interval: opts.Interval,
		timeout:  opts.ProbeTimeout,
		log:      opts.Logger,
		onChange: opts.OnChange,
		now:      opts.Now,
	}
	if m.interval <= 0 {
		m.interval = DefaultInterval
	}
	if m.timeout <= 0 {
		m.timeout = min(defaultProbeTimeout, m.interval)
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Start probes once immediately and then once per interval until ctx ends or
// Stop is called. It returns at once; calling it on a running monitor does
// nothing.
func (m *Monitor) Start(ctx context.Context) {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	if m.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.cancel, m.done = cancel, done

	go func() {
		defer close(done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			m.Check(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop cancels the probe loop and waits for it to exit. No probe result is
// recorded after Stop returns. It is safe to call more than once.
func (m *Monitor) Stop() {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.cancel, m.done = nil, nil
}

// Check runs one probe now and returns the resulting snapshot. A probe that
// is cut short because ctx ended is not recorded.
func (m *Monitor) Check(ctx context.Context) Snapshot {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	err := m.prober.Ping(probeCtx)
	cancel()
	if ctx.Err() != nil {
		return m.Snapshot()
	}
	return m.record(err)
}

func (m *Monitor) record(err error) Snapshot {
	m.mu.Lock()
	prev := m.snapshot.State
	m.snapshot.LastChecked = m.now()
	if err != nil {
		m.snapshot.State = Offline
		m.snapshot.LastError = err
		m.snapshot.ConsecutiveFailures++
	} else {
		m.snapshot.State = Online
		m.snapshot.LastError = nil
		m.snapshot.ConsecutiveFailures = 0
	}
	snap := m.copyLocked()
	m.mu.Unlock()

	if err != nil {
		m.log.Debug("service probe failed", zap.Int("failures", snap.ConsecutiveFailures), zap.Error(err))
	}
	if snap.State != prev {
		m.log.Info("service availability changed", zap.Stringer("from", prev), zap.Stringer("to", snap.State))
		if m.onChange != nil {
			m.onChange(snap)
		}
	}
	return snap
}

// Snapshot returns a copy of the current state.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.copyLocked()
}

// Label returns the indicator text for the current state.
func (m *Monitor) Label() string {
	return m.Snapshot().Label()
}

func (m *Monitor) copyLocked() Snapshot {
	snap := m.snapshot
	if snap.LastError != nil {
		snap.LastError = fmt.Errorf("%w", m.snapshot.LastError)
	}
	return snap
}
