package monitor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeProber struct {
	mu    sync.Mutex
	err   error
	calls atomic.Int32
	hang  bool
}

func (p *fakeProber) set(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

func (p *fakeProber) Ping(ctx context.Context) error {
	p.calls.Add(1)
	p.mu.Lock()
	err, hang := p.err, p.hang
	p.mu.Unlock()
	if hang {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestMonitor_InitialStateIsChecking(t *testing.T) {
	m := New(&fakeProber{}, Options{})
	snap := m.Snapshot()
	if snap.State != Unknown {
		t.Fatalf("State = %v, want unknown", snap.State)
	}
	if got := m.Label(); got != "Checking" {
		t.Fatalf("Label = %q, want Checking", got)
	}
	if !snap.LastChecked.IsZero() {
		t.Fatalf("LastChecked = %v, want zero", snap.LastChecked)
	}
}

func TestMonitor_CheckRecordsEachResult(t *testing.T) {
	p := &fakeProber{}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m := New(p, Options{Now: func() time.Time { return now }})
	ctx := context.Background()

	snap := m.Check(ctx)
	if snap.State != Online || snap.Label() != "Backend Connected" {
		t.Fatalf("after success: %v %q", snap.State, snap.Label())
	}
	if !snap.LastChecked.Equal(now) {
		t.Fatalf("LastChecked = %v, want %v", snap.LastChecked, now)
	}

	boom := errors.New("dial tcp: connection refused")
	p.set(boom)
	m.Check(ctx)
	snap = m.Check(ctx)
	if snap.State != Offline || snap.Label() != "Backend Offline" {
		t.Fatalf("after failure: %v %q", snap.State, snap.Label())
	}
	if snap.ConsecutiveFailures != 2 {
		t.Fatalf("ConsecutiveFailures = %d, want 2", snap.ConsecutiveFailures)
	}
	if !errors.Is(snap.LastError, boom) {
		t.Fatalf("LastError = %v, want wrapped %v", snap.LastError, boom)
	}

	p.set(nil)
	snap = m.Check(ctx)
	if snap.State != Online || snap.ConsecutiveFailures != 0 || snap.LastError != nil {
		t.Fatalf("after recovery: %#v", snap)
	}
}

func TestMonitor_OnChangeFiresOnTransitionsOnly(t *testing.T) {
	p := &fakeProber{}
	var changes []State
	m := New(p, Options{OnChange: func(s Snapshot) { changes = append(changes, s.State) }})
	ctx := context.Background()

	m.Check(ctx)
	m.Check(ctx)
	p.set(errors.New("down"))
	m.Check(ctx)
	m.Check(ctx)
	p.set(nil)
	m.Check(ctx)

	want := []State{Online, Offline, Online}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("changes = %v, want %v", changes, want)
		}
	}
}

func TestMonitor_StartProbesImmediatelyAndOnTick(t *testing.T) {
	p := &fakeProber{}
	m := New(p, Options{Interval: 10 * time.Millisecond})
	m.Start(context.Background())
	defer m.Stop()

	waitFor(t, func() bool { return m.Snapshot().State == Online })
	waitFor(t, func() bool { return p.calls.Load() >= 3 })

	p.set(errors.New("down"))
	waitFor(t, func() bool { return m.Snapshot().State == Offline })
}

func TestMonitor_StopEndsLoop(t *testing.T) {
	p := &fakeProber{}
	m := New(p, Options{Interval: 5 * time.Millisecond})
	m.Start(context.Background())
	m.Start(context.Background()) // second Start is a no-op
	waitFor(t, func() bool { return p.calls.Load() >= 2 })

	m.Stop()
	m.Stop()
	after := p.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if got := p.calls.Load(); got != after {
		t.Fatalf("probes after Stop: %d -> %d", after, got)
	}
}

func TestMonitor_ContextCancelEndsLoopWithoutRecording(t *testing.T) {
	p := &fakeProber{hang: true}
	m := New(p, Options{Interval: time.Hour, ProbeTimeout: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	m.Start(ctx)
	waitFor(t, func() bool { return p.calls.Load() == 1 })

	cancel()
	m.Stop()
	if snap := m.Snapshot(); snap.State != Unknown {
		t.Fatalf("State = %v, want unknown for a cancelled probe", snap.State)
	}
}

func TestMonitor_ProbeTimeoutMarksOffline(t *testing.T) {
	p := &fakeProber{hang: true}
	m := New(p, Options{ProbeTimeout: 10 * time.Millisecond})
	snap := m.Check(context.Background())
	if snap.State != Offline {
		t.Fatalf("State = %v, want offline", snap.State)
	}
	if !errors.Is(snap.LastError, context.DeadlineExceeded) {
		t.Fatalf("LastError = %v, want deadline exceeded", snap.LastError)
	}
}
