package sysinfo

import (
	"strings"
	"testing"

	"eecsim-go/event"
)

func TestSnapshotPopulated(t *testing.T) {
	bus := event.New(event.Config{})
	svc := New(bus, nil, 1)

	snap := svc.Snapshot()
	if snap.RunID == "" {
		t.Error("run ID empty")
	}
	if snap.MemTotalMB == 0 {
		t.Error("total memory not collected")
	}
	if snap.At.IsZero() {
		t.Error("collection timestamp not set")
	}
}

func TestPublishInterval(t *testing.T) {
	bus := event.New(event.Config{QueueSize: 8})
	var got []event.Payload
	err := bus.Subscribe(event.SystemStatus, "test", func(_ event.Kind, p *event.Payload, _ any) {
		got = append(got, *p)
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	svc := New(bus, nil, 3)
	for i := 0; i < 6; i++ {
		svc.Tick()
	}
	bus.Process()

	if len(got) != 2 {
		t.Fatalf("published %d status events over 6 ticks at interval 3, want 2", len(got))
	}
	if !strings.Contains(got[0].Str, "cpu=") || !strings.Contains(got[0].Str, "mem=") {
		t.Errorf("summary = %q", got[0].Str)
	}
}

// Exercises Snapshot from another goroutine while the frame loop ticks,
// the way the diagnostics server reads it. Meant to run under the race
// detector.
func TestSnapshotConcurrentWithTicks(t *testing.T) {
	bus := event.New(event.Config{QueueSize: 64})
	svc := New(bus, nil, 1)

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for {
			select {
			case <-done:
				return
			default:
			}
			snap := svc.Snapshot()
			if snap.RunID == "" {
				t.Error("run ID empty in concurrent read")
				return
			}
		}
	}()

	for i := 0; i < 200; i++ {
		svc.Tick()
		bus.Process()
	}
	close(done)
	<-finished
}

func TestDistinctRunIDs(t *testing.T) {
	bus := event.New(event.Config{})
	a := New(bus, nil, 1)
	b := New(bus, nil, 1)
	if a.Snapshot().RunID == b.Snapshot().RunID {
		t.Error("two services share a run ID")
	}
}
