package scheduler

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func waitEvent(t *testing.T, ch <-chan DueEvent, timeout time.Duration) DueEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return DueEvent{}
	}
}

func expectQuiet(t *testing.T, ch <-chan DueEvent, d time.Duration) {
	t.Helper()
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %q", ev.TaskID)
	case <-time.After(d):
	}
}

func TestEngineEmitsInDueOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if _, err := engine.Replace([]DueEvent{
		{TaskID: "later", At: now.Add(80 * time.Millisecond)},
		{TaskID: "sooner", At: now.Add(20 * time.Millisecond)},
	}, now); err != nil {
		t.Fatalf("replace: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.TaskID != "sooner" || second.TaskID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.TaskID, second.TaskID)
	}
}

func TestEngineDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	at := now.Add(20 * time.Millisecond)
	events := make([]DueEvent, 0, 25)
	for i := 0; i < 25; i++ {
		events = append(events, DueEvent{TaskID: fmt.Sprintf("t%d", i), At: at})
	}
	if _, err := engine.Replace(events, now); err != nil {
		t.Fatalf("replace: %v", err)
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestReplaceValidatesDueTime(t *testing.T) {
	engine := NewEngine(1)
	if _, err := engine.Replace([]DueEvent{{TaskID: "bad"}}, time.Now()); !errors.Is(err, ErrInvalidDueTime) {
		t.Fatalf("expected ErrInvalidDueTime, got %v", err)
	}
}

func TestReplaceSwapsPendingSetAndSkipsPast(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if _, err := engine.Replace([]DueEvent{{TaskID: "stale", At: now.Add(time.Hour)}}, now); err != nil {
		t.Fatalf("replace stale: %v", err)
	}

	n, err := engine.Replace([]DueEvent{
		{TaskID: "past", At: now.Add(-time.Minute)},
		{TaskID: "soon", At: now.Add(20 * time.Millisecond)},
		{TaskID: "soon", At: now.Add(20 * time.Millisecond)},
	}, now)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if n != 1 || engine.Pending() != 1 {
		t.Fatalf("expected one pending event, got n=%d pending=%d", n, engine.Pending())
	}

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.TaskID != "soon" {
		t.Fatalf("unexpected event %q", ev.TaskID)
	}
	if engine.Pending() != 0 {
		t.Fatalf("stale event should have been replaced, pending=%d", engine.Pending())
	}
	expectQuiet(t, engine.C(), 50*time.Millisecond)
}

func TestReplaceDoesNotRefireDeliveredAlert(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	standup := DueEvent{TaskID: "standup", At: now.Add(20 * time.Millisecond)}
	if _, err := engine.Replace([]DueEvent{standup}, now); err != nil {
		t.Fatalf("replace: %v", err)
	}
	waitEvent(t, engine.C(), time.Second)

	// A refresh computed with an old clock still lists the alert as future.
	n, err := engine.Replace([]DueEvent{standup}, now)
	if err != nil {
		t.Fatalf("replace again: %v", err)
	}
	if n != 0 {
		t.Fatalf("delivered alert was queued again, pending=%d", n)
	}
	expectQuiet(t, engine.C(), 80*time.Millisecond)
}

func TestReplaceAfterStop(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if _, err := engine.Replace(nil, time.Now()); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if _, ok := <-engine.C(); ok {
		t.Fatalf("expected C to be closed after Stop")
	}
}
