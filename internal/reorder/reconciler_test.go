package reorder

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sandeepkv93/hearth/internal/model"
)

const row = DefaultRowHeight

func newABCD() *Reconciler {
	return New("lists", []string{"A", "B", "C", "D"})
}

func TestDragDownTwoRowsYieldsInstruction(t *testing.T) {
	r := newABCD()
	if err := r.Begin("A"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	idx, err := r.Drag(2 * row)
	if err != nil || idx != 2 {
		t.Fatalf("drag: idx=%d err=%v", idx, err)
	}
	if got := r.Working(); !reflect.DeepEqual(got, []string{"B", "C", "A", "D"}) {
		t.Fatalf("unexpected working order: %v", got)
	}
	ins, ok, err := r.Release()
	if err != nil || !ok {
		t.Fatalf("release: ok=%v err=%v", ok, err)
	}
	want := Instruction{CollectionID: "lists", EntryID: "A", Direction: model.DirectionDown, Steps: 2, StartIndex: 0, FinalIndex: 2}
	if ins != want {
		t.Fatalf("got %+v want %+v", ins, want)
	}
	if r.State() != StateSyncing {
		t.Fatalf("expected syncing, got %v", r.State())
	}
	if err := ins.Request().Validate(); err != nil {
		t.Fatalf("instruction request invalid: %v", err)
	}
}

func TestDragUpYieldsUpInstruction(t *testing.T) {
	r := newABCD()
	if err := r.Begin("D"); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := r.Drag(-1.6 * row); err != nil {
		t.Fatalf("drag: %v", err)
	}
	ins, ok, _ := r.Release()
	if !ok || ins.Direction != model.DirectionUp || ins.Steps != 2 || ins.FinalIndex != 1 {
		t.Fatalf("unexpected instruction: ok=%v %+v", ok, ins)
	}
}

func TestDragBackToStartYieldsNothing(t *testing.T) {
	r := newABCD()
	_ = r.Begin("A")
	if _, err := r.Drag(2 * row); err != nil {
		t.Fatalf("drag: %v", err)
	}
	if _, err := r.Drag(0); err != nil {
		t.Fatalf("drag back: %v", err)
	}
	ins, ok, err := r.Release()
	if err != nil || ok {
		t.Fatalf("expected no instruction, got ok=%v ins=%+v err=%v", ok, ins, err)
	}
	if r.State() != StateIdle {
		t.Fatalf("expected idle, got %v", r.State())
	}
	if got := r.Working(); !reflect.DeepEqual(got, []string{"A", "B", "C", "D"}) {
		t.Fatalf("unexpected working order: %v", got)
	}
}

func TestJitterDoesNotRegisterMovement(t *testing.T) {
	r := newABCD()
	_ = r.Begin("B")
	for _, off := range []float64{1, -3, 7.9, -7.9, 0} {
		idx, err := r.Drag(off)
		if err != nil || idx != 1 {
			t.Fatalf("jitter %v moved entry: idx=%d err=%v", off, idx, err)
		}
	}
	if _, ok, _ := r.Release(); ok {
		t.Fatal("expected jitter-only gesture to produce no instruction")
	}
}

func TestJitterThresholdAboveHalfRow(t *testing.T) {
	r := New("lists", []string{"A", "B", "C"}, WithRowHeight(10), WithJitterThreshold(12))
	_ = r.Begin("A")
	if idx, _ := r.Drag(11); idx != 0 {
		t.Fatalf("offset under threshold moved entry to %d", idx)
	}
	if idx, _ := r.Drag(14); idx != 1 {
		t.Fatalf("expected index 1 past threshold, got %d", idx)
	}
}

func TestDragClampsToBounds(t *testing.T) {
	r := newABCD()
	_ = r.Begin("B")
	if idx, _ := r.Drag(-10 * row); idx != 0 {
		t.Fatalf("expected clamp to 0, got %d", idx)
	}
	if idx, _ := r.Drag(42 * row); idx != 3 {
		t.Fatalf("expected clamp to 3, got %d", idx)
	}
	if got := r.Working(); !reflect.DeepEqual(got, []string{"A", "C", "D", "B"}) {
		t.Fatalf("unexpected working order: %v", got)
	}
	ins, ok, _ := r.Release()
	if !ok || ins.Direction != model.DirectionDown || ins.Steps != 2 {
		t.Fatalf("unexpected instruction: %+v", ins)
	}
}

func TestNudgeMovesByRows(t *testing.T) {
	r := newABCD()
	_ = r.Begin("C")
	if idx, _ := r.Nudge(-1); idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if idx, _ := r.Nudge(-1); idx != 0 {
		t.Fatalf("expected index 0, got %d", idx)
	}
	if idx, _ := r.Nudge(3); idx != 3 {
		t.Fatalf("expected index 3, got %d", idx)
	}
	ins, ok, _ := r.Release()
	if !ok || ins.Direction != model.DirectionDown || ins.Steps != 1 {
		t.Fatalf("unexpected instruction: %+v", ins)
	}
}

func TestNudgeReversesRightAfterHittingAnEnd(t *testing.T) {
	r := newABCD()
	_ = r.Begin("C")
	for i := 0; i < 5; i++ {
		_, _ = r.Nudge(1)
	}
	if idx, _ := r.Nudge(-1); idx != 2 {
		t.Fatalf("expected one key up to leave the bottom, got index %d working=%v", idx, r.Working())
	}
	for i := 0; i < 6; i++ {
		_, _ = r.Nudge(-1)
	}
	if idx, _ := r.Nudge(1); idx != 1 {
		t.Fatalf("expected one key down to leave the top, got index %d working=%v", idx, r.Working())
	}
	if got := r.Working(); !reflect.DeepEqual(got, []string{"A", "C", "B", "D"}) {
		t.Fatalf("unexpected working order %v", got)
	}
	ins, ok, _ := r.Release()
	if !ok || ins.Direction != model.DirectionUp || ins.Steps != 1 {
		t.Fatalf("unexpected instruction: %+v", ins)
	}
}

func TestBeginRejectedWhileSyncing(t *testing.T) {
	r := newABCD()
	_ = r.Begin("A")
	_, _ = r.Drag(2 * row)
	if _, ok, _ := r.Release(); !ok {
		t.Fatal("expected instruction")
	}
	before := r.Working()

	err := r.Begin("C")
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if _, err := r.Drag(-2 * row); !errors.Is(err, ErrNotDragging) {
		t.Fatalf("expected ErrNotDragging, got %v", err)
	}
	if _, _, err := r.Release(); !errors.Is(err, ErrNotDragging) {
		t.Fatalf("expected ErrNotDragging on release, got %v", err)
	}
	if got := r.Working(); !reflect.DeepEqual(got, before) {
		t.Fatalf("second gesture changed working order: %v -> %v", before, got)
	}
	if id, ok := r.ActiveEntry(); !ok || id != "A" {
		t.Fatalf("expected active entry A, got %q %v", id, ok)
	}
}

func TestBeginRejectedWhileDragging(t *testing.T) {
	r := newABCD()
	_ = r.Begin("A")
	if err := r.Begin("B"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestBeginUnknownEntry(t *testing.T) {
	r := newABCD()
	if err := r.Begin("Z"); !errors.Is(err, ErrUnknownEntry) {
		t.Fatalf("expected ErrUnknownEntry, got %v", err)
	}
	if r.State() != StateIdle {
		t.Fatalf("expected idle, got %v", r.State())
	}
}

func TestCancelRestoresCanonical(t *testing.T) {
	r := newABCD()
	_ = r.Begin("A")
	_, _ = r.Drag(3 * row)
	if !r.Cancel() {
		t.Fatal("expected cancel to succeed")
	}
	if r.State() != StateIdle {
		t.Fatalf("expected idle, got %v", r.State())
	}
	if got := r.Working(); !reflect.DeepEqual(got, []string{"A", "B", "C", "D"}) {
		t.Fatalf("unexpected working order: %v", got)
	}
	if r.Cancel() {
		t.Fatal("expected second cancel to be a no-op")
	}
}

func TestCanonicalRefreshDeferredWhileSyncing(t *testing.T) {
	r := newABCD()
	_ = r.Begin("A")
	_, _ = r.Drag(2 * row)
	ins, _, _ := r.Release()

	if applied := r.SetCanonical([]string{"A", "B", "C", "D", "E"}); applied {
		t.Fatal("expected refresh to be deferred while syncing")
	}
	if got := r.Working(); !reflect.DeepEqual(got, []string{"B", "C", "A", "D"}) {
		t.Fatalf("working order overwritten during sync: %v", got)
	}

	if err := r.Complete(Result{Instruction: ins}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got := r.Working(); !reflect.DeepEqual(got, []string{"A", "B", "C", "D", "E"}) {
		t.Fatalf("expected deferred canonical after completion, got %v", got)
	}
}

func TestCompleteWithRefreshAdoptsServerOrder(t *testing.T) {
	r := newABCD()
	_ = r.Begin("A")
	_, _ = r.Drag(2 * row)
	ins, _, _ := r.Release()
	r.SetCanonical([]string{"stale"})

	err := r.Complete(Result{Instruction: ins, Refreshed: true, Canonical: []string{"B", "C", "A", "D"}})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got := r.Canonical(); !reflect.DeepEqual(got, []string{"B", "C", "A", "D"}) {
		t.Fatalf("unexpected canonical order: %v", got)
	}
	if r.LastError() != nil {
		t.Fatalf("expected no last error, got %v", r.LastError())
	}
}

func TestFailedReorderKeepsCanonical(t *testing.T) {
	r := newABCD()
	_ = r.Begin("A")
	_, _ = r.Drag(2 * row)
	ins, _, _ := r.Release()

	boom := errors.New("boom")
	if err := r.Complete(Result{Instruction: ins, Err: boom}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !errors.Is(r.LastError(), boom) {
		t.Fatalf("expected last error boom, got %v", r.LastError())
	}
	if got := r.Working(); !reflect.DeepEqual(got, []string{"A", "B", "C", "D"}) {
		t.Fatalf("expected working order reverted, got %v", got)
	}
	if r.State() != StateIdle {
		t.Fatalf("expected idle, got %v", r.State())
	}

	if err := r.Begin("B"); err != nil {
		t.Fatalf("expected new drag after failure, got %v", err)
	}
}

func TestCompleteWithoutSync(t *testing.T) {
	r := newABCD()
	if err := r.Complete(Result{}); !errors.Is(err, ErrNotSyncing) {
		t.Fatalf("expected ErrNotSyncing, got %v", err)
	}
}

func TestSetCanonicalWhileIdle(t *testing.T) {
	r := newABCD()
	if !r.SetCanonical([]string{"D", "C"}) {
		t.Fatal("expected refresh applied while idle")
	}
	if got := r.Working(); !reflect.DeepEqual(got, []string{"D", "C"}) {
		t.Fatalf("unexpected working order: %v", got)
	}
}

func TestStateString(t *testing.T) {
	if StateIdle.String() != "idle" || StateDragging.String() != "dragging" || StateSyncing.String() != "syncing" {
		t.Fatal("unexpected state names")
	}
}
