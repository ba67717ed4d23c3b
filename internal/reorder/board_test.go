package reorder

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/sandeepkv93/hearth/internal/model"
)

type stubRemote struct {
	mu         sync.Mutex
	order      map[string][]string
	calls      []model.ReorderRequest
	reorderErr error
	listErr    error
}

func (s *stubRemote) ReorderEntry(_ context.Context, collectionID, entryID string, direction model.Direction, steps int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, model.ReorderRequest{CollectionID: collectionID, EntryID: entryID, Direction: direction, Steps: steps})
	if s.reorderErr != nil {
		return s.reorderErr
	}
	ids := s.order[collectionID]
	from := indexOf(ids, entryID)
	to := from + steps
	if direction == model.DirectionUp {
		to = from - steps
	}
	moveID(ids, from, to)
	return nil
}

func (s *stubRemote) ListCollection(_ context.Context, collectionID string) ([]model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]model.Entry, 0, len(s.order[collectionID]))
	for _, id := range s.order[collectionID] {
		out = append(out, model.Entry{ID: id, Name: "entry " + id})
	}
	return out, nil
}

func TestCommitSendsOneRequestAndRefreshes(t *testing.T) {
	remote := &stubRemote{order: map[string][]string{"lists": {"A", "B", "C", "D"}}}
	board := NewBoard()
	r := board.Track("lists", []string{"A", "B", "C", "D"})
	_ = r.Begin("A")
	_, _ = r.Drag(2 * row)
	ins, ok, _ := r.Release()
	if !ok {
		t.Fatal("expected instruction")
	}

	res := Commit(context.Background(), remote, ins)
	if res.Err != nil || !res.Refreshed {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(remote.calls) != 1 || remote.calls[0] != ins.Request() {
		t.Fatalf("unexpected remote calls: %+v", remote.calls)
	}
	tracked, err := board.Complete(res)
	if err != nil || !tracked {
		t.Fatalf("board complete: tracked=%v err=%v", tracked, err)
	}
	if got := r.Canonical(); !reflect.DeepEqual(got, []string{"B", "C", "A", "D"}) {
		t.Fatalf("unexpected canonical order: %v", got)
	}
	if r.State() != StateIdle {
		t.Fatalf("expected idle, got %v", r.State())
	}
}

func TestCommitFailureStillRefreshes(t *testing.T) {
	boom := errors.New("server down")
	remote := &stubRemote{order: map[string][]string{"l1": {"x", "y"}}, reorderErr: boom}
	res := Commit(context.Background(), remote, Instruction{CollectionID: "l1", EntryID: "x", Direction: model.DirectionDown, Steps: 1})
	if !errors.Is(res.Err, boom) {
		t.Fatalf("expected wrapped error, got %v", res.Err)
	}
	if !res.Refreshed || !reflect.DeepEqual(res.Canonical, []string{"x", "y"}) {
		t.Fatalf("expected refreshed unchanged order, got %+v", res)
	}
}

func TestCommitRefreshFailure(t *testing.T) {
	remote := &stubRemote{order: map[string][]string{"l1": {"x", "y"}}, listErr: errors.New("timeout")}
	res := Commit(context.Background(), remote, Instruction{CollectionID: "l1", EntryID: "x", Direction: model.DirectionDown, Steps: 1})
	if res.Err != nil || res.Refreshed || res.RefreshErr == nil {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestBoardCollectionsAreIndependent(t *testing.T) {
	board := NewBoard()
	lists := board.Track("lists", []string{"A", "B"})
	items := board.Track("l1", []string{"x", "y", "z"})

	_ = lists.Begin("A")
	_, _ = lists.Drag(row)
	if _, ok, _ := lists.Release(); !ok {
		t.Fatal("expected lists instruction")
	}
	if err := items.Begin("z"); err != nil {
		t.Fatalf("expected other collection to accept drag, got %v", err)
	}
	if got := board.Collections(); !reflect.DeepEqual(got, []string{"l1", "lists"}) {
		t.Fatalf("unexpected collections: %v", got)
	}
}

func TestBoardTrackDefersWhileBusy(t *testing.T) {
	board := NewBoard()
	r := board.Track("lists", []string{"A", "B", "C"})
	_ = r.Begin("A")
	_, _ = r.Drag(row)

	same := board.Track("lists", []string{"C", "B", "A"})
	if same != r {
		t.Fatal("expected the existing reconciler")
	}
	if got := r.Working(); !reflect.DeepEqual(got, []string{"B", "A", "C"}) {
		t.Fatalf("refresh overwrote drag: %v", got)
	}
	r.Cancel()
	if got := r.Working(); !reflect.DeepEqual(got, []string{"C", "B", "A"}) {
		t.Fatalf("expected deferred order after cancel, got %v", got)
	}
}

func TestBoardDiscardsResultForForgottenCollection(t *testing.T) {
	board := NewBoard()
	r := board.Track("l9", []string{"a", "b"})
	_ = r.Begin("a")
	_, _ = r.Drag(row)
	ins, _, _ := r.Release()

	board.Forget("l9")
	tracked, err := board.Complete(Result{Instruction: ins})
	if tracked || err != nil {
		t.Fatalf("expected discarded result, got tracked=%v err=%v", tracked, err)
	}
	if _, ok := board.Get("l9"); ok {
		t.Fatal("expected collection forgotten")
	}
}
