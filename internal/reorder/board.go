package reorder

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sandeepkv93/hearth/internal/model"
)

// Remote is the ordered-collection service a reorder is committed to.
type Remote interface {
	ReorderEntry(ctx context.Context, collectionID, entryID string, direction model.Direction, steps int) error
	ListCollection(ctx context.Context, collectionID string) ([]model.Entry, error)
}

// Result is the outcome of committing one instruction, including the
// canonical order fetched after the request.
type Result struct {
	Instruction Instruction
	Err         error

	Refreshed  bool
	Entries    []model.Entry
	Canonical  []string
	RefreshErr error
}

// Commit sends the instruction and then refetches the collection, whether
// or not the request succeeded. It never touches a Reconciler, so it can run
// off the UI loop; feed the result back through Board.Complete.
func Commit(ctx context.Context, remote Remote, ins Instruction) Result {
	res := Result{Instruction: ins}
	if err := remote.ReorderEntry(ctx, ins.CollectionID, ins.EntryID, ins.Direction, ins.Steps); err != nil {
		res.Err = fmt.Errorf("reorder %s %s by %d: %w", ins.EntryID, ins.Direction, ins.Steps, err)
	}
	entries, err := remote.ListCollection(ctx, ins.CollectionID)
	if err != nil {
		res.RefreshErr = fmt.Errorf("refresh %s: %w", ins.CollectionID, err)
		return res
	}
	res.Refreshed = true
	res.Entries = entries
	res.Canonical = model.EntryIDs(entries)
	return res
}

// Board keeps one Reconciler per collection. Different collections are
// independent and may sync at the same time.
type Board struct {
	mu    sync.Mutex
	opts  []Option
	items map[string]*Reconciler
}

func NewBoard(opts ...Option) *Board {
	return &Board{
		opts:  opts,
		items: make(map[string]*Reconciler),
	}
}

// Track returns the collection's reconciler, creating it on first use, and
// offers it the given canonical order.
func (b *Board) Track(collectionID string, canonical []string) *Reconciler {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.items[collectionID]
	if !ok {
		r = New(collectionID, canonical, b.opts...)
		b.items[collectionID] = r
		return r
	}
	r.SetCanonical(canonical)
	return r
}

func (b *Board) Get(collectionID string) (*Reconciler, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.items[collectionID]
	return r, ok
}

// Forget drops a collection, e.g. after the list was deleted. A reorder
// still in flight for it completes normally and its result is discarded.
func (b *Board) Forget(collectionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.items, collectionID)
}

// Complete routes a result to its collection. It reports false when the
// collection is no longer tracked and the result was dropped.
func (b *Board) Complete(res Result) (bool, error) {
	r, ok := b.Get(res.Instruction.CollectionID)
	if !ok {
		return false, nil
	}
	return true, r.Complete(res)
}

func (b *Board) Collections() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.items))
	for id := range b.items {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
