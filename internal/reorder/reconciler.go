// Package reorder turns a drag gesture over a locally materialized order into
// a single (direction, steps) move for a remote ordered collection.
//
// Each collection runs a small state machine: Idle -> Dragging -> Syncing ->
// Idle. While a drag or a sync is in progress the working order belongs to
// the gesture; canonical refreshes that arrive meanwhile are held back and
// applied once the collection returns to Idle.
package reorder

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/hearth/internal/logging"
	"github.com/sandeepkv93/hearth/internal/model"
)

var (
	ErrBusy         = errors.New("reorder: collection busy")
	ErrUnknownEntry = errors.New("reorder: unknown entry")
	ErrNotDragging  = errors.New("reorder: no drag in progress")
	ErrNotSyncing   = errors.New("reorder: no reorder in flight")
)

const (
	DefaultRowHeight       = 56.0
	DefaultJitterThreshold = 8.0
)

type State int

const (
	StateIdle State = iota
	StateDragging
	StateSyncing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateSyncing:
		return "syncing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Options struct {
	// RowHeight converts pixel offsets into row counts.
	RowHeight float64
	// JitterThreshold is the absolute offset below which a gesture counts
	// as no movement at all.
	JitterThreshold float64
	Logger          *log.Logger
}

type Option func(*Options)

func WithRowHeight(px float64) Option {
	return func(o *Options) {
		if px > 0 {
			o.RowHeight = px
		}
	}
}

func WithJitterThreshold(px float64) Option {
	return func(o *Options) {
		if px >= 0 {
			o.JitterThreshold = px
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func buildOptions(opts []Option) Options {
	out := Options{
		RowHeight:       DefaultRowHeight,
		JitterThreshold: DefaultJitterThreshold,
		Logger:          logging.Discard(),
	}
	for _, opt := range opts {
		opt(&out)
	}
	return out
}

// Instruction is the net displacement of one drag, ready for the remote
// collection.
type Instruction struct {
	CollectionID string
	EntryID      string
	Direction    model.Direction
	Steps        int
	StartIndex   int
	FinalIndex   int
}

func (i Instruction) Request() model.ReorderRequest {
	return model.ReorderRequest{
		CollectionID: i.CollectionID,
		EntryID:      i.EntryID,
		Direction:    i.Direction,
		Steps:        i.Steps,
	}
}

// Reconciler tracks one ordered collection.
type Reconciler struct {
	mu           sync.Mutex
	collectionID string
	opts         Options

	state     State
	canonical []string
	working   []string

	entryID      string
	startIndex   int
	currentIndex int
	offset       float64
	moved        bool

	pending    []string
	hasPending bool
	inFlight   Instruction
	lastError  error
}

func New(collectionID string, canonical []string, opts ...Option) *Reconciler {
	return &Reconciler{
		collectionID: collectionID,
		opts:         buildOptions(opts),
		canonical:    cloneIDs(canonical),
		working:      cloneIDs(canonical),
	}
}

func (r *Reconciler) CollectionID() string {
	return r.collectionID
}

func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Working returns the order to render: the gesture's order while one is
// active, the canonical order otherwise.
func (r *Reconciler) Working() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneIDs(r.working)
}

func (r *Reconciler) Canonical() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneIDs(r.canonical)
}

// LastError is the outcome of the most recent completed reorder request.
func (r *Reconciler) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastError
}

// ActiveEntry reports the entry being dragged or synced, if any.
func (r *Reconciler) ActiveEntry() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateIdle {
		return "", false
	}
	return r.entryID, true
}

// Begin starts a drag on entryID (the long-press). It is rejected with
// ErrBusy while another drag or reorder is in flight on this collection.
func (r *Reconciler) Begin(entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateIdle {
		r.opts.Logger.Debug("drag rejected", "collection", r.collectionID, "entry", entryID, "state", r.state)
		return fmt.Errorf("%w: %s is %s", ErrBusy, r.collectionID, r.state)
	}
	idx := indexOf(r.working, entryID)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownEntry, entryID)
	}
	r.entryID = entryID
	r.startIndex = idx
	r.currentIndex = idx
	r.offset = 0
	r.moved = false
	r.transition(StateDragging)
	return nil
}

// Drag applies a position update. offset is the distance in pixels from
// where the gesture started, positive downwards. It returns the entry's
// current index in the working order.
func (r *Reconciler) Drag(offset float64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateDragging {
		return -1, ErrNotDragging
	}
	r.offset = offset
	if math.Abs(offset) < r.opts.JitterThreshold {
		offset = 0
	}
	target := r.startIndex + int(math.Round(offset/r.opts.RowHeight))
	target = clamp(target, 0, len(r.working)-1)
	if target != r.currentIndex {
		moveID(r.working, r.currentIndex, target)
		r.currentIndex = target
		r.moved = true
	}
	return r.currentIndex, nil
}

// Nudge moves the gesture by whole rows, for keyboard-driven drags. It
// counts from the entry's current row, so pushing past either end of the
// collection does not build up slack that later keys would have to undo.
func (r *Reconciler) Nudge(rows int) (int, error) {
	r.mu.Lock()
	offset := float64(r.currentIndex-r.startIndex+rows) * r.opts.RowHeight
	r.mu.Unlock()
	return r.Drag(offset)
}

// Release ends the gesture. When the entry ended up where it started no
// instruction is produced and the collection goes straight back to Idle.
// Otherwise the collection enters Syncing and the caller must issue exactly
// one request for the returned instruction and report it through Complete.
func (r *Reconciler) Release() (Instruction, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateDragging {
		return Instruction{}, false, ErrNotDragging
	}
	if !r.moved || r.currentIndex == r.startIndex {
		r.settleLocked()
		return Instruction{}, false, nil
	}
	ins := Instruction{
		CollectionID: r.collectionID,
		EntryID:      r.entryID,
		Direction:    model.DirectionUp,
		Steps:        r.currentIndex - r.startIndex,
		StartIndex:   r.startIndex,
		FinalIndex:   r.currentIndex,
	}
	if ins.Steps > 0 {
		ins.Direction = model.DirectionDown
	} else {
		ins.Steps = -ins.Steps
	}
	r.inFlight = ins
	r.transition(StateSyncing)
	r.opts.Logger.Debug("reorder issued", "collection", r.collectionID, "entry", ins.EntryID, "direction", ins.Direction, "steps", ins.Steps)
	return ins, true, nil
}

// Cancel abandons a drag without contacting the remote collection.
func (r *Reconciler) Cancel() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateDragging {
		return false
	}
	r.settleLocked()
	return true
}

// Complete finishes the in-flight reorder. On failure the canonical order
// is left as it was, unless res carries a refreshed order.
func (r *Reconciler) Complete(res Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateSyncing {
		return ErrNotSyncing
	}
	r.lastError = res.Err
	if res.Err != nil {
		r.opts.Logger.Warn("reorder failed", "collection", r.collectionID, "entry", r.inFlight.EntryID, "err", res.Err)
	}
	if res.Refreshed {
		r.pending = cloneIDs(res.Canonical)
		r.hasPending = true
	}
	r.inFlight = Instruction{}
	r.settleLocked()
	return nil
}

// SetCanonical records a fresh canonical order. It is applied at once when
// Idle and deferred otherwise; the return value reports which happened.
func (r *Reconciler) SetCanonical(ids []string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateIdle {
		r.pending = cloneIDs(ids)
		r.hasPending = true
		r.opts.Logger.Debug("canonical refresh deferred", "collection", r.collectionID, "state", r.state)
		return false
	}
	r.canonical = cloneIDs(ids)
	r.working = cloneIDs(ids)
	return true
}

// settleLocked returns to Idle, adopting any deferred canonical order and
// discarding the working order.
func (r *Reconciler) settleLocked() {
	if r.hasPending {
		r.canonical = r.pending
		r.pending = nil
		r.hasPending = false
	}
	r.working = cloneIDs(r.canonical)
	r.transition(StateIdle)
	r.entryID = ""
	r.offset = 0
	r.moved = false
}

func (r *Reconciler) transition(to State) {
	from := r.state
	r.state = to
	r.opts.Logger.Debug("reorder state", "collection", r.collectionID, "entry", r.entryID, "from", from, "to", to)
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// moveID shifts ids[from] to position to, sliding the entries in between.
func moveID(ids []string, from, to int) {
	if from == to {
		return
	}
	v := ids[from]
	if from < to {
		copy(ids[from:to], ids[from+1:to+1])
	} else {
		copy(ids[to+1:from+1], ids[to:from])
	}
	ids[to] = v
}

func cloneIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
