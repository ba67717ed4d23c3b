package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidDueTime = errors.New("scheduler: invalid due time")
	ErrStopped        = errors.New("scheduler: engine stopped")
)

// DueEvent fires when an open task reaches its due time.
type DueEvent struct {
	TaskID string
	Text   string
	At     time.Time
}

// Key identifies one alert: the same task due at the same instant.
func (ev DueEvent) Key() string {
	return ev.TaskID + "@" + ev.At.UTC().Format(time.RFC3339Nano)
}

// dueHeap is a min-heap on At.
type dueHeap []DueEvent

func (h dueHeap) Len() int           { return len(h) }
func (h dueHeap) Less(i, j int) bool { return h[i].At.Before(h[j].At) }
func (h dueHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *dueHeap) Push(x any)        { *h = append(*h, x.(DueEvent)) }
func (h *dueHeap) Pop() any {
	old := *h
	ev := old[len(old)-1]
	*h = old[:len(old)-1]
	return ev
}

// Engine delivers due alerts on C. The pending set is only ever swapped as
// a whole through Replace, and every alert is delivered at most once.
type Engine struct {
	mu      sync.Mutex
	pending dueHeap
	fired   map[string]struct{}
	running bool
	closed  bool

	out     chan DueEvent
	kick    chan struct{}
	quit    chan struct{}
	done    chan struct{}
	dropped atomic.Uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		fired: make(map[string]struct{}),
		out:   make(chan DueEvent, bufferSize),
		kick:  make(chan struct{}, 1),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// C is closed once the engine stops.
func (e *Engine) C() <-chan DueEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running || e.closed {
		return
	}
	e.running = true
	go e.run()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running || e.closed {
		e.closed = true
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.quit)
	e.mu.Unlock()
	<-e.done
}

// Replace swaps the whole pending set and returns how many alerts are now
// pending. Events at or before now, duplicates, and alerts that were
// already delivered are skipped.
func (e *Engine) Replace(events []DueEvent, now time.Time) (int, error) {
	for _, ev := range events {
		if ev.At.IsZero() {
			return 0, ErrInvalidDueTime
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return 0, ErrStopped
	}

	seen := make(map[string]struct{}, len(events))
	next := make(dueHeap, 0, len(events))
	for _, ev := range events {
		key := ev.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, done := e.fired[key]; done || !ev.At.After(now) {
			continue
		}
		next = append(next, ev)
	}
	heap.Init(&next)
	e.pending = next

	// Forget deliveries the caller no longer mentions.
	for key := range e.fired {
		if _, ok := seen[key]; !ok {
			delete(e.fired, key)
		}
	}

	select {
	case e.kick <- struct{}{}:
	default:
	}
	return len(next), nil
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Dropped counts alerts lost because nobody was reading C.
func (e *Engine) Dropped() uint64 {
	return e.dropped.Load()
}

func (e *Engine) run() {
	defer close(e.done)
	defer close(e.out)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		var wake <-chan time.Time
		if at, ok := e.nextAt(); ok {
			timer.Reset(max(time.Until(at), 0))
			wake = timer.C
		}

		select {
		case <-wake:
			for _, ev := range e.takeDue(time.Now()) {
				select {
				case e.out <- ev:
				default:
					e.dropped.Add(1)
				}
			}
		case <-e.kick:
			timer.Stop()
		case <-e.quit:
			return
		}
	}
}

func (e *Engine) nextAt() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.pending) == 0 {
		return time.Time{}, false
	}
	return e.pending[0].At, true
}

// takeDue pops every alert due by now and marks it delivered.
func (e *Engine) takeDue(now time.Time) []DueEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	var due []DueEvent
	for len(e.pending) > 0 && !e.pending[0].At.After(now) {
		ev := heap.Pop(&e.pending).(DueEvent)
		e.fired[ev.Key()] = struct{}{}
		due = append(due, ev)
	}
	return due
}
