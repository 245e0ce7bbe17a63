// Package notify delivers resolved-value changes to subscribers.
//
// After every load cycle the resolver compares the new effective values with
// the previous ones and publishes one event per (node, scope) cell that
// differs, followed by a Reloaded event carrying the cycle id.
package notify

import (
	"slices"
	"strings"
	"sync"
)

// wildcardScope is the scope every other scope falls back to.
const wildcardScope = "*"

// Kind classifies an event.
type Kind uint8

const (
	// Updated means an effective value appeared or changed.
	Updated Kind = iota + 1
	// Removed means a scope no longer has a value for a node.
	Removed
	// Reloaded marks the end of a load cycle.
	Reloaded
)

func (k Kind) String() string {
	switch k {
	case Updated:
		return "set"
	case Removed:
		return "delete"
	case Reloaded:
		return "reload"
	}
	return "unknown"
}

// Event is one published change. Node and Scope are empty for Reloaded.
type Event struct {
	Kind  Kind
	Node  string
	Scope string
	Old   any
	New   any

	// Dir is the configuration directory that was resolved.
	Dir string
	// Cycle is the id of the load cycle that produced the event.
	Cycle string
}

// Filter selects events. The zero Filter selects everything.
type Filter struct {
	// Node is a node path or a section prefix of one: "ExtraHardMode.Zombies"
	// selects "ExtraHardMode.Zombies.Slow Players".
	Node string
	// Scope selects one scope. Wildcard events reach every scope since
	// scopes without a value of their own fall back to it.
	Scope string
}

// Match reports whether f selects e. Reloaded events match every filter.
func (f Filter) Match(e Event) bool {
	if e.Kind == Reloaded {
		return true
	}
	if f.Node != "" && e.Node != f.Node && !under(f.Node, e.Node) {
		return false
	}
	return f.Scope == "" || e.Scope == f.Scope || e.Scope == wildcardScope
}

// under reports whether node lies below section in the node tree.
func under(section, node string) bool {
	if section == "" {
		return node != ""
	}
	return strings.HasPrefix(node, section+".")
}

// Handler receives events.
type Handler func(Event)

// Sub is an active subscription.
type Sub struct {
	id     uint64
	filter Filter
	fn     Handler
	hub    *Hub
}

// Filter returns the subscription's filter.
func (s *Sub) Filter() Filter {
	return s.filter
}

// Cancel removes the subscription. Cancelling twice is harmless.
func (s *Sub) Cancel() {
	if s != nil && s.hub != nil {
		s.hub.cancel(s.id)
	}
}

// Hub fans events out to subscriptions in the order they were made.
type Hub struct {
	mu     sync.RWMutex
	subs   []*Sub
	seq    uint64
	closed bool

	queue chan Event
	done  chan struct{}
	wg    sync.WaitGroup
}

// Option configures a Hub.
type Option func(*Hub)

// WithQueue delivers events from a background goroutine through a queue of
// the given size. Publish blocks while the queue is full.
func WithQueue(size int) Option {
	return func(h *Hub) {
		if size > 0 {
			h.queue = make(chan Event, size)
		}
	}
}

// NewHub creates a hub. Delivery happens inside Publish unless WithQueue is
// given.
func NewHub(opts ...Option) *Hub {
	h := &Hub{done: make(chan struct{})}
	for _, opt := range opts {
		opt(h)
	}
	if h.queue != nil {
		h.wg.Add(1)
		go h.drain()
	}
	return h
}

// Subscribe registers fn for the events f selects.
func (h *Hub) Subscribe(f Filter, fn Handler) *Sub {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	s := &Sub{id: h.seq, filter: f, fn: fn, hub: h}
	h.subs = append(h.subs, s)
	return s
}

// Len returns the number of active subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish delivers events in order. Events published after Close are
// dropped.
func (h *Hub) Publish(events ...Event) {
	h.mu.RLock()
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		return
	}

	for _, e := range events {
		if h.queue == nil {
			h.deliver(e)
			continue
		}
		select {
		case h.queue <- e:
		case <-h.done:
			return
		}
	}
}

// Close stops the hub after delivering queued events. Closing twice is
// harmless.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.mu.Unlock()

	close(h.done)
	h.wg.Wait()
}

func (h *Hub) cancel(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = slices.DeleteFunc(h.subs, func(s *Sub) bool { return s.id == id })
}

// deliver runs matching handlers outside the lock so they may subscribe or
// cancel.
func (h *Hub) deliver(e Event) {
	h.mu.RLock()
	var fns []Handler
	for _, s := range h.subs {
		if s.filter.Match(e) {
			fns = append(fns, s.fn)
		}
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(e)
	}
}

func (h *Hub) drain() {
	defer h.wg.Done()
	for {
		select {
		case e := <-h.queue:
			h.deliver(e)
		case <-h.done:
			for {
				select {
				case e := <-h.queue:
					h.deliver(e)
				default:
					return
				}
			}
		}
	}
}

// Diff accumulates the events of one load cycle.
// It is owned by a single cycle and is not safe for concurrent use.
type Diff struct {
	dir    string
	cycle  string
	events []Event
}

// NewDiff starts the event list of cycle over dir.
func NewDiff(dir, cycle string) *Diff {
	return &Diff{dir: dir, cycle: cycle}
}

// Updated records that the effective value of (node, scope) changed.
func (d *Diff) Updated(node, scope string, old, value any) {
	d.add(Event{Kind: Updated, Node: node, Scope: scope, Old: old, New: value})
}

// Removed records that (node, scope) no longer has a value.
func (d *Diff) Removed(node, scope string, old any) {
	d.add(Event{Kind: Removed, Node: node, Scope: scope, Old: old})
}

func (d *Diff) add(e Event) {
	e.Dir, e.Cycle = d.dir, d.cycle
	d.events = append(d.events, e)
}

// Len returns the number of value events recorded.
func (d *Diff) Len() int {
	return len(d.events)
}

// Events returns the recorded events followed by the Reloaded event.
func (d *Diff) Events() []Event {
	out := slices.Clone(d.events)
	return append(out, Event{Kind: Reloaded, Dir: d.dir, Cycle: d.cycle})
}
