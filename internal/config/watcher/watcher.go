// Package watcher reports changes to the documents of one configuration
// directory.
//
// Events from fsnotify are collected per file and delivered as a single
// Change once the directory has been quiet for the configured period, so a
// burst of writes triggers one reload.
package watcher

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultQuiet is the default settle period.
const DefaultQuiet = 100 * time.Millisecond

var (
	// ErrNotDirectory is returned when New is given a file.
	ErrNotDirectory = errors.New("not a directory")

	// ErrClosed is returned when starting a closed watcher.
	ErrClosed = errors.New("watcher closed")
)

// Op is the kind of change seen for a file.
type Op uint8

const (
	Written Op = iota + 1
	Created
	Removed
	Renamed
)

func (op Op) String() string {
	switch op {
	case Written:
		return "write"
	case Created:
		return "create"
	case Removed:
		return "remove"
	case Renamed:
		return "rename"
	default:
		return "unknown"
	}
}

// merge folds a new operation into the pending one. A write never hides
// the creation or removal that preceded it.
func merge(pending, next Op) Op {
	if next == Written && pending != 0 {
		return pending
	}
	return next
}

// FileEvent is the coalesced change of one file.
type FileEvent struct {
	Path string
	Op   Op
}

// Change is one settled batch of file events, sorted by path.
type Change struct {
	Dir   string
	Files []FileEvent
	At    time.Time
}

// Paths returns the changed file paths.
func (c Change) Paths() []string {
	paths := make([]string, len(c.Files))
	for i, f := range c.Files {
		paths[i] = f.Path
	}
	return paths
}

// Handler receives settled changes. Handlers run one at a time.
type Handler func(Change)

// Option configures a Watcher.
type Option func(*Watcher)

// WithQuiet sets how long the directory must be quiet before a change is
// delivered. Zero delivers every event on its own.
func WithQuiet(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.quiet = d
		}
	}
}

// WithFilter restricts events to file base names accepted by accept.
func WithFilter(accept func(name string) bool) Option {
	return func(w *Watcher) {
		w.accept = accept
	}
}

// WithErrorHandler sets a callback for errors reported by fsnotify and for
// handler panics.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher watches a single directory.
type Watcher struct {
	dir     string
	handler Handler
	quiet   time.Duration
	accept  func(name string) bool
	onError func(error)

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	pending map[string]Op
	timer   *time.Timer
	closed  bool

	// deliverMu keeps handler calls sequential
	deliverMu sync.Mutex
	wg        sync.WaitGroup
}

// New creates a watcher for dir. Nothing is watched until Start.
func New(dir string, handler Handler, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}

	w := &Watcher{
		dir:     abs,
		handler: handler,
		quiet:   DefaultQuiet,
		pending: make(map[string]Op),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Dir returns the absolute watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Start begins watching. Starting a running watcher is a no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.fsw != nil {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return err
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.loop(fsw)
	return nil
}

// Running reports whether the watcher has been started and not closed.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fsw != nil
}

// Close stops watching and discards undelivered events. It waits for the
// event loop to exit but not for a handler already running.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	fsw := w.fsw
	w.fsw = nil
	if w.timer != nil {
		w.timer.Stop()
	}
	clear(w.pending)
	w.mu.Unlock()

	if fsw == nil {
		return nil
	}
	err := fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop(fsw *fsnotify.Watcher) {
	defer w.wg.Done()

	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if op, ok := translate(ev.Op); ok {
				w.record(ev.Name, op)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.fail(err)
		}
	}
}

// translate maps fsnotify operations, ignoring permission changes.
func translate(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return Removed, true
	case op.Has(fsnotify.Rename):
		return Renamed, true
	case op.Has(fsnotify.Create):
		return Created, true
	case op.Has(fsnotify.Write):
		return Written, true
	}
	return 0, false
}

// record queues an event and restarts the quiet period.
func (w *Watcher) record(name string, op Op) {
	if w.accept != nil && !w.accept(filepath.Base(name)) {
		return
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(w.dir, name)
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.pending[name] = merge(w.pending[name], op)

	if w.quiet == 0 {
		w.mu.Unlock()
		w.flush()
		return
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.quiet, w.flush)
	} else {
		w.timer.Reset(w.quiet)
	}
	w.mu.Unlock()
}

// flush delivers everything pending as one Change.
func (w *Watcher) flush() {
	w.deliverMu.Lock()
	defer w.deliverMu.Unlock()

	w.mu.Lock()
	if w.closed || len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	change := Change{Dir: w.dir, At: time.Now()}
	for path, op := range w.pending {
		change.Files = append(change.Files, FileEvent{Path: path, Op: op})
	}
	clear(w.pending)
	w.mu.Unlock()

	slices.SortFunc(change.Files, func(a, b FileEvent) int {
		return cmp.Compare(a.Path, b.Path)
	})
	w.deliver(change)
}

func (w *Watcher) deliver(change Change) {
	if w.handler == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			w.fail(fmt.Errorf("change handler panicked: %v", r))
		}
	}()
	w.handler(change)
}

func (w *Watcher) fail(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
