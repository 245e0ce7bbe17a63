package config

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dshills/hardmode/internal/config/blocks"
	"github.com/dshills/hardmode/internal/config/document"
	"github.com/dshills/hardmode/internal/config/notify"
	"github.com/dshills/hardmode/internal/config/registry"
	"github.com/dshills/hardmode/internal/config/scoped"
	"github.com/dshills/hardmode/internal/config/watcher"
)

// DefaultMainFile is the name of the canonical defaults document.
const DefaultMainFile = "config.yml"

// Config resolves the documents of one configuration directory and serves
// the resulting per-scope values.
// It is safe for concurrent use; Load calls are serialized.
type Config struct {
	// loadMu serializes load cycles
	loadMu sync.Mutex

	// mu guards the published state
	mu sync.RWMutex

	// Node catalog
	registry *registry.Registry

	// Block list codec
	codec *blocks.Codec

	// Document storage
	store document.Store

	// Resolved-value events
	events *notify.Hub

	// Directory watcher for live reload
	watcher *watcher.Watcher

	logger *slog.Logger

	// Configuration paths
	dir      string
	mainFile string

	// Options
	dryRun        bool
	enableWatcher bool
	debounce      time.Duration

	// state is the published result of the last successful cycle
	state  *snapshot
	closed bool
}

// snapshot is the read-only result of one load cycle.
type snapshot struct {
	values *scoped.Values
	extras *scoped.Extras
	report *Report
}

// Option configures a Config instance.
type Option func(*Config)

// WithDir sets the configuration directory.
func WithDir(dir string) Option {
	return func(c *Config) {
		c.dir = dir
	}
}

// WithMainFile sets the file name of the canonical document.
func WithMainFile(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.mainFile = name
		}
	}
}

// WithStore sets the document store.
func WithStore(store document.Store) Option {
	return func(c *Config) {
		c.store = store
	}
}

// WithRegistry sets the node registry.
func WithRegistry(r *registry.Registry) Option {
	return func(c *Config) {
		c.registry = r
	}
}

// WithCodec sets the block list codec.
func WithCodec(codec *blocks.Codec) Option {
	return func(c *Config) {
		c.codec = codec
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDryRun renders adjusted documents into the report instead of
// writing them.
func WithDryRun(enable bool) Option {
	return func(c *Config) {
		c.dryRun = enable
	}
}

// WithWatcher enables directory watching for live reload.
func WithWatcher(enable bool) Option {
	return func(c *Config) {
		c.enableWatcher = enable
	}
}

// WithDebounce sets how long the watcher waits for changes to settle.
func WithDebounce(d time.Duration) Option {
	return func(c *Config) {
		c.debounce = d
	}
}

// New creates a new Config instance with the given options.
func New(opts ...Option) *Config {
	c := &Config{
		events:   notify.NewHub(),
		logger:   slog.New(slog.DiscardHandler),
		dir:      ".",
		mainFile: DefaultMainFile,
		debounce: 250 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.registry == nil {
		c.registry = registry.Builtin()
	}
	if c.codec == nil {
		c.codec = blocks.NewCodec(nil)
	}
	if c.store == nil {
		c.store = document.NewYAMLStore(nil)
	}

	return c
}

// Load runs one load cycle over the configuration directory and publishes
// the result. Problems inside documents never fail a load; they are
// repaired, persisted and reported.
func (c *Config) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	cy := c.newCycle()
	if err := cy.run(); err != nil {
		c.logger.Error("load cycle failed", "cycle", cy.id, "dir", c.dir, "error", err)
		return err
	}

	next := &snapshot{values: cy.values, extras: cy.extras, report: cy.report}

	c.mu.Lock()
	prev := c.state
	c.state = next
	c.mu.Unlock()

	c.logger.Info("configuration loaded",
		"cycle", cy.id,
		"dir", c.dir,
		"documents", len(cy.report.Documents),
		"adjusted", len(cy.report.Adjusted()),
		"duration", cy.report.Duration,
	)
	c.publish(prev, next)

	if c.enableWatcher {
		c.startWatcher()
	}
	return nil
}

// startWatcher begins watching the directory after the first load.
// Failures are logged; the configuration keeps serving its last state.
func (c *Config) startWatcher() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.watcher != nil || c.closed {
		return
	}

	w, err := watcher.New(c.dir, c.handleChange,
		watcher.WithQuiet(c.debounce),
		watcher.WithFilter(document.IsDocumentFile),
		watcher.WithErrorHandler(func(err error) {
			c.logger.Warn("watcher error", "error", err)
		}),
	)
	if err != nil {
		c.logger.Warn("not watching configuration directory", "dir", c.dir, "error", err)
		return
	}
	if err := w.Start(); err != nil {
		c.logger.Warn("starting watcher", "dir", c.dir, "error", err)
		return
	}
	c.watcher = w
	c.logger.Debug("watching configuration directory", "dir", w.Dir())
}

// publish notifies subscribers of every effective value that changed.
func (c *Config) publish(prev, next *snapshot) {
	diff := notify.NewDiff(c.dir, next.report.Cycle)

	for _, k := range next.values.Keys() {
		v, _ := next.values.Get(k.Node, k.Scope)
		var old any
		if prev != nil {
			var ok bool
			if old, ok = prev.values.Get(k.Node, k.Scope); ok && registry.Equal(old, v) {
				continue
			}
		}
		diff.Updated(k.Node, k.Scope, old, v)
	}
	if prev != nil {
		for _, k := range prev.values.Keys() {
			if _, ok := next.values.Get(k.Node, k.Scope); !ok {
				old, _ := prev.values.Get(k.Node, k.Scope)
				diff.Removed(k.Node, k.Scope, old)
			}
		}
	}

	c.events.Publish(diff.Events()...)
}

// Close shuts down the configuration system and clears the block tables.
func (c *Config) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	w := c.watcher
	c.watcher = nil
	if c.state != nil {
		c.state = &snapshot{values: c.state.values, extras: scoped.NewExtras(), report: c.state.report}
	}
	c.mu.Unlock()

	if w != nil {
		_ = w.Close()
	}
	c.events.Close()
}

// handleChange reloads the directory after its documents settled.
func (c *Config) handleChange(change watcher.Change) {
	c.logger.Debug("documents changed", "dir", change.Dir, "files", change.Paths())
	if err := c.Load(context.Background()); err != nil && !errors.Is(err, ErrClosed) {
		c.logger.Error("reload failed", "dir", change.Dir, "error", err)
	}
}

// current returns the published snapshot, or nil before the first load.
func (c *Config) current() *snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// node returns the registered node or ErrNodeNotFound.
func (c *Config) node(path string) (*registry.Node, error) {
	n := c.registry.Get(path)
	if n == nil {
		return nil, nodeError(path)
	}
	return n, nil
}

// GetValue returns the effective value of node for scope: the value of the
// scope itself, else the wildcard scope's value when the wildcard was
// declared, else the node default.
func (c *Config) GetValue(node, scope string) (any, error) {
	n, err := c.node(node)
	if err != nil {
		return nil, err
	}
	if st := c.current(); st != nil {
		if v, ok := st.values.Lookup(node, scope); ok {
			return registry.CloneValue(v), nil
		}
	}
	return n.DefaultValue(), nil
}

// GetMappedNode returns the decoded block mapping of node for scope: the
// scope's own entry, else the wildcard entry when declared, else an empty
// mapping.
func (c *Config) GetMappedNode(node, scope string) (blocks.Mapping, error) {
	if _, err := c.node(node); err != nil {
		return nil, err
	}
	st := c.current()
	if st == nil {
		return blocks.Mapping{}, nil
	}
	return st.extras.Lookup(node, scope), nil
}

// GetString returns a string value for node in scope.
func (c *Config) GetString(node, scope string) (string, error) {
	return typed[string](c, node, scope, "string")
}

// GetInt returns an integer value for node in scope.
func (c *Config) GetInt(node, scope string) (int, error) {
	return typed[int](c, node, scope, "int")
}

// GetBool returns a boolean value for node in scope.
func (c *Config) GetBool(node, scope string) (bool, error) {
	return typed[bool](c, node, scope, "bool")
}

// GetFloat returns a float64 value for node in scope. Integer values are
// widened.
func (c *Config) GetFloat(node, scope string) (float64, error) {
	v, err := c.GetValue(node, scope)
	if err != nil {
		return 0, err
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	}
	return 0, &TypeError{Node: node, Want: "float64", Got: v}
}

// GetStringSlice returns a string slice for node in scope.
func (c *Config) GetStringSlice(node, scope string) ([]string, error) {
	return typed[[]string](c, node, scope, "[]string")
}

func typed[T any](c *Config, node, scope, want string) (T, error) {
	var zero T
	v, err := c.GetValue(node, scope)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, &TypeError{Node: node, Want: want, Got: v}
	}
	return t, nil
}

// Scopes returns every scope that received values in the last cycle.
func (c *Config) Scopes() []string {
	if st := c.current(); st != nil {
		return st.values.Scopes()
	}
	return nil
}

// Wildcard reports whether the last cycle declared the wildcard scope.
func (c *Config) Wildcard() bool {
	if st := c.current(); st != nil {
		return st.values.Wildcard()
	}
	return false
}

// Report returns a copy of the last cycle's report, or nil before the
// first load.
func (c *Config) Report() *Report {
	if st := c.current(); st != nil {
		return st.report.clone()
	}
	return nil
}

// Registry returns the node registry.
func (c *Config) Registry() *registry.Registry {
	return c.registry
}

// Codec returns the block list codec.
func (c *Config) Codec() *blocks.Codec {
	return c.codec
}

// Dir returns the configuration directory.
func (c *Config) Dir() string {
	return c.dir
}

// Subscribe registers fn for the value events f selects. Every
// subscription also receives the Reloaded event closing each cycle.
func (c *Config) Subscribe(f notify.Filter, fn notify.Handler) *notify.Sub {
	return c.events.Subscribe(f, fn)
}

