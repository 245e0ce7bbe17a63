// Package config provides the hierarchical configuration system for
// ExtraHardMode.
//
// A configuration directory holds one canonical document (config.yml) and
// any number of override documents. Each document lists the scopes (worlds)
// it applies to and a mode that decides what happens to the nodes it leaves
// out.
//
// # Modes
//
//	┌──────────┬─────────────────────────────────────────────────┐
//	│ MAIN     │ the canonical document; missing nodes get their  │
//	│          │ registered default                               │
//	├──────────┼─────────────────────────────────────────────────┤
//	│ INHERIT  │ missing nodes take the canonical document's      │
//	│          │ value; written back as "inherit"                 │
//	├──────────┼─────────────────────────────────────────────────┤
//	│ DISABLE  │ missing nodes take the node's disable sentinel;  │
//	│          │ written back as "disable"                        │
//	└──────────┴─────────────────────────────────────────────────┘
//
// Override documents whose concrete values equal what the marker would
// produce are collapsed to the marker, so a reload of a repaired directory
// is a fixed point.
//
// # Sub-packages
//
//   - registry: The node catalog with types, defaults and sentinels
//   - document: Flat documents and the YAML store
//   - blocks: Block list codec ("NAME@meta" entries to id/meta mappings)
//   - scoped: Per-scope value and mapping tables
//   - loader: Tool settings from TOML and environment variables
//   - watcher: Directory watching for live reload
//   - notify: Value events and subscriptions
//
// # Basic Usage
//
//	cfg := config.New(config.WithDir("plugins/ExtraHardMode"))
//	if err := cfg.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer cfg.Close()
//
//	grinders, err := cfg.GetBool(registry.Base+".General Monster Rules.Inhibit Monster Grinders", "world")
//	tools, err := cfg.GetMappedNode(registry.PathSuperHardStoneTools, "world")
//
// Scopes without a value of their own fall back to the "*" scope when any
// document declared it.
//
// # Error Handling
//
// Document problems never fail a load; they are repaired and reported in
// Report(). The package defines:
//
//   - ErrNodeNotFound: Node path is not registered
//   - ErrTypeMismatch: Value type doesn't match expected type
//   - ErrUnsupported: Operation not available for a node type
//   - ErrClosed: Configuration was closed
//   - DocumentError: A document could not be loaded, rendered or written;
//     Skipped reports the load failures that left a document out
package config
