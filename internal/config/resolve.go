package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/hardmode/internal/config/blocks"
	"github.com/dshills/hardmode/internal/config/document"
	"github.com/dshills/hardmode/internal/config/registry"
	"github.com/dshills/hardmode/internal/config/scoped"
)

// cycle holds the state of one load cycle. Nothing in it is shared until
// the cycle completes and the tables are published.
type cycle struct {
	id       string
	reg      *registry.Registry
	codec    *blocks.Codec
	store    document.Store
	logger   *slog.Logger
	dir      string
	mainFile string
	dryRun   bool

	values *scoped.Values
	extras *scoped.Extras
	report *Report
}

// resolved is the outcome of resolving one document.
type resolved struct {
	doc       *document.Document
	scopes    []string
	effective map[string]any
	mappings  map[string]blocks.Mapping
	report    *DocumentReport
}

// nodeValue is a node's value as read from a document.
type nodeValue struct {
	value  any
	status document.Status
}

func (c *Config) newCycle() *cycle {
	id := uuid.NewString()
	return &cycle{
		id:       id,
		reg:      c.registry,
		codec:    c.codec,
		store:    c.store,
		logger:   c.logger.With("cycle", id),
		dir:      c.dir,
		mainFile: c.mainFile,
		dryRun:   c.dryRun,
		values:   scoped.NewValues(),
		extras:   scoped.NewExtras(),
		report: &Report{
			Cycle:   id,
			Dir:     c.dir,
			Started: time.Now(),
			DryRun:  c.dryRun,
		},
	}
}

// run executes the load cycle. Only an unreadable directory or canonical
// document aborts it; every other anomaly is repaired and reported.
func (cy *cycle) run() error {
	paths, err := cy.store.List(cy.dir)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	mainPath := filepath.Join(cy.dir, cy.mainFile)
	var others []string
	found := false
	for _, p := range paths {
		if filepath.Base(p) == cy.mainFile {
			mainPath = p
			found = true
			continue
		}
		others = append(others, p)
	}

	mainDoc := document.New(mainPath)
	if found {
		if mainDoc, err = cy.store.Load(mainPath); err != nil {
			return fmt.Errorf("loading canonical document: %w", err)
		}
	} else {
		cy.logger.Info("canonical document missing, using defaults", "path", mainPath)
	}

	mainDoc.Mode = document.ModeMain
	main := cy.resolve(mainDoc, nil)
	main.report.Synthesized = !found
	cy.persist(main)
	mainDoc.Status = document.StatusProcessed

	for _, p := range others {
		doc, err := cy.store.Load(p)
		if err != nil {
			lerr := &DocumentError{Op: OpLoad, Path: p, Err: err}
			cy.logger.Warn("skipping document", "path", p, "error", err)
			cy.report.Errors = append(cy.report.Errors, lerr)
			cy.report.Documents = append(cy.report.Documents, DocumentReport{Path: p, Err: lerr})
			continue
		}

		doc.Mode = detectMode(doc)
		res := cy.resolve(doc, main)
		cy.reconcile(res, main)
		cy.persist(res)
	}

	cy.report.Wildcard = cy.values.Wildcard()
	cy.report.Duration = time.Since(cy.report.Started)
	return nil
}

// detectMode reads the mode node of an override document. Unknown text and
// MAIN both resolve to INHERIT; only the canonical document is MAIN.
func detectMode(doc *document.Document) document.Mode {
	raw, ok := doc.Get(registry.PathMode)
	if !ok {
		return document.ModeInherit
	}
	s, ok := raw.(string)
	if !ok {
		return document.ModeInherit
	}
	mode, ok := document.ParseMode(s)
	if !ok || mode == document.ModeMain {
		return document.ModeInherit
	}
	return mode
}

// readNode reads a node value and classifies it.
// Values that cannot represent the node type count as not found.
func readNode(doc *document.Document, n *registry.Node) nodeValue {
	raw, ok := doc.Get(n.Path)
	if !ok || raw == nil {
		return nodeValue{status: document.StatusNotFound}
	}
	if s, isString := raw.(string); isString {
		switch {
		case strings.EqualFold(s, document.MarkerInherit):
			return nodeValue{value: s, status: document.StatusInherits}
		case strings.EqualFold(s, document.MarkerDisable):
			return nodeValue{value: s, status: document.StatusDisables}
		}
	}
	v, ok := registry.Coerce(n.Type, raw)
	if !ok {
		return nodeValue{status: document.StatusNotFound}
	}
	return nodeValue{value: v, status: document.StatusOK}
}

// resolve processes every node of doc in registry order. main is nil while
// resolving the canonical document itself.
func (cy *cycle) resolve(doc *document.Document, main *resolved) *resolved {
	res := &resolved{
		doc:       doc,
		effective: make(map[string]any, cy.reg.Len()),
		mappings:  make(map[string]blocks.Mapping),
		report:    &DocumentReport{Path: doc.Path(), Mode: doc.Mode},
	}
	logger := cy.logger.With("path", doc.Path(), "mode", doc.Mode.String())
	res.scopes = cy.readScopes(res)

	for _, n := range cy.reg.Nodes() {
		if n.Path == registry.PathScopes {
			doc.Set(n.Path, append([]string{}, res.scopes...))
			res.effective[n.Path] = append([]string{}, res.scopes...)
			cy.publishValue(res, n.Path, res.effective[n.Path])
			continue
		}

		prior, _ := doc.Get(n.Path)
		nv := readNode(doc, n)

		if nv.status == document.StatusOK && (n.Type == registry.TypeInteger || n.Type == registry.TypeDouble) {
			if corrected, ok := n.Validate(nv.value); !ok {
				logger.Debug("value outside policy", "node", n.Path, "value", nv.value, "default", corrected)
				cy.adjust(res, n.Path, ReasonOutOfPolicy, fmt.Sprint(nv.value))
				nv.value = corrected
			}
		}

		switch {
		case n.Path == registry.PathMode:
			cy.checkMode(res, &nv)
		case doc.Mode == document.ModeMain:
			if nv.status != document.StatusOK {
				nv = nodeValue{value: n.DefaultValue(), status: document.StatusOK}
				cy.adjust(res, n.Path, ReasonMissing, "")
			}
		case doc.Mode == document.ModeDisable:
			if nv.status == document.StatusNotFound || nv.status == document.StatusInherits {
				cy.collapse(res, n.Path, &nv, prior, document.MarkerDisable, document.StatusDisables)
			}
		case doc.Mode == document.ModeInherit:
			if nv.status == document.StatusNotFound || nv.status == document.StatusDisables {
				cy.collapse(res, n.Path, &nv, prior, document.MarkerInherit, document.StatusInherits)
			}
		}

		if n.Blocks {
			cy.decodeBlocks(res, n, nv, main)
		}

		doc.Set(n.Path, nv.value)

		var eff any
		switch {
		case n.Path == registry.PathMode:
			eff = doc.Mode.String()
		case nv.status == document.StatusInherits && main != nil:
			eff = registry.CloneValue(main.effective[n.Path])
		case nv.status == document.StatusDisables:
			eff = n.Sentinel()
		default:
			eff = nv.value
		}
		res.effective[n.Path] = eff
		cy.publishValue(res, n.Path, eff)
	}

	res.report.Scopes = append([]string{}, res.scopes...)
	return res
}

// readScopes reads the scope list. It is never marker-collapsed; a missing
// or unreadable list applies the document to no scope.
func (cy *cycle) readScopes(res *resolved) []string {
	raw, ok := res.doc.Get(registry.PathScopes)
	if ok && !document.IsMarker(raw) {
		if v, ok := registry.Coerce(registry.TypeList, raw); ok {
			return v.([]string)
		}
	}
	cy.adjust(res, registry.PathScopes, ReasonScopes, "")
	return []string{}
}

// collapse replaces a value with a marker. The document is only flagged
// when its stored text actually changes.
func (cy *cycle) collapse(res *resolved, path string, nv *nodeValue, prior any, marker string, status document.Status) {
	if s, ok := prior.(string); !ok || s != marker {
		cy.adjust(res, path, ReasonCollapsed, marker)
	}
	nv.value = marker
	nv.status = status
}

// checkMode writes the applied mode in its canonical spelling. The mode node
// is never marker-collapsed.
func (cy *cycle) checkMode(res *resolved, nv *nodeValue) {
	want := res.doc.Mode.String()
	if s, ok := nv.value.(string); !ok || s != want {
		detail := want
		if nv.value != nil {
			detail = fmt.Sprintf("%v -> %s", nv.value, want)
		}
		cy.adjust(res, registry.PathMode, ReasonModeMismatch, detail)
	}
	nv.value = want
	nv.status = document.StatusOK
}

// decodeBlocks materializes a block list node for every declared scope.
func (cy *cycle) decodeBlocks(res *resolved, n *registry.Node, nv nodeValue, main *resolved) {
	var mapping blocks.Mapping
	switch nv.status {
	case document.StatusOK:
		list, ok := nv.value.([]string)
		if !ok {
			return
		}
		result := cy.codec.Decode(list)
		if result.Repaired() {
			cy.logger.Warn("dropped block entries", "path", res.doc.Path(), "node", n.Path, "entries", result.Dropped)
			cy.adjust(res, n.Path, ReasonBlocksDropped, strings.Join(result.Dropped, ", "))
		}
		mapping = result.Mapping
	case document.StatusInherits:
		if main != nil {
			mapping = main.mappings[n.Path].Clone()
		}
	}
	if mapping == nil {
		mapping = blocks.Mapping{}
	}

	res.mappings[n.Path] = mapping
	for _, scope := range res.scopes {
		cy.extras.Put(n.Path, scope, mapping)
	}
}

// reconcile collapses concrete values of an override document that equal
// the reference: the canonical value in INHERIT mode, the disable sentinel
// in DISABLE mode.
func (cy *cycle) reconcile(res *resolved, main *resolved) {
	mode := res.doc.Mode
	if mode != document.ModeInherit && mode != document.ModeDisable {
		return
	}
	marker := mode.Marker()

	for _, n := range cy.reg.Nodes() {
		if n.Path == registry.PathMode || n.Path == registry.PathScopes {
			continue
		}
		stored, _ := res.doc.Get(n.Path)
		if document.IsMarker(stored) {
			continue
		}

		var same bool
		switch {
		case n.Blocks:
			ref := blocks.Mapping{}
			if mode == document.ModeInherit {
				ref = main.mappings[n.Path]
			}
			same = res.mappings[n.Path].Equal(ref)
		case mode == document.ModeInherit:
			same = registry.Equal(stored, main.effective[n.Path])
		default:
			same = registry.Equal(stored, n.Sentinel())
		}

		if same {
			res.doc.Set(n.Path, marker)
			cy.adjust(res, n.Path, ReasonMatches, marker)
		}
	}
}

// publishValue stores an effective value for every declared scope.
func (cy *cycle) publishValue(res *resolved, path string, v any) {
	for _, scope := range res.scopes {
		cy.values.Set(path, scope, v)
	}
}

// adjust flags the document for rewriting and records why.
func (cy *cycle) adjust(res *resolved, node string, reason Reason, detail string) {
	res.doc.MarkAdjusted()
	res.report.Adjusted = true
	res.report.Adjustments = append(res.report.Adjustments, Adjustment{
		Node:   node,
		Reason: reason,
		Detail: detail,
	})
}
