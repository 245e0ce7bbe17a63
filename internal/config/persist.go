package config

import (
	"github.com/dshills/hardmode/internal/config/document"
)

// renderer is implemented by stores that can render a document without
// saving it.
type renderer interface {
	Render(doc *document.Document) ([]byte, error)
}

// rawReader is implemented by stores that expose stored bytes.
type rawReader interface {
	Read(path string) ([]byte, error)
}

// canonical rebuilds a resolved document in registry declaration order.
// Block list nodes are re-encoded from their decoded mapping, so the result
// depends only on resolved state. Keys unknown to the registry are dropped.
func (cy *cycle) canonical(res *resolved) *document.Document {
	out := document.New(res.doc.Path())
	out.Mode = res.doc.Mode
	out.Status = res.doc.Status

	for _, n := range cy.reg.Nodes() {
		v, ok := res.doc.Get(n.Path)
		if !ok {
			v = n.DefaultValue()
		}
		if n.Blocks {
			if _, isList := v.([]string); isList {
				v = cy.codec.Encode(res.mappings[n.Path])
			}
		}
		out.Set(n.Path, v)
	}
	return out
}

// persist records the document report and writes adjusted documents back.
// Failures are logged and reported; they never abort the cycle.
func (cy *cycle) persist(res *resolved) {
	rep := res.report
	defer func() {
		cy.report.Documents = append(cy.report.Documents, *rep)
	}()

	if !res.doc.Adjusted() {
		return
	}
	out := cy.canonical(res)
	logger := cy.logger.With("path", out.Path())

	if cy.dryRun {
		if r, ok := cy.store.(rawReader); ok && !rep.Synthesized {
			if before, err := r.Read(out.Path()); err == nil {
				rep.Before = before
			}
		}
		if r, ok := cy.store.(renderer); ok {
			after, err := r.Render(out)
			if err != nil {
				logger.Error("rendering document", "error", err)
				rep.Err = &DocumentError{Op: OpRender, Path: out.Path(), Err: err}
				cy.report.Errors = append(cy.report.Errors, rep.Err)
				return
			}
			rep.After = after
		}
		logger.Info("document needs rewrite", "adjustments", len(rep.Adjustments))
		return
	}

	if err := cy.store.Save(out); err != nil {
		logger.Error("persisting document", "error", err)
		rep.Err = &DocumentError{Op: OpPersist, Path: out.Path(), Err: err}
		cy.report.Errors = append(cy.report.Errors, rep.Err)
		return
	}
	rep.Persisted = true
	logger.Info("rewrote document", "adjustments", len(rep.Adjustments))
}
