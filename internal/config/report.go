package config

import (
	"slices"
	"time"

	"github.com/dshills/hardmode/internal/config/document"
)

// Reason explains why a document was adjusted.
type Reason string

// Adjustment reasons.
const (
	ReasonMissing       Reason = "missing value filled"
	ReasonOutOfPolicy   Reason = "value outside policy replaced by default"
	ReasonCollapsed     Reason = "collapsed to marker"
	ReasonModeMismatch  Reason = "mode text rewritten"
	ReasonBlocksDropped Reason = "unreadable block entries dropped"
	ReasonMatches       Reason = "value equals reference, collapsed to marker"
	ReasonScopes        Reason = "scope list missing or unreadable"
)

// Adjustment records one change made to a document during resolution.
type Adjustment struct {
	// Node is the path of the adjusted node.
	Node string
	// Reason explains the change.
	Reason Reason
	// Detail carries extra context such as dropped entries.
	Detail string
}

// DocumentReport describes how one document was resolved.
type DocumentReport struct {
	// Path is the document's backing file.
	Path string

	// Mode is the applied mode.
	Mode document.Mode

	// Scopes are the scopes the document applies to.
	Scopes []string

	// Synthesized is true for a canonical document created in memory.
	Synthesized bool

	// Adjusted is true when the document needed a rewrite.
	Adjusted bool

	// Persisted is true when the rewrite was saved.
	Persisted bool

	// Adjustments lists the changes in node order.
	Adjustments []Adjustment

	// Before and After hold the stored and rendered bytes in dry-run mode.
	Before []byte
	After  []byte

	// Err is set when the document was skipped or could not be saved.
	Err error
}

// Report describes the most recent load cycle.
type Report struct {
	// Cycle is the unique id of the load cycle.
	Cycle string

	// Dir is the configuration directory.
	Dir string

	// Started is when the cycle began.
	Started time.Time

	// Duration is how long the cycle took.
	Duration time.Duration

	// DryRun is true when adjusted documents were rendered, not written.
	DryRun bool

	// Wildcard is true when any document declared the wildcard scope.
	Wildcard bool

	// Documents lists every document in processing order.
	Documents []DocumentReport

	// Errors collects non-fatal errors in the order they occurred.
	Errors []error
}

// Adjusted returns the reports of documents that needed a rewrite.
func (r *Report) Adjusted() []DocumentReport {
	var out []DocumentReport
	for _, d := range r.Documents {
		if d.Adjusted {
			out = append(out, d)
		}
	}
	return out
}

// Document returns the report for a path.
func (r *Report) Document(path string) (DocumentReport, bool) {
	for _, d := range r.Documents {
		if d.Path == path {
			return d, true
		}
	}
	return DocumentReport{}, false
}

func (r *Report) clone() *Report {
	out := *r
	out.Documents = make([]DocumentReport, len(r.Documents))
	for i, d := range r.Documents {
		d.Scopes = slices.Clone(d.Scopes)
		d.Adjustments = slices.Clone(d.Adjustments)
		d.Before = slices.Clone(d.Before)
		d.After = slices.Clone(d.After)
		out.Documents[i] = d
	}
	out.Errors = slices.Clone(r.Errors)
	return &out
}
