package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/dshills/hardmode/internal/config"
)

// ErrCheckFailed is returned when a document was skipped or not saved.
var ErrCheckFailed = errors.New("check failed")

var (
	okColor     = color.New(color.FgGreen).SprintFunc()
	repairColor = color.New(color.FgYellow).SprintFunc()
	errorColor  = color.New(color.FgRed).SprintFunc()
	insertColor = color.New(color.FgGreen).SprintFunc()
	deleteColor = color.New(color.FgRed).SprintFunc()
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var (
		dryRun  bool
		diff    bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve the configuration directory and repair its documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var extra []config.Option
			if dryRun || diff {
				extra = append(extra, config.WithDryRun(true))
			}
			cfg, err := opts.load(cmd, extra...)
			if err != nil {
				return err
			}
			defer cfg.Close()

			rep := cfg.Report()
			out := cmd.OutOrStdout()
			failed := 0
			for _, d := range rep.Documents {
				if d.Err != nil {
					failed++
				}
				writeDocument(out, rep, d, verbose)
				if diff && d.Adjusted && d.After != nil {
					writeDiff(out, d.Before, d.After)
				}
			}

			fmt.Fprintf(out, "%d documents, %d adjusted, %d errors (cycle %s)\n",
				len(rep.Documents), len(rep.Adjusted()), len(rep.Errors), rep.Cycle)

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d documents", ErrCheckFailed, failed, len(rep.Documents))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report repairs without writing them")
	cmd.Flags().BoolVar(&diff, "diff", false, "show the rewrite of each adjusted document (implies --dry-run)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list every adjustment")
	return cmd
}

// documentStatus names the outcome of one document.
func documentStatus(rep *config.Report, d config.DocumentReport) string {
	switch {
	case config.Skipped(d.Err):
		return errorColor("skipped")
	case d.Err != nil:
		return errorColor("failed")
	case d.Adjusted && rep.DryRun:
		return repairColor("needs repair")
	case d.Adjusted:
		return repairColor("repaired")
	default:
		return okColor("ok")
	}
}

func writeDocument(w io.Writer, rep *config.Report, d config.DocumentReport, verbose bool) {
	name := filepath.Base(d.Path)
	if d.Err != nil {
		fmt.Fprintf(w, "%s %s: %v\n", documentStatus(rep, d), name, d.Err)
		return
	}
	fmt.Fprintf(w, "%s %s [%s] scopes: %s\n", documentStatus(rep, d), name, d.Mode, strings.Join(d.Scopes, ", "))
	if !verbose {
		return
	}
	for _, a := range d.Adjustments {
		if a.Detail != "" {
			fmt.Fprintf(w, "    %s: %s (%s)\n", a.Node, a.Reason, a.Detail)
			continue
		}
		fmt.Fprintf(w, "    %s: %s\n", a.Node, a.Reason)
	}
}

// writeDiff prints the changed lines between the stored and rendered bytes.
func writeDiff(w io.Writer, before, after []byte) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for _, d := range diffs {
		var prefix string
		var paint func(a ...any) string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix, paint = "+ ", insertColor
		case diffmatchpatch.DiffDelete:
			prefix, paint = "- ", deleteColor
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintln(w, paint(prefix+strings.TrimSuffix(line, "\n")))
		}
	}
}
