package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/hardmode/internal/config"
)

func newDumpCmd(opts *rootOptions) *cobra.Command {
	var (
		asJSON bool
		query  string
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the effective value of every node for every scope",
		Long: `Print the effective value of every node for every scope.

With --json the output has the shape

  {"cycle": ..., "dir": ..., "wildcard": ...,
   "scopes": [{"name": ..., "values": [{"node": ..., "value": ..., "blocks": [...]}]}]}

--query selects part of it with a GJSON path, for example
  scopes.#(name=="world").values.#(node%"*Slow Players").value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer cfg.Close()

			out := cmd.OutOrStdout()
			if !asJSON && query == "" {
				return writeDumpText(cmd, cfg)
			}

			doc, err := dumpJSON(cfg)
			if err != nil {
				return err
			}
			if query == "" {
				fmt.Fprintln(out, doc)
				return nil
			}
			res := gjson.Get(doc, query)
			if !res.Exists() {
				return fmt.Errorf("query %q matched nothing", query)
			}
			fmt.Fprintln(out, res.Raw)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().StringVarP(&query, "query", "q", "", "print the part of the JSON output selected by a GJSON path")
	return cmd
}

func writeDumpText(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()
	for _, scope := range cfg.Scopes() {
		fmt.Fprintf(out, "%s:\n", scope)
		for _, n := range cfg.Registry().Nodes() {
			v, err := cfg.GetValue(n.Path, scope)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "  %s = %s\n", n.Path, formatValue(v))
		}
	}
	return nil
}

// dumpJSON renders the effective tables. Node names hold characters that
// are special in sjson paths, so they are written as values under indexed
// paths.
func dumpJSON(cfg *config.Config) (string, error) {
	rep := cfg.Report()
	doc := `{}`
	var err error

	set := func(path string, v any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, v)
	}

	set("cycle", rep.Cycle)
	set("dir", rep.Dir)
	set("wildcard", rep.Wildcard)
	set("scopes", []any{})

	for i, scope := range cfg.Scopes() {
		base := "scopes." + strconv.Itoa(i)
		set(base+".name", scope)
		set(base+".values", []any{})

		for j, n := range cfg.Registry().Nodes() {
			v, gerr := cfg.GetValue(n.Path, scope)
			if gerr != nil {
				return "", gerr
			}
			entry := base + ".values." + strconv.Itoa(j)
			set(entry+".node", n.Path)
			set(entry+".value", v)
			if n.Blocks {
				m, gerr := cfg.GetMappedNode(n.Path, scope)
				if gerr != nil {
					return "", gerr
				}
				set(entry+".blocks", cfg.Codec().Encode(m))
			}
		}
	}

	if err != nil {
		return "", fmt.Errorf("encoding dump: %w", err)
	}
	return doc, nil
}
