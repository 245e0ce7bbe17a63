package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/hardmode/internal/config/scoped"
)

func newBlocksCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "blocks [SCOPE...]",
		Short: "Print the decoded block lists of each scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer cfg.Close()

			scopes := args
			if len(scopes) == 0 {
				scopes = cfg.Scopes()
			}
			if len(scopes) == 0 {
				scopes = []string{scoped.AllScopes}
			}

			out := cmd.OutOrStdout()
			catalog := cfg.Codec().Catalog()
			for _, scope := range scopes {
				fmt.Fprintf(out, "%s:\n", scope)
				for _, n := range cfg.Registry().BlockNodes() {
					m, err := cfg.GetMappedNode(n.Path, scope)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "  %s\n", n.Path)
					for _, id := range m.IDs() {
						metas := m[id]
						if len(metas) == 0 {
							fmt.Fprintf(out, "    %s (%d) any\n", catalog.Name(id), id)
							continue
						}
						parts := make([]string, len(metas))
						for i, meta := range metas {
							parts[i] = fmt.Sprint(meta)
						}
						fmt.Fprintf(out, "    %s (%d) %s\n", catalog.Name(id), id, strings.Join(parts, ","))
					}
				}
			}
			return nil
		},
	}
}
