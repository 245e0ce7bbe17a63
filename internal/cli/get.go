package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/dshills/hardmode/internal/config/scoped"
)

func newGetCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get NODE [SCOPE]",
		Short: "Print the effective value of a node for a scope",
		Long: `Print the effective value of a node for a scope.

NODE is a full node path or one relative to "ExtraHardMode". SCOPE defaults
to "*". Scopes without a value of their own fall back to "*" when any
document declared it, else to the node default.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer cfg.Close()

			node, err := resolveNode(cfg.Registry(), args[0])
			if err != nil {
				return err
			}
			scope := scoped.AllScopes
			if len(args) == 2 {
				scope = args[1]
			}

			v, err := cfg.GetValue(node, scope)
			if err != nil {
				return err
			}
			n := cfg.Registry().Get(node)

			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), formatValue(v))
				return nil
			}

			doc := `{}`
			for _, kv := range []struct {
				path  string
				value any
			}{
				{"node", node},
				{"scope", scope},
				{"type", n.Type.String()},
				{"value", v},
			} {
				if doc, err = sjson.Set(doc, kv.path, kv.value); err != nil {
					return fmt.Errorf("encoding %s: %w", kv.path, err)
				}
			}
			if n.Blocks {
				m, err := cfg.GetMappedNode(node, scope)
				if err != nil {
					return err
				}
				if doc, err = sjson.Set(doc, "blocks", cfg.Codec().Encode(m)); err != nil {
					return fmt.Errorf("encoding blocks: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the value as JSON")
	return cmd
}
