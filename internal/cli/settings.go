package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/hardmode/internal/config/layer"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print the tool settings and the layer each one came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.settings(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			merged := s.Merged()
			for _, key := range layer.Paths(merged) {
				v, _ := layer.GetByPath(merged, key)
				fmt.Fprintf(out, "%s = %s (%s)\n", key, formatValue(v), s.Origin(key))
			}
			for _, l := range s.Layers() {
				if l.Path != "" {
					fmt.Fprintf(out, "# %s: %s\n", l.Name, l.Path)
				}
			}
			return nil
		},
	}
}
