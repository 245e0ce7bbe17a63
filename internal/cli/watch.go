package cli

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dshills/hardmode/internal/config"
	"github.com/dshills/hardmode/internal/config/notify"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Resolve the configuration directory and reload it on change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd, config.WithWatcher(true))
			if err != nil {
				return err
			}
			defer cfg.Close()

			out := cmd.OutOrStdout()
			var mu sync.Mutex
			sub := cfg.Subscribe(notify.Filter{Scope: scope}, func(e notify.Event) {
				mu.Lock()
				defer mu.Unlock()
				switch e.Kind {
				case notify.Reloaded:
					fmt.Fprintf(out, "reloaded %s (cycle %s)\n", e.Dir, e.Cycle)
				case notify.Removed:
					fmt.Fprintf(out, "  %s [%s] removed\n", e.Node, e.Scope)
				default:
					fmt.Fprintf(out, "  %s [%s] %s -> %s\n", e.Node, e.Scope, formatValue(e.Old), formatValue(e.New))
				}
			})
			defer sub.Cancel()

			mu.Lock()
			fmt.Fprintf(out, "watching %s (%d scopes)\n", cfg.Dir(), len(cfg.Scopes()))
			mu.Unlock()

			<-cmd.Context().Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "only report changes affecting this scope")
	return cmd
}
