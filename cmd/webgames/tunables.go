package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/younwookim/webgames/internal/infrastructure/config"
)

var (
	flagTunableSet  []string
	flagTunableYAML bool
)

var tunablesCmd = &cobra.Command{
	Use:   "tunables",
	Short: "Show or override tunable constants",
	Long: `List the engine constants loaded from tunables.yaml.

With --set, values are overridden before printing. Combine with --yaml to
write a tunables.yaml for a --config directory.

Examples:
  webgames tunables
  webgames tunables --set grid_width=16 --yaml > my-configs/tunables.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := applyTunableOverrides(a.cfg.Tunables, flagTunableSet); err != nil {
			return err
		}
		if flagTunableYAML {
			out, err := a.cfg.Tunables.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTunables(a.cfg.Tunables))
		return nil
	},
}

func init() {
	tunablesCmd.Flags().StringArrayVar(&flagTunableSet, "set", nil, "Override a value as name=value (repeatable)")
	tunablesCmd.Flags().BoolVar(&flagTunableYAML, "yaml", false, "Print as tunables.yaml instead of a table")
}

// applyTunableOverrides sets each name=value pair
func applyTunableOverrides(t *config.Tunables, pairs []string) error {
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return fmt.Errorf("tunable %q: want name=value", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("tunable %s: %w", name, err)
		}
		t.Set(name, v)
	}
	return nil
}
