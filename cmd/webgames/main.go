// webgames hosts canvas games on a frame-loop driver.
//
// Usage:
//
//	webgames variants            - List configured game variants
//	webgames play <variant>      - Play a variant in a window
//	webgames serve <variant>     - Run a variant headless behind a browser page
//	webgames replay <file|id>    - Re-run a recorded session headlessly
//	webgames recordings          - List stored recordings
//	webgames tunables            - Show or override tunable constants
//
// Global flags:
//
//	--config <dir>     - Load webgames.yaml and tunables.yaml from dir (default: embedded)
//	--log-level <lvl>  - Override the configured log level
//	--db <path>        - Override the recordings database path
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/younwookim/webgames/internal/application/bootstrap"
)

var (
	flagConfigDir string
	flagLogLevel  string
	flagDBPath    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, bootstrap.ErrStartCancelled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "webgames",
	Short: "Frame-loop host for canvas games",
	Long: `webgames runs canvas games on a shared frame driver: keyboard and
pointer input are folded into one intent per frame, the canvas follows the
window size and device pixel ratio, and the engine draws a display list.

Examples:
  webgames variants
  webgames play deck
  webgames play factory --record
  webgames serve factory --addr :8090
  webgames recordings --variant deck
  webgames replay 3
  webgames tunables --set draw_scale=32`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "Config directory (default: embedded configs)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to recordings database")

	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(recordingsCmd)
	rootCmd.AddCommand(tunablesCmd)
}
