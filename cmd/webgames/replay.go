package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/younwookim/webgames/internal/application/bootstrap"
	"github.com/younwookim/webgames/internal/application/replay"
	"github.com/younwookim/webgames/internal/infrastructure/storage"
)

var flagReplayVariant string

var replayCmd = &cobra.Command{
	Use:   "replay <file|id>",
	Short: "Re-run a recorded session headlessly",
	Long: `Feed a recorded session back into a fresh driver and engine without a
window, one recorded tick at a time, and print where the session ended.

The argument is a JSON recording file, or the id of a stored recording.

Examples:
  webgames replay session.json
  webgames replay 3
  webgames replay 3 --variant factory`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayVariant, "variant", "", "Replay against this variant instead of the recorded one")
}

func runReplay(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := loadReplayData(a, args[0])
	if err != nil {
		return err
	}
	if flagReplayVariant != "" {
		data.Variant = flagReplayVariant
	}

	result, err := replaySession(cmd.Context(), a, *data)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary("Replay "+data.Variant,
		[2]string{"recorded", data.StartTime},
		[2]string{"ticks", strconv.FormatUint(result.ticks, 10)},
		[2]string{"engine steps", strconv.FormatUint(result.steps, 10)},
		[2]string{"final state", result.state},
		[2]string{"last intent", result.intent},
	))
	return nil
}

// loadReplayData reads a recording file, falling back to a stored id
func loadReplayData(a *app, arg string) (*replay.ReplayData, error) {
	if _, err := os.Stat(arg); err == nil {
		return replay.LoadReplay(arg)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s is neither a recording file nor a recording id", arg)
	}

	store, err := storage.Open(a.dbPath())
	if err != nil {
		return nil, err
	}
	defer store.Close()

	return store.LoadRecording(id)
}

type replayResult struct {
	ticks  uint64
	steps  uint64
	state  string
	intent string
}

func replaySession(ctx context.Context, a *app, data replay.ReplayData) (replayResult, error) {
	s, err := newSession(a, data.Variant, sessionOptions{})
	if err != nil {
		return replayResult{}, err
	}

	var ticks uint64
	start := func(ctx context.Context) error {
		player := replay.NewReplayer(data)
		n, err := player.Play(s.driver, time.Unix(0, 0), a.cfg.Settings.Loop.Interval())
		ticks = n
		return err
	}

	if err := runSequence(ctx, bootstrap.New(s.engine, s.driver, start, a.logger)); err != nil {
		return replayResult{}, err
	}

	return replayResult{
		ticks:  ticks,
		steps:  s.driver.Steps(),
		state:  s.driver.State().String(),
		intent: fmt.Sprint(s.driver.LastInput().Intent),
	}, nil
}
