package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/younwookim/webgames/internal/application/bootstrap"
	"github.com/younwookim/webgames/internal/application/game"
	"github.com/younwookim/webgames/internal/application/replay"
	"github.com/younwookim/webgames/internal/infrastructure/canvas"
	"github.com/younwookim/webgames/internal/infrastructure/storage"
)

var (
	flagRecord     bool
	flagRecordFile string
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a variant in a window",
	Long: `Open a window and run the variant's engine once per display refresh.

Default controls:
  Arrows/WASD  - Move
  Q/E          - Interact left/right
  1-9          - Play card
  Space        - Activate mechanism
  R/F          - Rotate

Examples:
  webgames play deck
  webgames play factory --record
  webgames play deck --record-file session.json
  webgames play deck --record-file   # replay_<timestamp>.json`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Store the session's input in the recordings database")
	playCmd.Flags().StringVar(&flagRecordFile, "record-file", "", "Also write the recording to a JSON file")
	playCmd.Flags().Lookup("record-file").NoOptDefVal = autoRecordFile
}

// autoRecordFile is --record-file given without a name
const autoRecordFile = "auto"

// recordFileName resolves the --record-file value to a path
func recordFileName(flag string) string {
	if flag == autoRecordFile {
		return replay.GenerateFilename()
	}
	return flag
}

func runPlay(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := newSession(a, args[0], sessionOptions{
		record:           flagRecord || flagRecordFile != "",
		loadSprites:      true,
		devicePixelRatio: game.DevicePixelRatio,
	})
	if err != nil {
		return err
	}

	display := a.cfg.Settings.Display
	title := s.variant.Title
	if title == "" {
		title = s.name
	}

	start := func(ctx context.Context) error {
		renderer, err := canvas.NewRenderer(s.sprites)
		if err != nil {
			return err
		}
		g := game.New(s.driver, s.list, renderer, nil)
		return g.Run(title, display.Width, display.Height, display.Resizable)
	}

	seq := bootstrap.New(s.engine, s.driver, start, a.logger)
	runErr := runSequence(cmd.Context(), seq)

	if s.recorder != nil {
		s.recorder.Stop()
		if err := saveRecording(a, s.recorder); err != nil {
			a.logger.Error("failed to save recording", "err", err)
		}
	}
	return runErr
}

func saveRecording(a *app, rec *replay.Recorder) error {
	if flagRecordFile != "" {
		path := recordFileName(flagRecordFile)
		if err := rec.Save(path); err != nil {
			return err
		}
		a.logger.Info("recording written", "file", path, "ticks", rec.TickCount())
	}
	if !flagRecord {
		return nil
	}

	store, err := storage.Open(a.dbPath())
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveRecording(rec.GetData())
	if errors.Is(err, replay.ErrNoFrames) {
		a.logger.Warn("nothing recorded")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to store recording: %w", err)
	}
	a.logger.Info("recording stored", "id", id, "ticks", rec.TickCount())
	return nil
}
