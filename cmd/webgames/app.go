package main

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"github.com/younwookim/webgames/internal/application/bootstrap"
	"github.com/younwookim/webgames/internal/application/engine"
	"github.com/younwookim/webgames/internal/application/frame"
	"github.com/younwookim/webgames/internal/application/replay"
	"github.com/younwookim/webgames/internal/application/system"
	"github.com/younwookim/webgames/internal/engine/deck"
	"github.com/younwookim/webgames/internal/engine/factory"
	"github.com/younwookim/webgames/internal/infrastructure/canvas"
	"github.com/younwookim/webgames/internal/infrastructure/config"
	"github.com/younwookim/webgames/internal/infrastructure/logging"
)

// app holds what every command loads first
type app struct {
	cfg    *config.GameConfig
	fsys   fs.FS
	logger *log.Logger
	closer io.Closer
}

func loadApp() (*app, error) {
	loader := config.NewFSLoader(embeddedConfigs(), "configs")
	if flagConfigDir != "" {
		loader = config.NewLoader(flagConfigDir)
	}
	return newApp(loader, os.Stderr)
}

func newApp(loader *config.Loader, w io.Writer) (*app, error) {
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := cfg.Settings.Log
	if flagLogLevel != "" {
		logCfg.Level = flagLogLevel
	}
	logger, closer, err := logging.New(w, logCfg)
	if err != nil {
		return nil, err
	}

	logger.Debug("config loaded", "from", loader.BasePath(), "variants", len(cfg.Settings.Variants))
	return &app{cfg: cfg, fsys: loader.FS(), logger: logger, closer: closer}, nil
}

// runSequence runs seq, turning a ctx cancelled before the host starts
// (Ctrl-C during loading) into a cancelled start
func runSequence(ctx context.Context, seq *bootstrap.Sequencer) error {
	if ctx.Err() != nil {
		seq.CancelStarting()
	}
	stop := context.AfterFunc(ctx, seq.CancelStarting)
	defer stop()
	return seq.Run(ctx)
}

func (a *app) Close() error {
	return a.closer.Close()
}

func (a *app) dbPath() string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return a.cfg.Settings.Storage.Path
}

// engineEnv is what an engine constructor may use
type engineEnv struct {
	constants engine.Constants
	logger    *log.Logger
	load      func(ctx context.Context) error
	hasSprite func(id string) bool
}

var engines = map[string]func(env engineEnv) engine.Engine{
	"deck": func(env engineEnv) engine.Engine {
		return deck.New(env.constants, env.logger)
	},
	"factory": func(env engineEnv) engine.Engine {
		return factory.New(factory.Config{
			Constants: env.constants,
			Logger:    env.logger,
			Load:      env.load,
			HasSprite: env.hasSprite,
		})
	},
}

type sessionOptions struct {
	record bool
	// loadSprites decodes sprite images for the window renderer. Without it
	// sprites are drawn by the browser page.
	loadSprites      bool
	devicePixelRatio func() float64
}

// session is one variant wired to a driver
type session struct {
	name     string
	variant  config.VariantConfig
	list     *canvas.DisplayList
	sprites  *canvas.Sprites
	engine   engine.Engine
	driver   *frame.Driver
	recorder *replay.Recorder

	hasSprite func(id string) bool
}

func newSession(a *app, name string, opts sessionOptions) (*session, error) {
	variant, err := a.cfg.Settings.Variant(name)
	if err != nil {
		return nil, err
	}
	construct, ok := engines[variant.Engine]
	if !ok {
		return nil, fmt.Errorf("variant %s: unknown engine %q", name, variant.Engine)
	}
	table, err := variant.Table()
	if err != nil {
		return nil, fmt.Errorf("variant %s: %w", name, err)
	}
	background, err := optionalColor(variant.Background)
	if err != nil {
		return nil, fmt.Errorf("variant %s: background: %w", name, err)
	}
	rectColor, err := optionalColor(variant.RectColor)
	if err != nil {
		return nil, fmt.Errorf("variant %s: rect_color: %w", name, err)
	}

	s := &session{
		name:    name,
		variant: variant,
		list:    canvas.NewDisplayList(background, rectColor, variant.RectQuarterTurns),
		sprites: canvas.NewSprites(),
	}
	logger := a.logger.With("variant", name)

	env := engineEnv{constants: a.cfg.Tunables, logger: logger}
	if opts.loadSprites {
		env.load = func(ctx context.Context) error {
			sprites, err := canvas.LoadSprites(a.fsys, variant.Sprites, logger)
			if err != nil {
				logger.Warn("continuing without some sprites", "loaded", sprites.Len(), "wanted", len(variant.Sprites))
			}
			s.sprites = sprites
			return nil
		}
		s.hasSprite = func(id string) bool { return s.sprites.Get(id) != nil }
	} else {
		// the page fetches sprites itself; only offer files that exist
		shipped := make(map[string]bool, len(variant.Sprites))
		for id, path := range variant.Sprites {
			if _, err := fs.Stat(a.fsys, path); err != nil {
				logger.Warn("sprite not found", "id", id, "path", path)
				continue
			}
			shipped[id] = true
		}
		s.hasSprite = func(id string) bool { return shipped[id] }
	}
	env.hasSprite = s.hasSprite
	s.engine = construct(env)

	var recorder frame.Recorder
	if opts.record {
		s.recorder = replay.NewRecorder(name)
		recorder = s.recorder
	}

	display := a.cfg.Settings.Display
	s.driver = frame.NewDriver(frame.Options{
		Engine:           s.engine,
		Canvas:           s.list,
		Input:            system.NewInputSystem(table),
		Geometry:         system.NewGeometrySystem(display.Width, display.Height, 1),
		DevicePixelRatio: opts.devicePixelRatio,
		Clock:            frame.NewClock(a.cfg.Settings.Loop.MaxDeltaDuration()),
		Recorder:         recorder,
		Logger:           logger,
	})
	return s, nil
}

func optionalColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	return canvas.ParseColor(s)
}
