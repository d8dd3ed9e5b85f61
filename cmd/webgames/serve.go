package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/younwookim/webgames/internal/application/bootstrap"
	"github.com/younwookim/webgames/internal/application/frame"
	"github.com/younwookim/webgames/internal/infrastructure/remote"
)

const shutdownTimeout = 5 * time.Second

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve <variant>",
	Short: "Run a variant headless behind a browser page",
	Long: `Run the variant on a fixed-rate loop without a window. A browser page
served at the address forwards its DOM events over a WebSocket and draws the
display list the engine produces each tick.

Examples:
  webgames serve deck
  webgames serve factory --addr :8090`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default: remote.addr from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := newSession(a, args[0], sessionOptions{})
	if err != nil {
		return err
	}

	remoteCfg := a.cfg.Settings.Remote
	addr := remoteCfg.Addr
	if flagAddr != "" {
		addr = flagAddr
	}

	loop := frame.NewLoop(s.driver, a.cfg.Settings.Loop.Interval())
	bridge := remote.NewBridge(loop, remoteCfg.ReadLimit, a.logger)
	loop.OnTick(broadcastFrame(s, bridge))

	handler, err := newServeMux(a, s, bridge, remoteCfg.Path)
	if err != nil {
		return err
	}
	srv := &http.Server{Addr: addr, Handler: handler}

	start := func(ctx context.Context) error {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return loop.Run(gctx)
		})
		g.Go(func() error {
			a.logger.Info("serving", "addr", addr, "variant", s.name)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	}

	return runSequence(cmd.Context(), bootstrap.New(s.engine, s.driver, start, a.logger))
}

// broadcastFrame sends the tick's display list to every connected page
func broadcastFrame(s *session, bridge *remote.Bridge) func() {
	return func() {
		if bridge.Clients() == 0 {
			return
		}
		msg, err := remote.EncodeFrame(s.driver.Frame(), s.list.Ops())
		if err != nil {
			s.driver.Logger().Error("failed to encode frame", "err", err)
			return
		}
		bridge.Broadcast(msg)
	}
}

func newServeMux(a *app, s *session, bridge http.Handler, wsPath string) (*http.ServeMux, error) {
	page, err := fs.ReadFile(assets, "static/index.html")
	if err != nil {
		return nil, err
	}
	page = []byte(strings.ReplaceAll(string(page), "{{WS_PATH}}", wsPath))

	mux := http.NewServeMux()
	mux.Handle(wsPath, bridge)
	mux.HandleFunc("/sprites/", func(w http.ResponseWriter, r *http.Request) {
		path, ok := s.variant.Sprites[strings.TrimPrefix(r.URL.Path, "/sprites/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		http.ServeFileFS(w, r, a.fsys, path)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	})
	return mux, nil
}
