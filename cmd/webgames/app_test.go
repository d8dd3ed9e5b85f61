package main

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/webgames/internal/application/bootstrap"
	"github.com/younwookim/webgames/internal/application/replay"
	"github.com/younwookim/webgames/internal/application/state"
	"github.com/younwookim/webgames/internal/infrastructure/config"
	"github.com/younwookim/webgames/internal/infrastructure/storage"
)

func createTestApp(t *testing.T) *app {
	t.Helper()
	a, err := newApp(config.NewFSLoader(embeddedConfigs(), "configs"), io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestEmbeddedConfig(t *testing.T) {
	a := createTestApp(t)

	assert.Equal(t, []string{"deck", "factory"}, a.cfg.Settings.VariantNames())
	assert.Equal(t, 12.0, a.cfg.Tunables.Get("grid_width", 0))
	for _, name := range a.cfg.Settings.VariantNames() {
		_, ok := engines[a.cfg.Settings.Variants[name].Engine]
		assert.True(t, ok, "variant %s has no engine", name)
	}
}

func TestNewApp_LogsConfigSource(t *testing.T) {
	flagLogLevel = "debug"
	t.Cleanup(func() { flagLogLevel = "" })

	var out bytes.Buffer
	a, err := newApp(config.NewFSLoader(embeddedConfigs(), "configs"), &out)
	require.NoError(t, err)
	defer a.Close()

	assert.Contains(t, out.String(), "config loaded")
	assert.Contains(t, out.String(), "configs")
}

func TestNewSession(t *testing.T) {
	t.Run("every embedded variant", func(t *testing.T) {
		a := createTestApp(t)

		for _, name := range a.cfg.Settings.VariantNames() {
			s, err := newSession(a, name, sessionOptions{record: true})
			require.NoError(t, err, name)
			assert.Equal(t, state.StateBooting, s.driver.State())
			assert.NotNil(t, s.recorder)
		}
	})

	t.Run("deck rects turn a quarter", func(t *testing.T) {
		a := createTestApp(t)
		assert.Equal(t, -1, a.cfg.Settings.Variants["deck"].RectQuarterTurns)

		for name, want := range map[string][2]float64{"deck": {4, 10}, "factory": {10, 4}} {
			s, err := newSession(a, name, sessionOptions{})
			require.NoError(t, err)
			s.list.DrawRect(0, 0, 10, 4, nil)
			op := s.list.Ops()[0]
			assert.Equal(t, want, [2]float64{op.W, op.H}, name)
		}
	})

	t.Run("unknown variant", func(t *testing.T) {
		a := createTestApp(t)

		_, err := newSession(a, "missing", sessionOptions{})
		assert.ErrorIs(t, err, config.ErrUnknownVariant)
	})

	t.Run("unknown engine", func(t *testing.T) {
		loader := config.NewFSLoader(fstest.MapFS{
			"webgames.yaml": {Data: []byte("variants:\n  odd:\n    engine: pinball\n")},
		}, "test")
		a, err := newApp(loader, io.Discard)
		require.NoError(t, err)

		_, err = newSession(a, "odd", sessionOptions{})
		assert.ErrorContains(t, err, "unknown engine")
	})

	t.Run("bad colour", func(t *testing.T) {
		loader := config.NewFSLoader(fstest.MapFS{
			"webgames.yaml": {Data: []byte("variants:\n  odd:\n    engine: deck\n    background: red\n")},
		}, "test")
		a, err := newApp(loader, io.Discard)
		require.NoError(t, err)

		_, err = newSession(a, "odd", sessionOptions{})
		assert.ErrorContains(t, err, "background")
	})
}

func TestReplaySession(t *testing.T) {
	a := createTestApp(t)
	data := replay.CreateTestReplayData(30, "ArrowRight", 2, 20)
	data.Variant = "deck"

	result, err := replaySession(context.Background(), a, data)
	require.NoError(t, err)

	assert.Equal(t, uint64(30), result.ticks)
	assert.Equal(t, uint64(30), result.steps)
	assert.Equal(t, "Running", result.state)
	assert.Equal(t, "Move(0, 0)", result.intent)
}

func TestReplaySession_Cancelled(t *testing.T) {
	a := createTestApp(t)
	data := replay.CreateTestReplayData(5, "KeyA", 0, 1)
	data.Variant = "factory"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := replaySession(ctx, a, data)
	assert.ErrorIs(t, err, bootstrap.ErrStartCancelled)
}

func TestRunSequence_Interrupted(t *testing.T) {
	a := createTestApp(t)
	s, err := newSession(a, "deck", sessionOptions{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	started := false
	seq := bootstrap.New(s.engine, s.driver, func(ctx context.Context) error {
		started = true
		return nil
	}, a.logger)
	cancel()

	err = runSequence(ctx, seq)
	assert.ErrorIs(t, err, bootstrap.ErrStartCancelled)
	assert.False(t, started)
	assert.Equal(t, state.StateCancelled, s.driver.State())
}

func TestEmbeddedSprites(t *testing.T) {
	a := createTestApp(t)

	for _, name := range a.cfg.Settings.VariantNames() {
		for id, path := range a.cfg.Settings.Variants[name].Sprites {
			f, err := a.fsys.Open(path)
			require.NoError(t, err, "%s sprite %s", name, id)
			_, err = png.Decode(f)
			f.Close()
			assert.NoError(t, err, "%s sprite %s", name, id)
		}
	}
}

func TestSessionHasSprite(t *testing.T) {
	t.Run("embedded assets", func(t *testing.T) {
		a := createTestApp(t)
		s, err := newSession(a, "factory", sessionOptions{})
		require.NoError(t, err)

		assert.True(t, s.hasSprite("conveyor"))
		assert.True(t, s.hasSprite("sink"))
		assert.False(t, s.hasSprite("unknown"))
	})

	t.Run("configured but not shipped", func(t *testing.T) {
		loader := config.NewFSLoader(fstest.MapFS{
			"webgames.yaml": {Data: []byte("variants:\n  odd:\n    engine: factory\n    sprites:\n      conveyor: sprites/conveyor.png\n")},
		}, "test")
		a, err := newApp(loader, io.Discard)
		require.NoError(t, err)
		s, err := newSession(a, "odd", sessionOptions{})
		require.NoError(t, err)

		assert.False(t, s.hasSprite("conveyor"))
	})
}

func TestServeMux(t *testing.T) {
	a := createTestApp(t)
	s, err := newSession(a, "factory", sessionOptions{})
	require.NoError(t, err)

	bridge := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	mux, err := newServeMux(a, s, bridge, "/ws")
	require.NoError(t, err)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	page := get("/")
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), `location.host + "/ws"`)
	assert.NotContains(t, page.Body.String(), "{{WS_PATH}}")

	assert.Equal(t, http.StatusTeapot, get("/ws").Code)
	sprite := get("/sprites/conveyor")
	assert.Equal(t, http.StatusOK, sprite.Code)
	assert.Equal(t, "image/png", sprite.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusNotFound, get("/sprites/unknown").Code)
	assert.Equal(t, http.StatusNotFound, get("/favicon.ico").Code)
}

func TestRender(t *testing.T) {
	a := createTestApp(t)

	out := renderVariants(a.cfg.Settings)
	assert.Contains(t, out, "deck")
	assert.Contains(t, out, "factory")
	assert.Contains(t, out, "default")

	assert.Contains(t, renderRecordings(nil), "No recordings")

	out = renderRecordings([]storage.RecordingEntry{
		{ID: 7, Variant: "deck", Ticks: 120, Events: 4, CreatedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)},
	})
	assert.Contains(t, out, "7")
	assert.Contains(t, out, "2026-01-02 03:04")

	out = renderTunables(a.cfg.Tunables)
	assert.Contains(t, out, "grid_width")
	assert.Contains(t, out, "12")
}

func TestApplyTunableOverrides(t *testing.T) {
	a := createTestApp(t)
	tunables := a.cfg.Tunables

	require.NoError(t, applyTunableOverrides(tunables, []string{"grid_width=16", " draw_scale = 32.5"}))
	assert.Equal(t, 16.0, tunables.Get("grid_width", 0))
	assert.Equal(t, 32.5, tunables.Get("draw_scale", 0))

	out, err := tunables.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "grid_width: 16")

	assert.ErrorContains(t, applyTunableOverrides(tunables, []string{"grid_width"}), "name=value")
	assert.ErrorContains(t, applyTunableOverrides(tunables, []string{"=3"}), "name=value")
	assert.Error(t, applyTunableOverrides(tunables, []string{"grid_width=wide"}))
}

func TestRecordFileName(t *testing.T) {
	assert.Equal(t, "session.json", recordFileName("session.json"))
	assert.Regexp(t, `^replay_\d{8}_\d{6}\.json$`, recordFileName(autoRecordFile))
}
