package bootstrap

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/webgames/internal/application/engine"
	"github.com/younwookim/webgames/internal/application/frame"
	"github.com/younwookim/webgames/internal/application/state"
)

type mockEngine struct {
	calls   []string
	initErr error
	onLoad  func()
	host    engine.Host
}

func (m *mockEngine) Initialize(ctx context.Context) error {
	m.calls = append(m.calls, "initialize")
	if m.onLoad != nil {
		m.onLoad()
	}
	return m.initErr
}

func (m *mockEngine) Init(host engine.Host) {
	m.calls = append(m.calls, "init")
	m.host = host
}

func (m *mockEngine) Step(in engine.FrameInput) error {
	m.calls = append(m.calls, "step")
	return nil
}

func createTestDriver(eng engine.Engine) *frame.Driver {
	return frame.NewDriver(frame.Options{Engine: eng, Logger: log.New(io.Discard)})
}

func TestSequencer_Run(t *testing.T) {
	eng := &mockEngine{}
	driver := createTestDriver(eng)

	started := false
	seq := New(eng, driver, func(ctx context.Context) error {
		started = true
		assert.Equal(t, state.StateRunning, driver.State())
		return nil
	}, nil)

	require.NoError(t, seq.Run(context.Background()))
	assert.True(t, started)
	assert.Equal(t, []string{"initialize", "init"}, eng.calls)
	assert.NotNil(t, eng.host)
}

func TestSequencer_CancelledBeforeRun(t *testing.T) {
	eng := &mockEngine{}
	driver := createTestDriver(eng)
	seq := New(eng, driver, func(ctx context.Context) error {
		t.Fatal("host must not start")
		return nil
	}, nil)

	seq.CancelStarting()
	err := seq.Run(context.Background())

	assert.ErrorIs(t, err, ErrStartCancelled)
	assert.Empty(t, eng.calls)
	assert.Equal(t, state.StateCancelled, driver.State())
}

func TestSequencer_CancelledWhileLoading(t *testing.T) {
	eng := &mockEngine{}
	driver := createTestDriver(eng)
	seq := New(eng, driver, nil, nil)
	eng.onLoad = seq.CancelStarting

	err := seq.Run(context.Background())

	assert.ErrorIs(t, err, ErrStartCancelled)
	assert.Equal(t, []string{"initialize"}, eng.calls)
	assert.Equal(t, state.StateCancelled, driver.State())
}

func TestSequencer_CancelledFromAnotherGoroutine(t *testing.T) {
	eng := &mockEngine{}
	driver := createTestDriver(eng)
	seq := New(eng, driver, nil, nil)
	eng.onLoad = func() {
		done := make(chan struct{})
		go func() {
			seq.CancelStarting()
			close(done)
		}()
		<-done
	}

	assert.ErrorIs(t, seq.Run(context.Background()), ErrStartCancelled)
	assert.Equal(t, state.StateCancelled, driver.State())
}

func TestSequencer_InitializeError(t *testing.T) {
	loadErr := errors.New("missing asset")
	eng := &mockEngine{initErr: loadErr}
	driver := createTestDriver(eng)
	seq := New(eng, driver, nil, nil)

	err := seq.Run(context.Background())

	assert.ErrorIs(t, err, loadErr)
	assert.Equal(t, []string{"initialize"}, eng.calls)
	assert.False(t, driver.State().Steps())
}

func TestSequencer_StartErrorPropagates(t *testing.T) {
	eng := &mockEngine{}
	driver := createTestDriver(eng)
	hostErr := errors.New("window closed")
	seq := New(eng, driver, func(ctx context.Context) error { return hostErr }, nil)

	assert.ErrorIs(t, seq.Run(context.Background()), hostErr)
}
