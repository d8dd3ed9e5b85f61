package frame

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const eventQueueSize = 256

// Loop runs a Driver at a fixed rate without a window. Events may be posted
// from any goroutine; they are applied on the loop goroutine before each tick.
type Loop struct {
	driver    *Driver
	interval  time.Duration
	events    chan Event
	logger    *log.Logger
	afterTick func()

	mu sync.Mutex
	// overflow holds events that arrived while events was full. Once it is
	// non-empty every later event goes here too, so order is kept.
	overflow []Event
}

// NewLoop creates a loop ticking every interval
func NewLoop(driver *Driver, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Loop{
		driver:   driver,
		interval: interval,
		events:   make(chan Event, eventQueueSize),
		logger:   driver.Logger().WithPrefix("loop"),
	}
}

// Post queues an event for the next tick. It never blocks. When the queue
// is full, releases (keyup, pointerup, blur) are still kept, pointer moves
// and resizes replace the pending one of the same kind, and anything else is
// dropped; false means the event was dropped.
func (l *Loop) Post(ev Event) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.overflow) == 0 {
		select {
		case l.events <- ev:
			return true
		default:
		}
	}
	return l.overflowLocked(ev)
}

func (l *Loop) overflowLocked(ev Event) bool {
	switch ev.Kind {
	case EventKeyUp, EventPointerUp, EventBlur:
		for _, queued := range l.overflow {
			if queued.Kind == ev.Kind && queued.Code == ev.Code {
				return true
			}
		}
	case EventPointerMove, EventResize:
		if n := len(l.overflow); n > 0 && l.overflow[n-1].Kind == ev.Kind {
			l.overflow[n-1] = ev
			return true
		}
	default:
		l.logger.Warn("event queue full, dropping event", "event", ev.Kind)
		return false
	}
	l.overflow = append(l.overflow, ev)
	return true
}

// OnTick registers fn to run on the loop goroutine after every tick
func (l *Loop) OnTick(fn func()) {
	l.afterTick = fn
}

// Run ticks until ctx is done and returns ctx.Err()
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Debug("loop started", "interval", l.interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			l.tick(now)
		}
	}
}

func (l *Loop) tick(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("frame tick panicked", "panic", r)
		}
	}()

	l.drain()
	l.driver.Tick(now)
	if l.afterTick != nil {
		l.afterTick()
	}
}

func (l *Loop) drain() {
	for {
		select {
		case ev := <-l.events:
			l.driver.Apply(ev)
		default:
			l.drainOverflow()
			return
		}
	}
}

func (l *Loop) drainOverflow() {
	l.mu.Lock()
	pending := l.overflow
	l.overflow = nil
	l.mu.Unlock()

	for _, ev := range pending {
		l.driver.Apply(ev)
	}
}
