// Package remote bridges a browser page to the headless frame loop over a
// WebSocket: DOM events come in, display lists go out.
package remote

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/younwookim/webgames/internal/application/frame"
)

const (
	// DefaultReadTimeout drops a page that answers neither messages nor pings
	DefaultReadTimeout = 60 * time.Second

	writeTimeout = 5 * time.Second
	sendQueue    = 8
)

// Sink accepts events for the loop goroutine
type Sink interface {
	Post(ev frame.Event) bool
}

// Bridge is an http.Handler upgrading requests to WebSocket connections
type Bridge struct {
	sink        Sink
	readLimit   int64
	readTimeout time.Duration
	logger      *log.Logger
	upgrader    websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	ws          *websocket.Conn
	send        chan []byte
	readTimeout time.Duration
}

// NewBridge creates a bridge posting decoded events to sink
func NewBridge(sink Sink, readLimit int64, logger *log.Logger) *Bridge {
	if readLimit <= 0 {
		readLimit = 4096
	}
	return &Bridge{
		sink:        sink,
		readLimit:   readLimit,
		readTimeout: DefaultReadTimeout,
		logger:      logger.WithPrefix("bridge"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// SetReadTimeout changes how long a silent page is kept. Pings go out at
// nine tenths of it. Connections opened earlier keep their timeout.
func (b *Bridge) SetReadTimeout(d time.Duration) {
	if d > 0 {
		b.readTimeout = d
	}
}

// ServeHTTP upgrades the connection and reads events until the page leaves
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	c := &client{ws: ws, send: make(chan []byte, sendQueue), readTimeout: b.readTimeout}
	b.add(c)
	b.logger.Info("page connected", "remote", r.RemoteAddr)

	go c.writePump()
	b.readPump(c)

	b.remove(c)
	// keys held on a page that went away must not stay pressed
	b.sink.Post(frame.Event{Kind: frame.EventBlur})
	b.logger.Info("page disconnected", "remote", r.RemoteAddr)
}

func (b *Bridge) readPump(c *client) {
	defer c.ws.Close()
	c.ws.SetReadLimit(b.readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.readTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.readTimeout))
	})

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(c.readTimeout))

		ev, err := DecodeMessage(payload)
		if err != nil {
			b.logger.Debug("skipping message", "err", err)
			continue
		}
		if !b.sink.Post(ev) {
			b.logger.Warn("loop queue full", "event", ev.Kind)
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.readTimeout * 9 / 10)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				_ = c.ws.Close()
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.ws.Close()
				return
			}
		}
	}
}

// Broadcast queues msg for every connected page. A page whose queue is full
// misses this message.
func (b *Bridge) Broadcast(msg []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}

// Clients returns the number of connected pages
func (b *Bridge) Clients() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

func (b *Bridge) add(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[c] = struct{}{}
}

func (b *Bridge) remove(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.clients, c)
	close(c.send)
}
