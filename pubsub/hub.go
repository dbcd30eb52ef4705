// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pubsub

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

const (
	sendBuffer   = 16
	writeTimeout = 5 * time.Second
)

// Client is one subscriber connected via websocket
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans live result updates out to every connected subscriber
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	// onCount is called from Run with the subscriber count after every change
	onCount func(n int)
}

func NewHub(onCount func(n int)) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		onCount:    onCount,
	}
}

// Run serves registrations and broadcasts until ctx is done.
// On return every subscriber is disconnected.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.count()
			return

		case c := <-h.register:
			h.clients[c] = true
			h.count()

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.count()
			}

		case m := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- m:

				default:
					// Subscriber is not keeping up
					slog.Warn("dropping slow live subscriber")
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.count()
		}
	}
}

func (h *Hub) count() {
	if h.onCount != nil {
		h.onCount(len(h.clients))
	}
}

// Broadcast sends data to every subscriber. It returns immediately once the hub has stopped.
func (h *Hub) Broadcast(data []byte) {
	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}

// ServeWS upgrades the request and streams updates until the subscriber
// disconnects or the hub stops. snapshot, when non-nil, is called once the
// subscriber is registered and its result is written before any broadcast,
// so no update between connecting and the snapshot is lost.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, snapshot func() []byte) error {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		return err
	}

	c := &Client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return nil
	}

	var first []byte
	if snapshot != nil {
		first = snapshot()
	}

	// Subscribers only listen; CloseRead handles control frames and
	// cancels ctx once the peer goes away
	ctx := conn.CloseRead(r.Context())
	c.writePump(ctx, first)
	return nil
}

// writePump sends first, when non-nil, then messages from the hub
func (c *Client) writePump(ctx context.Context, first []byte) {
	defer func() {
		c.hub.remove(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	if first != nil && !c.write(ctx, first) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case m, ok := <-c.send:
			if !ok {
				return
			}
			if !c.write(ctx, m) {
				return
			}
		}
	}
}

func (c *Client) write(ctx context.Context, m []byte) bool {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := c.conn.Write(wctx, websocket.MessageText, m); err != nil {
		slog.Info("live subscriber write failed", "error", err)
		return false
	}
	return true
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
