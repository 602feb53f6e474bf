// Package ws keeps track of connected chat clients and delivers
// real-time pushes to them.
package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// conn is the slice of *websocket.Conn the registry needs. Tests plug
// in a recording fake.
type conn interface {
	WriteJSON(v any) error
	Close() error
}

// Registry maps a user ID to its open websocket connection. A user has
// at most one live connection; a newer one replaces the older.
type Registry struct {
	mu    sync.Mutex
	conns map[string]conn
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]conn)}
}

func (r *Registry) Register(userID string, c conn) {
	r.mu.Lock()
	prev := r.conns[userID]
	r.conns[userID] = c
	r.mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
}

// Unregister drops the connection only if it is still the registered
// one, so a reconnect racing a disconnect never loses the fresh conn.
func (r *Registry) Unregister(userID string, c conn) {
	r.mu.Lock()
	if r.conns[userID] == c {
		delete(r.conns, userID)
	}
	r.mu.Unlock()
	_ = c.Close()
}

// Push writes v as JSON to the user's connection. It reports whether a
// delivery was attempted; offline users simply miss the push and catch
// up from the stored conversation.
func (r *Registry) Push(userID string, v any) bool {
	r.mu.Lock()
	c := r.conns[userID]
	r.mu.Unlock()
	if c == nil {
		return false
	}
	if err := c.WriteJSON(v); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("ws_push_failed")
		r.Unregister(userID, c)
		return false
	}
	return true
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Serve upgrades the request and holds the connection open until the
// client goes away. Incoming frames are drained and discarded; the
// socket is push-only.
func (r *Registry) Serve(w http.ResponseWriter, req *http.Request, userID string) error {
	c, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		return err
	}
	r.Register(userID, c)
	defer r.Unregister(userID, c)
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return nil
		}
	}
}
