package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/anver/syncroom/internal/core"
	"github.com/anver/syncroom/internal/domain"
)

type connEntry struct {
	Room     domain.RoomCode
	Sender   core.Sender
	Username string
	Webcam   bool
	Cancel   context.CancelFunc
}

// Registry tracks live connections: their transport sender, bound room,
// display name and webcam flag. Everything else in the system refers to
// connections by id through here and must tolerate the id being gone.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ConnID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.ConnID]*connEntry)}
}

func (r *Registry) Bind(id domain.ConnID, s core.Sender, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = &connEntry{
		Sender:   s,
		Username: id.ShortName(),
		Cancel:   cancel,
	}
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("bound connection")
}

func (r *Registry) Unbind(id domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("unbound connection")
}

// Sender returns the transport endpoint for a live connection.
func (r *Registry) Sender(id domain.ConnID) (core.Sender, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok {
		return nil, false
	}
	return e.Sender, true
}

// RoomOf returns the room a connection is bound to, if any.
func (r *Registry) RoomOf(id domain.ConnID) (domain.RoomCode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok || e.Room == "" {
		return "", false
	}
	return e.Room, true
}

func (r *Registry) UpdateRoom(id domain.ConnID, code domain.RoomCode) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[id]
	if !ok {
		return false
	}
	e.Room = code
	return true
}

func (r *Registry) UpdateUsername(id domain.ConnID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[id]; ok {
		e.Username = name
		log.Info().Str("module", "app.registry").Str("conn", string(id)).Str("username", name).Msg("updated username")
	}
}

// Username returns the display name, falling back to the derived short
// form when the connection is already gone.
func (r *Registry) Username(id domain.ConnID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.conns[id]; ok {
		return e.Username
	}
	return id.ShortName()
}

func (r *Registry) SetWebcam(id domain.ConnID, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[id]; ok {
		e.Webcam = enabled
	}
}

type connSnap struct {
	ID     domain.ConnID
	Sender core.Sender
}

// MembersOfRoom snapshots the senders currently bound to a room.
func (r *Registry) MembersOfRoom(code domain.RoomCode) []connSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]connSnap, 0, len(r.conns))
	for id, e := range r.conns {
		if e.Room == code {
			out = append(out, connSnap{ID: id, Sender: e.Sender})
		}
	}
	return out
}

// Cancel tears down the transport session for a connection.
func (r *Registry) Cancel(id domain.ConnID) bool {
	r.mu.RLock()
	e, ok := r.conns[id]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	return true
}
