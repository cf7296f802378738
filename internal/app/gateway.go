package app

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anver/syncroom/internal/core"
	"github.com/anver/syncroom/internal/domain"
)

// Gateway drives the connection lifecycle: room binding, event fan-out
// and disconnect cleanup. All room-state mutations funnel through it.
type Gateway struct {
	Store    *core.Store
	Registry *Registry

	// EmptyRoomTTL is the grace delay before an emptied room is
	// destroyed. A reconnect inside the window keeps the room alive.
	EmptyRoomTTL time.Duration

	mu        sync.Mutex
	roomLocks map[domain.RoomCode]*sync.Mutex
}

// roomLock serializes mutate-then-broadcast sequences per room, so
// every member observes the room's events in the order they were
// applied. Locks for different rooms are independent.
func (g *Gateway) roomLock(code domain.RoomCode) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.roomLocks == nil {
		g.roomLocks = make(map[domain.RoomCode]*sync.Mutex)
	}
	l, ok := g.roomLocks[code]
	if !ok {
		l = &sync.Mutex{}
		g.roomLocks[code] = l
	}
	return l
}

func (g *Gateway) dropRoomLock(code domain.RoomCode) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.roomLocks, code)
}

func (g *Gateway) sendTo(id domain.ConnID, v any) {
	s, ok := g.Registry.Sender(id)
	if !ok {
		return
	}
	f, err := marshalFrame(v)
	if err != nil {
		return
	}
	if err := s.TrySend(f); err != nil {
		log.Warn().Str("module", "app.gateway").Str("conn", string(id)).Err(err).Msg("send dropped")
	}
}

// broadcastRoom fans one event out to every connection bound to a room,
// optionally excluding one. Frames are marshaled once.
func (g *Gateway) broadcastRoom(code domain.RoomCode, except domain.ConnID, v any) {
	f, err := marshalFrame(v)
	if err != nil {
		return
	}
	for _, snap := range g.Registry.MembersOfRoom(code) {
		if snap.ID == except {
			continue
		}
		if err := snap.Sender.TrySend(f); err != nil {
			// A consumer that cannot keep up gets its session torn
			// down; the read pump then runs normal disconnect cleanup.
			log.Warn().Str("module", "app.gateway").Str("conn", string(snap.ID)).Err(err).Msg("broadcast dropped, cancelling session")
			g.Registry.Cancel(snap.ID)
		}
	}
}

func marshalFrame(v any) (core.Frame, error) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Str("module", "app.gateway").Err(err).Msg("marshal frame")
		return nil, err
	}
	return core.Frame(b), nil
}
