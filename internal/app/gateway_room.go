package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/anver/syncroom/internal/core"
	"github.com/anver/syncroom/internal/domain"
)

// Connect registers a fresh connection and implicitly binds it to the
// default room. An explicit join-room or create-room later re-binds it;
// a connection is in exactly one room at any time.
func (g *Gateway) Connect(id domain.ConnID, s core.Sender, cancel context.CancelFunc) {
	g.Registry.Bind(id, s, cancel)
	g.bind(id, g.Store.DefaultCode())
}

// JoinRoom binds the connection to the given room. An empty code falls
// back to the default room silently.
func (g *Gateway) JoinRoom(id domain.ConnID, code domain.RoomCode) {
	if code == "" {
		code = g.Store.DefaultCode()
	}
	g.leave(id)
	g.bind(id, code)
	g.sendTo(id, roomJoinedEvent{Type: "room-joined", RoomID: code})
}

// CreateRoom generates a fresh room code and binds the connection to
// it. On the rare code collision the caller simply lands in the
// existing room.
func (g *Gateway) CreateRoom(id domain.ConnID) {
	code := g.Store.GenerateCode()
	g.leave(id)
	g.bind(id, code)
	g.sendTo(id, roomCreatedEvent{Type: "room-created", RoomID: code})
}

// Disconnect runs full room cleanup and forgets the connection.
func (g *Gateway) Disconnect(id domain.ConnID) {
	g.leave(id)
	g.Registry.Unbind(id)
}

// bind performs the join side effects: presence, state push to the
// joiner, joined system message and count broadcast to the room.
func (g *Gateway) bind(id domain.ConnID, code domain.RoomCode) {
	l := g.roomLock(code)
	l.Lock()
	defer l.Unlock()

	room, count := g.Store.Join(code, id)
	g.Registry.UpdateRoom(id, code)
	log.Info().Str("module", "app.gateway").Str("conn", string(id)).Str("room", string(code)).Int("count", count).Msg("joined room")

	g.sendTo(id, initialStateEvent{Type: "initial-state", Slots: room.Slots()})
	g.sendTo(id, historyEvent{Type: "playlist-history", History: room.History()})
	g.sendTo(id, chatHistoryEvent{Type: "chat-history", Messages: room.Chat()})

	joined := g.systemMessage(g.Registry.Username(id) + " joined the room")
	if ok, _ := room.AppendChat(joined); ok {
		g.broadcastRoom(code, "", chatMessageEvent{Type: "user-joined-chat", Message: joined})
	}
	g.broadcastRoom(code, "", userCountEvent{Type: "user-count", Count: count})
}

// leave reverses a binding: peer-disconnected for signaling cleanup,
// webcam removal, left system message, presence decrement and, when the
// room empties, deferred destruction. No-op for unbound connections.
func (g *Gateway) leave(id domain.ConnID) {
	code, ok := g.Registry.RoomOf(id)
	if !ok {
		return
	}
	room, ok := g.Store.Get(code)
	if !ok {
		return
	}
	l := g.roomLock(code)
	l.Lock()
	defer l.Unlock()

	g.Registry.UpdateRoom(id, "")

	g.broadcastRoom(code, id, peerDisconnectedEvent{Type: "peer-disconnected", PeerID: id})
	room.SetWebcam(id, false)
	g.Registry.SetWebcam(id, false)

	left := g.systemMessage(g.Registry.Username(id) + " left the room")
	if ok, _ := room.AppendChat(left); ok {
		g.broadcastRoom(code, id, chatMessageEvent{Type: "user-left-chat", Message: left})
	}

	count := room.Leave(id)
	g.broadcastRoom(code, id, userCountEvent{Type: "user-count", Count: count})
	log.Info().Str("module", "app.gateway").Str("conn", string(id)).Str("room", string(code)).Int("count", count).Msg("left room")

	if count == 0 && code != g.Store.DefaultCode() {
		g.scheduleReap(code)
	}
}

// scheduleReap arms the empty-room grace timer. Only the room code is
// captured; the live count is re-read inside Store.Delete at fire time,
// so a reconnect during the window wins over the timer.
func (g *Gateway) scheduleReap(code domain.RoomCode) {
	time.AfterFunc(g.EmptyRoomTTL, func() {
		if g.Store.Delete(code) {
			g.dropRoomLock(code)
			log.Info().Str("module", "app.gateway").Str("room", string(code)).Msg("reaped empty room")
		}
	})
}

func (g *Gateway) systemMessage(text string) domain.ChatMessage {
	return domain.ChatMessage{
		ID:     uuid.NewString(),
		Kind:   domain.MessageSystem,
		Text:   text,
		SentAt: time.Now(),
	}
}
