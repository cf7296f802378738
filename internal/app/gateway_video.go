package app

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/anver/syncroom/internal/domain"
)

// AddVideo places a video into a slot and broadcasts the change.
// Unless the placement is a replay from history, it is also recorded in
// the playlist history; history-updated goes out only when the record
// actually inserted. Invalid input is dropped silently.
func (g *Gateway) AddVideo(id domain.ConnID, slotIndex int, videoID domain.VideoID, title string, replayFromHistory bool) {
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

	if !room.SetSlot(slotIndex, videoID) {
		log.Warn().Str("module", "app.gateway").Str("conn", string(id)).Int("slot", slotIndex).Msg("add-video rejected")
		return
	}

	if !replayFromHistory {
		entry := domain.HistoryEntry{
			ID:      uuid.NewString(),
			VideoID: videoID,
			Title:   title,
			AddedAt: time.Now(),
		}
		if entry.Title == "" {
			entry.Title = string(videoID)
		}
		if inserted, history := room.RecordHistory(entry); inserted {
			g.broadcastRoom(code, "", historyEvent{Type: "history-updated", History: history})
		}
	}

	g.broadcastRoom(code, "", videoUpdatedEvent{Type: "video-updated", SlotIndex: slotIndex, VideoID: videoID})
}

// RemoveVideo clears a slot and broadcasts the removal.
func (g *Gateway) RemoveVideo(id domain.ConnID, slotIndex int) {
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

	if !room.ClearSlot(slotIndex) {
		log.Warn().Str("module", "app.gateway").Str("conn", string(id)).Int("slot", slotIndex).Msg("remove-video rejected")
		return
	}
	g.broadcastRoom(code, "", videoRemovedEvent{Type: "video-removed", SlotIndex: slotIndex})
}

// SetUsername stores the trimmed display name on the connection. The
// name only shows up in future chat messages; nothing is broadcast.
func (g *Gateway) SetUsername(id domain.ConnID, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	g.Registry.UpdateUsername(id, name)
}

// SendMessage appends a user chat message and broadcasts it to the room.
func (g *Gateway) SendMessage(id domain.ConnID, text string) {
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

	msg := domain.ChatMessage{
		ID:     uuid.NewString(),
		Kind:   domain.MessageUser,
		Text:   strings.TrimSpace(text),
		Author: g.Registry.Username(id),
		ConnID: id,
		SentAt: time.Now(),
	}
	ok, _ = room.AppendChat(msg)
	if !ok {
		return
	}
	g.broadcastRoom(code, "", chatMessageEvent{Type: "receive-message", Message: msg})
}
