package core

import (
	"strings"
	"sync"
	"time"

	"github.com/anver/syncroom/internal/domain"
)

// Room is the threadsafe in-memory state of one room: the four video
// slots, playlist history, chat log and presence bookkeeping. It never
// touches transport resources.
type Room struct {
	code      domain.RoomCode
	createdAt time.Time

	mu      sync.RWMutex
	slots   [domain.SlotCount]domain.VideoID
	history []domain.HistoryEntry
	chat    []domain.ChatMessage
	count   int
	webcam  map[domain.ConnID]struct{}
}

func NewRoom(code domain.RoomCode) *Room {
	return &Room{
		code:      code,
		createdAt: time.Now(),
		webcam:    make(map[domain.ConnID]struct{}),
	}
}

func (r *Room) Code() domain.RoomCode { return r.code }
func (r *Room) CreatedAt() time.Time  { return r.createdAt }

// Slots returns a copy of the slot array. Empty string means empty slot.
func (r *Room) Slots() [domain.SlotCount]domain.VideoID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.slots
}

// SetSlot places a video into the given slot. Returns false when the
// index is out of range or the id is empty; the slot is untouched then.
func (r *Room) SetSlot(idx int, id domain.VideoID) bool {
	if idx < 0 || idx >= domain.SlotCount || id == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[idx] = id
	return true
}

// ClearSlot empties the given slot. Returns false on a bad index.
func (r *Room) ClearSlot(idx int) bool {
	if idx < 0 || idx >= domain.SlotCount {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[idx] = ""
	return true
}

// History returns a copy of the playlist history, newest first.
func (r *Room) History() []domain.HistoryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.HistoryEntry(nil), r.history...)
}

// RecordHistory prepends an entry to the playlist history. Video ids
// are unique under case-insensitive comparison: a duplicate is a no-op
// and returns inserted=false with the unchanged list, so the caller
// must not re-broadcast. The list is trimmed to HistoryLimit from the
// tail (oldest entries).
func (r *Room) RecordHistory(e domain.HistoryEntry) (bool, []domain.HistoryEntry) {
	if e.VideoID == "" {
		return false, r.History()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, have := range r.history {
		if strings.EqualFold(string(have.VideoID), string(e.VideoID)) {
			return false, append([]domain.HistoryEntry(nil), r.history...)
		}
	}
	r.history = append([]domain.HistoryEntry{e}, r.history...)
	if len(r.history) > domain.HistoryLimit {
		r.history = r.history[:domain.HistoryLimit]
	}
	return true, append([]domain.HistoryEntry(nil), r.history...)
}

// Chat returns a copy of the chat log, oldest first.
func (r *Room) Chat() []domain.ChatMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.ChatMessage(nil), r.chat...)
}

// AppendChat appends a message to the chat log. User messages with
// empty trimmed text are rejected (no-op, ok=false); system messages
// always succeed. The log is trimmed to ChatLimit from the head.
func (r *Room) AppendChat(m domain.ChatMessage) (bool, []domain.ChatMessage) {
	if m.Kind == domain.MessageUser && strings.TrimSpace(m.Text) == "" {
		return false, r.Chat()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chat = append(r.chat, m)
	if len(r.chat) > domain.ChatLimit {
		r.chat = r.chat[len(r.chat)-domain.ChatLimit:]
	}
	return true, append([]domain.ChatMessage(nil), r.chat...)
}

// Count returns the number of connections currently in the room.
func (r *Room) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// Join increments presence and returns the new count.
func (r *Room) Join(domain.ConnID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	return r.count
}

// Leave decrements presence, clamped at zero. A double-leave must not
// underflow.
func (r *Room) Leave(domain.ConnID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.count > 0 {
		r.count--
	}
	return r.count
}

// SetWebcam updates webcam membership for the connection and returns
// the membership after the update.
func (r *Room) SetWebcam(id domain.ConnID, enabled bool) []domain.ConnID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if enabled {
		r.webcam[id] = struct{}{}
	} else {
		delete(r.webcam, id)
	}
	return r.webcamLocked("")
}

// WebcamPeers returns the current webcam members excluding the given
// connection. A newly enabling client uses this to know whom to offer.
func (r *Room) WebcamPeers(exclude domain.ConnID) []domain.ConnID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.webcamLocked(exclude)
}

func (r *Room) webcamLocked(exclude domain.ConnID) []domain.ConnID {
	out := make([]domain.ConnID, 0, len(r.webcam))
	for id := range r.webcam {
		if id == exclude {
			continue
		}
		out = append(out, id)
	}
	return out
}
