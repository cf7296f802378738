package core

import (
	"fmt"
	"testing"

	"github.com/anver/syncroom/internal/domain"
)

func userMsg(id, text string) domain.ChatMessage {
	return domain.ChatMessage{ID: id, Kind: domain.MessageUser, Text: text, Author: "u", ConnID: "c"}
}

func TestRoom_SetSlot(t *testing.T) {
	tests := []struct {
		name    string
		idx     int
		videoID domain.VideoID
		want    bool
	}{
		{name: "first slot", idx: 0, videoID: "dQw4w9WgXcQ", want: true},
		{name: "last slot", idx: 3, videoID: "dQw4w9WgXcQ", want: true},
		{name: "negative index", idx: -1, videoID: "dQw4w9WgXcQ", want: false},
		{name: "index out of range", idx: 4, videoID: "dQw4w9WgXcQ", want: false},
		{name: "empty video id", idx: 0, videoID: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := NewRoom("TEST")
			if got := room.SetSlot(tt.idx, tt.videoID); got != tt.want {
				t.Errorf("SetSlot(%d, %q) = %v, want %v", tt.idx, tt.videoID, got, tt.want)
			}
			if tt.want && room.Slots()[tt.idx] != tt.videoID {
				t.Errorf("slot %d = %q, want %q", tt.idx, room.Slots()[tt.idx], tt.videoID)
			}
		})
	}
}

func TestRoom_SetThenClearSlot(t *testing.T) {
	room := NewRoom("TEST")
	for idx := 0; idx < domain.SlotCount; idx++ {
		if !room.SetSlot(idx, "videoid01ab") {
			t.Fatalf("SetSlot(%d) failed", idx)
		}
		if !room.ClearSlot(idx) {
			t.Fatalf("ClearSlot(%d) failed", idx)
		}
		if got := room.Slots()[idx]; got != "" {
			t.Errorf("slot %d after clear = %q, want empty", idx, got)
		}
	}

	if room.ClearSlot(-1) || room.ClearSlot(domain.SlotCount) {
		t.Error("ClearSlot accepted an out-of-range index")
	}
}

func TestRoom_RecordHistory_Dedup(t *testing.T) {
	room := NewRoom("TEST")

	inserted, history := room.RecordHistory(domain.HistoryEntry{ID: "1", VideoID: "AbCdEfGhIjK", Title: "first"})
	if !inserted {
		t.Fatal("first RecordHistory() inserted = false, want true")
	}
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}

	// Same id differing only in case is a duplicate.
	inserted, history = room.RecordHistory(domain.HistoryEntry{ID: "2", VideoID: "abcdefghijk", Title: "dupe"})
	if inserted {
		t.Error("duplicate RecordHistory() inserted = true, want false")
	}
	if len(history) != 1 {
		t.Errorf("history length after duplicate = %d, want 1", len(history))
	}
	if history[0].ID != "1" {
		t.Errorf("surviving entry id = %q, want %q", history[0].ID, "1")
	}
}

func TestRoom_RecordHistory_Bound(t *testing.T) {
	room := NewRoom("TEST")

	for i := 0; i <= domain.HistoryLimit; i++ {
		e := domain.HistoryEntry{
			ID:      fmt.Sprintf("e%d", i),
			VideoID: domain.VideoID(fmt.Sprintf("video%06d", i)),
		}
		if inserted, _ := room.RecordHistory(e); !inserted {
			t.Fatalf("RecordHistory(%d) inserted = false, want true", i)
		}
	}

	history := room.History()
	if len(history) != domain.HistoryLimit {
		t.Fatalf("history length = %d, want %d", len(history), domain.HistoryLimit)
	}
	// Newest first; the very first entry has been evicted from the tail.
	if history[0].ID != fmt.Sprintf("e%d", domain.HistoryLimit) {
		t.Errorf("head entry id = %q, want %q", history[0].ID, fmt.Sprintf("e%d", domain.HistoryLimit))
	}
	if history[len(history)-1].ID != "e1" {
		t.Errorf("tail entry id = %q, want e1 (e0 evicted)", history[len(history)-1].ID)
	}
}

func TestRoom_RecordHistory_EmptyID(t *testing.T) {
	room := NewRoom("TEST")
	if inserted, _ := room.RecordHistory(domain.HistoryEntry{ID: "1", VideoID: ""}); inserted {
		t.Error("RecordHistory() with empty video id inserted = true, want false")
	}
}

func TestRoom_AppendChat(t *testing.T) {
	tests := []struct {
		name string
		msg  domain.ChatMessage
		want bool
	}{
		{name: "user message", msg: userMsg("1", "hello"), want: true},
		{name: "empty user message", msg: userMsg("2", ""), want: false},
		{name: "whitespace user message", msg: userMsg("3", "   \t"), want: false},
		{name: "system message", msg: domain.ChatMessage{ID: "4", Kind: domain.MessageSystem, Text: "x joined"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := NewRoom("TEST")
			ok, _ := room.AppendChat(tt.msg)
			if ok != tt.want {
				t.Errorf("AppendChat() = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestRoom_AppendChat_Bound(t *testing.T) {
	room := NewRoom("TEST")

	for i := 0; i <= domain.ChatLimit; i++ {
		msg := userMsg(fmt.Sprintf("m%d", i), fmt.Sprintf("message %d", i))
		if ok, _ := room.AppendChat(msg); !ok {
			t.Fatalf("AppendChat(%d) rejected", i)
		}
	}

	chat := room.Chat()
	if len(chat) != domain.ChatLimit {
		t.Fatalf("chat length = %d, want %d", len(chat), domain.ChatLimit)
	}
	// Oldest dropped from the head, newest intact, append order kept.
	if chat[0].ID != "m1" {
		t.Errorf("head message id = %q, want m1 (m0 evicted)", chat[0].ID)
	}
	if chat[len(chat)-1].ID != fmt.Sprintf("m%d", domain.ChatLimit) {
		t.Errorf("tail message id = %q, want m%d", chat[len(chat)-1].ID, domain.ChatLimit)
	}
}

func TestRoom_Presence_Clamp(t *testing.T) {
	room := NewRoom("TEST")

	const joins = 3
	for i := 0; i < joins; i++ {
		room.Join(domain.ConnID(fmt.Sprintf("c%d", i)))
	}
	if got := room.Count(); got != joins {
		t.Fatalf("Count() after joins = %d, want %d", got, joins)
	}

	// More leaves than joins must clamp at zero, never underflow.
	for i := 0; i < joins+2; i++ {
		if got := room.Leave(domain.ConnID(fmt.Sprintf("c%d", i))); got < 0 {
			t.Fatalf("Leave() returned negative count %d", got)
		}
	}
	if got := room.Count(); got != 0 {
		t.Errorf("Count() after extra leaves = %d, want 0", got)
	}
}

func TestRoom_Webcam(t *testing.T) {
	room := NewRoom("TEST")

	room.SetWebcam("a", true)
	room.SetWebcam("b", true)

	peers := room.WebcamPeers("b")
	if len(peers) != 1 || peers[0] != "a" {
		t.Errorf("WebcamPeers(b) = %v, want [a]", peers)
	}

	members := room.SetWebcam("a", false)
	if len(members) != 1 || members[0] != "b" {
		t.Errorf("membership after disable = %v, want [b]", members)
	}
}
