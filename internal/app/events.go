package app

import (
	"github.com/pion/webrtc/v4"

	"github.com/anver/syncroom/internal/domain"
)

// Server→client events. Every frame on the wire is one of these,
// discriminated by the "type" field.

type roomCreatedEvent struct {
	Type   string          `json:"type"`
	RoomID domain.RoomCode `json:"roomId"`
}

type roomJoinedEvent struct {
	Type   string          `json:"type"`
	RoomID domain.RoomCode `json:"roomId"`
}

type initialStateEvent struct {
	Type  string                           `json:"type"`
	Slots [domain.SlotCount]domain.VideoID `json:"slots"`
}

type historyEvent struct {
	Type    string                `json:"type"` // "playlist-history" or "history-updated"
	History []domain.HistoryEntry `json:"history"`
}

type chatHistoryEvent struct {
	Type     string               `json:"type"`
	Messages []domain.ChatMessage `json:"messages"`
}

type videoUpdatedEvent struct {
	Type      string         `json:"type"`
	SlotIndex int            `json:"slotIndex"`
	VideoID   domain.VideoID `json:"videoId"`
}

type videoRemovedEvent struct {
	Type      string `json:"type"`
	SlotIndex int    `json:"slotIndex"`
}

type userCountEvent struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type chatMessageEvent struct {
	Type    string             `json:"type"` // "user-joined-chat", "user-left-chat" or "receive-message"
	Message domain.ChatMessage `json:"message"`
}

type offerEvent struct {
	Type  string                    `json:"type"`
	From  domain.ConnID             `json:"from"`
	Offer webrtc.SessionDescription `json:"offer"`
}

type answerEvent struct {
	Type   string                    `json:"type"`
	From   domain.ConnID             `json:"from"`
	Answer webrtc.SessionDescription `json:"answer"`
}

type candidateEvent struct {
	Type      string                  `json:"type"`
	From      domain.ConnID           `json:"from"`
	Candidate webrtc.ICECandidateInit `json:"candidate"`
}

type existingWebcamUsersEvent struct {
	Type  string          `json:"type"`
	Users []domain.ConnID `json:"users"`
}

type peerWebcamStatusEvent struct {
	Type    string        `json:"type"`
	PeerID  domain.ConnID `json:"peerId"`
	Enabled bool          `json:"enabled"`
}

type peerDisconnectedEvent struct {
	Type   string        `json:"type"`
	PeerID domain.ConnID `json:"peerId"`
}
