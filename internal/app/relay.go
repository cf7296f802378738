package app

import (
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/anver/syncroom/internal/domain"
)

// Signaling relay: offers, answers and ICE candidates are forwarded to
// a single named connection, never room-broadcast. A message addressed
// to a connection that is gone, or in a different room, is dropped
// without telling the sender. WebRTC negotiation is best-effort; the
// originating peer's own ICE failure handling is the failure path.

func (g *Gateway) RelayOffer(from, to domain.ConnID, offer webrtc.SessionDescription) {
	if !g.sameRoom(from, to) {
		return
	}
	g.sendTo(to, offerEvent{Type: "webrtc-offer", From: from, Offer: offer})
}

func (g *Gateway) RelayAnswer(from, to domain.ConnID, answer webrtc.SessionDescription) {
	if !g.sameRoom(from, to) {
		return
	}
	g.sendTo(to, answerEvent{Type: "webrtc-answer", From: from, Answer: answer})
}

func (g *Gateway) RelayCandidate(from, to domain.ConnID, cand webrtc.ICECandidateInit) {
	if !g.sameRoom(from, to) {
		return
	}
	g.sendTo(to, candidateEvent{Type: "webrtc-ice-candidate", From: from, Candidate: cand})
}

func (g *Gateway) sameRoom(from, to domain.ConnID) bool {
	fromRoom, ok := g.Registry.RoomOf(from)
	if !ok {
		return false
	}
	toRoom, ok := g.Registry.RoomOf(to)
	if !ok {
		log.Debug().Str("module", "app.relay").Str("to", string(to)).Msg("relay target gone")
		return false
	}
	return fromRoom == toRoom
}

// SetWebcamStatus updates webcam membership. On enable the caller gets
// the peers already on webcam (so it can initiate offers to each) and
// the rest of the room learns about the new peer; on disable the rest
// of the room is told to drop its side of the connection.
func (g *Gateway) SetWebcamStatus(id domain.ConnID, enabled bool) {
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

	if enabled {
		peers := room.WebcamPeers(id)
		room.SetWebcam(id, true)
		g.Registry.SetWebcam(id, true)
		g.sendTo(id, existingWebcamUsersEvent{Type: "existing-webcam-users", Users: peers})
	} else {
		room.SetWebcam(id, false)
		g.Registry.SetWebcam(id, false)
	}
	g.broadcastRoom(code, id, peerWebcamStatusEvent{Type: "peer-webcam-status", PeerID: id, Enabled: enabled})
}
