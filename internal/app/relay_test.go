package app

import (
	"testing"
	"time"

	"github.com/pion/webrtc/v4"
)

func sdpOffer() webrtc.SessionDescription {
	return webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: "v=0\r\n"}
}

func TestRelay_OfferToPeer(t *testing.T) {
	g := newGateway(time.Minute)
	a := connect(g, "a")
	b := connect(g, "b")
	c := connect(g, "c")
	a.reset()
	b.reset()
	c.reset()

	g.RelayOffer("a", "b", sdpOffer())

	offers := b.eventsOfType(t, "webrtc-offer")
	if len(offers) != 1 {
		t.Fatalf("target received %d offers, want 1", len(offers))
	}
	if offers[0]["from"] != "a" {
		t.Errorf("offer from = %q, want %q", offers[0]["from"], "a")
	}
	// Never room-broadcast.
	if len(a.eventsOfType(t, "webrtc-offer"))+len(c.eventsOfType(t, "webrtc-offer")) != 0 {
		t.Error("offer leaked beyond the addressed peer")
	}
}

func TestRelay_TargetGone(t *testing.T) {
	g := newGateway(time.Minute)
	a := connect(g, "a")
	connect(g, "b")
	g.Disconnect("b")
	a.reset()

	// Must be a silent drop: no panic, no error event to the sender.
	g.RelayOffer("a", "b", sdpOffer())
	g.RelayAnswer("a", "b", sdpOffer())
	g.RelayCandidate("a", "b", webrtc.ICECandidateInit{Candidate: "candidate:0"})

	if got := len(a.frames); got != 0 {
		t.Errorf("sender received %d events after relaying to a gone peer, want 0", got)
	}
}

func TestRelay_CrossRoomBlocked(t *testing.T) {
	g := newGateway(time.Minute)
	connect(g, "a")
	b := connect(g, "b")
	g.JoinRoom("b", "OTHER1")
	b.reset()

	g.RelayOffer("a", "b", sdpOffer())

	if got := len(b.eventsOfType(t, "webrtc-offer")); got != 0 {
		t.Errorf("offer crossed rooms, got %d events", got)
	}
}

func TestRelay_WebcamEnableFlow(t *testing.T) {
	g := newGateway(time.Minute)
	a := connect(g, "a")
	b := connect(g, "b")
	c := connect(g, "c")

	g.SetWebcamStatus("a", true)
	a.reset()
	b.reset()
	c.reset()

	g.SetWebcamStatus("b", true)

	// The enabler learns who is already on webcam, excluding itself.
	existing := b.eventsOfType(t, "existing-webcam-users")
	if len(existing) != 1 {
		t.Fatalf("enabler received %d existing-webcam-users events, want 1", len(existing))
	}
	users := existing[0]["users"].([]any)
	if len(users) != 1 || users[0] != "a" {
		t.Errorf("existing users = %v, want [a]", users)
	}

	// The rest of the room learns about the new peer; the enabler does not.
	for name, s := range map[string]*fakeSender{"a": a, "c": c} {
		status := s.eventsOfType(t, "peer-webcam-status")
		if len(status) != 1 {
			t.Fatalf("%s received %d peer-webcam-status events, want 1", name, len(status))
		}
		if status[0]["peerId"] != "b" || status[0]["enabled"] != true {
			t.Errorf("%s saw status %v, want peer b enabled", name, status[0])
		}
	}
	if len(b.eventsOfType(t, "peer-webcam-status")) != 0 {
		t.Error("enabler received its own peer-webcam-status")
	}
}

func TestRelay_WebcamDisableFlow(t *testing.T) {
	g := newGateway(time.Minute)
	a := connect(g, "a")
	b := connect(g, "b")
	g.SetWebcamStatus("a", true)
	a.reset()
	b.reset()

	g.SetWebcamStatus("a", false)

	status := b.eventsOfType(t, "peer-webcam-status")
	if len(status) != 1 || status[0]["enabled"] != false {
		t.Fatalf("roommate saw %v, want one disabled status", status)
	}

	room, _ := g.Store.Get("LOBBY")
	if peers := room.WebcamPeers(""); len(peers) != 0 {
		t.Errorf("webcam membership after disable = %v, want empty", peers)
	}
}
