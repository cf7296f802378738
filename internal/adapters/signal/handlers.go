package signal

import (
	"encoding/json"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/anver/syncroom/internal/domain"
	"github.com/anver/syncroom/internal/video"
)

func (ctl *Controller) handleJoinRoom(id domain.ConnID, data []byte) {
	var p struct {
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Str("module", "signal").Err(err).Msg("bad join-room payload")
		return
	}
	ctl.Gateway.JoinRoom(id, domain.RoomCode(p.RoomID))
}

func (ctl *Controller) handleAddVideo(id domain.ConnID, data []byte) {
	var p struct {
		SlotIndex          int    `json:"slotIndex"`
		VideoID            string `json:"videoId"`
		Title              string `json:"title"`
		ReplaceFromHistory bool   `json:"replaceFromHistory"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Str("module", "signal").Err(err).Msg("bad add-video payload")
		return
	}
	// Pasted URLs are reduced to their video id here; anything the
	// extractor does not recognize passes through untouched, the core
	// does not validate the format.
	vid := domain.VideoID(p.VideoID)
	if extracted, ok := video.ExtractID(p.VideoID); ok {
		vid = extracted
	}
	ctl.Gateway.AddVideo(id, p.SlotIndex, vid, p.Title, p.ReplaceFromHistory)
}

func (ctl *Controller) handleRemoveVideo(id domain.ConnID, data []byte) {
	var p struct {
		SlotIndex int `json:"slotIndex"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Str("module", "signal").Err(err).Msg("bad remove-video payload")
		return
	}
	ctl.Gateway.RemoveVideo(id, p.SlotIndex)
}

func (ctl *Controller) handleOffer(id domain.ConnID, data []byte) {
	var p struct {
		To    string                    `json:"to"`
		Offer webrtc.SessionDescription `json:"offer"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Str("module", "signal").Err(err).Msg("bad webrtc-offer payload")
		return
	}
	ctl.Gateway.RelayOffer(id, domain.ConnID(p.To), p.Offer)
}

func (ctl *Controller) handleAnswer(id domain.ConnID, data []byte) {
	var p struct {
		To     string                    `json:"to"`
		Answer webrtc.SessionDescription `json:"answer"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Str("module", "signal").Err(err).Msg("bad webrtc-answer payload")
		return
	}
	ctl.Gateway.RelayAnswer(id, domain.ConnID(p.To), p.Answer)
}

func (ctl *Controller) handleCandidate(id domain.ConnID, data []byte) {
	var p struct {
		To        string                  `json:"to"`
		Candidate webrtc.ICECandidateInit `json:"candidate"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Str("module", "signal").Err(err).Msg("bad webrtc-ice-candidate payload")
		return
	}
	ctl.Gateway.RelayCandidate(id, domain.ConnID(p.To), p.Candidate)
}

func (ctl *Controller) handleWebcamStatus(id domain.ConnID, data []byte) {
	var p struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Str("module", "signal").Err(err).Msg("bad webcam-status payload")
		return
	}
	ctl.Gateway.SetWebcamStatus(id, p.Enabled)
}

func (ctl *Controller) handleSetUsername(id domain.ConnID, data []byte) {
	var p struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Str("module", "signal").Err(err).Msg("bad set-username payload")
		return
	}
	ctl.Gateway.SetUsername(id, p.Name)
}

func (ctl *Controller) handleSendMessage(id domain.ConnID, data []byte) {
	var p struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Str("module", "signal").Err(err).Msg("bad send-message payload")
		return
	}
	ctl.Gateway.SendMessage(id, p.Message)
}
