package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/anver/syncroom/internal/domain"
)

const (
	writeWait = 5 * time.Second
	pongWait  = 60 * time.Second
)

// writePump owns the outbound side. On exit it closes the connection,
// which unblocks the read pump and triggers disconnect cleanup.
func (ctl *Controller) writePump(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(ctl.PingPeriod)
	defer ticker.Stop()
	defer c.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Str("module", "signal").Err(err).Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Str("module", "signal").Err(err).Msg("writePump write error")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump feeds inbound frames to the gateway. On exit the connection
// is fully disconnected so the room never leaks presence.
func (ctl *Controller) readPump(ctx context.Context, id domain.ConnID, c *wsConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("conn", string(id)).Msg("readPump closing")
		ctl.Gateway.Disconnect(id)
		c.Close()
	}()

	c.conn.SetReadLimit(ctl.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn().Str("module", "signal").Str("conn", string(id)).Err(err).Msg("readPump read error")
				}
				return
			}
			ctl.handleEvent(id, data)
		}
	}
}

// handleEvent dispatches one client frame by its type field. A bad or
// unknown frame is logged and dropped; nothing here is fatal.
func (ctl *Controller) handleEvent(id domain.ConnID, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Str("module", "signal").Err(err).Msg("bad json frame")
		return
	}

	switch env.Type {
	case "create-room":
		ctl.Gateway.CreateRoom(id)
	case "join-room":
		ctl.handleJoinRoom(id, data)
	case "add-video":
		ctl.handleAddVideo(id, data)
	case "remove-video":
		ctl.handleRemoveVideo(id, data)
	case "webrtc-offer":
		ctl.handleOffer(id, data)
	case "webrtc-answer":
		ctl.handleAnswer(id, data)
	case "webrtc-ice-candidate":
		ctl.handleCandidate(id, data)
	case "webcam-status":
		ctl.handleWebcamStatus(id, data)
	case "set-username":
		ctl.handleSetUsername(id, data)
	case "send-message":
		ctl.handleSendMessage(id, data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown event")
	}
}
