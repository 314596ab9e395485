package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/plantforge/plantforge/pkg/core/plant"
	"github.com/plantforge/plantforge/pkg/errors"
	"github.com/plantforge/plantforge/pkg/observability"
)

const (
	liveReadLimit    = 64 << 10
	liveWriteTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The gateway in front of the service enforces origin policy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveError is the reply sent when a snapshot cannot be laid out.
type liveError struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// handleLive upgrades to a WebSocket and answers every parameter snapshot
// with its scene, one reply per message in arrival order. A bad snapshot
// gets an error reply and the stream continues.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.loggerFrom(r.Context()).Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(liveReadLimit)

	ctx := r.Context()
	logger := s.loggerFrom(ctx)
	hooks := observability.HTTP()
	logger.Debug("live session opened")

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("live session read ended", "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		reply, lerr := s.liveReply(r, data)
		hooks.OnLiveMessage(ctx, lerr)

		_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			logger.Debug("live session write failed", "error", err)
			return
		}
	}
}

// liveReply lays out one snapshot and encodes the reply. The returned
// error is the layout failure, if any; the reply always carries a body.
func (s *Server) liveReply(r *http.Request, data []byte) ([]byte, error) {
	var raw plant.RawParams
	if err := json.Unmarshal(data, &raw); err != nil {
		lerr := errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed parameter snapshot")
		return encodeLiveError(lerr), lerr
	}

	sc, err := s.cfg.Runner.Layout(r.Context(), s.pipelineOptions(raw))
	if err != nil {
		return encodeLiveError(err), err
	}
	out, err := json.Marshal(sc)
	if err != nil {
		return encodeLiveError(err), err
	}
	return out, nil
}

func encodeLiveError(err error) []byte {
	out, _ := json.Marshal(liveError{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
	return out
}
