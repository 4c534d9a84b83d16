package httpapi

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsReadLimit = 4096
	wsWriteWait = 10 * time.Second
)

// wsError is the reply to a rejected websocket action.
type wsError struct {
	Error string `json:"error"`
}

// handleWebsocket steps a session once per text message. Each message is an
// action; the reply is the new state or {"error": ...}.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.pathSession(r)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "session", sess.id, "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsReadLimit)

	s.logger.Info("websocket connected", "session", sess.id, "remote", r.RemoteAddr)
	defer s.logger.Info("websocket closed", "session", sess.id)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read failed", "session", sess.id, "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		sess.touch(s.sessions.now())

		var reply any
		action, err := decodeAction(bytes.NewReader(data))
		if err == nil {
			var out stepOutcome
			out, err = s.step(sess, action)
			reply = out.state
		}
		if err != nil {
			reply = wsError{Error: err.Error()}
		}

		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(reply); err != nil {
			s.logger.Warn("websocket write failed", "session", sess.id, "error", err)
			return
		}
	}
}
