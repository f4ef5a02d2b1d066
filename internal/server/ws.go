package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev; restrict in production
	},
}

// WebSocket message types from client.
const (
	wsMsgReview = "review"
)

// WebSocket message types to client.
const (
	wsMsgProgress = "progress"
	wsMsgResult   = "result"
	wsMsgError    = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsProgress reports a pipeline stage transition.
type wsProgress struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read: %v", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sendWSError(conn, "invalid message format")
			continue
		}

		switch msg.Type {
		case wsMsgReview:
			s.handleWSReview(r.Context(), conn, msg.Data)
		default:
			sendWSError(conn, "unknown message type: "+msg.Type)
		}
	}
}

func (s *Server) handleWSReview(ctx context.Context, conn *websocket.Conn, data json.RawMessage) {
	var req reviewRequest
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid review data")
		return
	}
	if msg := req.validate(); msg != "" {
		sendWSError(conn, msg)
		return
	}

	progress := func(stage, message string) {
		sendWSMessage(conn, wsMsgProgress, wsProgress{Stage: stage, Message: message})
	}

	rec, err := s.runFn(ctx, req.options(), progress)
	if err != nil {
		sendWSError(conn, err.Error())
		return
	}
	sendWSMessage(conn, wsMsgResult, rec)
}

func sendWSMessage(conn *websocket.Conn, msgType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("ws marshal: %v", err)
		return
	}
	msg := wsMessage{Type: msgType, Data: raw}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("ws write: %v", err)
	}
}

func sendWSError(conn *websocket.Conn, errMsg string) {
	sendWSMessage(conn, wsMsgError, map[string]string{"message": errMsg})
}
