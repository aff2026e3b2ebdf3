package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/bhaviksharmawork/Quizzer/internal/app"
	"github.com/bhaviksharmawork/Quizzer/internal/domain"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSHandler upgrades connections and dispatches inbound events to the
// session coordinator.
type WSHandler struct {
	coordinator *app.Coordinator
	hub         *Hub
	upgrader    websocket.Upgrader
}

func NewWSHandler(coordinator *app.Coordinator, hub *Hub) *WSHandler {
	return &WSHandler{
		coordinator: coordinator,
		hub:         hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type joinRoomPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type getQuizPayload struct {
	RoomID string `json:"roomId"`
}

type saveQuizPayload struct {
	RoomID   string           `json:"roomId"`
	QuizData domain.QuizDraft `json:"quizData"`
}

type submitScorePayload struct {
	RoomID         string `json:"roomId"`
	Username       string `json:"username"`
	Score          int    `json:"score"`
	CorrectAnswers int    `json:"correctAnswers"`
	TotalQuestions int    `json:"totalQuestions"`
	TotalTime      int    `json:"totalTime"`
}

// ServeWS runs the read loop for one connection. Each connection gets a fresh
// connection id; membership tied to it is torn down when the read loop exits.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}

	connectionID := uuid.NewString()
	h.hub.Register(connectionID, conn)
	defer h.coordinator.Disconnect(connectionID)
	defer h.hub.Unregister(connectionID)

	ctx := r.Context()
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "joinRoom":
			var p joinRoomPayload
			if err := json.Unmarshal(inbound.Payload, &p); err != nil {
				h.hub.Send(connectionID, app.EventError, "invalid joinRoom payload")
				continue
			}
			h.coordinator.JoinRoom(ctx, connectionID, p.RoomID, p.Username)
		case "getQuiz":
			var p getQuizPayload
			if err := json.Unmarshal(inbound.Payload, &p); err != nil {
				h.hub.Send(connectionID, app.EventError, "invalid getQuiz payload")
				continue
			}
			h.coordinator.GetQuiz(ctx, connectionID, p.RoomID)
		case "saveQuiz":
			var p saveQuizPayload
			if err := json.Unmarshal(inbound.Payload, &p); err != nil {
				h.hub.Send(connectionID, app.EventError, "invalid saveQuiz payload")
				continue
			}
			h.coordinator.SaveQuiz(ctx, connectionID, p.RoomID, p.QuizData)
		case "submitScore":
			var p submitScorePayload
			if err := json.Unmarshal(inbound.Payload, &p); err != nil {
				h.hub.Send(connectionID, app.EventError, "invalid submitScore payload")
				continue
			}
			h.coordinator.SubmitScore(ctx, connectionID, p.RoomID, p.Username, p.Score, p.CorrectAnswers, p.TotalQuestions, p.TotalTime)
		default:
			h.hub.Send(connectionID, app.EventError, "unsupported message type")
		}
	}
}
