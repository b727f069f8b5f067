package events

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Event struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload"`
	At      time.Time              `json:"at"`
}

// Hub pushes dashboard events to connected users. One connection per
// user; a newer connection replaces the previous one.
type Hub struct {
	connections map[int64]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[userID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[userID] = conn
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[userID]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, userID)
	}
}

// Publish delivers an event to the user if connected. Best effort: a
// write failure drops the connection and the event.
func (h *Hub) Publish(userID int64, ev Event) bool {
	h.mutex.RLock()
	conn, exists := h.connections[userID]
	h.mutex.RUnlock()

	if !exists || conn == nil {
		return false
	}

	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	if err := conn.WriteJSON(ev); err != nil {
		h.Unregister(userID)
		return false
	}

	return true
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, userID)
	}
}

// SurveyResponseReceived implements the survey module's event sink.
func (h *Hub) SurveyResponseReceived(userID, surveyID, responseID int64, averageRating float64, outcome string) {
	h.Publish(userID, Event{
		Type: "survey_response_received",
		Payload: map[string]interface{}{
			"survey_id":      surveyID,
			"response_id":    responseID,
			"average_rating": averageRating,
			"outcome":        outcome,
		},
	})
}

// AutoReplyCompleted implements the autoreply module's event sink.
func (h *Hub) AutoReplyCompleted(userID int64, processed, total int) {
	h.Publish(userID, Event{
		Type: "auto_reply_completed",
		Payload: map[string]interface{}{
			"processed": processed,
			"total":     total,
		},
	})
}
