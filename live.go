package main

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // same-origin enforcement belongs to the reverse proxy
}

// calculateLive recomputes results as the form changes, one reply per frame.
// GET /api/calculate/live (WebSocket). Each client text frame is a
// calculateRequest; the reply is either full results or {"error": "..."}.
// Replies come back in frame order — the engine is a handful of arithmetic
// operations, so there is nothing to gain from computing out of order.
// Discarding stale replies when the user keeps typing is the client's job.
func (h *Handler) calculateLive(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	h.metrics.LiveSessions.Inc()
	defer h.metrics.LiveSessions.Dec()

	// Read loop ends on client close or error. A frame that fails validation
	// gets an error reply but keeps the session open — the form is mid-edit
	// most of the time.
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := conn.WriteJSON(h.liveReply(data)); err != nil {
			return
		}
	}
}

// liveReply computes the reply frame for one form snapshot.
func (h *Handler) liveReply(data []byte) interface{} {
	var req calculateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.metrics.CalculationsTotal.WithLabelValues("invalid").Inc()
		return gin.H{"error": "invalid message"}
	}

	results, _, err := h.runCalculation(req)
	if err != nil {
		return gin.H{"error": err.Error()}
	}
	return results
}
