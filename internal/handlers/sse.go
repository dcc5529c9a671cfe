package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/teamtempo/engage-backend/internal/requestdata"
	"github.com/teamtempo/engage-backend/internal/sse"
)

type SSEHandler struct {
	hub *sse.Hub
}

func NewSSEHandler(hub *sse.Hub) *SSEHandler {
	return &SSEHandler{hub: hub}
}

// Stream holds the connection open and pushes chart invalidation events for
// the caller's company until the client disconnects.
func (h *SSEHandler) Stream(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd.CompanyID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "caller has no company membership"})
		return
	}

	client := h.hub.NewClient(rd.UserID)
	h.hub.Subscribe(client, sse.CompanyChannel(rd.CompanyID))
	defer h.hub.Remove(client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case msg, ok := <-client.Outbound:
			if !ok {
				return false
			}
			payload, err := json.Marshal(msg.Data)
			if err != nil {
				return true
			}
			c.SSEvent(string(msg.Event), string(payload))
			return true
		}
	})
}
