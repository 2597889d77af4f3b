package handlers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"dealcanvas/internal/logger"
	"dealcanvas/internal/services"
)

// DefaultHeartbeat is how often an idle event stream sends a keep-alive.
const DefaultHeartbeat = 25 * time.Second

// EventsHandler streams canvas change notifications over server-sent events.
type EventsHandler struct {
	workspaceService services.WorkspaceServicer
	heartbeat        time.Duration
}

// NewEventsHandler creates a new EventsHandler. A non-positive heartbeat uses
// DefaultHeartbeat.
func NewEventsHandler(workspaceService services.WorkspaceServicer, heartbeat time.Duration) *EventsHandler {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &EventsHandler{workspaceService: workspaceService, heartbeat: heartbeat}
}

// Stream handles the change stream of the current workspace
// @Summary     Stream canvas events
// @Description Server-sent events, one per change. EventSource clients may pass the token as ?token=.
// @Tags        events
// @Produce     text/event-stream
// @Security    BearerAuth
// @Param       token query string false "Workspace token"
// @Success     200 {object} events.Event "Event stream"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Workspace not found"
// @Router      /events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	workspaceID, err := getWorkspaceID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ch, cancel, err := h.workspaceService.Subscribe(workspaceID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer cancel()

	log := logger.Component("events").With("workspace_id", workspaceID)
	log.Debugw("event stream opened")

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case e, ok := <-ch:
			if !ok {
				// Workspace deleted or evicted.
				c.SSEvent("closed", gin.H{"workspace_id": workspaceID})
				return false
			}
			c.SSEvent(string(e.Type), e)
			return true
		case <-ticker.C:
			c.SSEvent("heartbeat", gin.H{"time": time.Now().UTC()})
			return true
		}
	})

	log.Debugw("event stream closed")
}
