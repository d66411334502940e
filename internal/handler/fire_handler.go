package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/trigger"
)

// FireHandler receives the alarm delivery callback from the tasks
// service. The body is the payload registered with the alarm.
type FireHandler struct {
	dispatcher *trigger.Dispatcher
}

func NewFireHandler(dispatcher *trigger.Dispatcher) *FireHandler {
	return &FireHandler{
		dispatcher: dispatcher,
	}
}

type fireRequest struct {
	RequestCode     int    `json:"request_code" binding:"required"`
	RunID           string `json:"run_id"`
	ForcedMessageID string `json:"forced_message_id"`
}

func (h *FireHandler) HandleFire(c *gin.Context) {
	ctx := c.Request.Context()

	var req fireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fire payload"})
		return
	}

	slog.InfoContext(ctx, "alarm fired",
		slog.Int("request_code", req.RequestCode),
		slog.String("run_id", req.RunID),
		slog.Bool("forced", req.ForcedMessageID != ""),
	)

	event := trigger.Event{
		Kind:            trigger.KindAlarmFired,
		RequestCode:     req.RequestCode,
		RunID:           req.RunID,
		ForcedMessageID: req.ForcedMessageID,
	}

	if err := h.dispatcher.Dispatch(ctx, event); err != nil {
		slog.ErrorContext(ctx, "alarm fire handling failed",
			slog.Int("request_code", req.RequestCode),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delivery failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}
