package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/trigger"
)

// ScheduleHandler exposes the planning trigger paths over HTTP. The
// handlers only translate requests into trigger events; the dispatcher
// table owns the actual control flow.
type ScheduleHandler struct {
	dispatcher *trigger.Dispatcher
}

func NewScheduleHandler(dispatcher *trigger.Dispatcher) *ScheduleHandler {
	return &ScheduleHandler{
		dispatcher: dispatcher,
	}
}

// HandleSync triggers a periodic-sync planning pass. An optional `now`
// query (RFC3339) plans against a virtual clock.
func (h *ScheduleHandler) HandleSync(c *gin.Context) {
	ctx := c.Request.Context()

	event := trigger.Event{Kind: trigger.KindPeriodicSync}

	if nowStr := c.Query("now"); nowStr != "" {
		parsed, err := time.Parse(time.RFC3339, nowStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid now time format, expected RFC3339"})
			return
		}
		event.Now = parsed
		slog.InfoContext(ctx, "using virtual time",
			slog.Time("virtual_now", parsed),
		)
	}

	if err := h.dispatcher.Dispatch(ctx, event); err != nil {
		slog.ErrorContext(ctx, "periodic sync failed",
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "scheduling failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "scheduled"})
}

// HandleBoot triggers a boot-time planning pass, re-establishing the
// alarm schedule after a restart.
func (h *ScheduleHandler) HandleBoot(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.dispatcher.Dispatch(ctx, trigger.Event{Kind: trigger.KindBoot}); err != nil {
		slog.ErrorContext(ctx, "boot scheduling failed",
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "scheduling failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "scheduled"})
}
