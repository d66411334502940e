package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/service/ledger"
)

// HistoryHandler exposes the delivery history and its per-entry
// annotation mutations.
type HistoryHandler struct {
	ledgerService *ledger.Service
}

func NewHistoryHandler(ledgerService *ledger.Service) *HistoryHandler {
	return &HistoryHandler{
		ledgerService: ledgerService,
	}
}

func (h *HistoryHandler) HandleGetHistory(c *gin.Context) {
	ctx := c.Request.Context()

	entries, err := h.ledgerService.History(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load history",
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

type annotationRequest struct {
	Reaction *string `json:"reaction"`
	Pinned   *bool   `json:"pinned"`
}

// HandleUpdateAnnotation partially updates an entry's reaction and pin
// state. An unknown ID is accepted silently, matching the ledger.
func (h *HistoryHandler) HandleUpdateAnnotation(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid history entry ID"})
		return
	}

	var req annotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid annotation payload"})
		return
	}

	if err := h.ledgerService.UpdateAnnotation(ctx, id, req.Reaction, req.Pinned); err != nil {
		slog.ErrorContext(ctx, "failed to update annotation",
			slog.Int64("entry_id", id),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update annotation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

type noteRequest struct {
	Text string `json:"text"`
}

// HandleAddNote appends a note to an entry. Blank text and unknown IDs
// are silent no-ops.
func (h *HistoryHandler) HandleAddNote(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid history entry ID"})
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note payload"})
		return
	}

	if err := h.ledgerService.AddNote(ctx, id, req.Text); err != nil {
		slog.ErrorContext(ctx, "failed to add note",
			slog.Int64("entry_id", id),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "added"})
}
