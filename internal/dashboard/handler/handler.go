package handler

import (
	"net/http"

	"ari-server/internal/apierrors"
	"ari-server/internal/dashboard/processor"
	"ari-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.DashboardProcessor
	logger    *observability.Logger
}

func New(processor processor.DashboardProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// HandleGetStats returns the dashboard summary for the clientId query
// param.
func (h Handler) HandleGetStats(c *gin.Context) {
	ctx := c.Request.Context()

	clientID := c.Query("clientId")
	if clientID == "" {
		apierrors.BadRequest(c, "Client ID required")
		return
	}

	stats, err := h.processor.GetStats(ctx, clientID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch dashboard stats", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
