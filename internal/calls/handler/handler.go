package handler

import (
	"net/http"

	"ari-server/internal/apierrors"
	"ari-server/internal/calls/processor"
	"ari-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.CallProcessor
	logger    *observability.Logger
}

func New(processor processor.CallProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// HandleListCalls returns the call history of the clientId query param.
func (h Handler) HandleListCalls(c *gin.Context) {
	ctx := c.Request.Context()

	clientID := c.Query("clientId")
	if clientID == "" {
		apierrors.BadRequest(c, "Client ID required")
		return
	}

	calls, err := h.processor.ListCalls(ctx, clientID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch calls", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "calls": calls})
}
