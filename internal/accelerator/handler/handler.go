package handler

import (
	"net/http"

	"ari-server/internal/accelerator/processor"
	"ari-server/internal/apierrors"
	"ari-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.AcceleratorProcessor
	logger    *observability.Logger
}

func New(processor processor.AcceleratorProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// HandleGetConfig serves the booking accelerator settings for the path
// client.
func (h Handler) HandleGetConfig(c *gin.Context) {
	ctx := c.Request.Context()

	cfg, err := h.processor.GetConfig(ctx, c.Param("id"))
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch configuration", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "config": cfg})
}

// HandleSaveConfig replaces the booking accelerator settings for the
// path client.
func (h Handler) HandleSaveConfig(c *gin.Context) {
	ctx := c.Request.Context()

	var cfg map[string]interface{}
	if err := c.ShouldBindJSON(&cfg); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	saved, err := h.processor.SaveConfig(ctx, c.Param("id"), cfg)
	if err != nil {
		apierrors.InternalError(c, "Failed to save configuration", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "config": saved})
}
