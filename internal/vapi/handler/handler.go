package handler

import (
	"net/http"

	"ari-server/internal/observability"
	"ari-server/internal/vapi/processor"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.WebhookProcessor
	logger    *observability.Logger
}

func New(processor processor.WebhookProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// HandleWebhook receives all inbound events from the voice platform and
// dispatches on the message type. Function-call results are returned raw
// because the platform reads the body as the tool's return value; every
// other type answers with the standard envelope.
func (h Handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var payload processor.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Error(ctx, "failed to parse webhook payload", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process webhook"})
		return
	}

	msg := payload.Message
	ctx = observability.WithFields(ctx, observability.Field{Key: "message_type", Value: msg.Type})
	h.logger.Info(ctx, "received voice platform webhook")

	switch msg.Type {
	case "end-of-call-report":
		// Failures are logged but the platform still gets an ack so it
		// does not retry and double-write the transcript.
		if err := h.processor.HandleEndOfCallReport(ctx, msg); err != nil {
			h.logger.Error(ctx, "end of call report processing failed", err)
		}

	case "function-call":
		result := h.processor.HandleFunctionCall(ctx, msg)
		c.JSON(http.StatusOK, result)
		return

	case "transcript":
		if err := h.processor.HandleTranscript(ctx, msg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process webhook"})
			return
		}

	default:
		h.logger.Info(ctx, "unhandled webhook message type")
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
