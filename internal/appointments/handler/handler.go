package handler

import (
	"errors"
	"net/http"

	"ari-server/internal/apierrors"
	"ari-server/internal/appointments/processor"
	"ari-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.AppointmentProcessor
	logger    *observability.Logger
}

func New(processor processor.AppointmentProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// HandleListAppointments returns the appointments of the clientId query
// param.
func (h Handler) HandleListAppointments(c *gin.Context) {
	ctx := c.Request.Context()

	clientID := c.Query("clientId")
	if clientID == "" {
		apierrors.BadRequest(c, "Client ID required")
		return
	}

	appointments, err := h.processor.ListAppointments(ctx, clientID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch appointments", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appointments": appointments})
}

// HandleUpdateAppointment applies a partial update keyed by
// appointmentId.
func (h Handler) HandleUpdateAppointment(c *gin.Context) {
	ctx := c.Request.Context()

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	appointmentID, _ := body["appointmentId"].(string)
	if appointmentID == "" {
		apierrors.BadRequest(c, "Appointment ID is required")
		return
	}
	delete(body, "appointmentId")

	if err := h.processor.UpdateAppointment(ctx, appointmentID, body); err != nil {
		if errors.Is(err, processor.ErrAppointmentNotFound) {
			apierrors.NotFound(c, "Appointment not found")
			return
		}
		apierrors.InternalError(c, "Failed to update appointment", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
