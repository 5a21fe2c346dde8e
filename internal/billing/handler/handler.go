package handler

import (
	"errors"
	"net/http"

	"ari-server/internal/apierrors"
	"ari-server/internal/billing/processor"
	"ari-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.BillingProcessor
	logger    *observability.Logger
}

func New(processor processor.BillingProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// SaveBillingRequest is the admin billing configuration payload.
type SaveBillingRequest struct {
	Type        string  `json:"type"`
	UpfrontFee  float64 `json:"upfrontFee"`
	UpfrontPaid bool    `json:"upfrontPaid"`
	PerLeadRate float64 `json:"perLeadRate"`
	Notes       string  `json:"notes"`
}

// HandleGetBilling returns the client's active billing record.
func (h Handler) HandleGetBilling(c *gin.Context) {
	ctx := c.Request.Context()

	record, err := h.processor.GetBilling(ctx, c.Param("id"))
	if err != nil {
		h.handleError(c, err, "Failed to fetch billing")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "billing": record})
}

// HandleSaveBilling updates the active billing record or creates one.
func (h Handler) HandleSaveBilling(c *gin.Context) {
	ctx := c.Request.Context()

	var req SaveBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	err := h.processor.SaveBilling(ctx, c.Param("id"), processor.SaveBillingParams{
		Type:        req.Type,
		UpfrontFee:  req.UpfrontFee,
		UpfrontPaid: req.UpfrontPaid,
		PerLeadRate: req.PerLeadRate,
		Notes:       req.Notes,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to save billing", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Billing configuration saved"})
}

// HandleGetInvoice returns the client's current unbilled balance.
func (h Handler) HandleGetInvoice(c *gin.Context) {
	ctx := c.Request.Context()

	invoice, err := h.processor.CalculateInvoice(ctx, c.Param("id"))
	if err != nil {
		h.handleError(c, err, "Failed to calculate invoice")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "invoice": invoice})
}

func (h Handler) handleError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, processor.ErrBillingNotFound):
		apierrors.NotFound(c, "No billing record found")
	default:
		apierrors.InternalError(c, message, err)
	}
}
