package handler

import (
	"errors"
	"net/http"

	"ari-server/internal/apierrors"
	"ari-server/internal/observability"
	"ari-server/internal/receptionist/processor"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.ReceptionistProcessor
	logger    *observability.Logger
}

func New(processor processor.ReceptionistProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// ActivateRequest provisions a voice assistant for a client.
type ActivateRequest struct {
	ClientID      string                 `json:"clientId"`
	Config        map[string]interface{} `json:"config"`
	PurchasePhone bool                   `json:"purchasePhone"`
	AreaCode      string                 `json:"areaCode"`
}

// SaveKnowledgeBaseRequest stores a client's knowledge base.
type SaveKnowledgeBaseRequest struct {
	ClientID      string                 `json:"clientId"`
	KnowledgeBase map[string]interface{} `json:"knowledgeBase"`
}

// PurchasePhoneRequest buys a number for a client's assistant.
type PurchasePhoneRequest struct {
	ClientID string `json:"clientId"`
	AreaCode string `json:"areaCode"`
}

// HandleGetConfig serves the receptionist settings for the path client.
func (h Handler) HandleGetConfig(c *gin.Context) {
	ctx := c.Request.Context()

	cfg, err := h.processor.GetConfig(ctx, c.Param("id"))
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch configuration", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "config": cfg})
}

// HandleSaveConfig replaces the receptionist settings for the path client.
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

// HandleActivate provisions an assistant (and optionally a phone number)
// for the client.
func (h Handler) HandleActivate(c *gin.Context) {
	ctx := c.Request.Context()

	var req ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}
	if req.ClientID == "" || req.Config == nil {
		apierrors.BadRequest(c, "Client ID and config are required")
		return
	}

	result, err := h.processor.Activate(ctx, processor.ActivateParams{
		ClientID:      req.ClientID,
		Config:        req.Config,
		PurchasePhone: req.PurchasePhone,
		AreaCode:      req.AreaCode,
	})
	if err != nil {
		h.handleError(c, err, "Failed to activate AI receptionist")
		return
	}

	response := gin.H{
		"success": true,
		"assistant": gin.H{
			"id":   result.Assistant.ID,
			"name": result.Assistant.Name,
		},
		"phoneNumber": nil,
	}
	if result.PhoneNumber != nil {
		response["phoneNumber"] = gin.H{
			"number": result.PhoneNumber.Number,
			"id":     result.PhoneNumber.ID,
		}
	}
	c.JSON(http.StatusOK, response)
}

// HandleGetKnowledgeBase returns the knowledge base for the clientId
// query param.
func (h Handler) HandleGetKnowledgeBase(c *gin.Context) {
	ctx := c.Request.Context()

	clientID := c.Query("clientId")
	if clientID == "" {
		apierrors.BadRequest(c, "Client ID is required")
		return
	}

	kb, err := h.processor.GetKnowledgeBase(ctx, clientID)
	if err != nil {
		h.handleError(c, err, "Failed to fetch knowledge base")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "knowledgeBase": kb})
}

// HandleSaveKnowledgeBase stores the knowledge base on the client record.
func (h Handler) HandleSaveKnowledgeBase(c *gin.Context) {
	ctx := c.Request.Context()

	var req SaveKnowledgeBaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}
	if req.ClientID == "" || req.KnowledgeBase == nil {
		apierrors.BadRequest(c, "Client ID and knowledge base are required")
		return
	}

	if err := h.processor.SaveKnowledgeBase(ctx, req.ClientID, req.KnowledgeBase); err != nil {
		h.handleError(c, err, "Failed to save knowledge base")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Knowledge base saved successfully"})
}

// HandleListPhoneNumbers returns purchasable numbers.
func (h Handler) HandleListPhoneNumbers(c *gin.Context) {
	ctx := c.Request.Context()

	numbers, err := h.processor.ListPhoneNumbers(ctx, c.Query("areaCode"))
	if err != nil {
		apierrors.InternalError(c, "Failed to list phone numbers", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "numbers": numbers})
}

// HandlePurchasePhoneNumber buys a number for the client's assistant.
func (h Handler) HandlePurchasePhoneNumber(c *gin.Context) {
	ctx := c.Request.Context()

	var req PurchasePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}
	if req.ClientID == "" {
		apierrors.BadRequest(c, "Client ID is required")
		return
	}

	number, err := h.processor.PurchasePhoneNumber(ctx, req.ClientID, req.AreaCode)
	if err != nil {
		h.handleError(c, err, "Failed to purchase phone number")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"phoneNumber": gin.H{
			"number": number.Number,
			"id":     number.ID,
		},
	})
}

func (h Handler) handleError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, processor.ErrClientNotFound):
		apierrors.NotFound(c, "Client not found")
	case errors.Is(err, processor.ErrNotConfigured):
		apierrors.BadRequest(c, "AI Receptionist not configured yet")
	default:
		apierrors.InternalError(c, message, err)
	}
}
