package handler

import (
	"errors"
	"net/http"

	"ari-server/internal/apierrors"
	"ari-server/internal/leads/processor"
	"ari-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.LeadProcessor
	logger    *observability.Logger
}

func New(processor processor.LeadProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// CaptureLeadRequest is a public form submission payload.
type CaptureLeadRequest struct {
	CampaignID string                 `json:"campaignId"`
	FormData   map[string]string      `json:"formData"`
	Tracking   map[string]interface{} `json:"tracking"`
}

// AddNoteRequest appends a note to a lead.
type AddNoteRequest struct {
	LeadID string `json:"leadId"`
	Note   string `json:"note"`
}

// HandleCaptureLead ingests a submission from a public campaign landing
// page. No auth: the campaign's active status is the gate.
func (h Handler) HandleCaptureLead(c *gin.Context) {
	ctx := c.Request.Context()

	var req CaptureLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing required data")
		return
	}
	if req.CampaignID == "" || len(req.FormData) == 0 {
		apierrors.BadRequest(c, "Missing required data")
		return
	}

	lead, err := h.processor.CaptureLead(ctx, processor.CaptureLeadParams{
		CampaignID:  req.CampaignID,
		FormData:    req.FormData,
		Tracking:    req.Tracking,
		RequesterIP: observability.RequesterIP(c),
	})
	if err != nil {
		if errors.Is(err, processor.ErrCampaignNotActive) {
			apierrors.BadRequest(c, "Campaign is not active")
			return
		}
		apierrors.InternalError(c, "Failed to capture lead", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"leadId":  lead.ID,
		"message": "Lead captured successfully",
	})
}

// HandleListLeads returns the leads belonging to the clientId query param.
func (h Handler) HandleListLeads(c *gin.Context) {
	ctx := c.Request.Context()

	clientID := c.Query("clientId")
	if clientID == "" {
		apierrors.BadRequest(c, "Client ID is required")
		return
	}

	leads, err := h.processor.ListLeads(ctx, clientID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch leads", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "leads": leads})
}

// HandleUpdateLead applies a partial update; every body key except leadId
// is written through to the lead document.
func (h Handler) HandleUpdateLead(c *gin.Context) {
	ctx := c.Request.Context()

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	leadID, _ := body["leadId"].(string)
	if leadID == "" {
		apierrors.BadRequest(c, "Lead ID is required")
		return
	}
	delete(body, "leadId")

	if err := h.processor.UpdateLead(ctx, leadID, body); err != nil {
		h.handleError(c, err, "Failed to update lead")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleAddNote appends a note to a lead's note log.
func (h Handler) HandleAddNote(c *gin.Context) {
	ctx := c.Request.Context()

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}
	if req.LeadID == "" || req.Note == "" {
		apierrors.BadRequest(c, "Lead ID and note are required")
		return
	}

	if err := h.processor.AddNote(ctx, req.LeadID, req.Note); err != nil {
		h.handleError(c, err, "Failed to add note")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h Handler) handleError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, processor.ErrLeadNotFound):
		apierrors.NotFound(c, "Lead not found")
	default:
		apierrors.InternalError(c, message, err)
	}
}
