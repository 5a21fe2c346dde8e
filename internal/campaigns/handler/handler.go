package handler

import (
	"context"
	"errors"
	"net/http"

	"ari-server/internal/apierrors"
	"ari-server/internal/campaigns/processor"
	"ari-server/internal/observability"
	"ari-server/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.CampaignProcessor
	logger    *observability.Logger
}

func New(processor processor.CampaignProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// CreateCampaignRequest is the body for creating a campaign.
type CreateCampaignRequest struct {
	ClientID       string                       `json:"clientId"`
	Name           string                       `json:"name"`
	Description    string                       `json:"description"`
	Type           string                       `json:"type"`
	TargetAudience map[string]interface{}       `json:"targetAudience"`
	LeadMagnet     map[string]interface{}       `json:"leadMagnet"`
	LandingPage    map[string]interface{}       `json:"landingPage"`
	ThankYouPage   map[string]interface{}       `json:"thankYouPage"`
	Form           *store.CampaignForm          `json:"form"`
	AutoResponder  *store.CampaignAutoResponder `json:"autoResponder"`
	Settings       *store.CampaignSettings      `json:"settings"`
}

// HandleListCampaigns returns the campaigns of the clientId query param.
func (h Handler) HandleListCampaigns(c *gin.Context) {
	ctx := c.Request.Context()

	clientID := c.Query("clientId")
	if clientID == "" {
		apierrors.BadRequest(c, "Client ID is required")
		return
	}

	campaigns, err := h.processor.ListCampaigns(ctx, clientID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch campaigns", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "campaigns": campaigns})
}

// HandleCreateCampaign creates a new draft campaign.
func (h Handler) HandleCreateCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}
	if req.ClientID == "" || req.Name == "" {
		apierrors.BadRequest(c, "Client ID and name are required")
		return
	}

	campaign, err := h.processor.CreateCampaign(ctx, store.CreateCampaignParams{
		ClientID:       req.ClientID,
		Name:           req.Name,
		Description:    req.Description,
		Type:           req.Type,
		TargetAudience: req.TargetAudience,
		LeadMagnet:     req.LeadMagnet,
		LandingPage:    req.LandingPage,
		ThankYouPage:   req.ThankYouPage,
		Form:           req.Form,
		AutoResponder:  req.AutoResponder,
		Settings:       req.Settings,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to create campaign", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "campaign": campaign})
}

// HandleGetCampaign returns one campaign by path id.
func (h Handler) HandleGetCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	campaign, err := h.processor.GetCampaign(ctx, c.Param("id"))
	if err != nil {
		h.handleError(c, err, "Failed to fetch campaign")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "campaign": campaign})
}

// HandleGetPublicCampaign serves the public-facing slice of a campaign
// for its landing page and counts the view.
func (h Handler) HandleGetPublicCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	campaign, err := h.processor.GetCampaign(ctx, c.Param("id"))
	if err != nil {
		h.handleError(c, err, "Failed to fetch campaign")
		return
	}
	if campaign.Status != "active" {
		apierrors.NotFound(c, "Campaign not found")
		return
	}

	h.processor.RecordView(ctx, campaign.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"campaign": gin.H{
			"id":           campaign.ID,
			"name":         campaign.Name,
			"status":       campaign.Status,
			"landingPage":  campaign.LandingPage,
			"thankYouPage": campaign.ThankYouPage,
			"form":         campaign.Form,
		},
	})
}

// HandleUpdateCampaign applies a partial update from the campaign builder.
func (h Handler) HandleUpdateCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	if err := h.processor.UpdateCampaign(ctx, c.Param("id"), fields); err != nil {
		h.handleError(c, err, "Failed to update campaign")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Campaign updated successfully"})
}

// HandleDeleteCampaign removes a campaign.
func (h Handler) HandleDeleteCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.processor.DeleteCampaign(ctx, c.Param("id")); err != nil {
		h.handleError(c, err, "Failed to delete campaign")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Campaign deleted successfully"})
}

// HandlePublishCampaign moves a draft or paused campaign to active.
func (h Handler) HandlePublishCampaign(c *gin.Context) {
	h.handleTransition(c, h.processor.PublishCampaign)
}

// HandlePauseCampaign moves an active campaign to paused.
func (h Handler) HandlePauseCampaign(c *gin.Context) {
	h.handleTransition(c, h.processor.PauseCampaign)
}

// HandleCompleteCampaign closes out a campaign.
func (h Handler) HandleCompleteCampaign(c *gin.Context) {
	h.handleTransition(c, h.processor.CompleteCampaign)
}

func (h Handler) handleTransition(c *gin.Context, transition func(ctx context.Context, id string) (store.Campaign, error)) {
	ctx := c.Request.Context()

	campaign, err := transition(ctx, c.Param("id"))
	if err != nil {
		h.handleError(c, err, "Failed to update campaign status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "campaign": campaign})
}

func (h Handler) handleError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, processor.ErrCampaignNotFound):
		apierrors.NotFound(c, "Campaign not found")
	case errors.Is(err, processor.ErrInvalidTransition):
		apierrors.BadRequest(c, "Invalid campaign status transition")
	default:
		apierrors.InternalError(c, message, err)
	}
}
