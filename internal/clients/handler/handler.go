package handler

import (
	"errors"
	"net/http"

	"ari-server/internal/apierrors"
	"ari-server/internal/clients/processor"
	"ari-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.ClientProcessor
	logger    *observability.Logger
}

func New(processor processor.ClientProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// CreateClientRequest is the admin onboarding payload.
type CreateClientRequest struct {
	BusinessName string `json:"businessName" binding:"required"`
	ContactName  string `json:"contactName"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Industry     string `json:"industry"`
	Website      string `json:"website"`
	Address      string `json:"address"`
	ContactTitle string `json:"contactTitle"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Notes        string `json:"notes"`
	Services     struct {
		AIReceptionist     bool `json:"aiReceptionist"`
		BookingAccelerator bool `json:"bookingAccelerator"`
		LeadGen            bool `json:"leadGen"`
	} `json:"services"`
}

// HandleListClients returns all clients.
func (h Handler) HandleListClients(c *gin.Context) {
	ctx := c.Request.Context()

	clients, err := h.processor.ListClients(ctx)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch clients", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "clients": clients})
}

// HandleCreateClient onboards a new client. The generated password is
// included in this response only.
func (h Handler) HandleCreateClient(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	client, password, err := h.processor.CreateClient(ctx, processor.CreateClientParams{
		BusinessName:       req.BusinessName,
		ContactName:        req.ContactName,
		Email:              req.Email,
		Phone:              req.Phone,
		Industry:           req.Industry,
		Website:            req.Website,
		Address:            req.Address,
		ContactTitle:       req.ContactTitle,
		ContactEmail:       req.ContactEmail,
		ContactPhone:       req.ContactPhone,
		Notes:              req.Notes,
		AIReceptionist:     req.Services.AIReceptionist,
		BookingAccelerator: req.Services.BookingAccelerator,
		LeadGen:            req.Services.LeadGen,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to create client", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"client":            client,
		"temporaryPassword": password,
	})
}

// HandleGetClient returns one client by path id.
func (h Handler) HandleGetClient(c *gin.Context) {
	ctx := c.Request.Context()

	client, err := h.processor.GetClient(ctx, c.Param("id"))
	if err != nil {
		h.handleError(c, err, "Failed to fetch client")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "client": client})
}

// HandleUpdateClient merges the body fields into the client document.
func (h Handler) HandleUpdateClient(c *gin.Context) {
	ctx := c.Request.Context()

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	client, err := h.processor.UpdateClient(ctx, c.Param("id"), fields)
	if err != nil {
		h.handleError(c, err, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "client": client})
}

// HandleDeleteClient removes a client account.
func (h Handler) HandleDeleteClient(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.processor.DeleteClient(ctx, c.Param("id")); err != nil {
		h.handleError(c, err, "Failed to delete client")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h Handler) handleError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, processor.ErrClientNotFound):
		apierrors.NotFound(c, "Client not found")
	default:
		apierrors.InternalError(c, message, err)
	}
}
