package handler

import (
	"context"
	"errors"
	"net/http"

	"ari-server/internal/apierrors"
	"ari-server/internal/auth/processor"
	"ari-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.AuthProcessor
	logger    *observability.Logger
}

func New(processor processor.AuthProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// LoginRequest is the body for both login endpoints.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GenerateCredentialsRequest identifies the client to reissue a login for.
type GenerateCredentialsRequest struct {
	ClientID string `json:"clientId" binding:"required"`
}

// HandleAdminLogin authenticates a platform operator.
func (h Handler) HandleAdminLogin(c *gin.Context) {
	h.handleLogin(c, h.processor.LoginAdmin)
}

// HandleClientLogin authenticates a client dashboard user.
func (h Handler) HandleClientLogin(c *gin.Context) {
	h.handleLogin(c, h.processor.LoginClient)
}

// HandleGenerateCredentials reissues a client's login password. The
// plaintext appears in this response only.
func (h Handler) HandleGenerateCredentials(c *gin.Context) {
	ctx := c.Request.Context()

	var req GenerateCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	creds, err := h.processor.RegenerateClientCredentials(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, processor.ErrClientNotFound) {
			apierrors.NotFound(c, "Client not found")
			return
		}
		apierrors.InternalError(c, "Failed to generate credentials", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "credentials": creds})
}

func (h Handler) handleLogin(c *gin.Context, login func(ctx context.Context, email, password string) (processor.LoginResult, error)) {
	ctx := c.Request.Context()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	result, err := login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, processor.ErrInvalidCredentials) {
			apierrors.Unauthorized(c, "Invalid email or password")
			return
		}
		apierrors.InternalError(c, "Login failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   result.Token,
		"user":    result.User,
	})
}
