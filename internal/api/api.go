package api

import (
	"net/http"

	acceleratorHandler "ari-server/internal/accelerator/handler"
	appointmentHandler "ari-server/internal/appointments/handler"
	authHandler "ari-server/internal/auth/handler"
	billingHandler "ari-server/internal/billing/handler"
	callHandler "ari-server/internal/calls/handler"
	campaignHandler "ari-server/internal/campaigns/handler"
	clientHandler "ari-server/internal/clients/handler"
	dashboardHandler "ari-server/internal/dashboard/handler"
	leadHandler "ari-server/internal/leads/handler"
	receptionistHandler "ari-server/internal/receptionist/handler"
	vapiHandler "ari-server/internal/vapi/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router              *gin.RouterGroup
	authHandler         authHandler.Handler
	clientHandler       clientHandler.Handler
	receptionistHandler receptionistHandler.Handler
	acceleratorHandler  acceleratorHandler.Handler
	campaignHandler     campaignHandler.Handler
	leadHandler         leadHandler.Handler
	appointmentHandler  appointmentHandler.Handler
	callHandler         callHandler.Handler
	dashboardHandler    dashboardHandler.Handler
	billingHandler      billingHandler.Handler
	vapiHandler         vapiHandler.Handler
}

func New(
	router *gin.RouterGroup,
	authHandler authHandler.Handler,
	clientHandler clientHandler.Handler,
	receptionistHandler receptionistHandler.Handler,
	acceleratorHandler acceleratorHandler.Handler,
	campaignHandler campaignHandler.Handler,
	leadHandler leadHandler.Handler,
	appointmentHandler appointmentHandler.Handler,
	callHandler callHandler.Handler,
	dashboardHandler dashboardHandler.Handler,
	billingHandler billingHandler.Handler,
	vapiHandler vapiHandler.Handler,
) API {
	return API{
		router:              router,
		authHandler:         authHandler,
		clientHandler:       clientHandler,
		receptionistHandler: receptionistHandler,
		acceleratorHandler:  acceleratorHandler,
		campaignHandler:     campaignHandler,
		leadHandler:         leadHandler,
		appointmentHandler:  appointmentHandler,
		callHandler:         callHandler,
		dashboardHandler:    dashboardHandler,
		billingHandler:      billingHandler,
		vapiHandler:         vapiHandler,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.POST("/admin/login", a.authHandler.HandleAdminLogin)
		authGroup.POST("/client/login", a.authHandler.HandleClientLogin)
		authGroup.POST("/admin/generate-credentials", a.authHandler.HandleGenerateCredentials)
	}
	{
		clientsGroup := apiGroup.Group("/clients")
		clientsGroup.GET("", a.clientHandler.HandleListClients)
		clientsGroup.POST("", a.clientHandler.HandleCreateClient)
		clientsGroup.GET("/:id", a.clientHandler.HandleGetClient)
		clientsGroup.PUT("/:id", a.clientHandler.HandleUpdateClient)
		clientsGroup.DELETE("/:id", a.clientHandler.HandleDeleteClient)
		clientsGroup.GET("/:id/ai-receptionist", a.receptionistHandler.HandleGetConfig)
		clientsGroup.PUT("/:id/ai-receptionist", a.receptionistHandler.HandleSaveConfig)
		clientsGroup.GET("/:id/booking-accelerator", a.acceleratorHandler.HandleGetConfig)
		clientsGroup.PUT("/:id/booking-accelerator", a.acceleratorHandler.HandleSaveConfig)
	}
	{
		adminGroup := apiGroup.Group("/admin")
		adminGroup.GET("/billing/:id", a.billingHandler.HandleGetBilling)
		adminGroup.POST("/billing/:id", a.billingHandler.HandleSaveBilling)
		adminGroup.GET("/billing/:id/invoice", a.billingHandler.HandleGetInvoice)
	}
	{
		clientGroup := apiGroup.Group("/client")
		clientGroup.GET("/dashboard", a.dashboardHandler.HandleGetStats)
		clientGroup.GET("/calls", a.callHandler.HandleListCalls)
		clientGroup.GET("/leads", a.leadHandler.HandleListLeads)
		clientGroup.PUT("/leads", a.leadHandler.HandleUpdateLead)
		clientGroup.POST("/leads", a.leadHandler.HandleAddNote)
		clientGroup.GET("/appointments", a.appointmentHandler.HandleListAppointments)
		clientGroup.PUT("/appointments", a.appointmentHandler.HandleUpdateAppointment)
		clientGroup.GET("/lead-gen/campaigns", a.campaignHandler.HandleListCampaigns)
		clientGroup.POST("/lead-gen/campaigns", a.campaignHandler.HandleCreateCampaign)
		clientGroup.GET("/lead-gen/campaigns/:id", a.campaignHandler.HandleGetCampaign)
		clientGroup.PUT("/lead-gen/campaigns/:id", a.campaignHandler.HandleUpdateCampaign)
		clientGroup.DELETE("/lead-gen/campaigns/:id", a.campaignHandler.HandleDeleteCampaign)
		clientGroup.POST("/lead-gen/campaigns/:id/publish", a.campaignHandler.HandlePublishCampaign)
		clientGroup.POST("/lead-gen/campaigns/:id/pause", a.campaignHandler.HandlePauseCampaign)
		clientGroup.POST("/lead-gen/campaigns/:id/complete", a.campaignHandler.HandleCompleteCampaign)
		clientGroup.GET("/knowledge-base", a.receptionistHandler.HandleGetKnowledgeBase)
		clientGroup.POST("/knowledge-base", a.receptionistHandler.HandleSaveKnowledgeBase)
		clientGroup.POST("/ai-receptionist/activate", a.receptionistHandler.HandleActivate)
		clientGroup.GET("/phone-number", a.receptionistHandler.HandleListPhoneNumbers)
		clientGroup.POST("/phone-number", a.receptionistHandler.HandlePurchasePhoneNumber)
	}
	{
		publicGroup := apiGroup.Group("/public")
		publicGroup.GET("/campaigns/:id", a.campaignHandler.HandleGetPublicCampaign)
		publicGroup.POST("/leads/capture", a.leadHandler.HandleCaptureLead)
	}
	apiGroup.POST("/vapi/webhook", a.vapiHandler.HandleWebhook)
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
