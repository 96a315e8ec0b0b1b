package router

import (
	"log"

	"github.com/germanalvarez8/nextdet-agent/agent"
	"github.com/germanalvarez8/nextdet-agent/controllers"
	"github.com/germanalvarez8/nextdet-agent/middleware"
	"github.com/germanalvarez8/nextdet-agent/whatsapp"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares.
// Webhook fica fora da autenticação por API key: o Meta não manda bearer.
func Initialize(r *gin.Engine, dispatcher *whatsapp.Dispatcher, webhook *whatsapp.WebhookHandler, ag *agent.Client) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")

	api.GET("/health", Logger(), controllers.Health)

	// Webhook (WhatsApp Cloud API)
	api.GET("/webhook", controllers.WebhookVerify(webhook))
	api.POST("/webhook", controllers.WebhookUpdate(webhook))

	// Agente (proxy LLM) - consumido pelo widget de chat
	api.POST("/agent/ask", Logger(), controllers.Ask(ag))

	// Rotas autenticadas (bearer API key, se configurada)
	auth := api.Group("")
	auth.Use(middleware.APIKeyAuth())

	// Envio
	auth.POST("/send_template", Logger(), controllers.SendTemplateMessage(dispatcher))
	auth.POST("/send_text", Logger(), controllers.SendTextMessage(dispatcher))

	// Histórico / dashboard
	auth.GET("/messages/recent", Logger(), controllers.GetRecentMessages)
	auth.GET("/messages/history/:phone", Logger(), controllers.GetConversationHistory)
	auth.GET("/messages/stats", Logger(), controllers.GetMessagingStats)

	// Plantillas (espelho local)
	auth.GET("/templates/approved", Logger(), controllers.GetApprovedTemplates)
	auth.POST("/templates", Logger(), controllers.RegisterTemplate)
	auth.PUT("/templates/status", Logger(), controllers.UpdateTemplateStatus)

	log.Printf("Routes initialized")
}
