package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// GET /api/health
func Health(c *gin.Context) {
	RespondSuccess(c, gin.H{
		"success":   true,
		"message":   "Servicio de WhatsApp operativo",
		"timestamp": time.Now().Format("2006-01-02 15:04:05"),
	})
}
