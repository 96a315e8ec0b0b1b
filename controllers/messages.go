package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	dbpkg "github.com/germanalvarez8/nextdet-agent/db"
	"github.com/germanalvarez8/nextdet-agent/store"
	"github.com/germanalvarez8/nextdet-agent/whatsapp"

	"github.com/gin-gonic/gin"
)

// phone no formato internacional sem '+', como a Cloud API espera
var phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)

type SendTemplateRequest struct {
	Phone    string   `json:"phone"`
	Template string   `json:"template"`
	Language string   `json:"language"`
	Params   []string `json:"params"`
}

type SendTextRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// POST /api/send_template
func SendTemplateMessage(d *whatsapp.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SendTemplateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Phone == "" || req.Template == "" {
			RespondError(c, "phone e template são obrigatórios", http.StatusBadRequest)
			return
		}
		if !phonePattern.MatchString(req.Phone) {
			RespondError(c, "formato de telefone inválido (use só dígitos com código do país)", http.StatusBadRequest)
			return
		}

		resp, err := d.SendTemplate(c.Request.Context(), req.Phone, req.Template, req.Language, req.Params)
		if err != nil {
			respondDispatchError(c, err)
			return
		}

		RespondSuccess(c, gin.H{
			"success":    true,
			"message_id": resp.MessageID,
			"response":   resp.Raw,
		})
	}
}

// POST /api/send_text
func SendTextMessage(d *whatsapp.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SendTextRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Phone == "" || req.Message == "" {
			RespondError(c, "phone e message são obrigatórios", http.StatusBadRequest)
			return
		}
		if !phonePattern.MatchString(req.Phone) {
			RespondError(c, "formato de telefone inválido (use só dígitos com código do país)", http.StatusBadRequest)
			return
		}

		resp, err := d.SendText(c.Request.Context(), req.Phone, req.Message)
		if err != nil {
			respondDispatchError(c, err)
			return
		}

		RespondSuccess(c, gin.H{
			"success":    true,
			"message_id": resp.MessageID,
			"response":   resp.Raw,
		})
	}
}

// respondDispatchError mapeia a taxonomia do dispatcher: validação local
// vira 400, rejeição do provedor vira 400 com o payload bruto anexado,
// falha de transporte vira 502.
func respondDispatchError(c *gin.Context, err error) {
	var invalid *whatsapp.InvalidRecipientError
	if errors.As(err, &invalid) || errors.Is(err, whatsapp.ErrMessageTooLong) {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var apiErr *whatsapp.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":  false,
			"error":    apiErr.Error(),
			"provider": apiErr.Raw,
		})
		return
	}

	RespondError(c, err.Error(), http.StatusBadGateway)
}

// GET /api/messages/recent?limit=10
func GetRecentMessages(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	limit := QueryInt(c, "limit", 10)
	msgs, err := store.NewGormMessages(db).Recent(limit)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"messages": msgs})
}

// GET /api/messages/history/:phone?limit=50
func GetConversationHistory(c *gin.Context) {
	phone := c.Param("phone")
	if !phonePattern.MatchString(phone) {
		RespondError(c, "formato de telefone inválido", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	limit := QueryInt(c, "limit", 50)
	msgs, err := store.NewGormMessages(db).HistoryByPhone(phone, limit)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"phone": phone, "messages": msgs})
}

// GET /api/messages/stats?days=7
func GetMessagingStats(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	days := QueryInt(c, "days", 7)
	since := time.Now().AddDate(0, 0, -days)

	stats, err := store.NewGormMessages(db).Stats(since)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"period_days": days, "stats": stats})
}
