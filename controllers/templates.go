package controllers

import (
	"net/http"

	dbpkg "github.com/germanalvarez8/nextdet-agent/db"
	"github.com/germanalvarez8/nextdet-agent/models"
	"github.com/germanalvarez8/nextdet-agent/store"

	"github.com/gin-gonic/gin"
)

type UpdateTemplateStatusRequest struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Status   string `json:"status"`
}

// POST /api/templates
//
// Registra o espelho local de uma plantilla. A plantilla em si precisa
// existir e ser aprovada no Meta Business Manager; aqui não há sync
// automático com o provedor.
func RegisterTemplate(c *gin.Context) {
	var tpl models.Template
	if err := c.Bind(&tpl); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if tpl.Name == "" {
		RespondError(c, "name é obrigatório", http.StatusBadRequest)
		return
	}
	if tpl.Language == "" {
		tpl.Language = "es"
	}
	if tpl.Category == "" {
		tpl.Category = models.TEMPLATE_CATEGORY_UTILITY
	}
	if !models.ValidTemplateCategory(tpl.Category) {
		RespondError(c, "categoria inválida (UTILITY, MARKETING ou AUTHENTICATION)", http.StatusBadRequest)
		return
	}
	tpl.Status = models.TEMPLATE_STATUS_PENDING

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := store.NewGormTemplates(db).Register(&tpl); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"template": tpl})
}

// PUT /api/templates/status
func UpdateTemplateStatus(c *gin.Context) {
	var req UpdateTemplateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Language == "" {
		RespondError(c, "name e language são obrigatórios", http.StatusBadRequest)
		return
	}
	if !models.ValidTemplateStatus(req.Status) {
		RespondError(c, "status inválido (pending, approved ou rejected)", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	rows, err := store.NewGormTemplates(db).UpdateStatus(req.Name, req.Language, req.Status)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if rows == 0 {
		RespondError(c, "plantilla não encontrada", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"updated": rows})
}

// GET /api/templates/approved
func GetApprovedTemplates(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	tpls, err := store.NewGormTemplates(db).Approved()
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"templates": tpls})
}
