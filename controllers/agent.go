package controllers

import (
	"errors"
	"net/http"

	"github.com/germanalvarez8/nextdet-agent/agent"

	"github.com/gin-gonic/gin"
)

type AskRequest struct {
	Question string `json:"question"`
}

// POST /api/agent/ask
//
// Proxy stateless para o LLM: pergunta entra, texto sai. Sem memória entre
// chamadas.
func Ask(ag *agent.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, "invalid json", http.StatusBadRequest)
			return
		}

		answer, err := ag.Ask(c.Request.Context(), req.Question)
		if err != nil {
			respondAgentError(c, err)
			return
		}

		RespondSuccess(c, gin.H{"success": true, "response": answer})
	}
}

func respondAgentError(c *gin.Context, err error) {
	if errors.Is(err, agent.ErrEmptyQuestion) {
		RespondError(c, "la pregunta no puede estar vacía", http.StatusBadRequest)
		return
	}

	var apiErr *agent.APIError
	if errors.As(err, &apiErr) {
		RespondError(c, apiErr.Error(), http.StatusBadGateway)
		return
	}
	if errors.Is(err, agent.ErrMalformedResponse) {
		RespondError(c, "respuesta inválida de la API", http.StatusBadGateway)
		return
	}

	RespondError(c, err.Error(), http.StatusBadGateway)
}
