package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/germanalvarez8/nextdet-agent/whatsapp"

	"github.com/gin-gonic/gin"
)

// GET /api/webhook
//
// Handshake de verificação do Meta:
// GET /webhook?hub.mode=subscribe&hub.verify_token=...&hub.challenge=...
// Alguns proxies reescrevem os pontos para underscore, então aceitamos as
// duas grafias.
func WebhookVerify(h *whatsapp.WebhookHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		mode := queryEither(c, "hub.mode", "hub_mode")
		token := queryEither(c, "hub.verify_token", "hub_verify_token")
		challenge := queryEither(c, "hub.challenge", "hub_challenge")

		echo, err := h.VerifyChallenge(mode, token, challenge)
		if err != nil {
			RespondError(c, "Verification failed", http.StatusForbidden)
			return
		}

		// challenge volta intacto, em texto plano
		c.String(http.StatusOK, "%s", echo)
	}
}

// POST /api/webhook
//
// Ingestão de eventos. A resposta é SEMPRE 200, mesmo com corpo ilegível
// ou malformado: qualquer status de erro faz o Meta reentregar o webhook,
// e reentrega duplica linhas (não há dedup de inbound por wamid). A única
// exceção é assinatura inválida, que é gate de segurança, não falha de
// ingestão.
func WebhookUpdate(h *whatsapp.WebhookHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.GetRawData()
		if err != nil {
			log.Printf("webhook: failed to read body: %v", err)
			c.JSON(http.StatusOK, gin.H{"status": "error"})
			return
		}

		if ok, reason := verifyMetaSignature(c, raw); !ok {
			RespondError(c, "forbidden: "+reason, http.StatusForbidden)
			return
		}

		payload, err := whatsapp.ParsePayload(raw)
		if err != nil {
			log.Printf("webhook: %v", err)
			c.JSON(http.StatusOK, gin.H{"status": "error"})
			return
		}

		res := h.ProcessIncoming(payload)

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"processed": gin.H{
				"messages": res.Messages,
				"statuses": res.Statuses,
			},
		})
	}
}

func queryEither(c *gin.Context, a, b string) string {
	if v := c.Query(a); v != "" {
		return v
	}
	return c.Query(b)
}

// verifyMetaSignature valida o corpo contra o header X-Hub-Signature-256
// (HMAC-SHA256 com o App Secret do Meta). Sem secret configurado, a
// validação é pulada.
func verifyMetaSignature(c *gin.Context, rawBody []byte) (bool, string) {
	secret := strings.TrimSpace(os.Getenv("WHATSAPP_APP_SECRET"))
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("META_APP_SECRET"))
	}
	if secret == "" {
		return true, ""
	}

	sig := strings.TrimSpace(c.GetHeader("X-Hub-Signature-256"))
	if sig == "" {
		return false, "missing X-Hub-Signature-256"
	}
	if !strings.HasPrefix(sig, "sha256=") {
		return false, "invalid X-Hub-Signature-256 format"
	}

	provided, err := hex.DecodeString(strings.TrimPrefix(sig, "sha256="))
	if err != nil {
		return false, "invalid signature hex"
	}

	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(rawBody)
	expected := mac.Sum(nil)

	if !hmac.Equal(provided, expected) {
		return false, "signature mismatch"
	}

	return true, ""
}
