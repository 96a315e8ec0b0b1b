package whatsapp

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/germanalvarez8/nextdet-agent/models"
	"github.com/germanalvarez8/nextdet-agent/store"
)

// WebhookHandler processa os dois lados do webhook da Cloud API: o handshake
// de verificação (GET) e a ingestão de eventos (POST).
type WebhookHandler struct {
	verifyToken string
	messages    store.Messages
}

func NewWebhookHandler(verifyToken string, messages store.Messages) *WebhookHandler {
	return &WebhookHandler{verifyToken: verifyToken, messages: messages}
}

// VerifyChallenge implementa o handshake de verificação do webhook: só aceita
// mode "subscribe" com o token configurado e devolve o challenge intacto.
// Idempotente e sem efeitos colaterais.
func (h *WebhookHandler) VerifyChallenge(mode, token, challenge string) (string, error) {
	if mode != "subscribe" {
		log.Printf("webhook: verification failed: invalid mode %q", mode)
		return "", ErrVerificationFailed
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.verifyToken)) != 1 {
		log.Printf("webhook: verification failed: token mismatch")
		return "", ErrVerificationFailed
	}
	return challenge, nil
}

// Result são os contadores de itens processados num lote de webhook.
type Result struct {
	Messages int `json:"messages"`
	Statuses int `json:"statuses"`
}

// ProcessIncoming percorre entry -> changes -> value tolerando ramos
// ausentes ou malformados (são pulados, nunca fatais). Falhas por item são
// logadas e não interrompem o lote: o provedor reinterpreta qualquer
// resposta não-2xx como "reentregar", e reentrega duplica efeitos.
func (h *WebhookHandler) ProcessIncoming(payload *NotificationPayload) Result {
	var res Result
	if payload == nil {
		return res
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if h.processMessage(msg, change.Value.Metadata) {
					res.Messages++
				}
			}
			for _, st := range change.Value.Statuses {
				if h.processStatus(st) {
					res.Statuses++
				}
			}
		}
	}

	log.Printf("webhook: processed %d messages and %d status updates", res.Messages, res.Statuses)
	return res
}

// ParsePayload decodifica o envelope serializado de um webhook.
func ParsePayload(raw []byte) (*NotificationPayload, error) {
	var payload NotificationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}
	return &payload, nil
}

func (h *WebhookHandler) processMessage(msg InboundMessage, meta Metadata) bool {
	msgType := msg.Type
	if msgType == "" {
		msgType = models.MESSAGE_TYPE_UNKNOWN
	}

	content := ExtractContent(msg, msgType)

	if msg.ID == "" || msg.From == "" || content == "" {
		log.Printf("webhook: incomplete message data, skipping (id=%q from=%q)", msg.ID, msg.From)
		return false
	}

	// o bloco metadata do value (número de exibição + phone_number_id) vai
	// junto com a linha, como contexto de qual número recebeu a mensagem
	var metadata string
	if meta != (Metadata{}) {
		if b, err := json.Marshal(meta); err == nil {
			metadata = string(b)
		}
	}

	row := models.Message{
		WaMessageID: msg.ID,
		PhoneNumber: msg.From,
		Content:     content,
		Type:        msgType,
		Direction:   models.MESSAGE_DIRECTION_INCOMING,
		Status:      nil, // mensagens entrantes não têm status de entrega
		Timestamp:   parseProviderTimestamp(msg.Timestamp),
		Metadata:    metadata,
	}
	if err := h.messages.Save(&row); err != nil {
		log.Printf("webhook: failed to save incoming message %s: %v", msg.ID, err)
		return false
	}
	return true
}

func (h *WebhookHandler) processStatus(st StatusUpdate) bool {
	if st.ID == "" || st.Status == "" {
		return false
	}
	if !models.ValidStatus(st.Status) {
		log.Printf("webhook: invalid status %q for %s, skipping", st.Status, st.ID)
		return false
	}

	// Sobrescreve incondicionalmente; callback para wamid desconhecido é no-op.
	rows, err := h.messages.UpdateStatusByWaID(st.ID, st.Status)
	if err != nil {
		log.Printf("webhook: failed to update status for %s: %v", st.ID, err)
		return false
	}
	if rows == 0 {
		log.Printf("webhook: status update %s -> %s matched no rows", st.ID, st.Status)
	}
	return true
}

// ExtractContent deriva o resumo legível de uma mensagem conforme o tipo
// declarado. Tipos fora do conjunto conhecido viram um placeholder, nunca
// erro.
func ExtractContent(msg InboundMessage, msgType string) string {
	switch msgType {
	case models.MESSAGE_TYPE_TEXT:
		if msg.Text != nil {
			return msg.Text.Body
		}
		return ""
	case models.MESSAGE_TYPE_IMAGE:
		if msg.Image != nil && msg.Image.Caption != "" {
			return msg.Image.Caption
		}
		return "Imagen recibida"
	case models.MESSAGE_TYPE_VIDEO:
		if msg.Video != nil && msg.Video.Caption != "" {
			return msg.Video.Caption
		}
		return "Video recibido"
	case models.MESSAGE_TYPE_DOCUMENT:
		if msg.Document != nil && msg.Document.Filename != "" {
			return msg.Document.Filename
		}
		return "Documento recibido"
	case models.MESSAGE_TYPE_AUDIO:
		return "Audio recibido"
	case models.MESSAGE_TYPE_LOCATION:
		if msg.Location != nil {
			return fmt.Sprintf("Ubicación: %v, %v", msg.Location.Latitude, msg.Location.Longitude)
		}
		return "Ubicación: , "
	case models.MESSAGE_TYPE_CONTACTS:
		return "Contactos recibidos"
	case models.MESSAGE_TYPE_INTERACTIVE:
		if msg.Interactive != nil {
			if msg.Interactive.ButtonReply != nil {
				return msg.Interactive.ButtonReply.Title
			}
			if msg.Interactive.ListReply != nil {
				return msg.Interactive.ListReply.Title
			}
		}
		return "Respuesta interactiva"
	default:
		return fmt.Sprintf("Mensaje tipo %s", msgType)
	}
}

// parseProviderTimestamp converte o timestamp unix (string) enviado pelo
// provedor; ausente ou inválido, usa o horário local.
func parseProviderTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Now()
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Now()
	}
	return time.Unix(secs, 0)
}
