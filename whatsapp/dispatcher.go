package whatsapp

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/germanalvarez8/nextdet-agent/models"
	"github.com/germanalvarez8/nextdet-agent/store"
	"github.com/germanalvarez8/nextdet-agent/tools"
)

const maxTextLength = 4096

// Sender é o que o Dispatcher precisa do cliente Cloud API.
type Sender interface {
	SendTemplate(ctx context.Context, to, templateName, languageCode string, params []string) (*SendResponse, error)
	SendText(ctx context.Context, to, body string) (*SendResponse, error)
}

// Dispatcher valida, envia via Cloud API e registra a mensagem outgoing.
// Não há retry: a política de retry é do caller.
type Dispatcher struct {
	client   Sender
	messages store.Messages
}

func NewDispatcher(client Sender, messages store.Messages) *Dispatcher {
	return &Dispatcher{client: client, messages: messages}
}

// SendTemplate envia uma plantilla com parâmetros posicionais e persiste o
// registro outgoing com status "sent".
func (d *Dispatcher) SendTemplate(ctx context.Context, recipient, templateName, languageCode string, params []string) (*SendResponse, error) {
	to, err := tools.NormalizePhone(recipient)
	if err != nil {
		return nil, &InvalidRecipientError{Raw: recipient, Reason: err.Error()}
	}

	resp, err := d.client.SendTemplate(ctx, to, templateName, languageCode, params)
	if err != nil {
		return nil, err
	}

	metadata, _ := json.Marshal(map[string]any{
		"template": templateName,
		"language": languageCode,
		"params":   params,
	})
	d.saveOutgoing(resp.MessageID, to, templateName, models.MESSAGE_TYPE_TEMPLATE, string(metadata))

	return resp, nil
}

// SendText envia texto livre (máx. 4096 caracteres) e persiste o registro.
func (d *Dispatcher) SendText(ctx context.Context, recipient, body string) (*SendResponse, error) {
	to, err := tools.NormalizePhone(recipient)
	if err != nil {
		return nil, &InvalidRecipientError{Raw: recipient, Reason: err.Error()}
	}
	if len(body) > maxTextLength {
		return nil, ErrMessageTooLong
	}

	resp, err := d.client.SendText(ctx, to, body)
	if err != nil {
		return nil, err
	}

	d.saveOutgoing(resp.MessageID, to, body, models.MESSAGE_TYPE_TEXT, "")

	return resp, nil
}

// saveOutgoing registra a mensagem enviada. Falha de persistência é logada e
// engolida: o envio já aconteceu e o caller deve vê-lo como sucesso, mesmo
// que o histórico local fique incompleto.
func (d *Dispatcher) saveOutgoing(waMessageID, to, content, msgType, metadata string) {
	status := models.MESSAGE_STATUS_SENT
	msg := models.Message{
		WaMessageID: waMessageID,
		PhoneNumber: to,
		Content:     content,
		Type:        msgType,
		Direction:   models.MESSAGE_DIRECTION_OUTGOING,
		Status:      &status,
		Timestamp:   time.Now(),
		Metadata:    metadata,
	}
	if err := d.messages.Save(&msg); err != nil {
		log.Printf("dispatcher: failed to save outgoing message (wamid=%s): %v", waMessageID, err)
	}
}
