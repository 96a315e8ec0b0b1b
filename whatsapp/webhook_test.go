package whatsapp

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/germanalvarez8/nextdet-agent/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyChallenge(t *testing.T) {
	h := NewWebhookHandler("secreto", &fakeMessages{})

	tests := []struct {
		name    string
		mode    string
		token   string
		wantErr bool
	}{
		{name: "exact match", mode: "subscribe", token: "secreto"},
		{name: "wrong mode", mode: "unsubscribe", token: "secreto", wantErr: true},
		{name: "empty mode", mode: "", token: "secreto", wantErr: true},
		{name: "wrong token", mode: "subscribe", token: "outro", wantErr: true},
		{name: "empty token", mode: "subscribe", token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			echo, err := h.VerifyChallenge(tt.mode, tt.token, "challenge-123")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrVerificationFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "challenge-123", echo)
		})
	}
}

func TestVerifyChallenge_Idempotent(t *testing.T) {
	messages := &fakeMessages{}
	h := NewWebhookHandler("secreto", messages)

	a, errA := h.VerifyChallenge("subscribe", "secreto", "abc")
	b, errB := h.VerifyChallenge("subscribe", "secreto", "abc")

	assert.NoError(t, errA)
	assert.NoError(t, errB)
	assert.Equal(t, a, b)
	// handshake não toca o armazenamento
	assert.Empty(t, messages.saved)
	assert.Empty(t, messages.updated)
}

func textMessage(id, from, body string, ts string) InboundMessage {
	return InboundMessage{
		From:      from,
		ID:        id,
		Timestamp: ts,
		Type:      "text",
		Text:      &TextContent{Body: body},
	}
}

func payloadWith(msgs []InboundMessage, statuses []StatusUpdate) *NotificationPayload {
	return &NotificationPayload{
		Object: "whatsapp_business_account",
		Entry: []Entry{{
			ID: "1234567890",
			Changes: []Change{{
				Field: "messages",
				Value: ChangeValue{Messages: msgs, Statuses: statuses},
			}},
		}},
	}
}

func TestProcessIncoming_TextMessage(t *testing.T) {
	messages := &fakeMessages{}
	h := NewWebhookHandler("secreto", messages)

	res := h.ProcessIncoming(payloadWith(
		[]InboundMessage{textMessage("wamid.1", "5491112345678", "hola", "1700000000")},
		nil,
	))

	assert.Equal(t, Result{Messages: 1, Statuses: 0}, res)

	require.Len(t, messages.saved, 1)
	row := messages.saved[0]
	assert.Equal(t, "wamid.1", row.WaMessageID)
	assert.Equal(t, "5491112345678", row.PhoneNumber)
	assert.Equal(t, "hola", row.Content)
	assert.Equal(t, models.MESSAGE_TYPE_TEXT, row.Type)
	assert.Equal(t, models.MESSAGE_DIRECTION_INCOMING, row.Direction)
	assert.Nil(t, row.Status)
	assert.Equal(t, time.Unix(1700000000, 0), row.Timestamp)
}

func TestProcessIncoming_SkipsIncompleteMessages(t *testing.T) {
	messages := &fakeMessages{}
	h := NewWebhookHandler("secreto", messages)

	res := h.ProcessIncoming(payloadWith([]InboundMessage{
		textMessage("", "5491112345678", "sem id", "1700000000"),
		textMessage("wamid.2", "", "sem remetente", "1700000000"),
		{From: "5491112345678", ID: "wamid.3", Type: "text"}, // texto sem body
		textMessage("wamid.4", "5491112345678", "válida", "1700000000"),
	}, nil))

	assert.Equal(t, 1, res.Messages)
	require.Len(t, messages.saved, 1)
	assert.Equal(t, "wamid.4", messages.saved[0].WaMessageID)
}

func TestProcessIncoming_StatusUpdate(t *testing.T) {
	messages := &fakeMessages{rows: 1}
	h := NewWebhookHandler("secreto", messages)

	res := h.ProcessIncoming(payloadWith(nil, []StatusUpdate{
		{ID: "wamid.1", Status: "delivered", Timestamp: "1700000100"},
	}))

	assert.Equal(t, Result{Messages: 0, Statuses: 1}, res)
	assert.Equal(t, "delivered", messages.updated["wamid.1"])
}

func TestProcessIncoming_StatusNoMatchIsStillProcessed(t *testing.T) {
	// callback para wamid desconhecido: zero linhas, sem erro, conta como
	// processado
	messages := &fakeMessages{rows: 0}
	h := NewWebhookHandler("secreto", messages)

	res := h.ProcessIncoming(payloadWith(nil, []StatusUpdate{
		{ID: "wamid.ghost", Status: "delivered", Timestamp: "1700000100"},
	}))

	assert.Equal(t, 1, res.Statuses)
	assert.Equal(t, "delivered", messages.updated["wamid.ghost"])
}

func TestProcessIncoming_InvalidStatusSkipped(t *testing.T) {
	messages := &fakeMessages{rows: 1}
	h := NewWebhookHandler("secreto", messages)

	res := h.ProcessIncoming(payloadWith(nil, []StatusUpdate{
		{ID: "wamid.1", Status: "teleported", Timestamp: "1700000100"},
		{ID: "wamid.2", Status: "read", Timestamp: "1700000200"},
	}))

	assert.Equal(t, 1, res.Statuses)
	assert.NotContains(t, messages.updated, "wamid.1")
	assert.Equal(t, "read", messages.updated["wamid.2"])
}

func TestProcessIncoming_EmptyAndMalformedPayloads(t *testing.T) {
	h := NewWebhookHandler("secreto", &fakeMessages{})

	assert.Equal(t, Result{}, h.ProcessIncoming(nil))
	assert.Equal(t, Result{}, h.ProcessIncoming(&NotificationPayload{}))
	assert.Equal(t, Result{}, h.ProcessIncoming(&NotificationPayload{
		Entry: []Entry{{ID: "x"}, {ID: "y", Changes: []Change{{Field: "messages"}}}},
	}))
}

func TestParsePayload(t *testing.T) {
	payload, err := ParsePayload([]byte(`{"object":"whatsapp_business_account","entry":[{"id":"1","changes":[{"field":"messages","value":{"messages":[{"from":"5491112345678","id":"wamid.1","timestamp":"1700000000","type":"text","text":{"body":"hola"}}]}}]}]}`))
	require.NoError(t, err)
	require.Len(t, payload.Entry, 1)
	require.Len(t, payload.Entry[0].Changes, 1)
	require.Len(t, payload.Entry[0].Changes[0].Value.Messages, 1)
	assert.Equal(t, "hola", payload.Entry[0].Changes[0].Value.Messages[0].Text.Body)

	_, err = ParsePayload([]byte(`{not json`))
	assert.Error(t, err)
}

func TestExtractContent(t *testing.T) {
	tests := []struct {
		name string
		msg  InboundMessage
		typ  string
		want string
	}{
		{name: "text body", msg: InboundMessage{Text: &TextContent{Body: "hola"}}, typ: "text", want: "hola"},
		{name: "text without block", msg: InboundMessage{}, typ: "text", want: ""},
		{name: "image with caption", msg: InboundMessage{Image: &MediaContent{Caption: "mi foto"}}, typ: "image", want: "mi foto"},
		{name: "image without caption", msg: InboundMessage{Image: &MediaContent{ID: "m1"}}, typ: "image", want: "Imagen recibida"},
		{name: "video with caption", msg: InboundMessage{Video: &MediaContent{Caption: "clip"}}, typ: "video", want: "clip"},
		{name: "video without caption", msg: InboundMessage{}, typ: "video", want: "Video recibido"},
		{name: "document with filename", msg: InboundMessage{Document: &DocumentContent{Filename: "factura.pdf"}}, typ: "document", want: "factura.pdf"},
		{name: "document without filename", msg: InboundMessage{}, typ: "document", want: "Documento recibido"},
		{name: "audio", msg: InboundMessage{}, typ: "audio", want: "Audio recibido"},
		{name: "location", msg: InboundMessage{Location: &LocationContent{Latitude: -34.6, Longitude: -58.4}}, typ: "location", want: "Ubicación: -34.6, -58.4"},
		{name: "contacts", msg: InboundMessage{}, typ: "contacts", want: "Contactos recibidos"},
		{name: "interactive button", msg: InboundMessage{Interactive: &InteractiveContent{ButtonReply: &Reply{Title: "Sí, confirmo"}}}, typ: "interactive", want: "Sí, confirmo"},
		{name: "interactive list", msg: InboundMessage{Interactive: &InteractiveContent{ListReply: &Reply{Title: "Opción 2"}}}, typ: "interactive", want: "Opción 2"},
		{name: "interactive without reply", msg: InboundMessage{Interactive: &InteractiveContent{}}, typ: "interactive", want: "Respuesta interactiva"},
		{name: "unknown type placeholder", msg: InboundMessage{}, typ: "sticker", want: "Mensaje tipo sticker"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractContent(tt.msg, tt.typ))
		})
	}
}

func TestProcessIncoming_UnknownTypePersistsPlaceholder(t *testing.T) {
	messages := &fakeMessages{}
	h := NewWebhookHandler("secreto", messages)

	res := h.ProcessIncoming(payloadWith([]InboundMessage{
		{From: "5491112345678", ID: "wamid.5", Type: "sticker", Timestamp: "1700000000"},
	}, nil))

	assert.Equal(t, 1, res.Messages)
	require.Len(t, messages.saved, 1)
	assert.Equal(t, "Mensaje tipo sticker", messages.saved[0].Content)
	assert.Equal(t, "sticker", messages.saved[0].Type)
}

func TestProcessIncoming_PersistsValueMetadata(t *testing.T) {
	messages := &fakeMessages{}
	h := NewWebhookHandler("secreto", messages)

	payload := payloadWith(
		[]InboundMessage{textMessage("wamid.1", "5491112345678", "hola", "1700000000")},
		nil,
	)
	payload.Entry[0].Changes[0].Value.Metadata = Metadata{
		DisplayPhoneNumber: "15550000000",
		PhoneNumberID:      "111222333",
	}

	h.ProcessIncoming(payload)

	require.Len(t, messages.saved, 1)
	var meta Metadata
	require.NoError(t, json.Unmarshal([]byte(messages.saved[0].Metadata), &meta))
	assert.Equal(t, "15550000000", meta.DisplayPhoneNumber)
	assert.Equal(t, "111222333", meta.PhoneNumberID)
}

func TestProcessIncoming_NoValueMetadataLeavesBlank(t *testing.T) {
	messages := &fakeMessages{}
	h := NewWebhookHandler("secreto", messages)

	h.ProcessIncoming(payloadWith(
		[]InboundMessage{textMessage("wamid.1", "5491112345678", "hola", "1700000000")},
		nil,
	))

	require.Len(t, messages.saved, 1)
	assert.Empty(t, messages.saved[0].Metadata)
}
