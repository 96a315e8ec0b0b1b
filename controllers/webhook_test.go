package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/germanalvarez8/nextdet-agent/models"
	"github.com/germanalvarez8/nextdet-agent/store"
	"github.com/germanalvarez8/nextdet-agent/whatsapp"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memMessages guarda tudo em memória para os testes de controller.
type memMessages struct {
	saved   []models.Message
	updated []string
}

var _ store.Messages = (*memMessages)(nil)

func (m *memMessages) Save(msg *models.Message) error {
	m.saved = append(m.saved, *msg)
	return nil
}

func (m *memMessages) UpdateStatusByWaID(waMessageID, status string) (int64, error) {
	m.updated = append(m.updated, waMessageID+"="+status)
	for _, s := range m.saved {
		if s.WaMessageID == waMessageID {
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memMessages) HistoryByPhone(phone string, limit int) ([]models.Message, error) {
	return nil, nil
}

func (m *memMessages) Recent(limit int) ([]models.Message, error) {
	return m.saved, nil
}

func (m *memMessages) Stats(since time.Time) (*store.MessagingStats, error) {
	return &store.MessagingStats{Since: since, TotalMessages: int64(len(m.saved))}, nil
}

func newWebhookRouter(verifyToken string, messages store.Messages) *gin.Engine {
	h := whatsapp.NewWebhookHandler(verifyToken, messages)
	r := gin.New()
	r.GET("/api/webhook", WebhookVerify(h))
	r.POST("/api/webhook", WebhookUpdate(h))
	return r
}

func TestWebhookVerify_EchoesChallenge(t *testing.T) {
	r := newWebhookRouter("segredo", &memMessages{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/webhook?hub.mode=subscribe&hub.verify_token=segredo&hub.challenge=12345", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// texto plano, sem aspas de JSON
	assert.Equal(t, "12345", w.Body.String())
}

func TestWebhookVerify_UnderscoreSpelling(t *testing.T) {
	r := newWebhookRouter("segredo", &memMessages{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/webhook?hub_mode=subscribe&hub_verify_token=segredo&hub_challenge=ok", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestWebhookVerify_WrongToken(t *testing.T) {
	r := newWebhookRouter("segredo", &memMessages{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/webhook?hub.mode=subscribe&hub.verify_token=outro&hub.challenge=12345", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestWebhookUpdate_AcksWithCounters(t *testing.T) {
	msgs := &memMessages{}
	r := newWebhookRouter("segredo", msgs)

	body := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [{
						"id": "wamid.1",
						"from": "5491112345678",
						"timestamp": "1700000000",
						"type": "text",
						"text": {"body": "hola"}
					}],
					"statuses": [{
						"id": "wamid.OUT9",
						"status": "delivered",
						"timestamp": "1700000100",
						"recipient_id": "5491112345678"
					}]
				}
			}]
		}]
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","processed":{"messages":1,"statuses":1}}`, w.Body.String())

	require.Len(t, msgs.saved, 1)
	assert.Equal(t, "hola", msgs.saved[0].Content)
	assert.Equal(t, models.MESSAGE_DIRECTION_INCOMING, msgs.saved[0].Direction)
	assert.Equal(t, []string{"wamid.OUT9=delivered"}, msgs.updated)
}

func TestWebhookUpdate_EmptyPayloadStill200(t *testing.T) {
	r := newWebhookRouter("segredo", &memMessages{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/webhook", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","processed":{"messages":0,"statuses":0}}`, w.Body.String())
}

func TestWebhookUpdate_MalformedBodyStill200(t *testing.T) {
	msgs := &memMessages{}
	r := newWebhookRouter("segredo", msgs)

	// corpo ilegível nunca pode virar não-2xx: o Meta reentregaria para sempre
	for _, body := range []string{`{nope`, `not json at all`, ``} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/webhook", strings.NewReader(body))
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, "body %q", body)
	}
	assert.Empty(t, msgs.saved)
}
