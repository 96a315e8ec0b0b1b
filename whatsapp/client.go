package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const DefaultAPIVersion = "v22.0"

// Client é um cliente fino para o endpoint /messages da WhatsApp Cloud API.
type Client struct {
	AccessToken   string
	PhoneNumberID string
	ApiVersion    string // e.g. v22.0
	BaseURL       string // override para testes; default graph.facebook.com
	HTTPClient    *http.Client
}

// NewClient monta um cliente com os timeouts padrão (30s total, 10s de
// conexão).
func NewClient(accessToken, phoneNumberID string) *Client {
	return &Client{
		AccessToken:   accessToken,
		PhoneNumberID: phoneNumberID,
		ApiVersion:    DefaultAPIVersion,
		HTTPClient:    NewHTTPClient(30*time.Second, 10*time.Second),
	}
}

// NewHTTPClient monta um http.Client com timeout total e timeout de conexão
// separados, como as constantes API_TIMEOUT/API_CONNECT_TIMEOUT do serviço.
func NewHTTPClient(timeout, connectTimeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
		},
	}
}

// SendResponse é a resposta da Cloud API a um envio, com o wamid atribuído
// pelo provedor e o payload bruto para repassar ao caller REST.
type SendResponse struct {
	MessageID string
	Raw       json.RawMessage
}

type sendAPIResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendTemplate envia uma mensagem de plantilla pré-aprovada. Os params são
// embrulhados em ordem como parâmetros de componente body ({{1}}, {{2}}, ...);
// a ordem é contrato do caller, não é validada aqui.
func (c *Client) SendTemplate(ctx context.Context, to, templateName, languageCode string, params []string) (*SendResponse, error) {
	payload := templatePayload(to, templateName, languageCode, params)
	return c.send(ctx, payload)
}

// SendText envia uma mensagem de texto livre (sujeita à janela de 24h do
// provedor; fora dela, use plantillas).
func (c *Client) SendText(ctx context.Context, to, body string) (*SendResponse, error) {
	payload := textPayload(to, body)
	return c.send(ctx, payload)
}

func templatePayload(to, templateName, languageCode string, params []string) map[string]any {
	if languageCode == "" {
		languageCode = "es"
	}

	template := map[string]any{
		"name": templateName,
		"language": map[string]any{
			"code": languageCode,
		},
	}

	if len(params) > 0 {
		parameters := make([]map[string]any, 0, len(params))
		for _, p := range params {
			parameters = append(parameters, map[string]any{
				"type": "text",
				"text": p,
			})
		}
		template["components"] = []map[string]any{
			{
				"type":       "body",
				"parameters": parameters,
			},
		}
	}

	return map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "template",
		"template":          template,
	}
}

func textPayload(to, body string) map[string]any {
	return map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "text",
		"text": map[string]any{
			"preview_url": false,
			"body":        body,
		},
	}
}

func (c *Client) messagesURL() string {
	base := strings.TrimSuffix(c.BaseURL, "/")
	if base == "" {
		base = "https://graph.facebook.com"
	}
	apiVersion := strings.TrimSpace(c.ApiVersion)
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return fmt.Sprintf("%s/%s/%s/messages", base, apiVersion, strings.TrimSpace(c.PhoneNumberID))
}

func (c *Client) send(ctx context.Context, payload map[string]any) (*SendResponse, error) {
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.messagesURL(), bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.AccessToken))
	req.Header.Set("Content-Type", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = NewHTTPClient(30*time.Second, 10*time.Second)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whatsapp api connection: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("whatsapp api read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Raw: string(raw)}
		var parsed apiErrorBody
		if err := json.Unmarshal(raw, &parsed); err == nil {
			apiErr.Code = parsed.Error.Code
			apiErr.Message = parsed.Error.Message
		}
		return nil, apiErr
	}

	var parsed sendAPIResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("whatsapp api decode response: %w", err)
	}

	out := &SendResponse{Raw: json.RawMessage(raw)}
	if len(parsed.Messages) > 0 {
		out.MessageID = parsed.Messages[0].ID
	}
	return out, nil
}
