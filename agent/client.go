package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	DefaultModel   = "claude-sonnet-4-20250514"
	maxTokens      = 2048
)

// ErrEmptyQuestion indica pergunta vazia; nenhuma chamada de rede é feita.
var ErrEmptyQuestion = errors.New("question must not be empty")

// ErrMalformedResponse indica que a resposta do provedor não tem o primeiro
// bloco de texto esperado.
var ErrMalformedResponse = errors.New("malformed response from provider")

// APIError é a rejeição do provedor de LLM (status HTTP não-2xx), com a
// mensagem decodificada quando presente.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("llm api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("llm api error (status %d)", e.StatusCode)
}

// Client é o proxy stateless para a API de mensagens do LLM: cada pergunta
// vira uma única rodada com o prompt de sistema fixo. Sem cache, sem
// streaming, sem memória entre chamadas.
type Client struct {
	APIKey     string
	Model      string
	BaseURL    string // override para testes
	HTTPClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey: apiKey,
		Model:  DefaultModel,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Ask envia a pergunta com o documento de conhecimento fixo como prompt de
// sistema e devolve o primeiro bloco de texto da resposta.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	model := c.Model
	if model == "" {
		model = DefaultModel
	}

	body := messagesRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    SystemPrompt,
		Messages: []message{
			{Role: "user", Content: question},
		},
	}
	b, _ := json.Marshal(body)

	base := strings.TrimSuffix(c.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/v1/messages", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm api connection: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm api read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var parsed errorResponse
		if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error.Message != "" {
			apiErr.Message = parsed.Error.Message
		}
		return "", apiErr
	}

	var parsed messagesResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", ErrMalformedResponse
	}
	if len(parsed.Content) == 0 || parsed.Content[0].Text == "" {
		return "", ErrMalformedResponse
	}

	return parsed.Content[0].Text, nil
}
