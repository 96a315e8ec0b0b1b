package whatsapp

import (
	"errors"
	"fmt"
)

// ErrMessageTooLong indica que o corpo de texto excede o limite da Cloud API.
var ErrMessageTooLong = errors.New("message exceeds 4096 characters")

// ErrVerificationFailed indica falha no handshake de verificação do webhook.
var ErrVerificationFailed = errors.New("webhook verification failed")

// InvalidRecipientError indica que o telefone destino não normaliza para
// 10-15 dígitos. Nenhuma chamada de rede é feita nesse caso.
type InvalidRecipientError struct {
	Raw    string
	Reason string
}

func (e *InvalidRecipientError) Error() string {
	return fmt.Sprintf("invalid recipient %q: %s", e.Raw, e.Reason)
}

// APIError carrega a rejeição reportada pela Cloud API (status HTTP não-2xx).
// Erros de transporte NÃO viram APIError; chegam embrulhados como erro comum
// para o caller distinguir conexão de rejeição.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	Raw        string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("whatsapp api error (%d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("whatsapp api error: status=%d body=%s", e.StatusCode, e.Raw)
}
