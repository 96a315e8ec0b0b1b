package tools

import (
	"fmt"
	"strings"
)

// NormalizePhone normaliza um telefone para o formato aceito pelo WhatsApp
// Cloud API (somente dígitos, formato internacional E.164 sem '+').
//
// - remove tudo que não é dígito nem '+'
// - remove o '+' inicial, se houver
// - rejeita fora da faixa [10,15] dígitos
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty phone")
	}

	// somente dígitos ASCII: IsDigit aceitaria dígitos Unicode (ex.
	// arábico-índicos), que quebrariam o invariante "só 0-9" no storage
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	phone := strings.TrimPrefix(b.String(), "+")

	// depois do primeiro '+' só podem restar dígitos
	if strings.ContainsRune(phone, '+') {
		return "", fmt.Errorf("invalid phone: %q", raw)
	}

	if len(phone) < 10 || len(phone) > 15 {
		return "", fmt.Errorf("invalid phone length: %d (must be 10-15 digits)", len(phone))
	}
	return phone, nil
}
