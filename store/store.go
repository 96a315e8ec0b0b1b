package store

import (
	"time"

	"github.com/germanalvarez8/nextdet-agent/models"
)

// Messages é a superfície de persistência das mensagens de WhatsApp.
// Implementações devem tratar update de status sem linha correspondente
// como no-op (zero linhas).
type Messages interface {
	Save(m *models.Message) error
	UpdateStatusByWaID(waMessageID, status string) (int64, error)
	HistoryByPhone(phone string, limit int) ([]models.Message, error)
	Recent(limit int) ([]models.Message, error)
	Stats(since time.Time) (*MessagingStats, error)
}

// Templates é a superfície de persistência do espelho local de plantillas.
type Templates interface {
	Register(t *models.Template) error
	UpdateStatus(name, language, status string) (int64, error)
	Approved() ([]models.Template, error)
}

// MessagingStats agrega contadores de mensagens num período.
type MessagingStats struct {
	Since          time.Time        `json:"since"`
	TotalMessages  int64            `json:"total_messages"`
	ByDirection    map[string]int64 `json:"by_direction"`
	ByStatus       map[string]int64 `json:"by_status"`
	UniqueContacts int64            `json:"unique_contacts"`
}
