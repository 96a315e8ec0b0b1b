package models

import "time"

/************************************************
/**** MARK: MESSAGE DIRECTION ****/
/************************************************/
const MESSAGE_DIRECTION_INCOMING = "incoming"
const MESSAGE_DIRECTION_OUTGOING = "outgoing"

/************************************************
/**** MARK: DELIVERY STATUS ****/
/************************************************/
// Estados reportados pelo provedor via webhook. Só fazem sentido para
// mensagens outgoing; inbound fica com Status nulo.
const MESSAGE_STATUS_SENT = "sent"
const MESSAGE_STATUS_DELIVERED = "delivered"
const MESSAGE_STATUS_READ = "read"
const MESSAGE_STATUS_FAILED = "failed"

/************************************************
/**** MARK: MESSAGE TYPES ****/
/************************************************/
const (
	MESSAGE_TYPE_TEXT        = "text"
	MESSAGE_TYPE_IMAGE       = "image"
	MESSAGE_TYPE_DOCUMENT    = "document"
	MESSAGE_TYPE_AUDIO       = "audio"
	MESSAGE_TYPE_VIDEO       = "video"
	MESSAGE_TYPE_LOCATION    = "location"
	MESSAGE_TYPE_CONTACTS    = "contacts"
	MESSAGE_TYPE_INTERACTIVE = "interactive"
	MESSAGE_TYPE_TEMPLATE    = "template"
	MESSAGE_TYPE_UNKNOWN     = "unknown"
)

// ValidStatus reports whether s is one of the provider delivery statuses.
func ValidStatus(s string) bool {
	switch s {
	case MESSAGE_STATUS_SENT, MESSAGE_STATUS_DELIVERED, MESSAGE_STATUS_READ, MESSAGE_STATUS_FAILED:
		return true
	}
	return false
}

// Message representa uma mensagem trocada via WhatsApp Cloud API, nas duas
// direções. WaMessageID é o id atribuído pelo provedor (wamid) e é a chave
// de correlação usada pelos callbacks de status.
type Message struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	WaMessageID string     `gorm:"column:wa_message_id;index" json:"wa_message_id"`
	PhoneNumber string     `gorm:"not null;index" json:"phone_number"` // somente dígitos, formato internacional
	Content     string     `gorm:"type:text" json:"content"`
	Type        string     `gorm:"not null;default:'text'" json:"type"`
	Direction   string     `gorm:"not null;index" json:"direction"`
	Status      *string    `gorm:"index" json:"status"`
	Timestamp   time.Time  `gorm:"not null;index" json:"timestamp"`
	Metadata    string     `gorm:"type:text" json:"metadata"` // blob JSON opaco (ex: template + params)
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
