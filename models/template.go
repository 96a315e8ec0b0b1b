package models

import "time"

/************************************************
/**** MARK: TEMPLATE STATUS ****/
/************************************************/
const TEMPLATE_STATUS_PENDING = "pending"
const TEMPLATE_STATUS_APPROVED = "approved"
const TEMPLATE_STATUS_REJECTED = "rejected"

/************************************************
/**** MARK: TEMPLATE CATEGORY ****/
/************************************************/
const TEMPLATE_CATEGORY_UTILITY = "UTILITY"
const TEMPLATE_CATEGORY_MARKETING = "MARKETING"
const TEMPLATE_CATEGORY_AUTHENTICATION = "AUTHENTICATION"

// ValidTemplateStatus reports whether s is an accepted template status.
func ValidTemplateStatus(s string) bool {
	switch s {
	case TEMPLATE_STATUS_PENDING, TEMPLATE_STATUS_APPROVED, TEMPLATE_STATUS_REJECTED:
		return true
	}
	return false
}

// ValidTemplateCategory reports whether c is an accepted template category.
func ValidTemplateCategory(c string) bool {
	switch c {
	case TEMPLATE_CATEGORY_UTILITY, TEMPLATE_CATEGORY_MARKETING, TEMPLATE_CATEGORY_AUTHENTICATION:
		return true
	}
	return false
}

// Template é o espelho local de uma plantilla aprovada no Meta Business
// Manager. A fonte da verdade é o provedor; este registro pode divergir
// até alguém atualizar o status manualmente.
type Template struct {
	ID             int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name           string     `gorm:"not null;unique_index:idx_template_name_language" json:"name" form:"name"`
	Language       string     `gorm:"not null;default:'es';unique_index:idx_template_name_language" json:"language" form:"language"`
	Status         string     `gorm:"not null;default:'pending';index" json:"status" form:"status"`
	VariablesCount int        `gorm:"not null;default:0" json:"variables_count" form:"variables_count"`
	Category       string     `gorm:"not null;default:'UTILITY'" json:"category" form:"category"`
	Description    string     `gorm:"type:text" json:"description" form:"description"`
	ExampleContent string     `gorm:"type:text" json:"example_content" form:"example_content"`
	CreatedAt      *time.Time `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}
