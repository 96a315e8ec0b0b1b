package store

import (
	"time"

	"github.com/germanalvarez8/nextdet-agent/models"

	"github.com/jinzhu/gorm"
)

// GormMessages implementa Messages sobre um handle gorm explícito.
type GormMessages struct {
	db *gorm.DB
}

func NewGormMessages(db *gorm.DB) *GormMessages {
	return &GormMessages{db: db}
}

func (s *GormMessages) Save(m *models.Message) error {
	return s.db.Create(m).Error
}

// UpdateStatusByWaID sobrescreve o status da mensagem correlacionada pelo
// wamid. Zero linhas afetadas não é erro: callbacks podem chegar para
// mensagens que não registramos.
func (s *GormMessages) UpdateStatusByWaID(waMessageID, status string) (int64, error) {
	res := s.db.Model(&models.Message{}).
		Where("wa_message_id = ?", waMessageID).
		Update("status", status)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (s *GormMessages) HistoryByPhone(phone string, limit int) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.
		Where("phone_number = ?", phone).
		Order("timestamp desc").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func (s *GormMessages) Recent(limit int) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.
		Order("timestamp desc").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func (s *GormMessages) Stats(since time.Time) (*MessagingStats, error) {
	stats := &MessagingStats{
		Since:       since,
		ByDirection: map[string]int64{},
		ByStatus:    map[string]int64{},
	}

	if err := s.db.Model(&models.Message{}).
		Where("timestamp >= ?", since).
		Count(&stats.TotalMessages).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var byDirection []bucket
	if err := s.db.Model(&models.Message{}).
		Select("direction as key, count(*) as count").
		Where("timestamp >= ?", since).
		Group("direction").
		Scan(&byDirection).Error; err != nil {
		return nil, err
	}
	for _, b := range byDirection {
		stats.ByDirection[b.Key] = b.Count
	}

	var byStatus []bucket
	if err := s.db.Model(&models.Message{}).
		Select("status as key, count(*) as count").
		Where("timestamp >= ? AND status IS NOT NULL", since).
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, b := range byStatus {
		stats.ByStatus[b.Key] = b.Count
	}

	if err := s.db.Model(&models.Message{}).
		Where("timestamp >= ?", since).
		Select("count(distinct phone_number)").
		Count(&stats.UniqueContacts).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// GormTemplates implementa Templates sobre o mesmo handle.
type GormTemplates struct {
	db *gorm.DB
}

func NewGormTemplates(db *gorm.DB) *GormTemplates {
	return &GormTemplates{db: db}
}

func (s *GormTemplates) Register(t *models.Template) error {
	return s.db.Create(t).Error
}

func (s *GormTemplates) UpdateStatus(name, language, status string) (int64, error) {
	res := s.db.Model(&models.Template{}).
		Where("name = ? AND language = ?", name, language).
		Update("status", status)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (s *GormTemplates) Approved() ([]models.Template, error) {
	var tpls []models.Template
	err := s.db.
		Where("status = ?", models.TEMPLATE_STATUS_APPROVED).
		Order("name asc").
		Find(&tpls).Error
	return tpls, err
}
