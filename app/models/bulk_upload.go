package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BulkUploadSession records one bulk product upload batch for auditing.
type BulkUploadSession struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID uuid.UUID  `gorm:"type:uuid;not null;index" json:"category_id"`
	CreatedBy  *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	Total      int        `gorm:"not null" json:"total"`
	Succeeded  int        `gorm:"not null" json:"succeeded"`
	Failed     int        `gorm:"not null" json:"failed"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (s *BulkUploadSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// BulkUploadImage is one file processed within a bulk upload session.
type BulkUploadImage struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"session_id"`
	FileName  string     `gorm:"size:512;not null" json:"file_name"`
	ProductID *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	Error     *string    `gorm:"type:text" json:"error"`
	CreatedAt time.Time  `json:"created_at"`
}

func (i *BulkUploadImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
