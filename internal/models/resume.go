package models

import (
	"time"

	"github.com/google/uuid"
)

// Resume is the metadata row for an uploaded résumé file; the bytes live
// in the configured StorageService under StorageKey.
type Resume struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     string    `gorm:"type:text;index" json:"userId"`
	FileName   string    `gorm:"type:text" json:"fileName"`
	FileType   string    `gorm:"type:text" json:"fileType"`
	StorageKey string    `gorm:"type:text" json:"-"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `gorm:"type:timestamp;default:now()" json:"uploadedAt"`
}

func (Resume) TableName() string {
	return "resumes"
}
