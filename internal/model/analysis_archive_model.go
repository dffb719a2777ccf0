package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AnalysisArchive struct {
	Id                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MemoryRefId         string         `gorm:"type:varchar(50);index"`
	StudentId           uuid.UUID      `gorm:"type:uuid;not null;index"`
	Analysis            string         `gorm:"type:text;not null"`
	ConversationHistory datatypes.JSON `gorm:"type:jsonb"`
	CreatedBy           uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt           time.Time      `gorm:"autoCreateTime"`
}

func (AnalysisArchive) TableName() string {
	return "analysis_archives"
}
