package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName  string    `gorm:"type:varchar(255);not null"`
	LastName   string    `gorm:"type:varchar(255);not null"`
	ExternalId string    `gorm:"type:varchar(100);index"`
	GradeLevel string    `gorm:"type:varchar(20)"`
	ClassName  string    `gorm:"type:varchar(50)"`
	SchoolId   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Student) TableName() string {
	return "students"
}
