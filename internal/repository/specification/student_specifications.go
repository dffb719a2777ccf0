package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySchool struct {
	SchoolID uuid.UUID
}

func (s BySchool) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("school_id = ?", s.SchoolID)
}

type ByClassName struct {
	ClassName string
}

func (s ByClassName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("class_name = ?", s.ClassName)
}

type ByGradeLevel struct {
	GradeLevel string
}

func (s ByGradeLevel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("grade_level = ?", s.GradeLevel)
}
