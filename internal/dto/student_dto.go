package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateStudentRequest struct {
	FirstName  string `json:"first_name" validate:"required,min=2"`
	LastName   string `json:"last_name" validate:"required,min=2"`
	ExternalId string `json:"external_id"`
	GradeLevel string `json:"grade_level"`
	ClassName  string `json:"class_name"`
}

type UpdateStudentRequest struct {
	FirstName  string `json:"first_name" validate:"omitempty,min=2"`
	LastName   string `json:"last_name" validate:"omitempty,min=2"`
	ExternalId string `json:"external_id"`
	GradeLevel string `json:"grade_level"`
	ClassName  string `json:"class_name"`
}

type StudentResponse struct {
	Id         uuid.UUID `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Name       string    `json:"name"` // convenience full name
	ExternalId string    `json:"external_id,omitempty"`
	GradeLevel string    `json:"grade_level,omitempty"`
	ClassName  string    `json:"class_name,omitempty"`
	SchoolId   uuid.UUID `json:"school_id"`
	CreatedAt  time.Time `json:"created_at"`
}
