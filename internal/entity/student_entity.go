package entity

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	Id         uuid.UUID
	FirstName  string
	LastName   string
	ExternalId string // school information system id, optional
	GradeLevel string
	ClassName  string
	SchoolId   uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
