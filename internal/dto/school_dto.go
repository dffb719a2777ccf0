package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSchoolRequest struct {
	Code    string `json:"code" validate:"required,min=3,max=50"`
	Name    string `json:"name" validate:"required,min=2"`
	Address string `json:"address"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type UpdateSchoolRequest struct {
	Name    string `json:"name" validate:"omitempty,min=2"`
	Address string `json:"address"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type SchoolResponse struct {
	Id        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
