package entity

import (
	"time"

	"github.com/google/uuid"
)

type School struct {
	Id        uuid.UUID
	Code      string // short join code teachers register with
	Name      string
	Address   string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
