// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type AuthProvider string

const (
	UserRoleTeacher   UserRole = "TEACHER"
	UserRolePrincipal UserRole = "PRINCIPAL"
	UserRoleAdmin     UserRole = "ADMIN"

	AuthProviderEmail     AuthProvider = "EMAIL"
	AuthProviderGoogle    AuthProvider = "GOOGLE"
	AuthProviderMicrosoft AuthProvider = "MICROSOFT"
)

type User struct {
	Id            uuid.UUID
	Email         string
	PasswordHash  *string // nil for OAuth-only accounts
	FirstName     string
	LastName      string
	Role          UserRole
	AuthProvider  AuthProvider
	SchoolId      *uuid.UUID
	EmailVerified bool
	IsActive      bool
	LastLoginAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type PasswordResetToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

type EmailVerificationToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type UserRefreshToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	IpAddress string
	UserAgent string
}
