package dto

import (
	"github.com/google/uuid"
)

// Presence of name/email/password is enforced by the service so the client
// gets the same validation messages from every entry point.
type RegisterRequest struct {
	Name     string `json:"name" validate:"max=120"`
	Email    string `json:"email" validate:"omitempty,max=254"`
	Password string `json:"password" validate:"max=72"` // bcrypt ignores bytes past 72
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	Id    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}
