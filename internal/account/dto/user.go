package dto

import (
	"time"
)

type UserOutput struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Enabled   bool      `json:"enabled"`
	RoleID    int       `json:"role_id"`
	RoleName  string    `json:"role_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterOutput carries the created account and, when registration policy
// allows immediate use, an initial token pair.
type RegisterOutput struct {
	User   UserOutput     `json:"user"`
	Tokens *TokenResponse `json:"tokens,omitempty"`
}
