package domain

import "time"

// User is a stored account record. Activation and reset tokens live directly
// on the row; a non-nil token always carries a non-nil future expiry, and
// consuming a token clears both columns in the same statement.
type User struct {
	ID                     string
	Seq                    int64
	Email                  string
	PasswordHash           string
	Enabled                bool
	Locked                 bool
	PasswordChangeRequired bool
	ActivationToken        *string
	ActivationExpiresAt    *time.Time
	ResetToken             *string
	ResetExpiresAt         *time.Time
	LastPasswordChangeAt   *time.Time
	RoleID                 int
	RoleName               string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
