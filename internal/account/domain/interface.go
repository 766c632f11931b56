package domain

import (
	"context"
	"io"
	"time"
)

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/adminkit/account-service/internal/account/domain UserRepository
//go:generate mockgen -destination=../../mocks/mock_mailer.go -package=mocks github.com/adminkit/account-service/internal/account/domain Mailer
//go:generate mockgen -destination=../../mocks/mock_avatar_store.go -package=mocks github.com/adminkit/account-service/internal/account/domain AvatarStore

// UserRepository is the credential store. Lookups return (nil, nil) when no
// row matches. The Consume* methods implement single-use token semantics with
// a conditional update: they succeed for at most one caller per token.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	SetActivationToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	ConsumeActivationToken(ctx context.Context, token string, now time.Time) (*User, error)
	SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	GetByResetToken(ctx context.Context, token string) (*User, error)
	ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*User, error)
}

// Mailer dispatches account notifications. Callers treat dispatch as
// best-effort: errors are logged, never propagated into the state change
// that triggered them.
type Mailer interface {
	SendActivationEmail(ctx context.Context, user *User, token string) error
	SendResetPasswordEmail(ctx context.Context, user *User, token string) error
	SendPasswordChangedEmail(ctx context.Context, user *User) error
	SendWelcomeEmail(ctx context.Context, user *User) error
}

// AvatarStore persists per-user avatar blobs.
type AvatarStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
