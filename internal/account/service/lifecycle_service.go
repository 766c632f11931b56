package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/adminkit/account-service/internal/account/domain"
	autherror "github.com/adminkit/account-service/internal/errors"
	"github.com/adminkit/account-service/internal/logger"
	authconstant "github.com/adminkit/account-service/pkg/constant"
	"golang.org/x/crypto/bcrypt"
)

// LifecycleService owns the activation and password-reset token tracks.
// Issuing a token overwrites any previous one for the same user, and
// consumption goes through a conditional update in the repository so that a
// token is usable at most once even under concurrent requests.
type LifecycleService struct {
	repo          domain.UserRepository
	mailer        domain.Mailer
	log           *logger.Logger
	activationTTL time.Duration
	resetTTL      time.Duration
}

func NewLifecycleService(repo domain.UserRepository, mailer domain.Mailer, log *logger.Logger,
	activationTTL, resetTTL time.Duration) *LifecycleService {
	return &LifecycleService{
		repo:          repo,
		mailer:        mailer,
		log:           log,
		activationTTL: activationTTL,
		resetTTL:      resetTTL,
	}
}

// RequestActivation issues a fresh activation token for the account behind
// email and dispatches the activation mail. Unknown addresses and already
// enabled accounts report false without error; callers must not surface the
// difference to clients.
func (s *LifecycleService) RequestActivation(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if user == nil || user.Enabled {
		return false, nil
	}

	token, err := newLifecycleToken()
	if err != nil {
		return false, err
	}

	expiresAt := time.Now().Add(s.activationTTL)
	if err := s.repo.SetActivationToken(ctx, user.ID, token, expiresAt); err != nil {
		return false, err
	}

	s.dispatch("activation", user.Email, func(ctx context.Context) error {
		return s.mailer.SendActivationEmail(ctx, user, token)
	})

	return true, nil
}

// Activate consumes an activation token and enables the account. The
// repository clears the token atomically with the flag change, so a second
// call with the same token finds nothing and fails.
func (s *LifecycleService) Activate(ctx context.Context, token string) error {
	user, err := s.repo.ConsumeActivationToken(ctx, token, time.Now())
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrInvalidLifecycleToken
	}

	s.dispatch("welcome", user.Email, func(ctx context.Context) error {
		return s.mailer.SendWelcomeEmail(ctx, user)
	})

	return nil
}

// RequestPasswordReset issues a reset token for the account behind email.
// For unknown addresses it is a silent no-op: the caller observes the exact
// same outcome either way, so responses cannot be used to probe for
// registered emails.
func (s *LifecycleService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, err := newLifecycleToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.resetTTL)
	if err := s.repo.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return err
	}

	s.dispatch("password reset", user.Email, func(ctx context.Context) error {
		return s.mailer.SendResetPasswordEmail(ctx, user, token)
	})

	return nil
}

// ValidateResetToken checks a reset token without consuming it. A token is
// valid strictly before its expiry instant.
func (s *LifecycleService) ValidateResetToken(ctx context.Context, token string) error {
	user, err := s.repo.GetByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil || user.ResetExpiresAt == nil || !time.Now().Before(*user.ResetExpiresAt) {
		return autherror.ErrInvalidLifecycleToken
	}

	return nil
}

// ResetPassword consumes a reset token and replaces the account password.
func (s *LifecycleService) ResetPassword(ctx context.Context, token, newPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.ConsumeResetToken(ctx, token, string(hashed), time.Now())
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrInvalidLifecycleToken
	}

	s.dispatch("password changed", user.Email, func(ctx context.Context) error {
		return s.mailer.SendPasswordChangedEmail(ctx, user)
	})

	return nil
}

// dispatch sends a notification without letting mail transport failures
// reach the state transition that triggered them.
func (s *LifecycleService) dispatch(kind, email string, send func(ctx context.Context) error) {
	if err := send(context.Background()); err != nil {
		s.log.Error("failed to send "+kind+" email", "email", email, "error", err)
	}
}

// newLifecycleToken returns a URL-safe opaque token. These are store-verified
// single-use secrets, not self-contained credentials, so they stay separate
// from the JWT codec.
func newLifecycleToken() (string, error) {
	buf := make([]byte, authconstant.LifecycleTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
