package service

import (
	"context"
	"time"

	"github.com/adminkit/account-service/config"
	"github.com/adminkit/account-service/internal/account/domain"
	"github.com/adminkit/account-service/internal/account/dto"
	autherror "github.com/adminkit/account-service/internal/errors"
	authconstant "github.com/adminkit/account-service/pkg/constant"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo         domain.UserRepository
	tokenService TokenGenerator
	lifecycle    *LifecycleService
	cfg          *config.Config
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator,
	lifecycle *LifecycleService, cfg *config.Config) *UserService {
	return &UserService{
		repo:         repo,
		tokenService: tokenService,
		lifecycle:    lifecycle,
		cfg:          cfg,
	}
}

// Register creates a new account. When activation is required by policy the
// account starts disabled and an activation mail goes out; otherwise it is
// enabled immediately and an initial token pair is returned.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.RegisterOutput, error) {
	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Enabled:      !s.cfg.Registration.RequireActivation,
		RoleID:       authconstant.DefaultUserRoleID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	out := &dto.RegisterOutput{User: toUserOutput(user)}

	if s.cfg.Registration.RequireActivation {
		if _, err := s.lifecycle.RequestActivation(ctx, user.Email); err != nil {
			return nil, err
		}
		return out, nil
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	out.Tokens = tokens

	return out, nil
}

// Login checks credentials and account flags and issues a token pair. No
// partial success: a locked or disabled account never receives tokens, even
// with the correct password.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, autherror.ErrInvalidCredentials
	}

	if user.Locked {
		return nil, autherror.ErrAccountLocked
	}
	if !user.Enabled {
		return nil, autherror.ErrAccountDisabled
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a new pair, re-checking the
// account flags so a lock or disable applied after issuance takes effect.
func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, error) {
	userID, err := s.tokenService.Verify(input.RefreshToken, TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrInvalidCredentials
	}

	if user.Locked {
		return nil, autherror.ErrAccountLocked
	}
	if !user.Enabled {
		return nil, autherror.ErrAccountDisabled
	}

	return s.issueTokens(user)
}

func (s *UserService) issueTokens(user *domain.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, _, err := s.tokenService.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:            accessToken,
		RefreshToken:           refreshToken,
		TokenType:              authconstant.DefaultTokenType,
		ExpiresIn:              int(s.tokenService.GetAccessTokenExpiry().Seconds()),
		PasswordChangeRequired: user.PasswordChangeRequired,
	}, nil
}

func toUserOutput(user *domain.User) dto.UserOutput {
	return dto.UserOutput{
		ID:        user.ID,
		Email:     user.Email,
		Enabled:   user.Enabled,
		RoleID:    user.RoleID,
		RoleName:  user.RoleName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
