package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/adminkit/account-service/internal/account/service TokenGenerator

import (
	"fmt"
	"time"

	autherror "github.com/adminkit/account-service/internal/errors"
	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distinguishes the two signed token flavors. Both share the same
// encoding and signing key; only the validity window differs.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

type TokenGenerator interface {
	Issue(userID string, kind TokenKind) (string, error)
	GeneratePair(userID string) (string, string, time.Time, error)
	Verify(tokenString string, kind TokenKind) (string, error)
	Subject(tokenString string) (string, error)
	IsValid(tokenString string) bool
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
}

// TokenService signs and verifies access/refresh tokens with a single
// symmetric key. The key is injected by the caller; it is configuration,
// not process state.
type TokenService struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

func NewTokenService(secret string, accessExpiry, refreshExpiry time.Duration) *TokenService {
	return &TokenService{
		Secret:             secret,
		AccessTokenExpiry:  accessExpiry,
		RefreshTokenExpiry: refreshExpiry,
	}
}

// Issue signs a token of the given kind with the user's stable identifier as
// subject.
func (ts *TokenService) Issue(userID string, kind TokenKind) (string, error) {
	now := time.Now()

	ttl := ts.AccessTokenExpiry
	if kind == TokenKindRefresh {
		ttl = ts.RefreshTokenExpiry
	}

	claims := JWTCustomClaims{
		TokenType: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}

	return token, nil
}

// GeneratePair issues one access and one refresh token and reports the
// access token expiry instant.
func (ts *TokenService) GeneratePair(userID string) (string, string, time.Time, error) {
	now := time.Now()

	accessToken, err := ts.Issue(userID, TokenKindAccess)
	if err != nil {
		return "", "", time.Time{}, err
	}

	refreshToken, err := ts.Issue(userID, TokenKindRefresh)
	if err != nil {
		return "", "", time.Time{}, err
	}

	return accessToken, refreshToken, now.Add(ts.AccessTokenExpiry), nil
}

// Verify parses and fully validates the token, including expiry, and checks
// that it is of the expected kind. It returns the embedded subject.
func (ts *TokenService) Verify(tokenString string, kind TokenKind) (string, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, ts.keyFunc)
	if err != nil {
		return "", autherror.ErrMalformedToken
	}
	if !token.Valid {
		return "", autherror.ErrMalformedToken
	}
	if claims.TokenType != string(kind) {
		return "", autherror.ErrMalformedToken
	}

	return claims.Subject, nil
}

// Subject decodes and signature-checks the token and returns the embedded
// subject without validating expiry. Used for diagnostic extraction.
func (ts *TokenService) Subject(tokenString string) (string, error) {
	claims := &JWTCustomClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, ts.keyFunc, jwt.WithoutClaimsValidation())
	if err != nil {
		return "", autherror.ErrMalformedToken
	}

	return claims.Subject, nil
}

// IsValid reports whether the token signature verifies and the current time
// is before the embedded expiry. It never fails: unparseable input yields
// false.
func (ts *TokenService) IsValid(tokenString string) bool {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, ts.keyFunc)

	return err == nil && token.Valid
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}

func (ts *TokenService) GetRefreshTokenExpiry() time.Duration {
	return ts.RefreshTokenExpiry
}

func (ts *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	// Ensure the token's signing method is HMAC.
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return []byte(ts.Secret), nil
}
