package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/adminkit/account-service/internal/account/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleHandler_RequestActivation_UnknownEmailStillAccepted(t *testing.T) {
	f := newAppFixture(t)

	f.repo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

	req := jsonRequest(http.MethodPost, "/api/v1/activation/request",
		fiber.Map{"email": "nobody@example.com"})

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
}

func TestLifecycleHandler_RequestActivation_KnownEmail(t *testing.T) {
	f := newAppFixture(t)

	user := &domain.User{ID: "user-id", Email: "pending@example.com", Enabled: false}

	f.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	f.repo.EXPECT().SetActivationToken(gomock.Any(), user.ID, gomock.Any(), gomock.Any()).Return(nil)
	f.mailer.EXPECT().SendActivationEmail(gomock.Any(), user, gomock.Any()).Return(nil)

	req := jsonRequest(http.MethodPost, "/api/v1/activation/request", fiber.Map{"email": user.Email})

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Same status and body as the unknown-email case.
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
}

func TestLifecycleHandler_Activate_Success(t *testing.T) {
	f := newAppFixture(t)

	user := &domain.User{ID: "user-id", Email: "pending@example.com", Enabled: true}

	f.repo.EXPECT().ConsumeActivationToken(gomock.Any(), "token-1", gomock.Any()).Return(user, nil)
	f.mailer.EXPECT().SendWelcomeEmail(gomock.Any(), user).Return(nil)

	req := jsonRequest(http.MethodPost, "/api/v1/activation/confirm", fiber.Map{"token": "token-1"})

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLifecycleHandler_Activate_InvalidToken(t *testing.T) {
	f := newAppFixture(t)

	f.repo.EXPECT().ConsumeActivationToken(gomock.Any(), "stale-token", gomock.Any()).Return(nil, nil)

	req := jsonRequest(http.MethodPost, "/api/v1/activation/confirm", fiber.Map{"token": "stale-token"})

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLifecycleHandler_RequestPasswordReset(t *testing.T) {
	f := newAppFixture(t)

	user := existingUser("test@example.com", "password123")

	f.repo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
	f.repo.EXPECT().SetResetToken(gomock.Any(), user.ID, gomock.Any(), gomock.Any()).Return(nil)
	f.mailer.EXPECT().SendResetPasswordEmail(gomock.Any(), user, gomock.Any()).Return(nil)

	req := jsonRequest(http.MethodPost, "/api/v1/password-reset/request", fiber.Map{"email": user.Email})

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
}

func TestLifecycleHandler_ValidateResetToken(t *testing.T) {
	f := newAppFixture(t)

	t.Run("valid", func(t *testing.T) {
		expiresAt := time.Now().Add(time.Hour)
		user := &domain.User{ID: "user-id", ResetExpiresAt: &expiresAt}

		f.repo.EXPECT().GetByResetToken(gomock.Any(), "token-1").Return(user, nil)

		req := jsonRequest(http.MethodPost, "/api/v1/password-reset/validate", fiber.Map{"token": "token-1"})

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, decodeBody(t, resp)["valid"])
	})

	t.Run("expired", func(t *testing.T) {
		expiresAt := time.Now().Add(-time.Minute)
		user := &domain.User{ID: "user-id", ResetExpiresAt: &expiresAt}

		f.repo.EXPECT().GetByResetToken(gomock.Any(), "token-2").Return(user, nil)

		req := jsonRequest(http.MethodPost, "/api/v1/password-reset/validate", fiber.Map{"token": "token-2"})

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestLifecycleHandler_ResetPassword_Success(t *testing.T) {
	f := newAppFixture(t)

	user := existingUser("test@example.com", "old-password")

	f.repo.EXPECT().ConsumeResetToken(gomock.Any(), "token-1", gomock.Any(), gomock.Any()).Return(user, nil)
	f.mailer.EXPECT().SendPasswordChangedEmail(gomock.Any(), user).Return(nil)

	req := jsonRequest(http.MethodPost, "/api/v1/password-reset/confirm",
		fiber.Map{"token": "token-1", "new_password": "brand-new-password"})

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLifecycleHandler_ResetPassword_ConsumedToken(t *testing.T) {
	f := newAppFixture(t)

	f.repo.EXPECT().ConsumeResetToken(gomock.Any(), "used-token", gomock.Any(), gomock.Any()).Return(nil, nil)

	req := jsonRequest(http.MethodPost, "/api/v1/password-reset/confirm",
		fiber.Map{"token": "used-token", "new_password": "brand-new-password"})

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
