package handler_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adminkit/account-service/internal/account/service"
	autherror "github.com/adminkit/account-service/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authorizedAvatarRequest(f *appFixture, method string, body []byte) *http.Request {
	f.tokenService.EXPECT().Verify("valid-token", service.TokenKindAccess).Return("user-id", nil)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, "/api/v1/me/avatar", reader)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer valid-token")
	return req
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	f := newAppFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/avatar", nil)

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	f := newAppFixture(t)

	f.tokenService.EXPECT().Verify("bad-token", service.TokenKindAccess).
		Return("", autherror.ErrMalformedToken)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/avatar", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer bad-token")

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAvatarHandler_Upload(t *testing.T) {
	f := newAppFixture(t)

	payload := []byte("fake-png-bytes")

	f.avatarStore.EXPECT().
		Upload(gomock.Any(), "avatars/user-id", gomock.Any(), int64(len(payload)), "image/png").
		DoAndReturn(func(_ context.Context, _ string, r io.Reader, _ int64, _ string) error {
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
			return nil
		})

	req := authorizedAvatarRequest(f, http.MethodPut, payload)
	req.Header.Set(fiber.HeaderContentType, "image/png")

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestAvatarHandler_Upload_EmptyBody(t *testing.T) {
	f := newAppFixture(t)

	req := authorizedAvatarRequest(f, http.MethodPut, nil)

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAvatarHandler_Download(t *testing.T) {
	f := newAppFixture(t)

	content := []byte("stored-avatar")

	f.avatarStore.EXPECT().Exists(gomock.Any(), "avatars/user-id").Return(true, nil)
	f.avatarStore.EXPECT().Download(gomock.Any(), "avatars/user-id").
		Return(io.NopCloser(bytes.NewReader(content)), nil)

	req := authorizedAvatarRequest(f, http.MethodGet, nil)

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestAvatarHandler_Download_NotFound(t *testing.T) {
	f := newAppFixture(t)

	f.avatarStore.EXPECT().Exists(gomock.Any(), "avatars/user-id").Return(false, nil)

	req := authorizedAvatarRequest(f, http.MethodGet, nil)

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAvatarHandler_Delete(t *testing.T) {
	f := newAppFixture(t)

	f.avatarStore.EXPECT().Delete(gomock.Any(), "avatars/user-id").Return(nil)

	req := authorizedAvatarRequest(f, http.MethodDelete, nil)

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
