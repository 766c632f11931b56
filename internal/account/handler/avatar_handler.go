package handler

import (
	"bytes"

	"github.com/adminkit/account-service/internal/account/domain"
	"github.com/gofiber/fiber/v2"
)

type AvatarHandler struct {
	store domain.AvatarStore
}

func NewAvatarHandler(store domain.AvatarStore) *AvatarHandler {
	return &AvatarHandler{store: store}
}

// Upload replaces the authenticated user's avatar with the request body.
func (h *AvatarHandler) Upload(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	contentType := c.Get(fiber.HeaderContentType, "application/octet-stream")
	key := avatarKey(AuthenticatedUserID(c))

	if err := h.store.Upload(c.Context(), key, bytes.NewReader(body), int64(len(body)), contentType); err != nil {
		return internalError(c)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AvatarHandler) Download(c *fiber.Ctx) error {
	key := avatarKey(AuthenticatedUserID(c))

	exists, err := h.store.Exists(c.Context(), key)
	if err != nil {
		return internalError(c)
	}
	if !exists {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "avatar not found"})
	}

	obj, err := h.store.Download(c.Context(), key)
	if err != nil {
		return internalError(c)
	}

	return c.SendStream(obj)
}

func (h *AvatarHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.Delete(c.Context(), avatarKey(AuthenticatedUserID(c))); err != nil {
		return internalError(c)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func avatarKey(userID string) string {
	return "avatars/" + userID
}
