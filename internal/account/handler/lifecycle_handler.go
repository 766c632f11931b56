package handler

import (
	"errors"

	"github.com/adminkit/account-service/internal/account/dto"
	"github.com/adminkit/account-service/internal/account/service"
	autherror "github.com/adminkit/account-service/internal/errors"
	"github.com/gofiber/fiber/v2"
)

type LifecycleHandler struct {
	lifecycle *service.LifecycleService
}

func NewLifecycleHandler(lifecycle *service.LifecycleService) *LifecycleHandler {
	return &LifecycleHandler{lifecycle: lifecycle}
}

// RequestActivation answers 202 with the same body whether or not the email
// belongs to an account, so responses cannot be used to enumerate addresses.
func (h *LifecycleHandler) RequestActivation(c *fiber.Ctx) error {
	var input dto.TokenRequestInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if _, err := h.lifecycle.RequestActivation(c.Context(), input.Email); err != nil {
		return internalError(c)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "if the account exists, an activation email has been sent",
	})
}

func (h *LifecycleHandler) Activate(c *fiber.Ctx) error {
	var input dto.ActivateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.lifecycle.Activate(c.Context(), input.Token); err != nil {
		if errors.Is(err, autherror.ErrInvalidLifecycleToken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "account activated"})
}

// RequestPasswordReset has the same uninformative 202 contract as
// RequestActivation.
func (h *LifecycleHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var input dto.TokenRequestInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.lifecycle.RequestPasswordReset(c.Context(), input.Email); err != nil {
		return internalError(c)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "if the account exists, a password reset email has been sent",
	})
}

func (h *LifecycleHandler) ValidateResetToken(c *fiber.Ctx) error {
	var input dto.ValidateResetTokenInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.lifecycle.ValidateResetToken(c.Context(), input.Token); err != nil {
		if errors.Is(err, autherror.ErrInvalidLifecycleToken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"valid": true})
}

func (h *LifecycleHandler) ResetPassword(c *fiber.Ctx) error {
	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.lifecycle.ResetPassword(c.Context(), input.Token, input.NewPassword); err != nil {
		if errors.Is(err, autherror.ErrInvalidLifecycleToken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return internalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "password updated"})
}
