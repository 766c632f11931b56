package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, auth *AuthHandler, lifecycle *LifecycleHandler, avatar *AvatarHandler) {
	app.Post("/api/v1/register", auth.Register)
	app.Post("/api/v1/login", auth.Login)
	app.Post("/api/v1/refresh", auth.Refresh)

	app.Post("/api/v1/activation/request", lifecycle.RequestActivation)
	app.Post("/api/v1/activation/confirm", lifecycle.Activate)

	app.Post("/api/v1/password-reset/request", lifecycle.RequestPasswordReset)
	app.Post("/api/v1/password-reset/validate", lifecycle.ValidateResetToken)
	app.Post("/api/v1/password-reset/confirm", lifecycle.ResetPassword)

	me := app.Group("/api/v1/me", auth.RequireAuth())
	me.Put("/avatar", avatar.Upload)
	me.Get("/avatar", avatar.Download)
	me.Delete("/avatar", avatar.Delete)
}
