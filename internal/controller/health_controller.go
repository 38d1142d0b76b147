package controller

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterHealthRoute(r fiber.Router) {
	r.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"success": true,
			"code":    200,
			"message": "ok",
		})
	})
}
