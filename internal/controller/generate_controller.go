package controller

import (
	"strings"

	"eli5-bot/internal/dto"
	"eli5-bot/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGenerateController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
}

type generateController struct {
	service service.IGenerateService
}

func NewGenerateController(service service.IGenerateService) IGenerateController {
	return &generateController{service: service}
}

func (c *generateController) RegisterRoutes(r fiber.Router) {
	r.Post("/generate", c.Generate)
}

// Generate answers with a bare {text} or {error} body rather than the
// envelope; the proxy reply generator reads it as is.
func (c *generateController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.GenerateErrorResponse{Error: "Missing prompt"})
	}

	res, err := c.service.Generate(ctx.UserContext(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.GenerateErrorResponse{Error: err.Error()})
	}
	return ctx.JSON(res)
}
