package controller

import (
	"eli5-bot/internal/dto"
	"eli5-bot/internal/pkg/serverutils"
	"eli5-bot/internal/service"
	"eli5-bot/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, identity fiber.Handler)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Patch(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router, identity fiber.Handler) {
	h := r.Group("/chats", identity)
	h.Get("/", c.List)
	h.Post("/", c.Create)
	h.Patch("/:id", c.Patch)
	h.Delete("/:id", c.Delete)
}

func (c *chatController) List(ctx *fiber.Ctx) error {
	userId, ok := serverutils.UserID(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.List(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Success",
		"data":    res,
	})
}

func (c *chatController) Create(ctx *fiber.Ctx) error {
	userId, ok := serverutils.UserID(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req dto.CreateChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body.")
	}
	if err := serverutils.Validate(&req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    201,
		"message": "Chat session created",
		"data":    res,
	})
}

func (c *chatController) Patch(ctx *fiber.Ctx) error {
	userId, ok := serverutils.UserID(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req dto.PatchChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body.")
	}
	if err := serverutils.Validate(&req); err != nil {
		return err
	}

	if err := c.service.Patch(ctx.UserContext(), userId, ctx.Params("id"), &req); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Chat session updated",
		"data":    nil,
	})
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	userId, ok := serverutils.UserID(ctx)
	if !ok {
		return fiber.ErrUnauthorized
	}

	if err := c.service.Delete(ctx.UserContext(), userId, ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Chat session deleted",
		"data":    nil,
	})
}
