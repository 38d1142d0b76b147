package serverutils

import (
	"context"
	"strings"

	"eli5-bot/internal/pkg/logger"
	"eli5-bot/internal/repository/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	UserIDHeader = "X-User-ID"
	localsUserID = "user_id"
)

type UserChecker interface {
	UserExists(ctx context.Context, userId uuid.UUID) (bool, error)
}

func unauthorized(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success":    false,
		"code":       fiber.StatusUnauthorized,
		"message":    message,
		"error_type": "UNAUTHORIZED",
	})
}

// IdentityMiddleware resolves the caller from the X-User-ID header. Known ids
// are cached so a chat sync does not cost an extra query.
func IdentityMiddleware(checker UserChecker, cache *memory.IdentityCache, log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		raw := strings.TrimSpace(ctx.Get(UserIDHeader))
		if raw == "" {
			return unauthorized(ctx, "Missing user id")
		}
		userId, err := uuid.Parse(raw)
		if err != nil {
			return unauthorized(ctx, "Invalid user id")
		}

		if !cache.Known(userId) {
			exists, err := checker.UserExists(ctx.UserContext(), userId)
			if err != nil {
				log.Error("IDENTITY", "Failed to resolve user", map[string]interface{}{
					"user_id": userId.String(),
					"error":   err,
				})
				return RespondError(ctx, err)
			}
			if !exists {
				return unauthorized(ctx, "Unknown user")
			}
			cache.Remember(userId)
		}

		ctx.Locals(localsUserID, userId)
		return ctx.Next()
	}
}

// UserID returns the caller resolved by IdentityMiddleware.
func UserID(ctx *fiber.Ctx) (uuid.UUID, bool) {
	userId, ok := ctx.Locals(localsUserID).(uuid.UUID)
	return userId, ok
}
