package serverutils

import (
	"errors"

	"eli5-bot/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error kind to the HTTP status the API answers with.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindInvalidCredentials:
		return fiber.StatusUnauthorized
	case apperror.KindAlreadyExists:
		return fiber.StatusConflict
	case apperror.KindConnectivity, apperror.KindSchema:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondError writes the failure envelope for err.
func RespondError(ctx *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return ctx.Status(fe.Code).JSON(fiber.Map{
			"success":    false,
			"code":       fe.Code,
			"message":    fe.Message,
			"error_type": string(kindForStatus(fe.Code)),
		})
	}

	kind := apperror.KindOf(err)
	status := StatusFor(kind)
	message := apperror.MessageOf(err)
	if kind == apperror.KindUnknown {
		message = "An unexpected error occurred."
	}
	return ctx.Status(status).JSON(fiber.Map{
		"success":    false,
		"code":       status,
		"message":    message,
		"error_type": string(kind),
	})
}

func kindForStatus(status int) apperror.Kind {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return apperror.KindValidation
	case fiber.StatusNotFound:
		return apperror.KindNotFound
	case fiber.StatusUnauthorized:
		return apperror.KindInvalidCredentials
	case fiber.StatusConflict:
		return apperror.KindAlreadyExists
	default:
		return apperror.KindUnknown
	}
}

// ErrorHandlerMiddleware turns errors returned by later handlers into the
// failure envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return RespondError(ctx, err)
		}
		return nil
	}
}
