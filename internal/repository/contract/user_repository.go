package contract

import (
	"context"

	"eli5-bot/internal/entity"
	"eli5-bot/internal/repository/specification"
)

// UserRepository stores accounts. Emails are unique after normalisation;
// Create reports a clash as apperror.KindAlreadyExists.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindOne returns nil, nil when nothing matches.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
