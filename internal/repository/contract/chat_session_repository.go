package contract

import (
	"context"

	"eli5-bot/internal/entity"
	"eli5-bot/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	// Patch returns false when no session with that id belongs to userId.
	Patch(ctx context.Context, id string, userId uuid.UUID, patch entity.ChatSessionPatch) (bool, error)
	// Delete returns false when no session with that id belongs to userId.
	Delete(ctx context.Context, id string, userId uuid.UUID) (bool, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
