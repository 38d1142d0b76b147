package dto

import (
	"eli5-bot/internal/entity"
)

// ChatSessionDTO is the wire form of a session. LastUpdated is unix ms.
type ChatSessionDTO struct {
	Id          string           `json:"id"`
	Title       string           `json:"title"`
	Messages    []entity.Message `json:"messages"`
	LastUpdated int64            `json:"last_updated"`
}

type CreateChatRequest struct {
	Id          string           `json:"id" validate:"required,max=64"`
	Title       string           `json:"title" validate:"max=200"`
	Messages    []entity.Message `json:"messages"`
	LastUpdated int64            `json:"last_updated" validate:"gte=0"`
}

// PatchChatRequest writes only the fields that are present.
type PatchChatRequest struct {
	Title       *string           `json:"title,omitempty" validate:"omitempty,max=200"`
	Messages    *[]entity.Message `json:"messages,omitempty"`
	LastUpdated *int64            `json:"last_updated,omitempty" validate:"omitempty,gte=0"`
}
