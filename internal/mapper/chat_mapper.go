package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"eli5-bot/internal/entity"
	"eli5-bot/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) (*entity.ChatSession, error) {
	if s == nil {
		return nil, nil
	}

	messages, err := m.MessagesFromJSON(s.Messages)
	if err != nil {
		return nil, fmt.Errorf("decode messages of session %s: %w", s.Id, err)
	}

	return &entity.ChatSession{
		Id:          s.Id,
		UserId:      s.UserId,
		Title:       s.Title,
		Messages:    messages,
		LastUpdated: time.UnixMilli(s.LastUpdated),
	}, nil
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) (*model.ChatSession, error) {
	if s == nil {
		return nil, nil
	}

	messages, err := m.MessagesToJSON(s.Messages)
	if err != nil {
		return nil, err
	}

	return &model.ChatSession{
		Id:          s.Id,
		UserId:      s.UserId,
		Title:       s.Title,
		Messages:    messages,
		LastUpdated: s.LastUpdated.UnixMilli(),
	}, nil
}

// Message Mappers

// MessagesToJSON never yields null: an empty session stores "[]".
func (m *ChatMapper) MessagesToJSON(messages []entity.Message) (datatypes.JSON, error) {
	if messages == nil {
		messages = []entity.Message{}
	}
	raw, err := json.Marshal(messages)
	if err != nil {
		return nil, fmt.Errorf("encode messages: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func (m *ChatMapper) MessagesFromJSON(raw datatypes.JSON) ([]entity.Message, error) {
	messages := []entity.Message{}
	if len(raw) == 0 || string(raw) == "null" {
		return messages, nil
	}
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
