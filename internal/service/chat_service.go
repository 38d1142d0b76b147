package service

import (
	"context"
	"strings"
	"time"

	"eli5-bot/internal/dto"
	"eli5-bot/internal/entity"
	"eli5-bot/internal/pkg/logger"
	"eli5-bot/internal/repository/specification"
	"eli5-bot/internal/repository/unitofwork"
	"eli5-bot/pkg/apperror"
	"eli5-bot/pkg/events"

	"github.com/google/uuid"
)

type IChatService interface {
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSessionDTO, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatSessionDTO, error)
	Patch(ctx context.Context, userId uuid.UUID, id string, req *dto.PatchChatRequest) error
	Delete(ctx context.Context, userId uuid.UUID, id string) error
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	bus        events.Bus
	logger     logger.ILogger
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, bus events.Bus, logger logger.ILogger) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		bus:        bus,
		logger:     logger,
	}
}

func (s *chatService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSessionDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.MostRecentFirst{},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatSessionDTO, 0, len(sessions))
	for _, session := range sessions {
		res = append(res, toChatSessionDTO(session))
	}
	return res, nil
}

func (s *chatService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatSessionDTO, error) {
	id := strings.TrimSpace(req.Id)
	if id == "" {
		return nil, apperror.Validation("Session id is required.")
	}
	title := req.Title
	if strings.TrimSpace(title) == "" {
		title = entity.DefaultSessionTitle
	}
	lastUpdated := time.Now()
	if req.LastUpdated > 0 {
		lastUpdated = time.UnixMilli(req.LastUpdated)
	}
	messages := req.Messages
	if messages == nil {
		messages = []entity.Message{}
	}

	session := &entity.ChatSession{
		Id:          id,
		UserId:      userId,
		Title:       title,
		Messages:    messages,
		LastUpdated: lastUpdated,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.ChatSessionCreated, map[string]interface{}{
		"user_id":    userId.String(),
		"session_id": session.Id,
	}))

	return toChatSessionDTO(session), nil
}

func (s *chatService) Patch(ctx context.Context, userId uuid.UUID, id string, req *dto.PatchChatRequest) error {
	patch := entity.ChatSessionPatch{
		Title:    req.Title,
		Messages: req.Messages,
	}
	if req.LastUpdated != nil {
		t := time.UnixMilli(*req.LastUpdated)
		patch.LastUpdated = &t
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	found, err := uow.ChatSessionRepository().Patch(ctx, id, userId, patch)
	if err != nil {
		return err
	}
	if !found {
		return apperror.NotFound("Chat session not found.")
	}

	eventType := events.ChatSessionSynced
	if patch.Messages == nil && patch.Title != nil {
		eventType = events.ChatSessionRenamed
	}
	data := map[string]interface{}{
		"user_id":    userId.String(),
		"session_id": id,
	}
	if patch.Messages != nil {
		data["message_count"] = len(*patch.Messages)
	}
	s.publish(ctx, events.New(eventType, data))

	return nil
}

func (s *chatService) Delete(ctx context.Context, userId uuid.UUID, id string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	found, err := uow.ChatSessionRepository().Delete(ctx, id, userId)
	if err != nil {
		return err
	}
	if !found {
		return apperror.NotFound("Chat session not found.")
	}

	s.publish(ctx, events.New(events.ChatSessionDeleted, map[string]interface{}{
		"user_id":    userId.String(),
		"session_id": id,
	}))
	return nil
}

func (s *chatService) publish(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("CHAT", "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

func toChatSessionDTO(session *entity.ChatSession) *dto.ChatSessionDTO {
	messages := session.Messages
	if messages == nil {
		messages = []entity.Message{}
	}
	return &dto.ChatSessionDTO{
		Id:          session.Id,
		Title:       session.Title,
		Messages:    messages,
		LastUpdated: session.LastUpdated.UnixMilli(),
	}
}
