package service

import (
	"context"
	"strings"

	"eli5-bot/internal/constant"
	"eli5-bot/internal/dto"
	"eli5-bot/internal/pkg/logger"
	"eli5-bot/pkg/apperror"
	"eli5-bot/pkg/events"
	"eli5-bot/pkg/llm"
)

type IGenerateService interface {
	Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
}

type generateService struct {
	provider llm.LLMProvider
	bus      events.Bus
	logger   logger.ILogger
}

// NewGenerateService accepts a nil provider; Generate then fails with an
// upstream error instead of the server refusing to start.
func NewGenerateService(provider llm.LLMProvider, bus events.Bus, logger logger.ILogger) IGenerateService {
	return &generateService{
		provider: provider,
		bus:      bus,
		logger:   logger,
	}
}

func (s *generateService) Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, apperror.Validation("Missing prompt")
	}
	if s.provider == nil {
		return nil, apperror.New(apperror.KindUpstream, "No generation provider is configured on the server (set LLM_API_KEY or LLM_PROVIDER=ollama).")
	}

	history := make([]llm.Message, 0, len(req.History)+1)
	for _, turn := range req.History {
		history = append(history, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	history = append(history, llm.Message{Role: llm.RoleUser, Content: req.Prompt})

	text, err := s.provider.Chat(ctx, history, llm.WithSystemPrompt(constant.SystemInstruction))
	if err != nil {
		s.logger.Error("GENERATE", "Provider call failed", map[string]interface{}{
			"error": err,
		})
		// The raw provider text is kept so callers can tell key, permission
		// and quota problems apart.
		return nil, apperror.Wrap(apperror.KindUpstream, "", err)
	}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, events.New(events.ReplyGenerated, map[string]interface{}{
			"history_turns": len(req.History),
			"reply_chars":   len(text),
		})); err != nil {
			s.logger.Warn("GENERATE", "Failed to publish event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.GenerateResponse{Text: text}, nil
}
