// Package reply produces the model's answer to a user message.
package reply

import (
	"context"
	"strings"

	"eli5-bot/internal/config"
	"eli5-bot/internal/constant"
	"eli5-bot/internal/dto"
	"eli5-bot/pkg/apperror"
	"eli5-bot/pkg/llm"
	"eli5-bot/pkg/llm/factory"
)

const (
	ModeCanned = "canned"
	ModeLive   = "live"
)

type Turn struct {
	Role    string
	Content string
}

type Request struct {
	Prompt  string
	History []Turn
}

type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Canned answers every prompt with the same quantum computing explanation.
type Canned struct{}

func (Canned) Generate(ctx context.Context, req Request) (string, error) {
	return constant.CannedReply, nil
}

// Direct calls the LLM provider itself. Only processes allowed to hold the
// provider secret use it.
type Direct struct {
	provider llm.LLMProvider
}

func NewDirect(provider llm.LLMProvider) *Direct {
	return &Direct{provider: provider}
}

func (d *Direct) Generate(ctx context.Context, req Request) (string, error) {
	history := make([]llm.Message, 0, len(req.History)+1)
	for _, turn := range req.History {
		history = append(history, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	history = append(history, llm.Message{Role: llm.RoleUser, Content: req.Prompt})

	text, err := d.provider.Chat(ctx, history, llm.WithSystemPrompt(constant.SystemInstruction))
	if err != nil {
		return "", apperror.Wrap(apperror.KindUpstream, "", err)
	}
	return text, nil
}

// ProxyTransport posts a generation request to the server.
type ProxyTransport interface {
	Generate(ctx context.Context, req dto.GenerateRequest) (string, error)
}

// Proxy leaves the secret on the server and goes through /api/generate.
type Proxy struct {
	transport ProxyTransport
}

func NewProxy(transport ProxyTransport) *Proxy {
	return &Proxy{transport: transport}
}

func (p *Proxy) Generate(ctx context.Context, req Request) (string, error) {
	body := dto.GenerateRequest{
		Prompt:  req.Prompt,
		History: make([]dto.GenerateTurn, 0, len(req.History)),
	}
	for _, turn := range req.History {
		body.History = append(body.History, dto.GenerateTurn{Role: turn.Role, Content: turn.Content})
	}
	return p.transport.Generate(ctx, body)
}

// Select picks the generator once at startup. Canned is the default; live
// mode calls the provider directly when this process may hold the secret,
// otherwise it goes through the server.
func Select(cfg *config.Config, transport ProxyTransport) (Generator, error) {
	if strings.ToLower(cfg.Client.ReplyMode) != ModeLive {
		return Canned{}, nil
	}

	keyless := factory.KeylessProviders[strings.ToLower(cfg.Ai.LLMProvider)]
	if keyless || (cfg.Client.Trusted && cfg.Keys.LLM != "") {
		provider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.LLMBaseURL, cfg.Keys.LLM)
		if err != nil {
			return nil, err
		}
		return NewDirect(provider), nil
	}
	return NewProxy(transport), nil
}
