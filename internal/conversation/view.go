// Package conversation drives one exchange: the user's message, a pending
// placeholder, and the model's reply.
package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"eli5-bot/internal/entity"
	"eli5-bot/internal/pkg/logger"
	"eli5-bot/internal/reply"

	"github.com/google/uuid"
)

// SessionStore is the part of sessionstore.Store a view writes through.
type SessionStore interface {
	Session(id string) (entity.ChatSession, bool)
	AppendMessages(ctx context.Context, sessionId string, messages []entity.Message) error
}

type View struct {
	store     SessionStore
	generator reply.Generator
	log       logger.ILogger
	now       func() time.Time
	newID     func() string

	mu      sync.Mutex
	pending bool
}

type Option func(*View)

func WithClock(now func() time.Time) Option {
	return func(v *View) { v.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(v *View) { v.newID = newID }
}

func NewView(store SessionStore, generator reply.Generator, log logger.ILogger, opts ...Option) *View {
	v := &View{
		store:     store,
		generator: generator,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *View) Pending() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending
}

func (v *View) begin() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pending {
		return false
	}
	v.pending = true
	return true
}

func (v *View) end() {
	v.mu.Lock()
	v.pending = false
	v.mu.Unlock()
}

// Send posts text to the session and waits for the reply. Each stage is
// written as the complete message list. It returns the model message that
// ended the exchange, and false when nothing was sent because text was
// blank, another send is pending, or the session is unknown.
func (v *View) Send(ctx context.Context, sessionId string, level entity.ReadingLevel, text string) (entity.Message, bool) {
	if strings.TrimSpace(text) == "" {
		return entity.Message{}, false
	}
	if !v.begin() {
		return entity.Message{}, false
	}
	defer v.end()

	session, ok := v.store.Session(sessionId)
	if !ok {
		return entity.Message{}, false
	}
	prior := session.Messages

	lvl := level
	userMessage := entity.Message{
		Id:        v.newID(),
		Role:      entity.RoleUser,
		Content:   text,
		Timestamp: v.now().UnixMilli(),
		Level:     &lvl,
	}
	withUser := appendCopy(prior, userMessage)
	v.save(ctx, sessionId, withUser)

	placeholder := entity.Message{
		Id:        v.newID(),
		Role:      entity.RoleModel,
		Content:   "",
		Timestamp: v.now().UnixMilli(),
	}
	v.save(ctx, sessionId, appendCopy(withUser, placeholder))

	history := make([]reply.Turn, 0, len(prior))
	for _, m := range prior {
		history = append(history, reply.Turn{Role: string(m.Role), Content: m.Content})
	}

	answer, err := v.generator.Generate(ctx, reply.Request{Prompt: text, History: history})
	if err != nil {
		v.log.Error("CONVERSATION", "Failed to generate reply", map[string]interface{}{
			"session_id": sessionId,
			"failure":    string(reply.Classify(err)),
			"error":      err,
		})
		answer = reply.DiagnosticText(err)
	}

	final := placeholder
	final.Content = answer
	final.Timestamp = v.now().UnixMilli()
	v.save(ctx, sessionId, appendCopy(withUser, final))

	return final, true
}

// save failures are logged by the store; the exchange carries on.
func (v *View) save(ctx context.Context, sessionId string, messages []entity.Message) {
	if err := v.store.AppendMessages(ctx, sessionId, messages); err != nil {
		v.log.Warn("CONVERSATION", "Message list not saved", map[string]interface{}{
			"session_id": sessionId,
			"messages":   len(messages),
		})
	}
}

func appendCopy(messages []entity.Message, m entity.Message) []entity.Message {
	out := make([]entity.Message, 0, len(messages)+1)
	out = append(out, messages...)
	return append(out, m)
}

// IsErrorMessage marks model messages that carry a failure notice.
func IsErrorMessage(m entity.Message) bool {
	return m.Role == entity.RoleModel && strings.Contains(m.Content, "Error")
}
