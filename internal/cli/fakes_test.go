package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"eli5-bot/internal/config"
	"eli5-bot/internal/entity"
	"eli5-bot/internal/identity"
	"eli5-bot/internal/pkg/logger"
	"eli5-bot/internal/reply"
	"eli5-bot/pkg/apperror"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

type account struct {
	user     identity.User
	password string
}

// fakeBackend is an in-memory server: accounts keyed by email, sessions keyed
// by user then id.
type fakeBackend struct {
	mu       sync.Mutex
	accounts map[string]account
	sessions map[string]map[string]entity.ChatSession
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		accounts: map[string]account{},
		sessions: map[string]map[string]entity.ChatSession{},
	}
}

func (b *fakeBackend) SignIn(ctx context.Context, email, password string) (*identity.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[email]
	if !ok {
		return nil, apperror.NotFound("No account found with this email.")
	}
	if acc.password != password {
		return nil, apperror.InvalidCredentials("Incorrect password.")
	}
	u := acc.user
	return &u, nil
}

func (b *fakeBackend) Register(ctx context.Context, name, email, password string) (*identity.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.accounts[email]; ok {
		return nil, apperror.AlreadyExists("This email is already registered. Try signing in!")
	}
	u := identity.User{Id: uuid.NewString(), Email: email, Name: name}
	b.accounts[email] = account{user: u, password: password}
	return &u, nil
}

func (b *fakeBackend) ListSessions(ctx context.Context, userId string) ([]entity.ChatSession, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entity.ChatSession, 0)
	for _, s := range b.sessions[userId] {
		out = append(out, s.Clone())
	}
	return out, nil
}

func (b *fakeBackend) CreateSession(ctx context.Context, userId string, session entity.ChatSession) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sessions[userId] == nil {
		b.sessions[userId] = map[string]entity.ChatSession{}
	}
	b.sessions[userId][session.Id] = session.Clone()
	return nil
}

func (b *fakeBackend) UpdateSession(ctx context.Context, userId, id string, patch entity.ChatSessionPatch) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.sessions[userId][id]
	if !ok {
		return apperror.NotFound("Chat session not found.")
	}
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.Messages != nil {
		s.Messages = append([]entity.Message(nil), (*patch.Messages)...)
	}
	if patch.LastUpdated != nil {
		s.LastUpdated = *patch.LastUpdated
	}
	b.sessions[userId][id] = s
	return nil
}

func (b *fakeBackend) DeleteSession(ctx context.Context, userId, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.sessions[userId][id]; !ok {
		return apperror.NotFound("Chat session not found.")
	}
	delete(b.sessions[userId], id)
	return nil
}

// scriptedPrompter answers prompts from queues, in order.
type scriptedPrompter struct {
	inputs    []string
	passwords []string
	confirms  []bool
	selects   []int
	asked     []string
}

func (p *scriptedPrompter) Input(message string) (string, error) {
	p.asked = append(p.asked, message)
	if len(p.inputs) == 0 {
		return "", ErrAborted
	}
	v := p.inputs[0]
	p.inputs = p.inputs[1:]
	return v, nil
}

func (p *scriptedPrompter) Password(message string) (string, error) {
	p.asked = append(p.asked, message)
	if len(p.passwords) == 0 {
		return "", ErrAborted
	}
	v := p.passwords[0]
	p.passwords = p.passwords[1:]
	return v, nil
}

func (p *scriptedPrompter) Confirm(message string) (bool, error) {
	p.asked = append(p.asked, message)
	if len(p.confirms) == 0 {
		return false, ErrAborted
	}
	v := p.confirms[0]
	p.confirms = p.confirms[1:]
	return v, nil
}

func (p *scriptedPrompter) Select(message string, options []string) (int, error) {
	p.asked = append(p.asked, message)
	if len(p.selects) == 0 {
		return 0, ErrAborted
	}
	v := p.selects[0]
	p.selects = p.selects[1:]
	return v, nil
}

// lineScript feeds the REPL fixed lines, then io.EOF.
type lineScript struct {
	lines  []string
	closed bool
}

func (l *lineScript) Readline() (string, error) {
	if len(l.lines) == 0 {
		return "", io.EOF
	}
	line := l.lines[0]
	l.lines = l.lines[1:]
	return line, nil
}

func (l *lineScript) Close() error {
	l.closed = true
	return nil
}

type harness struct {
	app      *App
	backend  *fakeBackend
	prompter *scriptedPrompter
	out      *bytes.Buffer
	state    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	color.NoColor = true

	state := filepath.Join(t.TempDir(), "state.yaml")
	cfg := &config.Config{Client: config.ClientConfig{StateFile: state}}
	out := &bytes.Buffer{}
	backend := newFakeBackend()
	prompter := &scriptedPrompter{}
	app := NewApp(
		cfg,
		backend,
		reply.Canned{},
		identity.NewContext(identity.NewFileStore(state)),
		NewPrinter(out, 0),
		prompter,
		logger.NewNopLogger(),
	)
	return &harness{app: app, backend: backend, prompter: prompter, out: out, state: state}
}

// signedIn registers a user directly and returns a started shell.
func (h *harness) signedIn(t *testing.T) *Shell {
	t.Helper()
	user, err := h.app.Auth.Register(context.Background(), "Ada", "ada@example.com", "pw")
	if err != nil {
		t.Fatal(err)
	}
	shell := NewShell(h.app, user)
	shell.Start(context.Background())
	h.out.Reset()
	return shell
}
