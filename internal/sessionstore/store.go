// Package sessionstore holds the signed-in user's chat sessions in memory and
// keeps them in step with the remote store.
//
// Every write goes to the remote store first; local state changes only after
// the remote write succeeded. Sessions are kept sorted by LastUpdated, most
// recent first, using a stable sort so ties keep their relative order.
package sessionstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"eli5-bot/internal/entity"
	"eli5-bot/internal/pkg/logger"
	"eli5-bot/pkg/apperror"

	"github.com/google/uuid"
)

const (
	titleMaxRunes  = 30
	titleKeepRunes = 27
)

var ErrNoUser = errors.New("sessionstore: no user loaded")

// Remote is the persistent copy of a user's sessions.
type Remote interface {
	// ListSessions returns the user's sessions, most recent first.
	ListSessions(ctx context.Context, userId string) ([]entity.ChatSession, error)
	CreateSession(ctx context.Context, userId string, session entity.ChatSession) error
	UpdateSession(ctx context.Context, userId, id string, patch entity.ChatSessionPatch) error
	DeleteSession(ctx context.Context, userId, id string) error
}

type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces uuid.NewString for new session ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

type Store struct {
	remote Remote
	log    logger.ILogger
	now    func() time.Time
	newID  func() string

	mu       sync.Mutex
	userId   string
	sessions []entity.ChatSession
	activeId string

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func New(remote Remote, log logger.ILogger, opts ...Option) *Store {
	s := &Store{
		remote: remote,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
		locks:  map[string]*sync.Mutex{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// sessionLock serialises writes for one session.
func (s *Store) sessionLock(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// timestamp is the current time at the millisecond precision the remote
// store keeps.
func (s *Store) timestamp() time.Time {
	return time.UnixMilli(s.now().UnixMilli())
}

func (s *Store) indexOf(id string) int {
	for i := range s.sessions {
		if s.sessions[i].Id == id {
			return i
		}
	}
	return -1
}

func (s *Store) sortLocked() {
	sort.SliceStable(s.sessions, func(i, j int) bool {
		return s.sessions[i].LastUpdated.After(s.sessions[j].LastUpdated)
	})
}

// Load replaces local state with the user's sessions and activates the most
// recent one. On failure local state is left empty.
func (s *Store) Load(ctx context.Context, userId string) ([]entity.ChatSession, error) {
	sessions, err := s.remote.ListSessions(ctx, userId)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.userId = userId
	s.sessions = nil
	s.activeId = ""
	if err != nil {
		s.log.Error("SESSION_STORE", "Failed to load sessions", map[string]interface{}{
			"user_id": userId,
			"error":   err,
		})
		return nil, err
	}

	s.sessions = make([]entity.ChatSession, 0, len(sessions))
	for _, session := range sessions {
		s.sessions = append(s.sessions, session.Clone())
	}
	s.sortLocked()
	if len(s.sessions) > 0 {
		s.activeId = s.sessions[0].Id
	}
	return s.snapshotLocked(), nil
}

// CreateSession writes a fresh session remotely, then prepends and activates
// it. Nothing changes locally if the remote write fails.
func (s *Store) CreateSession(ctx context.Context, userId string) (entity.ChatSession, error) {
	s.mu.Lock()
	if userId == "" {
		userId = s.userId
	}
	if userId == "" {
		s.mu.Unlock()
		return entity.ChatSession{}, ErrNoUser
	}
	id := s.newID()
	for s.indexOf(id) >= 0 {
		id = s.newID()
	}
	s.mu.Unlock()

	session := entity.ChatSession{
		Id:          id,
		Title:       entity.DefaultSessionTitle,
		Messages:    []entity.Message{},
		LastUpdated: s.timestamp(),
	}

	if err := s.remote.CreateSession(ctx, userId, session); err != nil {
		s.log.Error("SESSION_STORE", "Failed to create session", map[string]interface{}{
			"user_id": userId,
			"error":   err,
		})
		return entity.ChatSession{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.userId = userId
	s.sessions = append([]entity.ChatSession{session.Clone()}, s.sessions...)
	s.activeId = session.Id
	return session, nil
}

// DeleteSession removes the session remotely and then locally. The active
// session is cleared, not replaced, when it is the one deleted.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	userId := s.userId
	s.mu.Unlock()

	err := s.remote.DeleteSession(ctx, userId, id)
	// Already gone remotely is as good as deleted.
	if err != nil && apperror.KindOf(err) != apperror.KindNotFound {
		s.log.Error("SESSION_STORE", "Failed to delete session", map[string]interface{}{
			"session_id": id,
			"error":      err,
		})
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
	}
	if s.activeId == id {
		s.activeId = ""
	}
	return nil
}

// RenameSession stores the trimmed title. A blank title is ignored.
func (s *Store) RenameSession(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	userId := s.userId
	known := s.indexOf(id) >= 0
	s.mu.Unlock()
	if !known {
		return nil
	}

	if err := s.remote.UpdateSession(ctx, userId, id, entity.ChatSessionPatch{Title: &title}); err != nil {
		s.log.Error("SESSION_STORE", "Failed to rename session", map[string]interface{}{
			"session_id": id,
			"error":      err,
		})
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.sessions[i].Title = title
	}
	return nil
}

// AppendMessages replaces the session's whole message list with messages.
// Callers pass the previous messages plus the additions. While the title is
// still the default it is derived from the first message.
func (s *Store) AppendMessages(ctx context.Context, sessionId string, messages []entity.Message) error {
	lock := s.sessionLock(sessionId)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	i := s.indexOf(sessionId)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	userId := s.userId
	title := DeriveTitle(s.sessions[i].Title, messages)
	s.mu.Unlock()

	lastUpdated := s.timestamp()
	list := make([]entity.Message, len(messages))
	copy(list, messages)

	patch := entity.ChatSessionPatch{
		Title:       &title,
		Messages:    &list,
		LastUpdated: &lastUpdated,
	}
	if err := s.remote.UpdateSession(ctx, userId, sessionId, patch); err != nil {
		s.log.Error("SESSION_STORE", "Failed to save messages", map[string]interface{}{
			"session_id": sessionId,
			"messages":   len(messages),
			"error":      err,
		})
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(sessionId); i >= 0 {
		s.sessions[i].Messages = list
		s.sessions[i].Title = title
		s.sessions[i].LastUpdated = lastUpdated
		s.sortLocked()
	}
	return nil
}

// DeriveTitle returns the title a session gets after its messages become
// messages. Lengths are counted in runes.
func DeriveTitle(current string, messages []entity.Message) string {
	if current != entity.DefaultSessionTitle || len(messages) == 0 {
		return current
	}
	content := messages[0].Content
	if utf8.RuneCountInString(content) > titleMaxRunes {
		return string([]rune(content)[:titleKeepRunes]) + "..."
	}
	return content
}

func (s *Store) SetActive(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return false
	}
	s.activeId = id
	return true
}

// Active returns the active session, if one is set.
func (s *Store) Active() (entity.ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(s.activeId); i >= 0 {
		return s.sessions[i].Clone(), true
	}
	return entity.ChatSession{}, false
}

func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeId
}

func (s *Store) Session(id string) (entity.ChatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.sessions[i].Clone(), true
	}
	return entity.ChatSession{}, false
}

// Sessions returns a copy of the sessions in display order.
func (s *Store) Sessions() []entity.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() []entity.ChatSession {
	out := make([]entity.ChatSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session.Clone())
	}
	return out
}

// Reset forgets the user and all local state, as on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userId = ""
	s.sessions = nil
	s.activeId = ""
}
