package sessionstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"eli5-bot/internal/entity"
	"eli5-bot/pkg/apperror"
)

var errRemoteDown = apperror.Wrap(apperror.KindConnectivity, "", errors.New("dial tcp: connection refused"))

// memoryRemote behaves like the REST store, keyed by user then session id.
type memoryRemote struct {
	mu       sync.Mutex
	sessions map[string]map[string]entity.ChatSession
	fail     map[string]bool // method name -> fail

	inFlight    map[string]int
	maxInFlight int
	delay       time.Duration
}

func newMemoryRemote() *memoryRemote {
	return &memoryRemote{
		sessions: map[string]map[string]entity.ChatSession{},
		fail:     map[string]bool{},
		inFlight: map[string]int{},
	}
}

func (r *memoryRemote) failing(method string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fail[method]
}

func (r *memoryRemote) setFail(method string, fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[method] = fail
}

func (r *memoryRemote) ListSessions(ctx context.Context, userId string) ([]entity.ChatSession, error) {
	if r.failing("ListSessions") {
		return nil, errRemoteDown
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.ChatSession, 0)
	for _, s := range r.sessions[userId] {
		out = append(out, s.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastUpdated.Equal(out[j].LastUpdated) {
			return out[i].Id < out[j].Id
		}
		return out[i].LastUpdated.After(out[j].LastUpdated)
	})
	return out, nil
}

func (r *memoryRemote) CreateSession(ctx context.Context, userId string, session entity.ChatSession) error {
	if r.failing("CreateSession") {
		return errRemoteDown
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[userId] == nil {
		r.sessions[userId] = map[string]entity.ChatSession{}
	}
	if _, ok := r.sessions[userId][session.Id]; ok {
		return apperror.AlreadyExists("duplicate session id")
	}
	r.sessions[userId][session.Id] = session.Clone()
	return nil
}

func (r *memoryRemote) UpdateSession(ctx context.Context, userId, id string, patch entity.ChatSessionPatch) error {
	if r.failing("UpdateSession") {
		return errRemoteDown
	}
	r.mu.Lock()
	r.inFlight[id]++
	if r.inFlight[id] > r.maxInFlight {
		r.maxInFlight = r.inFlight[id]
	}
	delay := r.delay
	r.mu.Unlock()

	time.Sleep(delay)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inFlight[id]--
	s, ok := r.sessions[userId][id]
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
	r.sessions[userId][id] = s
	return nil
}

func (r *memoryRemote) DeleteSession(ctx context.Context, userId, id string) error {
	if r.failing("DeleteSession") {
		return errRemoteDown
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[userId][id]; !ok {
		return apperror.NotFound("Chat session not found.")
	}
	delete(r.sessions[userId], id)
	return nil
}

// stepClock advances one millisecond per reading.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.UnixMilli(1_700_000_000_000)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

// frozenClock always reports the same instant.
func frozenClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
