package service

import (
	"context"
	"sort"
	"sync"

	"eli5-bot/internal/entity"
	"eli5-bot/internal/repository/contract"
	"eli5-bot/internal/repository/specification"
	"eli5-bot/internal/repository/unitofwork"
	"eli5-bot/pkg/apperror"
	"eli5-bot/pkg/events"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the Postgres tables.
type fakeStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	sessions map[string]*entity.ChatSession
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[uuid.UUID]*entity.User{},
		sessions: map[string]*entity.ChatSession{},
	}
}

func (s *fakeStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: s}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeChatRepo{store: u.store}
}

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failWith != nil {
		return r.store.failWith
	}
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return apperror.AlreadyExists("duplicate key value violates unique constraint")
		}
	}
	cp := *user
	r.store.users[user.Id] = &cp
	return nil
}

func (r *fakeUserRepo) match(specs []specification.Specification) []*entity.User {
	var out []*entity.User
	for _, u := range r.store.users {
		ok := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.ByEmail:
				ok = ok && u.Email == s.Email
			case specification.ByID:
				ok = ok && s.ID == u.Id
			}
		}
		if ok {
			out = append(out, u)
		}
	}
	return out
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failWith != nil {
		return nil, r.store.failWith
	}
	found := r.match(specs)
	if len(found) == 0 {
		return nil, nil
	}
	cp := *found[0]
	return &cp, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.match(specs))), nil
}

type fakeChatRepo struct {
	store *fakeStore
}

func (r *fakeChatRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.sessions[session.Id]; ok {
		return apperror.AlreadyExists("duplicate key value violates unique constraint")
	}
	cp := session.Clone()
	r.store.sessions[session.Id] = &cp
	return nil
}

func (r *fakeChatRepo) Patch(ctx context.Context, id string, userId uuid.UUID, patch entity.ChatSessionPatch) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.sessions[id]
	if !ok || s.UserId != userId {
		return false, nil
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
	return true, nil
}

func (r *fakeChatRepo) Delete(ctx context.Context, id string, userId uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.sessions[id]
	if !ok || s.UserId != userId {
		return false, nil
	}
	delete(r.store.sessions, id)
	return true, nil
}

func (r *fakeChatRepo) filter(specs []specification.Specification) []*entity.ChatSession {
	var out []*entity.ChatSession
	for _, s := range r.store.sessions {
		ok := true
		for _, spec := range specs {
			switch sp := spec.(type) {
			case specification.UserOwnedBy:
				ok = ok && s.UserId == sp.UserID
			case specification.ByID:
				ok = ok && sp.ID == s.Id
			}
		}
		if ok {
			cp := s.Clone()
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastUpdated.Equal(out[j].LastUpdated) {
			return out[i].Id < out[j].Id
		}
		return out[i].LastUpdated.After(out[j].LastUpdated)
	})
	return out
}

func (r *fakeChatRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	found := r.filter(specs)
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failWith != nil {
		return nil, r.store.failWith
	}
	return r.filter(specs), nil
}

func (r *fakeChatRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.filter(specs))), nil
}

// recordingBus keeps published events in memory.
type recordingBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Subscribe(ctx context.Context, eventType, durable string, handler events.Handler) error {
	return nil
}

func (b *recordingBus) Close() error { return nil }

func (b *recordingBus) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.published))
	for _, e := range b.published {
		out = append(out, e.EventType())
	}
	return out
}
