package sessionstore

import (
	"context"

	"eli5-bot/internal/entity"

	"github.com/stretchr/testify/mock"
)

type mockRemote struct {
	mock.Mock
}

func (m *mockRemote) ListSessions(ctx context.Context, userId string) ([]entity.ChatSession, error) {
	args := m.Called(ctx, userId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ChatSession), args.Error(1)
}

func (m *mockRemote) CreateSession(ctx context.Context, userId string, session entity.ChatSession) error {
	return m.Called(ctx, userId, session).Error(0)
}

func (m *mockRemote) UpdateSession(ctx context.Context, userId, id string, patch entity.ChatSessionPatch) error {
	return m.Called(ctx, userId, id, patch).Error(0)
}

func (m *mockRemote) DeleteSession(ctx context.Context, userId, id string) error {
	return m.Called(ctx, userId, id).Error(0)
}
