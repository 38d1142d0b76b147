package controller

import (
	"context"

	"eli5-bot/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *mockAuthService) UserExists(ctx context.Context, userId uuid.UUID) (bool, error) {
	args := m.Called(ctx, userId)
	return args.Bool(0), args.Error(1)
}

type mockChatService struct {
	mock.Mock
}

func (m *mockChatService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSessionDTO, error) {
	args := m.Called(ctx, userId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dto.ChatSessionDTO), args.Error(1)
}

func (m *mockChatService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatSessionDTO, error) {
	args := m.Called(ctx, userId, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChatSessionDTO), args.Error(1)
}

func (m *mockChatService) Patch(ctx context.Context, userId uuid.UUID, id string, req *dto.PatchChatRequest) error {
	return m.Called(ctx, userId, id, req).Error(0)
}

func (m *mockChatService) Delete(ctx context.Context, userId uuid.UUID, id string) error {
	return m.Called(ctx, userId, id).Error(0)
}

type mockGenerateService struct {
	mock.Mock
}

func (m *mockGenerateService) Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GenerateResponse), args.Error(1)
}
