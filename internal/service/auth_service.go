package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"eli5-bot/internal/constant"
	"eli5-bot/internal/dto"
	"eli5-bot/internal/entity"
	"eli5-bot/internal/pkg/logger"
	"eli5-bot/internal/repository/specification"
	"eli5-bot/internal/repository/unitofwork"
	"eli5-bot/pkg/apperror"
	"eli5-bot/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost matches the salt rounds accounts have always been hashed with.
const PasswordCost = 10

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, error)
	UserExists(ctx context.Context, userId uuid.UUID) (bool, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	bus        events.Bus
	logger     logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, bus events.Bus, logger logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		bus:        bus,
		logger:     logger,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := entity.NormalizeEmail(req.Email)
	if name == "" {
		return nil, apperror.Validation(constant.AuthErrorNameRequired)
	}
	if email == "" || req.Password == "" {
		return nil, apperror.Validation(constant.AuthErrorCredentialsMissing)
	}

	// 1. Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), PasswordCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	// 2. Check and insert in one transaction
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = uow.Rollback()
		}
	}()

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.AlreadyExists(constant.AuthErrorAlreadyExists)
	}

	// A concurrent registration loses on the unique index and comes back as
	// AlreadyExists from the repository.
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		if errors.Is(err, apperror.New(apperror.KindAlreadyExists, "")) {
			return nil, apperror.AlreadyExists(constant.AuthErrorAlreadyExists)
		}
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	committed = true

	s.publish(ctx, events.New(events.UserRegistered, map[string]interface{}{
		"user_id": user.Id.String(),
		"email":   user.Email,
	}))

	return toUserResponse(user), nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, error) {
	email := entity.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperror.Validation(constant.AuthErrorCredentialsMissing)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound(constant.AuthErrorNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.InvalidCredentials(constant.AuthErrorInvalidCredentials)
	}

	s.publish(ctx, events.New(events.UserSignedIn, map[string]interface{}{
		"user_id": user.Id.String(),
	}))

	return toUserResponse(user), nil
}

func (s *authService) UserExists(ctx context.Context, userId uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.UserRepository().Count(ctx, specification.ByID{ID: userId})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *authService) publish(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("AUTH", "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

func toUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Id:    user.Id,
		Email: user.Email,
		Name:  user.Name,
	}
}
