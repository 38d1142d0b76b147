package unitofwork

import (
	"context"

	"eli5-bot/internal/repository/contract"
)

// RepositoryFactory hands out a fresh UnitOfWork per request.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}

// UnitOfWork groups the repositories that may share one transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatSessionRepository() contract.ChatSessionRepository
}
