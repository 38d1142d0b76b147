// Package authflow signs users in or up and remembers who is signed in.
package authflow

import (
	"context"
	"strings"

	"eli5-bot/internal/constant"
	"eli5-bot/internal/entity"
	"eli5-bot/internal/identity"
	"eli5-bot/internal/pkg/logger"
	"eli5-bot/pkg/apperror"
)

type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*identity.User, error)
	Register(ctx context.Context, name, email, password string) (*identity.User, error)
}

type Flow struct {
	auth     Authenticator
	identity *identity.Context
	log      logger.ILogger
}

func New(auth Authenticator, ident *identity.Context, log logger.ILogger) *Flow {
	return &Flow{auth: auth, identity: ident, log: log}
}

func (f *Flow) SignIn(ctx context.Context, email, password string) (*identity.User, error) {
	email = entity.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperror.Validation(constant.AuthErrorCredentialsMissing)
	}

	user, err := f.auth.SignIn(ctx, email, password)
	if err != nil {
		f.log.Warn("AUTH_FLOW", "Sign in failed", map[string]interface{}{
			"kind":  string(apperror.KindOf(err)),
			"error": err.Error(),
		})
		return nil, err
	}
	return user, f.remember(user)
}

func (f *Flow) Register(ctx context.Context, name, email, password string) (*identity.User, error) {
	name = strings.TrimSpace(name)
	email = entity.NormalizeEmail(email)
	if name == "" {
		return nil, apperror.Validation(constant.AuthErrorNameRequired)
	}
	if email == "" || password == "" {
		return nil, apperror.Validation(constant.AuthErrorCredentialsMissing)
	}

	user, err := f.auth.Register(ctx, name, email, password)
	if err != nil {
		f.log.Warn("AUTH_FLOW", "Registration failed", map[string]interface{}{
			"kind":  string(apperror.KindOf(err)),
			"error": err.Error(),
		})
		return nil, err
	}
	return user, f.remember(user)
}

func (f *Flow) SignOut() error {
	return f.identity.Clear()
}

func (f *Flow) remember(user *identity.User) error {
	if err := f.identity.Save(user); err != nil {
		f.log.Error("AUTH_FLOW", "Failed to persist identity", map[string]interface{}{"error": err})
		return err
	}
	f.log.Info("AUTH_FLOW", "Signed in", map[string]interface{}{"user_id": user.Id})
	return nil
}

// UserMessage is the inline text shown in the auth form for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch apperror.KindOf(err) {
	case apperror.KindConnectivity:
		return constant.AuthErrorConnectivity
	case apperror.KindSchema:
		return constant.AuthErrorSchemaMissing
	case apperror.KindNotFound:
		return constant.AuthErrorNotFound
	case apperror.KindInvalidCredentials:
		return constant.AuthErrorInvalidCredentials
	case apperror.KindAlreadyExists:
		return constant.AuthErrorAlreadyExists
	}
	if msg := strings.TrimSpace(apperror.MessageOf(err)); msg != "" {
		return msg
	}
	return constant.AuthErrorUnexpected
}
