// Package cli is the terminal client: auth commands and the chat REPL.
package cli

import (
	"context"

	"eli5-bot/internal/authflow"
	"eli5-bot/internal/config"
	"eli5-bot/internal/conversation"
	"eli5-bot/internal/identity"
	"eli5-bot/internal/pkg/logger"
	"eli5-bot/internal/reply"
	"eli5-bot/internal/sessionstore"
)

// Backend is the remote side of the client: accounts and session storage.
type Backend interface {
	authflow.Authenticator
	sessionstore.Remote
}

type App struct {
	Config   *config.Config
	Identity *identity.Context
	Auth     *authflow.Flow
	Sessions *sessionstore.Store
	View     *conversation.View
	Printer  *Printer
	Prompter Prompter
	Log      logger.ILogger
}

func NewApp(
	cfg *config.Config,
	backend Backend,
	generator reply.Generator,
	ident *identity.Context,
	printer *Printer,
	prompter Prompter,
	log logger.ILogger,
) *App {
	sessions := sessionstore.New(backend, log)
	return &App{
		Config:   cfg,
		Identity: ident,
		Auth:     authflow.New(backend, ident, log),
		Sessions: sessions,
		View:     conversation.NewView(sessions, generator, log),
		Printer:  printer,
		Prompter: prompter,
		Log:      log,
	}
}

// signIn runs the sign in form until it succeeds or the user gives up.
func (a *App) signIn(ctx context.Context) (*identity.User, error) {
	for {
		email, err := a.Prompter.Input("Email:")
		if err != nil {
			return nil, err
		}
		password, err := a.Prompter.Password("Password:")
		if err != nil {
			return nil, err
		}

		user, err := a.Auth.SignIn(ctx, email, password)
		if err == nil {
			a.Printer.Info("Welcome back, %s.", user.Name)
			return user, nil
		}
		if !a.retry(err) {
			return nil, ErrAborted
		}
	}
}

// register runs the sign up form until it succeeds or the user gives up.
func (a *App) register(ctx context.Context) (*identity.User, error) {
	for {
		name, err := a.Prompter.Input("Name:")
		if err != nil {
			return nil, err
		}
		email, err := a.Prompter.Input("Email:")
		if err != nil {
			return nil, err
		}
		password, err := a.Prompter.Password("Password:")
		if err != nil {
			return nil, err
		}

		user, err := a.Auth.Register(ctx, name, email, password)
		if err == nil {
			a.Printer.Info("Welcome, %s.", user.Name)
			return user, nil
		}
		if !a.retry(err) {
			return nil, ErrAborted
		}
	}
}

func (a *App) retry(err error) bool {
	a.Printer.Error("%s", authflow.UserMessage(err))
	again, perr := a.Prompter.Confirm("Try again?")
	return perr == nil && again
}

// ensureUser returns the persisted user, or routes to the auth form.
func (a *App) ensureUser(ctx context.Context) (*identity.User, error) {
	if user := a.Identity.Current(); user != nil {
		return user, nil
	}
	choice, err := a.Prompter.Select("Welcome to ELI5 Bot", []string{"Sign in", "Create an account"})
	if err != nil {
		return nil, err
	}
	if choice == 1 {
		return a.register(ctx)
	}
	return a.signIn(ctx)
}

// logout forgets the identity and all session state.
func (a *App) logout() error {
	a.Sessions.Reset()
	return a.Auth.SignOut()
}
