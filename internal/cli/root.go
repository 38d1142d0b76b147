package cli

import (
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the eli5 command tree. Running it without a subcommand
// starts the chat.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "eli5",
		Short:         "Explain Like I'm 5: complex ideas in simple words",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.Identity.Load()
			return errors.Wrap(err, "loading identity")
		},
	}

	chat := newChatCmd(app)
	root.RunE = chat.RunE
	root.AddCommand(
		chat,
		newRegisterCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
	)
	return root
}

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, err := app.ensureUser(ctx)
			if errors.Is(err, ErrAborted) {
				return nil
			}
			if err != nil {
				return err
			}

			shell := NewShell(app, user)
			shell.Start(ctx)

			rl, err := readline.NewEx(&readline.Config{
				Prompt:            promptColor.Sprint("> "),
				InterruptPrompt:   "^C",
				EOFPrompt:         "/quit",
				HistoryFile:       filepath.Join(filepath.Dir(app.Config.Client.StateFile), "history"),
				HistorySearchFold: true,
			})
			if err != nil {
				return errors.Wrap(err, "opening terminal")
			}
			return shell.Run(ctx, rl)
		},
	}
}

func newRegisterCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.register(cmd.Context())
			if errors.Is(err, ErrAborted) {
				return nil
			}
			return err
		},
	}
}

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in to an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.signIn(cmd.Context())
			if errors.Is(err, ErrAborted) {
				return nil
			}
			return err
		},
	}
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.logout(); err != nil {
				return err
			}
			app.Printer.Info("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := app.Identity.Current()
			if user == nil {
				app.Printer.Info("Not signed in. Run eli5 login or eli5 register.")
				return nil
			}
			app.Printer.Line("%s <%s>", user.Name, user.Email)
			return nil
		},
	}
}
