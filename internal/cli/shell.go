package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"eli5-bot/internal/constant"
	"eli5-bot/internal/entity"
	"eli5-bot/internal/identity"

	"github.com/chzyer/readline"
)

const helpText = `Commands:
  /new              start a new explanation
  /list             list your explanations
  /open <n>         switch to explanation n
  /rename <title>   rename the current explanation
  /delete [n]       delete explanation n (default: current)
  /level [name]     show or set the reading level (toddler, child, teen, adult, skeptic)
  /examples [n]     list example questions, or start example n
  /history          print the current explanation
  /logout           sign out
  /quit             leave
Anything else is sent as a question.`

// Shell is the chat REPL for one signed-in user.
type Shell struct {
	app   *App
	user  *identity.User
	level entity.ReadingLevel
}

func NewShell(app *App, user *identity.User) *Shell {
	return &Shell{app: app, user: user, level: entity.DefaultLevel}
}

// Start loads the user's sessions and prints the active one.
func (s *Shell) Start(ctx context.Context) {
	p := s.app.Printer
	// Failures are logged by the store; the user starts with an empty list.
	_, _ = s.app.Sessions.Load(ctx, s.user.Id)
	p.Title("ELI5 Bot | %s | %s", s.user.Name, s.level)
	if session, ok := s.app.Sessions.Active(); ok {
		p.Transcript(session)
	} else {
		s.examples()
	}
	p.Info("Type /help for commands.")
}

// Run reads lines until /quit, /logout or end of input.
func (s *Shell) Run(ctx context.Context, in LineReader) error {
	defer in.Close()
	for {
		line, err := in.Readline()
		if err == readline.ErrInterrupt {
			if line == "" {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := s.Handle(ctx, line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// Handle runs one line of input and reports whether the REPL should stop.
func (s *Shell) Handle(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, "/") {
		s.ask(ctx, line)
		return false, nil
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	p := s.app.Printer

	switch cmd {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		p.Line(helpText)
	case "/new":
		s.newSession(ctx)
	case "/list":
		p.Sessions(s.app.Sessions.Sessions(), s.app.Sessions.ActiveID())
	case "/open":
		session, ok := s.pick(arg)
		if !ok {
			return false, nil
		}
		s.app.Sessions.SetActive(session.Id)
		p.Transcript(session)
	case "/rename":
		s.rename(ctx, arg)
	case "/delete":
		s.delete(ctx, arg)
	case "/level":
		s.setLevel(arg)
	case "/examples":
		if arg == "" {
			s.examples()
			return false, nil
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(constant.ExampleStarters) {
			p.Error("Pick an example between 1 and %d.", len(constant.ExampleStarters))
			return false, nil
		}
		if s.newSession(ctx) {
			s.ask(ctx, constant.ExampleStarters[n-1])
		}
	case "/history":
		if session, ok := s.app.Sessions.Active(); ok {
			p.Transcript(session)
		} else {
			p.Info("No explanation is open.")
		}
	case "/logout":
		if err := s.app.logout(); err != nil {
			return true, err
		}
		p.Info("Signed out.")
		return true, nil
	default:
		p.Error("Unknown command %s. Type /help for commands.", cmd)
	}
	return false, nil
}

func (s *Shell) newSession(ctx context.Context) bool {
	session, err := s.app.Sessions.CreateSession(ctx, s.user.Id)
	if err != nil {
		return false
	}
	s.app.Printer.Title("%s", session.Title)
	return true
}

// ask sends text to the active session, starting one if none is open.
func (s *Shell) ask(ctx context.Context, text string) {
	id := s.app.Sessions.ActiveID()
	if id == "" {
		if !s.newSession(ctx) {
			return
		}
		id = s.app.Sessions.ActiveID()
	}

	p := s.app.Printer
	p.Info("Thinking...")
	answer, sent := s.app.View.Send(ctx, id, s.level, text)
	if !sent {
		p.Error("Still waiting on the previous answer.")
		return
	}
	p.Message(answer)
}

// pick resolves a 1-based position in the session list.
func (s *Shell) pick(arg string) (entity.ChatSession, bool) {
	sessions := s.app.Sessions.Sessions()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(sessions) {
		s.app.Printer.Error("Pick an explanation between 1 and %d (see /list).", len(sessions))
		return entity.ChatSession{}, false
	}
	return sessions[n-1], true
}

func (s *Shell) rename(ctx context.Context, title string) {
	id := s.app.Sessions.ActiveID()
	if id == "" {
		s.app.Printer.Error("No explanation is open.")
		return
	}
	if strings.TrimSpace(title) == "" {
		s.app.Printer.Error("Usage: /rename <title>")
		return
	}
	if err := s.app.Sessions.RenameSession(ctx, id, title); err != nil {
		return
	}
	s.app.Printer.Info("Renamed to %q.", strings.TrimSpace(title))
}

func (s *Shell) delete(ctx context.Context, arg string) {
	var session entity.ChatSession
	if arg == "" {
		active, ok := s.app.Sessions.Active()
		if !ok {
			s.app.Printer.Error("No explanation is open.")
			return
		}
		session = active
	} else {
		picked, ok := s.pick(arg)
		if !ok {
			return
		}
		session = picked
	}

	confirm, err := s.app.Prompter.Confirm("Delete \"" + session.Title + "\"?")
	if err != nil || !confirm {
		return
	}
	if err := s.app.Sessions.DeleteSession(ctx, session.Id); err != nil {
		return
	}
	s.app.Printer.Info("Deleted %q.", session.Title)
}

func (s *Shell) setLevel(arg string) {
	p := s.app.Printer
	if arg == "" {
		p.Info("Current level: %s", s.level)
		for _, level := range entity.ReadingLevels {
			p.Line("  %s: %s", level, constant.ReadingLevelPrompts[string(level)])
		}
		return
	}
	level, ok := entity.ParseReadingLevel(arg)
	if !ok {
		p.Error("Unknown level %q. Try toddler, child, teen, adult or skeptic.", arg)
		return
	}
	s.level = level
	p.Info("Reading level set to %s.", level)
}

func (s *Shell) examples() {
	s.app.Printer.Info("Try one of these with /examples <n>:")
	for i, example := range constant.ExampleStarters {
		s.app.Printer.Line("  %d. %s", i+1, example)
	}
}

// Level reports the reading level attached to new questions.
func (s *Shell) Level() entity.ReadingLevel {
	return s.level
}
