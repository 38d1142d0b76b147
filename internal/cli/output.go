package cli

import (
	"fmt"
	"io"
	"strings"

	"eli5-bot/internal/conversation"
	"eli5-bot/internal/entity"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
)

var (
	titleColor  = color.New(color.FgMagenta, color.Bold)
	infoColor   = color.New(color.FgHiBlack)
	userColor   = color.New(color.FgWhite, color.Bold)
	modelColor  = color.New(color.FgCyan)
	errorColor  = color.New(color.FgRed)
	levelColor  = color.New(color.FgYellow)
	activeColor = color.New(color.FgGreen)
	promptColor = color.New(color.FgHiBlue)
)

// Printer writes the transcript. Model replies are rendered as markdown when
// a renderer is available.
type Printer struct {
	out io.Writer
	md  *glamour.TermRenderer
}

// NewPrinter renders markdown wrapped at width; width <= 0 prints replies as
// plain text.
func NewPrinter(out io.Writer, width int) *Printer {
	p := &Printer{out: out}
	if width > 0 {
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			p.md = md
		}
	}
	return p
}

func (p *Printer) Title(format string, args ...any) {
	titleColor.Fprintf(p.out, "== "+format+" ==\n", args...)
}

func (p *Printer) Info(format string, args ...any) {
	infoColor.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Error(format string, args ...any) {
	errorColor.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Message(m entity.Message) {
	switch m.Role {
	case entity.RoleUser:
		level := ""
		if m.Level != nil {
			level = levelColor.Sprintf(" [%s]", *m.Level)
		}
		userColor.Fprintf(p.out, "> %s", m.Content)
		fmt.Fprintln(p.out, level)
	case entity.RoleModel:
		if m.Content == "" {
			infoColor.Fprintln(p.out, "...")
			return
		}
		if conversation.IsErrorMessage(m) {
			errorColor.Fprintln(p.out, m.Content)
			return
		}
		p.markdown(m.Content)
	}
}

func (p *Printer) markdown(text string) {
	if p.md != nil {
		if rendered, err := p.md.Render(text); err == nil {
			fmt.Fprint(p.out, rendered)
			return
		}
	}
	modelColor.Fprintln(p.out, strings.TrimSpace(text))
}

// Transcript prints every message of the session.
func (p *Printer) Transcript(session entity.ChatSession) {
	p.Title("%s", session.Title)
	if len(session.Messages) == 0 {
		p.Info("No messages yet. Type something you want explained.")
		return
	}
	for _, m := range session.Messages {
		p.Message(m)
	}
}

func (p *Printer) Sessions(sessions []entity.ChatSession, activeId string) {
	if len(sessions) == 0 {
		p.Info("No explanations yet. Use /new or just type a question.")
		return
	}
	for i, s := range sessions {
		marker := "  "
		if s.Id == activeId {
			marker = activeColor.Sprint("* ")
		}
		fmt.Fprintf(p.out, "%s%d. %s ", marker, i+1, s.Title)
		infoColor.Fprintf(p.out, "(%d messages, %s)\n", len(s.Messages), s.LastUpdated.Format("Jan 2 15:04"))
	}
}
