package cli

import (
	"context"
	"testing"

	"eli5-bot/internal/constant"
	"eli5-bot/internal/entity"
	"eli5-bot/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskStartsSessionAndPrintsReply(t *testing.T) {
	h := newHarness(t)
	shell := h.signedIn(t)
	ctx := context.Background()

	quit, err := shell.Handle(ctx, "Why is the sky blue?")
	require.NoError(t, err)
	assert.False(t, quit)

	sessions := h.app.Sessions.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, "Why is the sky blue?", sessions[0].Title)
	require.Len(t, sessions[0].Messages, 2)
	assert.Equal(t, entity.RoleUser, sessions[0].Messages[0].Role)
	assert.Equal(t, constant.CannedReply, sessions[0].Messages[1].Content)
	assert.Contains(t, h.out.String(), "Quantum computing is like a magical playground")
}

func TestExampleStartsNewSession(t *testing.T) {
	h := newHarness(t)
	shell := h.signedIn(t)
	ctx := context.Background()

	_, err := shell.Handle(ctx, "first question")
	require.NoError(t, err)
	_, err = shell.Handle(ctx, "/examples 3")
	require.NoError(t, err)

	sessions := h.app.Sessions.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, "What is inflation?", sessions[0].Title)
	assert.Equal(t, sessions[0].Id, h.app.Sessions.ActiveID())

	h.out.Reset()
	_, err = shell.Handle(ctx, "/examples 9")
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "Pick an example between 1 and 4.")
	assert.Len(t, h.app.Sessions.Sessions(), 2)
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	h := newHarness(t)
	shell := h.signedIn(t)
	ctx := context.Background()

	_, err := shell.Handle(ctx, "/new")
	require.NoError(t, err)
	require.Len(t, h.app.Sessions.Sessions(), 1)

	h.prompter.confirms = []bool{false}
	_, err = shell.Handle(ctx, "/delete")
	require.NoError(t, err)
	assert.Len(t, h.app.Sessions.Sessions(), 1)
	assert.Contains(t, h.prompter.asked, `Delete "New Explanation"?`)

	h.prompter.confirms = []bool{true}
	_, err = shell.Handle(ctx, "/delete 1")
	require.NoError(t, err)
	assert.Empty(t, h.app.Sessions.Sessions())
	assert.Empty(t, h.app.Sessions.ActiveID())
}

func TestLevelIsAttachedToQuestions(t *testing.T) {
	h := newHarness(t)
	shell := h.signedIn(t)
	ctx := context.Background()

	assert.Equal(t, entity.LevelChild, shell.Level())

	_, err := shell.Handle(ctx, "/level teen")
	require.NoError(t, err)
	assert.Equal(t, entity.LevelTeen, shell.Level())

	_, err = shell.Handle(ctx, "/level wizard")
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), `Unknown level "wizard"`)
	assert.Equal(t, entity.LevelTeen, shell.Level())

	_, err = shell.Handle(ctx, "How do magnets work?")
	require.NoError(t, err)
	active, ok := h.app.Sessions.Active()
	require.True(t, ok)
	require.NotNil(t, active.Messages[0].Level)
	assert.Equal(t, entity.LevelTeen, *active.Messages[0].Level)

	h.out.Reset()
	_, err = shell.Handle(ctx, "/level")
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), constant.ReadingLevelPrompts[string(entity.LevelSkeptic)])
}

func TestRenameAndOpen(t *testing.T) {
	h := newHarness(t)
	shell := h.signedIn(t)
	ctx := context.Background()

	_, err := shell.Handle(ctx, "older question")
	require.NoError(t, err)
	_, err = shell.Handle(ctx, "/new")
	require.NoError(t, err)

	_, err = shell.Handle(ctx, "/rename   Stars and planets  ")
	require.NoError(t, err)
	active, ok := h.app.Sessions.Active()
	require.True(t, ok)
	assert.Equal(t, "Stars and planets", active.Title)

	_, err = shell.Handle(ctx, "/open 2")
	require.NoError(t, err)
	active, ok = h.app.Sessions.Active()
	require.True(t, ok)
	assert.Equal(t, "older question", active.Title)

	h.out.Reset()
	_, err = shell.Handle(ctx, "/open 7")
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "Pick an explanation between 1 and 2")
}

func TestLogoutClearsIdentity(t *testing.T) {
	h := newHarness(t)
	shell := h.signedIn(t)

	quit, err := shell.Handle(context.Background(), "/logout")
	require.NoError(t, err)
	assert.True(t, quit)
	assert.Nil(t, h.app.Identity.Current())
	assert.Empty(t, h.app.Sessions.Sessions())

	restored, err := identity.NewFileStore(h.state).Load()
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	shell := h.signedIn(t)

	quit, err := shell.Handle(context.Background(), "/dance")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, h.out.String(), "Unknown command /dance")
}

func TestRunStopsAtQuitOrEOF(t *testing.T) {
	h := newHarness(t)
	shell := h.signedIn(t)

	in := &lineScript{lines: []string{"", "What is gravity?", "/quit", "never read"}}
	require.NoError(t, shell.Run(context.Background(), in))
	assert.True(t, in.closed)
	assert.Equal(t, []string{"never read"}, in.lines)
	assert.Len(t, h.app.Sessions.Sessions(), 1)

	in = &lineScript{lines: []string{"/list"}}
	require.NoError(t, shell.Run(context.Background(), in))
	assert.Contains(t, h.out.String(), "1. What is gravity?")
}

func TestStartRestoresPreviousSessions(t *testing.T) {
	h := newHarness(t)
	first := h.signedIn(t)
	_, err := first.Handle(context.Background(), "Explain quantum computing")
	require.NoError(t, err)

	h.app.Sessions.Reset()
	h.out.Reset()
	again := NewShell(h.app, h.app.Identity.Current())
	again.Start(context.Background())

	assert.Len(t, h.app.Sessions.Sessions(), 1)
	assert.Contains(t, h.out.String(), "== Explain quantum computing ==")
	assert.Contains(t, h.out.String(), "> Explain quantum computing [Child (Age 6-10)]")
}
