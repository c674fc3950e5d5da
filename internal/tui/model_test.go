package tui

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BradenHooton/valentine/internal/clock"
	"github.com/BradenHooton/valentine/internal/gate"
	"github.com/BradenHooton/valentine/internal/greeting"
	"github.com/BradenHooton/valentine/internal/models"
)

var (
	start  = time.Date(2026, 2, 13, 23, 59, 50, 0, time.UTC)
	target = time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testModel(t *testing.T) (Model, *gate.Gate, *clock.FakeClock) {
	t.Helper()
	fake := clock.Fake(start)
	logger := discardLogger()
	g, err := gate.New(gate.Config{
		Target:            target,
		AllowedIdentities: []string{"Tamanna"},
		AllowedSecrets:    []string{"rose"},
		BypassSecret:      "testing",
		DevMode:           true,
	}, gate.WithClock(fake), gate.WithLogger(logger))
	require.NoError(t, err)
	t.Cleanup(g.Close)

	model, err := NewModel(g, Options{
		Recipient: "Tamanna",
		Rand:      rand.New(rand.NewPCG(1, 2)),
		Logger:    logger,
	})
	require.NoError(t, err)
	return model, g, fake
}

func update(t *testing.T, model Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, command := model.Update(message)
	next, ok := updated.(Model)
	require.True(t, ok, "Update returned %T", updated)
	return next, command
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

// login fills both fields and submits.
func login(t *testing.T, model Model, identity, secret string) Model {
	t.Helper()
	model, _ = update(t, model, runes(identity))
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model, _ = update(t, model, runes(secret))
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	return model
}

func assertQuit(t *testing.T, command tea.Cmd) {
	t.Helper()
	require.NotNil(t, command)
	_, isQuit := command().(tea.QuitMsg)
	assert.True(t, isQuit, "expected QuitMsg")
}

func TestNewModel(t *testing.T) {
	model, _, _ := testModel(t)

	assert.Equal(t, models.PhaseAwaitingInput, model.State().Phase)
	view := model.View()
	assert.Contains(t, view, "A letter for Tamanna")
	assert.Contains(t, view, "Sign in to open your card.")
	assert.NotNil(t, model.Init())
}

func TestModel_EnterOnIdentityMovesToSecret(t *testing.T) {
	model, _, _ := testModel(t)

	model, _ = update(t, model, runes("Tamanna"))
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, focusSecret, model.focus)
	assert.Equal(t, models.PhaseAwaitingInput, model.State().Phase)
}

func TestModel_TypingQDoesNotQuit(t *testing.T) {
	model, _, _ := testModel(t)

	model, command := update(t, model, runes("q"))
	if command != nil {
		_, isQuit := command().(tea.QuitMsg)
		assert.False(t, isQuit)
	}
	assert.Equal(t, "q", model.identity.Value())
}

func TestModel_ResetClearsFields(t *testing.T) {
	model, _, _ := testModel(t)

	model, _ = update(t, model, runes("Tamanna"))
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model, _ = update(t, model, runes("rose"))
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyCtrlR})

	assert.Empty(t, model.identity.Value())
	assert.Empty(t, model.secret.Value())
	assert.Equal(t, focusIdentity, model.focus)
}

func TestModel_DeniedShowsReasonAndReverts(t *testing.T) {
	model, g, fake := testModel(t)

	model = login(t, model, "Tamanna", "tulip")
	require.Equal(t, models.PhaseDenied, model.State().Phase)
	assert.ErrorIs(t, model.State().Reason, models.ErrIncorrectSecret)
	assert.Contains(t, model.View(), "That's not our secret word.")
	assert.Empty(t, model.secret.Value())
	denied := model.State()

	fake.Advance(gate.DefaultDeniedTimeout)
	model, _ = update(t, model, StateMsg{State: g.State()})
	assert.Equal(t, models.PhaseAwaitingInput, model.State().Phase)
	assert.NotContains(t, model.View(), "That's not our secret word.")

	// A late delivery of the denied snapshot must not bring it back.
	model, _ = update(t, model, StateMsg{State: denied})
	assert.Equal(t, models.PhaseAwaitingInput, model.State().Phase)
}

func TestModel_EmptyFieldDenied(t *testing.T) {
	model, _, _ := testModel(t)

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, models.PhaseDenied, model.State().Phase)
	assert.Contains(t, model.View(), "Both fields, please.")
}

func TestModel_TimeLockCountdownAndDismiss(t *testing.T) {
	model, g, fake := testModel(t)

	model = login(t, model, "tamanna", "ROSE")
	require.Equal(t, models.PhaseTimeLocked, model.State().Phase)
	view := model.View()
	assert.Contains(t, view, "Not Yet, My Love...")
	assert.Contains(t, view, "0d 0h 0m 10s")

	fake.Advance(3 * time.Second)
	model, _ = update(t, model, StateMsg{State: g.State()})
	assert.Contains(t, model.View(), "0d 0h 0m 7s")

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, models.PhaseAwaitingInput, model.State().Phase)
	assert.Equal(t, models.PhaseAwaitingInput, g.State().Phase)
}

func TestModel_TimeLockOpensAtDeadline(t *testing.T) {
	model, g, fake := testModel(t)

	model = login(t, model, "Tamanna", "rose")
	require.Equal(t, models.PhaseTimeLocked, model.State().Phase)

	fake.Advance(10 * time.Second)
	model, _ = update(t, model, StateMsg{State: g.State()})
	assert.True(t, model.State().Arrived)
	assert.Contains(t, model.View(), "Opening...")

	fake.Advance(gate.DefaultSettleDelay)
	model, command := update(t, model, UnlockedMsg{})
	assert.Equal(t, models.PhaseUnlocked, model.State().Phase)
	assert.Equal(t, models.UnlockTimeLock, model.State().Cause)
	assert.NotNil(t, command, "unlock should start the heart animation")
	assert.Equal(t, greeting.StageIntro, model.Stage())
}

func TestModel_BypassAndGreetingFlow(t *testing.T) {
	model, _, _ := testModel(t)
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 120, Height: 60})

	model = login(t, model, "Tamanna", "testing")
	require.Equal(t, models.PhaseUnlocked, model.State().Phase)
	assert.Equal(t, models.UnlockBypass, model.State().Cause)
	assert.Equal(t, greeting.StageIntro, model.Stage())

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, greeting.StageQuestion, model.Stage())
	assert.Contains(t, model.View(), "Tamanna, will you be my Valentine?")

	for range 4 {
		model, _ = update(t, model, runes("n"))
	}
	assert.Equal(t, 4, model.question.Refusals())
	assert.True(t, model.question.ShowTaunt())

	model, _ = update(t, model, runes("y"))
	require.Equal(t, greeting.StageSuccess, model.Stage())

	model, _ = update(t, model, runes("c"))
	require.Equal(t, greeting.StageCards, model.Stage())
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	revealed, _, _ := model.deck.Progress()
	assert.Equal(t, 1, revealed)
	assert.Contains(t, model.View(), "1 of 30 revealed")

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, greeting.StageSuccess, model.Stage())

	model, _ = update(t, model, runes("m"))
	require.Equal(t, greeting.StageMemories, model.Stage())
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, model.carousel.Index())
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyLeft})
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, model.carousel.Len()-1, model.carousel.Index())
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, model.carousel.Flipped())

	model, _ = update(t, model, runes("3"))
	assert.Equal(t, 2, model.carousel.Index())
	assert.False(t, model.carousel.Flipped())
	model, _ = update(t, model, runes("9"))
	assert.Equal(t, 2, model.carousel.Index(), "no ninth memory to jump to")
	assert.Contains(t, model.View(), "○ ○ ●")

	_, command := update(t, model, runes("q"))
	assertQuit(t, command)
}

func TestModel_QuestionCoveredByYes(t *testing.T) {
	model, _, _ := testModel(t)
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 80, Height: 24})
	model = login(t, model, "Tamanna", "testing")
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	for range greeting.CoverThreshold + 2 {
		model, _ = update(t, model, runes("n"))
	}
	assert.True(t, model.question.Covered())
	view := model.View()
	assert.Contains(t, view, "YES!")
	assert.False(t, strings.Contains(view, model.content.Question.NoPhrases[0]))

	model, _ = update(t, model, runes("y"))
	assert.Equal(t, greeting.StageSuccess, model.Stage())
}

func TestModel_FramesStopBeforeUnlock(t *testing.T) {
	model, _, _ := testModel(t)

	_, command := update(t, model, frameMsg{})
	assert.Nil(t, command)
}

func TestModel_CtrlCQuits(t *testing.T) {
	model, _, _ := testModel(t)

	_, command := update(t, model, tea.KeyMsg{Type: tea.KeyCtrlC})
	assertQuit(t, command)
}

func TestReasonText(t *testing.T) {
	tests := []struct {
		reason error
		want   string
	}{
		{models.ErrEmptyField, "Both fields"},
		{models.ErrUnknownIdentity, "don't know that name"},
		{models.ErrIncorrectSecret, "not our secret word"},
		{nil, "Access denied."},
	}
	for _, tt := range tests {
		assert.Contains(t, reasonText(tt.reason), tt.want)
	}
}
