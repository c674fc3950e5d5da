// Package tui is the terminal front end of the card: the login form
// guarding it, the countdown overlay, and the greeting screens shown
// once the gate opens.
package tui

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/BradenHooton/valentine/internal/content"
	"github.com/BradenHooton/valentine/internal/greeting"
	"github.com/BradenHooton/valentine/internal/models"
)

// frameInterval paces the floating hearts.
const frameInterval = 80 * time.Millisecond

// Gate is the part of the access gate the model drives.
type Gate interface {
	State() models.State
	Target() time.Time
	Submit(identity, secret string) (models.State, error)
	DismissTimeLock() (models.State, error)
}

// StateMsg carries a gate state produced off the UI goroutine (timer
// ticks, denial expiry). States older than the one already shown are
// dropped.
type StateMsg struct {
	State models.State
}

// UnlockedMsg is sent once when the gate opens.
type UnlockedMsg struct{}

type frameMsg struct{}

type focusField int

const (
	focusIdentity focusField = iota
	focusSecret
)

// Options configures a Model.
type Options struct {
	Recipient string
	Content   *content.Content
	Theme     Theme
	Keys      KeyMap
	// Rand seeds the card deck and the hearts. Nil picks a random seed.
	Rand   *rand.Rand
	Logger *slog.Logger
}

// Model is the bubbletea model for the whole card.
type Model struct {
	gate    Gate
	keys    KeyMap
	theme   Theme
	styles  styles
	content *content.Content
	logger  *slog.Logger

	recipient string
	state     models.State

	identity textinput.Model
	secret   textinput.Model
	focus    focusField

	flow     *greeting.Flow
	question *greeting.Question
	deck     *greeting.Deck
	carousel *greeting.Carousel
	hearts   *greeting.Hearts
	qr       string

	animating bool
	width     int
	height    int
}

// NewModel builds the model around gate. Zero-valued options fall back
// to the default theme, key map and content.
func NewModel(gate Gate, opts Options) (Model, error) {
	c := opts.Content
	if c == nil {
		var err error
		if c, err = content.Default(); err != nil {
			return Model{}, err
		}
	}
	if opts.Theme == (Theme{}) {
		opts.Theme = DefaultTheme
	}
	if len(opts.Keys.Submit.Keys()) == 0 {
		opts.Keys = DefaultKeyMap
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	identity := textinput.New()
	identity.Prompt = "Name   › "
	identity.Placeholder = "who goes there?"
	identity.CharLimit = 64
	identity.Focus()

	secret := textinput.New()
	secret.Prompt = "Secret › "
	secret.Placeholder = "our secret word"
	secret.CharLimit = 64
	secret.EchoMode = textinput.EchoPassword
	secret.EchoCharacter = '♥'

	model := Model{
		gate:      gate,
		keys:      opts.Keys,
		theme:     opts.Theme,
		styles:    newStyles(opts.Theme),
		content:   c,
		logger:    opts.Logger,
		recipient: opts.Recipient,
		state:     gate.State(),
		identity:  identity,
		secret:    secret,
		flow:      &greeting.Flow{},
		question:  greeting.NewQuestion(c.Question.NoPhrases),
		deck:      greeting.NewDeck(c.Cards, opts.Rand),
		carousel:  greeting.NewCarousel(c.Memories),
		hearts:    greeting.NewHearts(opts.Rand),
	}

	if c.Success.SaveTheDate != "" {
		qr, err := greeting.SaveTheDateQR(c.Success.SaveTheDate)
		if err != nil {
			model.logger.Warn("save-the-date QR unavailable", slog.String("error", err.Error()))
		} else {
			model.qr = qr
		}
	}
	return model, nil
}

// State returns the gate state the model is showing.
func (model Model) State() models.State { return model.state }

// Stage returns the greeting screen shown once unlocked.
func (model Model) Stage() greeting.Stage { return model.flow.Stage() }

func (model Model) Init() tea.Cmd {
	if model.state.Phase == models.PhaseUnlocked {
		return scheduleFrame()
	}
	return textinput.Blink
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		return model, nil

	case StateMsg:
		return model.applyState(message.State)

	case UnlockedMsg:
		return model.applyState(model.gate.State())

	case frameMsg:
		if model.state.Phase != models.PhaseUnlocked {
			model.animating = false
			return model, nil
		}
		model.hearts.Step()
		return model, scheduleFrame()

	case tea.KeyMsg:
		if key.Matches(message, model.keys.ForceQuit) {
			return model, tea.Quit
		}
		switch model.state.Phase {
		case models.PhaseTimeLocked:
			return model.handleCountdownKeys(message)
		case models.PhaseUnlocked:
			return model.handleGreetingKeys(message)
		default:
			return model.handleLoginKeys(message)
		}
	}

	if model.state.Phase == models.PhaseUnlocked {
		return model, nil
	}
	return model.updateFocused(message)
}

// applyState shows next if it is newer than the current state and
// starts the heart animation on unlock.
func (model Model) applyState(next models.State) (tea.Model, tea.Cmd) {
	if !next.Newer(model.state) {
		return model, nil
	}
	previous := model.state.Phase
	model.state = next

	if next.Phase == models.PhaseDenied {
		model.secret.Reset()
	}
	if next.Phase == models.PhaseUnlocked && !model.animating {
		model.animating = true
		model.identity.Blur()
		model.secret.Blur()
		model.logger.Info("card opened",
			slog.String("from", previous.String()),
			slog.String("cause", string(next.Cause)))
		return model, scheduleFrame()
	}
	return model, nil
}

func (model Model) handleLoginKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Reset):
		model.identity.Reset()
		model.secret.Reset()
		return model.setFocus(focusIdentity)

	case key.Matches(message, model.keys.NextField, model.keys.PrevField):
		// Two fields: forward and back both land on the other one.
		return model.setFocus(1 - model.focus)

	case key.Matches(message, model.keys.Submit):
		if model.focus == focusIdentity && model.secret.Value() == "" {
			return model.setFocus(focusSecret)
		}
		return model.submit()
	}
	return model.updateFocused(message)
}

func (model Model) submit() (tea.Model, tea.Cmd) {
	state, err := model.gate.Submit(model.identity.Value(), model.secret.Value())
	if err != nil {
		// Still showing a denial, or already unlocked; the keypress is
		// simply dropped.
		model.logger.Debug("submit ignored",
			slog.String("phase", state.Phase.String()),
			slog.String("error", err.Error()))
	}
	return model.applyState(state)
}

func (model Model) handleCountdownKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Dismiss):
		state, err := model.gate.DismissTimeLock()
		if err != nil {
			model.logger.Debug("dismiss ignored", slog.String("error", err.Error()))
		}
		return model.applyState(state)
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	}
	return model, nil
}

func (model Model) handleGreetingKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(message, model.keys.Quit) {
		return model, tea.Quit
	}

	switch model.flow.Stage() {
	case greeting.StageIntro:
		if key.Matches(message, model.keys.Submit) {
			model.flow.Start()
		}

	case greeting.StageQuestion:
		switch {
		case key.Matches(message, model.keys.Yes):
			model.flow.Accept()
			model.logger.Info("said yes", slog.Int("refusals", model.question.Refusals()))
		case key.Matches(message, model.keys.No):
			model.question.Refuse()
		}

	case greeting.StageSuccess:
		switch {
		case key.Matches(message, model.keys.Cards):
			model.flow.Open(greeting.StageCards)
		case key.Matches(message, model.keys.Memories):
			model.flow.Open(greeting.StageMemories)
		}

	case greeting.StageCards:
		switch {
		case key.Matches(message, model.keys.Draw):
			model.deck.Next()
		case key.Matches(message, model.keys.Back):
			model.flow.Open(greeting.StageSuccess)
		}

	case greeting.StageMemories:
		switch {
		case key.Matches(message, model.keys.Draw):
			model.carousel.Flip()
		case key.Matches(message, model.keys.Right):
			model.carousel.Next()
		case key.Matches(message, model.keys.Left):
			model.carousel.Prev()
		case key.Matches(message, model.keys.Jump):
			model.carousel.Goto(int(message.Runes[0] - '1'))
		case key.Matches(message, model.keys.Back):
			model.flow.Open(greeting.StageSuccess)
		}
	}
	return model, nil
}

func (model Model) setFocus(field focusField) (tea.Model, tea.Cmd) {
	model.focus = field
	if field == focusIdentity {
		model.secret.Blur()
		return model, model.identity.Focus()
	}
	model.identity.Blur()
	return model, model.secret.Focus()
}

func (model Model) updateFocused(message tea.Msg) (tea.Model, tea.Cmd) {
	var command tea.Cmd
	if model.focus == focusIdentity {
		model.identity, command = model.identity.Update(message)
	} else {
		model.secret, command = model.secret.Update(message)
	}
	return model, command
}

func scheduleFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

// reasonText turns a denial reason into the banner shown under the form.
func reasonText(reason error) string {
	switch {
	case errors.Is(reason, models.ErrEmptyField):
		return "Both fields, please. Don't leave me guessing."
	case errors.Is(reason, models.ErrUnknownIdentity):
		return "Hmm, I don't know that name."
	case errors.Is(reason, models.ErrIncorrectSecret):
		return "That's not our secret word."
	default:
		return "Access denied."
	}
}
