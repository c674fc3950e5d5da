package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/BradenHooton/valentine/internal/content"
	"github.com/BradenHooton/valentine/internal/greeting"
	"github.com/BradenHooton/valentine/internal/models"
)

// heartBand is the height of the hearts strip above and below the
// greeting screens.
const heartBand = 3

func (model Model) View() string {
	switch model.state.Phase {
	case models.PhaseTimeLocked:
		return model.place(model.renderCountdown())
	case models.PhaseUnlocked:
		return model.renderGreeting()
	default:
		return model.place(model.renderLogin())
	}
}

// place centers body in the terminal once its size is known.
func (model Model) place(body string) string {
	if model.width == 0 || model.height == 0 {
		return body
	}
	return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center, body)
}

func (model Model) renderLogin() string {
	lines := []string{
		model.styles.title.Render(fmt.Sprintf("💌 A letter for %s", model.recipientName())),
		model.styles.faint.Render("Sign in to open your card."),
		"",
		model.identity.View(),
		model.secret.View(),
		"",
	}
	if model.state.Phase == models.PhaseDenied {
		lines = append(lines, model.styles.error.Render(reasonText(model.state.Reason)))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, model.help(model.keys.Submit, model.keys.NextField, model.keys.Reset))
	return model.styles.panel.Render(strings.Join(lines, "\n"))
}

func (model Model) renderCountdown() string {
	lines := []string{
		model.styles.title.Render("Not Yet, My Love..."),
		model.styles.text.Render("Your card opens on " + model.gate.Target().Format("Monday, January 2 at 3:04 PM")),
		"",
		model.styles.timer.Render(model.state.Countdown),
		"",
	}
	if model.state.Arrived {
		lines = append(lines, model.styles.text.Render("Opening..."))
	} else {
		lines = append(lines, model.help(model.keys.Dismiss))
	}
	return model.styles.panel.Render(strings.Join(lines, "\n"))
}

func (model Model) renderGreeting() string {
	var body string
	switch model.flow.Stage() {
	case greeting.StageIntro:
		body = model.renderIntro()
	case greeting.StageQuestion:
		body = model.renderQuestion()
	case greeting.StageSuccess:
		body = model.renderSuccess()
	case greeting.StageCards:
		body = model.renderCards()
	case greeting.StageMemories:
		body = model.renderMemories()
	}
	if model.width == 0 || model.height == 0 {
		return body
	}

	if model.flow.Stage() == greeting.StageQuestion && model.question.Covered() {
		return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center,
			model.styles.yes.Render(model.question.YesLabel()),
			lipgloss.WithWhitespaceBackground(model.theme.Rose))
	}

	band := model.hearts.Render(model.width, heartBand*2)
	top := model.styles.hearts.Render(strings.Join(band[:heartBand], "\n"))
	bottom := model.styles.hearts.Render(strings.Join(band[heartBand:], "\n"))
	middle := lipgloss.Place(model.width, max(model.height-2*heartBand, 0),
		lipgloss.Center, lipgloss.Center, body)
	return lipgloss.JoinVertical(lipgloss.Left, top, middle, bottom)
}

func (model Model) renderIntro() string {
	intro := model.content.Intro
	lines := []string{
		model.styles.title.Render(intro.Greeting),
		"",
		model.styles.text.Render(intro.Message),
		"",
		model.styles.yes.Padding(0, 2).Render(intro.Button),
		"",
		model.help(model.keys.Submit, model.keys.Quit),
	}
	return model.styles.panel.Render(strings.Join(lines, "\n"))
}

func (model Model) renderQuestion() string {
	q := model.content.Question
	scale := model.question.YesScale()
	yes := model.styles.yes.
		Padding(int(scale)-1, int(scale*2)).
		Render(model.question.YesLabel())
	no := model.styles.no.Render(model.question.NoLabel())

	lines := []string{
		model.styles.title.Render(q.PromptFor(model.recipientName())),
	}
	if q.Subtitle != "" {
		lines = append(lines, model.styles.faint.Render(q.Subtitle))
	}
	lines = append(lines, "",
		lipgloss.JoinHorizontal(lipgloss.Center, yes, "   ", no),
		"")
	if model.question.ShowTaunt() && q.Taunt != "" {
		lines = append(lines, model.styles.text.Render(q.Taunt))
	}
	lines = append(lines, model.help(model.keys.Yes, model.keys.No))
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (model Model) renderSuccess() string {
	s := model.content.Success
	lines := []string{
		model.styles.title.Render(s.Headline),
	}
	if s.Message != "" {
		lines = append(lines, model.styles.text.Render(s.Message))
	}
	lines = append(lines, "")
	if s.When != "" {
		lines = append(lines, "📅 "+s.When)
	}
	if s.Where != "" {
		lines = append(lines, "📍 "+s.Where)
	}
	if s.Letter != "" {
		lines = append(lines, "", model.styles.text.Width(56).Render(s.Letter))
	}
	if s.Signature != "" {
		lines = append(lines, model.styles.faint.Render(s.Signature))
	}
	if len(s.Reasons) > 0 {
		lines = append(lines, "", model.styles.title.Render("Reasons I love you"))
		for _, reason := range s.Reasons {
			lines = append(lines, "  ♥ "+reason)
		}
	}
	letter := model.styles.panel.Render(strings.Join(lines, "\n"))

	if model.qr != "" {
		saveTheDate := lipgloss.JoinVertical(lipgloss.Center,
			model.styles.faint.Render("Save the date"),
			model.qr)
		letter = lipgloss.JoinHorizontal(lipgloss.Top, letter, "  ", saveTheDate)
	}
	return lipgloss.JoinVertical(lipgloss.Center, letter, "",
		model.help(model.keys.Cards, model.keys.Memories, model.keys.Quit))
}

func (model Model) renderCards() string {
	var face string
	if card, ok := model.deck.Current(); ok {
		label, style := "Question", model.styles.question
		if card.Kind == content.KindDare {
			label, style = "Dare", model.styles.dare
		}
		face = lipgloss.JoinVertical(lipgloss.Center,
			style.Render(fmt.Sprintf("%s %s", card.Emoji, label)),
			"",
			model.styles.text.Width(40).Align(lipgloss.Center).Render(card.Text))
	} else {
		face = model.styles.faint.Render("Shuffle to draw your first card.")
	}

	revealed, total, percent := model.deck.Progress()
	return lipgloss.JoinVertical(lipgloss.Center,
		model.styles.title.Render("Truth or Dare"),
		"",
		model.styles.panel.Width(48).Render(face),
		model.styles.faint.Render(fmt.Sprintf("%d of %d revealed (%d%%)", revealed, total, percent)),
		"",
		model.help(model.keys.Draw, model.keys.Back))
}

func (model Model) renderMemories() string {
	memory := model.carousel.Current()
	var face string
	if model.carousel.Flipped() {
		face = model.styles.text.Width(40).Align(lipgloss.Center).Render(memory.Note)
	} else {
		face = lipgloss.JoinVertical(lipgloss.Center,
			model.styles.title.Render(memory.Caption),
			model.styles.faint.Render(memory.Date))
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		model.styles.title.Render("Memory Garden"),
		"",
		model.styles.panel.Width(48).Align(lipgloss.Center).Render(face),
		model.renderDots(),
		"",
		model.help(model.keys.Left, model.keys.Right, model.keys.Jump, model.keys.Draw, model.keys.Back))
}

// renderDots shows one dot per memory with the current one filled.
func (model Model) renderDots() string {
	dots := make([]string, model.carousel.Len())
	for i := range dots {
		if i == model.carousel.Index() {
			dots[i] = model.styles.hearts.Render("●")
		} else {
			dots[i] = model.styles.faint.Render("○")
		}
	}
	return strings.Join(dots, " ")
}

func (model Model) help(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return model.styles.faint.Render(strings.Join(parts, " • "))
}

func (model Model) recipientName() string {
	if model.recipient == "" {
		return "you"
	}
	return model.recipient
}

// RenderCountdown is the one-line form used outside the TUI.
func RenderCountdown(remaining string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(DefaultTheme.Rose).Render(remaining)
}
