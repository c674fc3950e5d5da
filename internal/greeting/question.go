package greeting

// Refusals after which "No" is no longer offered and "Yes" fills the
// screen.
const CoverThreshold = 15

// tauntAfter is the number of refusals after which the taunt shows.
const tauntAfter = 3

// Question tracks how many times the visitor has tried to say no.
type Question struct {
	phrases []string
	noCount int
}

// NewQuestion uses phrases for the escalating "No" labels; the first
// phrase is the initial label.
func NewQuestion(phrases []string) *Question {
	if len(phrases) == 0 {
		phrases = []string{"No"}
	}
	return &Question{phrases: phrases}
}

// Refuse registers another attempt at "No".
func (q *Question) Refuse() {
	if q.Covered() {
		return
	}
	q.noCount++
}

// Refusals returns how many times "No" was tried.
func (q *Question) Refusals() int { return q.noCount }

// NoLabel returns the current "No" label, sticking at the last phrase.
func (q *Question) NoLabel() string {
	return q.phrases[min(q.noCount, len(q.phrases)-1)]
}

// YesScale is the relative size of the "Yes" answer.
func (q *Question) YesScale() float64 {
	return 1 + float64(q.noCount)*0.4
}

// YesLabel shouts once "Yes" is the only option left.
func (q *Question) YesLabel() string {
	if q.Covered() {
		return "YES! 💖"
	}
	return "Yes! 💖"
}

// ShowTaunt reports whether the taunt line should be visible.
func (q *Question) ShowTaunt() bool {
	return q.noCount > tauntAfter && !q.Covered()
}

// Covered reports whether "Yes" has taken over the screen.
func (q *Question) Covered() bool {
	return q.noCount >= CoverThreshold
}
