// Package greeting holds the state behind the screens shown once the
// gate is unlocked: the intro, the Valentine question, the success page,
// the card game and the memory garden.
package greeting

// Stage is the screen currently shown.
type Stage int

const (
	StageIntro Stage = iota
	StageQuestion
	StageSuccess
	StageCards
	StageMemories
)

func (s Stage) String() string {
	switch s {
	case StageIntro:
		return "intro"
	case StageQuestion:
		return "question"
	case StageSuccess:
		return "success"
	case StageCards:
		return "cards"
	case StageMemories:
		return "memories"
	default:
		return "unknown"
	}
}

// Flow tracks which screen is showing. The intro leads to the question,
// and the question only ever leads to the success page. From there the
// visitor can open the card game or the memory garden and come back.
type Flow struct {
	stage Stage
}

// Stage returns the current screen.
func (f *Flow) Stage() Stage { return f.stage }

// Start leaves the intro for the question.
func (f *Flow) Start() bool {
	if f.stage != StageIntro {
		return false
	}
	f.stage = StageQuestion
	return true
}

// Accept records the "yes".
func (f *Flow) Accept() bool {
	if f.stage != StageQuestion {
		return false
	}
	f.stage = StageSuccess
	return true
}

// Open switches between the success page and its two extras.
func (f *Flow) Open(stage Stage) bool {
	switch {
	case f.stage < StageSuccess:
		return false
	case stage < StageSuccess || stage > StageMemories:
		return false
	}
	f.stage = stage
	return true
}
