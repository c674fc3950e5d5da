package greeting

import (
	"math/rand/v2"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/BradenHooton/valentine/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func TestFlow(t *testing.T) {
	var f Flow
	assert.Equal(t, StageIntro, f.Stage())

	assert.False(t, f.Accept(), "cannot accept before the question")
	assert.False(t, f.Open(StageCards), "extras locked before success")

	assert.True(t, f.Start())
	assert.False(t, f.Start())
	assert.Equal(t, StageQuestion, f.Stage())

	assert.True(t, f.Accept())
	assert.Equal(t, StageSuccess, f.Stage())

	assert.True(t, f.Open(StageCards))
	assert.True(t, f.Open(StageMemories))
	assert.True(t, f.Open(StageSuccess))
	assert.False(t, f.Open(StageIntro))
	assert.Equal(t, StageSuccess, f.Stage())
}

func TestQuestion_Escalates(t *testing.T) {
	c, err := content.Default()
	require.NoError(t, err)
	q := NewQuestion(c.Question.NoPhrases)

	assert.Equal(t, "No", q.NoLabel())
	assert.Equal(t, 1.0, q.YesScale())
	assert.False(t, q.ShowTaunt())

	q.Refuse()
	assert.Equal(t, "Are you sure?", q.NoLabel())
	assert.InDelta(t, 1.4, q.YesScale(), 1e-9)

	for i := 0; i < 3; i++ {
		q.Refuse()
	}
	assert.Equal(t, 4, q.Refusals())
	assert.True(t, q.ShowTaunt())

	for !q.Covered() {
		q.Refuse()
	}
	assert.Equal(t, CoverThreshold, q.Refusals())
	assert.Equal(t, "You're breaking my heart ;(", q.NoLabel())
	assert.Equal(t, "YES! 💖", q.YesLabel())
	assert.False(t, q.ShowTaunt())

	q.Refuse()
	assert.Equal(t, CoverThreshold, q.Refusals(), "no more refusals once covered")
}

func TestQuestion_LabelClampsToLastPhrase(t *testing.T) {
	q := NewQuestion([]string{"No", "Sure?"})
	for i := 0; i < 5; i++ {
		q.Refuse()
	}
	assert.Equal(t, "Sure?", q.NoLabel())
	assert.Equal(t, "Yes! 💖", q.YesLabel())
}

func TestDeck(t *testing.T) {
	cards := []content.Card{
		{ID: 1, Kind: content.KindQuestion, Text: "a"},
		{ID: 2, Kind: content.KindDare, Text: "b"},
		{ID: 3, Kind: content.KindDare, Text: "c"},
		{ID: 4, Kind: content.KindQuestion, Text: "d"},
	}
	d := NewDeck(cards, seeded())

	_, ok := d.Current()
	assert.False(t, ok)
	revealed, total, percent := d.Progress()
	assert.Equal(t, []int{0, 4, 0}, []int{revealed, total, percent})

	first := d.Shuffle()
	current, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, first, current)

	d.Next()
	revealed, _, percent = d.Progress()
	assert.Equal(t, 1, revealed)
	assert.Equal(t, 25, percent)

	for i := 0; i < 200; i++ {
		d.Next()
	}
	revealed, total, percent = d.Progress()
	assert.Equal(t, total, revealed, "every card is eventually revealed")
	assert.Equal(t, 100, percent)
}

func TestCarousel(t *testing.T) {
	c := NewCarousel([]content.Memory{{Caption: "a"}, {Caption: "b"}, {Caption: "c"}})

	assert.Equal(t, "a", c.Current().Caption)
	c.Prev()
	assert.Equal(t, "c", c.Current().Caption)
	c.Next()
	c.Next()
	assert.Equal(t, 1, c.Index())

	c.Flip()
	assert.True(t, c.Flipped())
	c.Next()
	assert.False(t, c.Flipped(), "paging shows the front again")
	assert.Equal(t, 3, c.Len())
}

func TestCarousel_Goto(t *testing.T) {
	c := NewCarousel([]content.Memory{{Caption: "a"}, {Caption: "b"}, {Caption: "c"}})
	c.Flip()

	require.True(t, c.Goto(2))
	assert.Equal(t, "c", c.Current().Caption)
	assert.False(t, c.Flipped())

	c.Flip()
	assert.False(t, c.Goto(3))
	assert.False(t, c.Goto(-1))
	assert.Equal(t, 2, c.Index())
	assert.True(t, c.Flipped(), "a rejected jump changes nothing")
}

func TestHearts_RenderStaysInBounds(t *testing.T) {
	h := NewHearts(seeded())

	for frame := 0; frame < 300; frame++ {
		h.Step()
		lines := h.Render(40, 10)
		require.Len(t, lines, 10)
		count := 0
		for _, line := range lines {
			assert.Equal(t, 40, utf8.RuneCountInString(line))
			count += utf8.RuneCountInString(strings.ReplaceAll(line, " ", ""))
		}
		assert.LessOrEqual(t, count, HeartCount)
		assert.Positive(t, count)
	}

	assert.Nil(t, h.Render(0, 5))
}

func TestSaveTheDateQR(t *testing.T) {
	qr, err := SaveTheDateQR("February 14th @ 7:00 PM")
	require.NoError(t, err)
	assert.NotEmpty(t, qr)
	assert.Greater(t, strings.Count(qr, "\n"), 5)
}
