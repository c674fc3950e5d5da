package greeting

import (
	"math"
	"math/rand/v2"

	"github.com/BradenHooton/valentine/internal/content"
)

// Deck is the question-or-dare card game. Cards are drawn at random
// with replacement; a card counts as revealed once the visitor moves
// past it.
type Deck struct {
	cards    []content.Card
	current  int
	revealed map[int]bool
	rng      *rand.Rand
}

// NewDeck builds a deck over cards. A nil rng uses a randomly seeded
// source.
func NewDeck(cards []content.Card, rng *rand.Rand) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Deck{
		cards:    cards,
		current:  -1,
		revealed: make(map[int]bool),
		rng:      rng,
	}
}

// Current returns the face-up card, if any.
func (d *Deck) Current() (content.Card, bool) {
	if d.current < 0 {
		return content.Card{}, false
	}
	return d.cards[d.current], true
}

// Shuffle draws a random card.
func (d *Deck) Shuffle() content.Card {
	d.current = d.rng.IntN(len(d.cards))
	return d.cards[d.current]
}

// Next marks the face-up card revealed and draws another.
func (d *Deck) Next() content.Card {
	if card, ok := d.Current(); ok {
		d.revealed[card.ID] = true
	}
	return d.Shuffle()
}

// Progress returns revealed and total card counts and the rounded
// percentage revealed.
func (d *Deck) Progress() (revealed, total, percent int) {
	revealed, total = len(d.revealed), len(d.cards)
	if total == 0 {
		return 0, 0, 0
	}
	return revealed, total, int(math.Round(float64(revealed) / float64(total) * 100))
}
