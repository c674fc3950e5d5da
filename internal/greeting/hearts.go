package greeting

import (
	"math/rand/v2"
	"strings"
)

// HeartCount is the number of floating decorations.
const HeartCount = 25

var heartGlyphs = []rune{'♥', '❤', '✿', '♡', '❀'}

type heart struct {
	x, y  float64
	speed float64
	glyph rune
}

// Hearts is a field of decorations drifting up the screen. Positions are
// fractions of the field so the field survives terminal resizes.
type Hearts struct {
	hearts []heart
	rng    *rand.Rand
}

// NewHearts scatters HeartCount decorations. A nil rng uses a randomly
// seeded source.
func NewHearts(rng *rand.Rand) *Hearts {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	h := &Hearts{hearts: make([]heart, HeartCount), rng: rng}
	for i := range h.hearts {
		h.hearts[i] = h.spawn(rng.Float64())
	}
	return h
}

func (h *Hearts) spawn(y float64) heart {
	return heart{
		x:     h.rng.Float64(),
		y:     y,
		speed: 0.01 + h.rng.Float64()*0.02,
		glyph: heartGlyphs[h.rng.IntN(len(heartGlyphs))],
	}
}

// Step advances every decoration by one frame. Ones that float off the
// top re-enter at the bottom at a new column.
func (h *Hearts) Step() {
	for i := range h.hearts {
		h.hearts[i].y -= h.hearts[i].speed
		if h.hearts[i].y < 0 {
			h.hearts[i] = h.spawn(1)
		}
	}
}

// Render draws the field into width×height cells.
func (h *Hearts) Render(width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	grid := make([][]rune, height)
	for row := range grid {
		grid[row] = []rune(strings.Repeat(" ", width))
	}
	for _, ht := range h.hearts {
		col := min(int(ht.x*float64(width)), width-1)
		row := min(int(ht.y*float64(height)), height-1)
		grid[row][col] = ht.glyph
	}
	lines := make([]string, height)
	for row := range grid {
		lines[row] = string(grid[row])
	}
	return lines
}
