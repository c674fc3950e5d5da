package greeting

import "github.com/BradenHooton/valentine/internal/content"

// Carousel pages through memories, wrapping at both ends. Each memory
// can be flipped to show its note; paging always shows the front.
type Carousel struct {
	memories []content.Memory
	index    int
	flipped  bool
}

func NewCarousel(memories []content.Memory) *Carousel {
	return &Carousel{memories: memories}
}

func (c *Carousel) Current() content.Memory { return c.memories[c.index] }

func (c *Carousel) Index() int { return c.index }

func (c *Carousel) Len() int { return len(c.memories) }

func (c *Carousel) Flipped() bool { return c.flipped }

func (c *Carousel) Flip() { c.flipped = !c.flipped }

func (c *Carousel) Next() {
	c.flipped = false
	c.index = (c.index + 1) % len(c.memories)
}

func (c *Carousel) Prev() {
	c.flipped = false
	c.index = (c.index - 1 + len(c.memories)) % len(c.memories)
}

// Goto jumps to memory i and shows its front. It reports false, leaving
// the carousel as it was, when i is out of range.
func (c *Carousel) Goto(i int) bool {
	if i < 0 || i >= len(c.memories) {
		return false
	}
	c.flipped = false
	c.index = i
	return true
}
