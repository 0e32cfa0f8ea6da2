package page

import (
	"fmt"
	"time"

	"github.com/Its-donkey/landing/internal/ui/dom"
)

// DefaultCarouselInterval is how long each hero slide stays on screen.
const DefaultCarouselInterval = 4 * time.Second

// HeroCarousel slides the hero track one panel to the left on every tick.
type HeroCarousel struct {
	track dom.Element
	total int
	index int
}

// NewHeroCarousel schedules the slide timer. Without a track or slides the
// carousel stays inert and no timer is scheduled.
func NewHeroCarousel(host dom.Host, track dom.Element, slides []dom.Element, interval time.Duration) *HeroCarousel {
	c := &HeroCarousel{track: track, total: len(slides)}
	if track == nil || c.total == 0 {
		return c
	}
	if interval <= 0 {
		interval = DefaultCarouselInterval
	}
	host.SetInterval(interval, c.Next)
	return c
}

// Next advances to the following slide, wrapping after the last one.
func (c *HeroCarousel) Next() {
	if c.track == nil || c.total == 0 {
		return
	}
	c.index = (c.index + 1) % c.total
	c.track.SetStyle("transform", fmt.Sprintf("translateX(%d%%)", -c.index*100))
}

// Index returns the slide currently shown.
func (c *HeroCarousel) Index() int {
	return c.index
}
