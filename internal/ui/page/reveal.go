package page

import "github.com/Its-donkey/landing/internal/ui/dom"

const (
	revealThreshold    = 0.12
	revealedClass      = "revealed"
	reducedMotionQuery = "(prefers-reduced-motion: reduce)"
)

// RevealAnimator adds the revealed class the first time an element scrolls
// into view.
type RevealAnimator struct {
	observer dom.IntersectionObserver
	reduced  bool
}

// NewRevealAnimator reads the reduced-motion preference once. When it is set
// every element is revealed up front and nothing is observed.
func NewRevealAnimator(host dom.Host, elements []dom.Element) *RevealAnimator {
	r := &RevealAnimator{reduced: host.MatchMedia(reducedMotionQuery)}
	if r.reduced {
		for _, el := range elements {
			el.AddClass(revealedClass)
		}
		return r
	}
	r.observer = host.NewIntersectionObserver(revealThreshold, r.handle)
	for _, el := range elements {
		r.observer.Observe(el)
	}
	return r
}

func (r *RevealAnimator) handle(entries []dom.IntersectionEntry, observer dom.IntersectionObserver) {
	for _, entry := range entries {
		if !entry.IsIntersecting {
			continue
		}
		entry.Target.AddClass(revealedClass)
		observer.Unobserve(entry.Target)
	}
}

// ReducedMotion reports whether the animation was bypassed at init.
func (r *RevealAnimator) ReducedMotion() bool {
	return r.reduced
}
