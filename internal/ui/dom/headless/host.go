package headless

import (
	"sync"
	"time"

	"github.com/Its-donkey/landing/internal/ui/dom"
)

// Host is a manually driven environment. Intersections are reported through
// Intersect, time moves through Advance, and Go runs work inline.
type Host struct {
	mu        sync.Mutex
	media     map[string]bool
	start     time.Time
	elapsed   time.Duration
	observers []*Observer
	intervals []*interval
}

type interval struct {
	every time.Duration
	due   time.Duration
	fn    func()
}

// NewHost returns a host whose clock starts at start. A zero start uses the
// wall clock.
func NewHost(start time.Time) *Host {
	if start.IsZero() {
		start = time.Now()
	}
	return &Host{media: make(map[string]bool), start: start}
}

// SetMedia fixes the answer MatchMedia gives for query.
func (h *Host) SetMedia(query string, matches bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.media[query] = matches
}

func (h *Host) MatchMedia(query string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.media[query]
}

func (h *Host) Now() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.start.Add(h.elapsed)
}

func (h *Host) Go(fn func()) {
	fn()
}

func (h *Host) SetInterval(d time.Duration, fn func()) {
	if d <= 0 || fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.intervals = append(h.intervals, &interval{every: d, due: h.elapsed + d, fn: fn})
}

// Intervals reports how many timers are scheduled.
func (h *Host) Intervals() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.intervals)
}

// Advance moves the clock forward by d, firing every interval that falls due
// in order.
func (h *Host) Advance(d time.Duration) {
	h.mu.Lock()
	target := h.elapsed + d
	h.mu.Unlock()
	for {
		h.mu.Lock()
		var next *interval
		for _, iv := range h.intervals {
			if iv.due <= target && (next == nil || iv.due < next.due) {
				next = iv
			}
		}
		if next == nil {
			h.elapsed = target
			h.mu.Unlock()
			return
		}
		h.elapsed = next.due
		next.due += next.every
		fn := next.fn
		h.mu.Unlock()
		fn()
	}
}

func (h *Host) NewIntersectionObserver(threshold float64, callback dom.IntersectionCallback) dom.IntersectionObserver {
	o := &Observer{
		threshold: threshold,
		callback:  callback,
		targets:   make(map[dom.Element]bool),
	}
	h.mu.Lock()
	h.observers = append(h.observers, o)
	h.mu.Unlock()
	return o
}

// Observers returns every observer created so far.
func (h *Host) Observers() []*Observer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Observer(nil), h.observers...)
}

// Intersect reports that targets are now visible at ratio. Each observer
// watching a target is notified when the target crosses its threshold, one
// batch per observer.
func (h *Host) Intersect(ratio float64, targets ...dom.Element) {
	for _, o := range h.Observers() {
		o.report(ratio, targets)
	}
}

// Callbacks sums callback invocations across all observers.
func (h *Host) Callbacks() int {
	total := 0
	for _, o := range h.Observers() {
		total += o.Callbacks()
	}
	return total
}

// Observer is the headless IntersectionObserver.
type Observer struct {
	mu        sync.Mutex
	threshold float64
	callback  dom.IntersectionCallback
	targets   map[dom.Element]bool
	calls     int
}

func (o *Observer) Observe(target dom.Element) {
	if target == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.targets[target]; !ok {
		o.targets[target] = false
	}
}

func (o *Observer) Unobserve(target dom.Element) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.targets, target)
}

// Threshold returns the visibility ratio the observer reacts to.
func (o *Observer) Threshold() float64 {
	return o.threshold
}

// Observing reports whether target is still watched.
func (o *Observer) Observing(target dom.Element) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.targets[target]
	return ok
}

// Callbacks counts how many times the callback has run.
func (o *Observer) Callbacks() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls
}

func (o *Observer) report(ratio float64, targets []dom.Element) {
	o.mu.Lock()
	var entries []dom.IntersectionEntry
	for _, t := range targets {
		was, ok := o.targets[t]
		if !ok {
			continue
		}
		now := ratio >= o.threshold
		if now == was {
			continue
		}
		o.targets[t] = now
		entries = append(entries, dom.IntersectionEntry{Target: t, IsIntersecting: now, Ratio: ratio})
	}
	if len(entries) > 0 {
		o.calls++
	}
	o.mu.Unlock()
	if len(entries) > 0 {
		o.callback(entries, o)
	}
}

var (
	_ dom.Host                 = (*Host)(nil)
	_ dom.IntersectionObserver = (*Observer)(nil)
	_ dom.Document             = (*Document)(nil)
	_ dom.Form                 = (*Form)(nil)
	_ dom.Event                = (*Event)(nil)
)
