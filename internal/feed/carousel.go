package feed

import (
	"sync"
	"time"
)

const DefaultInterval = 3 * time.Second

// Ticker is the part of *time.Ticker the carousel needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	*time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.Ticker.C }

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{Ticker: time.NewTicker(d)}
}

// ChangeReason tells listeners what moved the carousel.
type ChangeReason string

const (
	ReasonNavigate ChangeReason = "navigate"
	ReasonAutoplay ChangeReason = "autoplay"
	ReasonPlayback ChangeReason = "playback"
	ReasonReset    ChangeReason = "reset"
)

type CarouselState struct {
	Index   int  `json:"index"`
	Length  int  `json:"length"`
	Playing bool `json:"playing"`
	// Active is false while the carousel has nothing to show.
	Active bool `json:"active"`
}

type CarouselOption func(*Carousel)

// WithTicker replaces the autoplay ticker source.
func WithTicker(fn TickerFunc) CarouselOption {
	return func(c *Carousel) {
		c.newTicker = fn
	}
}

// WithOnChange registers a listener called after every state change, outside
// the carousel lock. Autoplay changes are reported from the autoplay goroutine.
func WithOnChange(fn func(CarouselState, ChangeReason)) CarouselOption {
	return func(c *Carousel) {
		c.onChange = fn
	}
}

// Carousel keeps a current index over an ordered list of a given length and
// optionally advances it on a fixed interval.
//
// Manual navigation (Next, Prev, GoTo) pauses autoplay. Replace resets the index
// and pauses. Both happen under the same lock the autoplay tick takes, so a tick
// never sees an index outside the current length.
type Carousel struct {
	mu        sync.Mutex
	interval  time.Duration
	newTicker TickerFunc
	onChange  func(CarouselState, ChangeReason)

	length  int
	index   int
	playing bool
	stop    chan struct{}
	closed  bool
}

func NewCarousel(interval time.Duration, opts ...CarouselOption) *Carousel {
	if interval <= 0 {
		interval = DefaultInterval
	}
	c := &Carousel{
		interval:  interval,
		newTicker: newTimeTicker,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Carousel) Interval() time.Duration { return c.interval }

func (c *Carousel) State() CarouselState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Carousel) Next() bool { return c.step(1) }

func (c *Carousel) Prev() bool { return c.step(-1) }

func (c *Carousel) step(delta int) bool {
	c.mu.Lock()
	if c.closed || c.length <= 1 {
		c.mu.Unlock()
		return false
	}
	c.stopLocked()
	c.index = (c.index + delta + c.length) % c.length
	st := c.stateLocked()
	c.mu.Unlock()

	c.notify(st, ReasonNavigate)
	return true
}

// GoTo ignores indexes outside [0, length).
func (c *Carousel) GoTo(i int) bool {
	c.mu.Lock()
	if c.closed || i < 0 || i >= c.length {
		c.mu.Unlock()
		return false
	}
	c.stopLocked()
	c.index = i
	st := c.stateLocked()
	c.mu.Unlock()

	c.notify(st, ReasonNavigate)
	return true
}

// Play starts autoplay. It refuses when there is nothing to cycle through.
func (c *Carousel) Play() bool {
	c.mu.Lock()
	if c.closed || c.length <= 1 {
		c.mu.Unlock()
		return false
	}
	if c.playing {
		c.mu.Unlock()
		return true
	}
	c.startLocked()
	st := c.stateLocked()
	c.mu.Unlock()

	c.notify(st, ReasonPlayback)
	return true
}

func (c *Carousel) Pause() bool {
	c.mu.Lock()
	if !c.playing {
		c.mu.Unlock()
		return false
	}
	c.stopLocked()
	st := c.stateLocked()
	c.mu.Unlock()

	c.notify(st, ReasonPlayback)
	return true
}

// Toggle flips autoplay and returns whether it is playing afterwards.
func (c *Carousel) Toggle() bool {
	c.mu.Lock()
	switch {
	case c.playing:
		c.stopLocked()
	case !c.closed && c.length > 1:
		c.startLocked()
	default:
		c.mu.Unlock()
		return false
	}
	st := c.stateLocked()
	c.mu.Unlock()

	c.notify(st, ReasonPlayback)
	return st.Playing
}

// Replace swaps in a new list of the given length: index 0, paused.
func (c *Carousel) Replace(length int) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.stopLocked()
	c.length = max(length, 0)
	c.index = 0
	st := c.stateLocked()
	c.mu.Unlock()

	c.notify(st, ReasonReset)
}

// Resize changes the length while keeping the position, e.g. after loading
// another page. The index is clamped and autoplay stops below two items.
func (c *Carousel) Resize(length int) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.length = max(length, 0)
	if c.index >= c.length {
		c.index = max(c.length-1, 0)
	}
	if c.length <= 1 {
		c.stopLocked()
	}
	st := c.stateLocked()
	c.mu.Unlock()

	c.notify(st, ReasonReset)
}

// Close stops autoplay for good. Every later call is a no-op.
func (c *Carousel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.closed = true
}

func (c *Carousel) stateLocked() CarouselState {
	return CarouselState{
		Index:   c.index,
		Length:  c.length,
		Playing: c.playing,
		Active:  c.length > 0,
	}
}

func (c *Carousel) startLocked() {
	stop := make(chan struct{})
	c.stop = stop
	c.playing = true

	ticker := c.newTicker(c.interval)
	go c.run(stop, ticker)
}

// stopLocked does not wait for the autoplay goroutine; a tick that lost the
// race sees a different stop channel and drops itself.
func (c *Carousel) stopLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	c.playing = false
}

func (c *Carousel) run(stop chan struct{}, ticker Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			c.tick(stop)
		}
	}
}

func (c *Carousel) tick(stop chan struct{}) {
	c.mu.Lock()
	if c.stop != stop || c.length <= 1 {
		c.mu.Unlock()
		return
	}
	c.index = (c.index + 1) % c.length
	st := c.stateLocked()
	c.mu.Unlock()

	c.notify(st, ReasonAutoplay)
}

func (c *Carousel) notify(st CarouselState, reason ChangeReason) {
	if c.onChange != nil {
		c.onChange(st, reason)
	}
}
