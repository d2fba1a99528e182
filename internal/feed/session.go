package feed

import (
	"sync"
	"time"

	"bio_showcase/internal/domain/models"
)

// SessionConfig configures one mounted view.
type SessionConfig struct {
	PageSize int
	Interval time.Duration
	// Ticker overrides the autoplay ticker, mostly for tests.
	Ticker TickerFunc
}

// SessionState is a full snapshot of a view. Version grows with every change so
// receivers can drop snapshots that arrive out of order.
type SessionState struct {
	Version    uint64              `json:"version"`
	Category   string              `json:"category"`
	Search     string              `json:"search"`
	Entries    []models.MediaEntry `json:"entries"`
	Total      int                 `json:"total"`
	HasMore    bool                `json:"hasMore"`
	Empty      bool                `json:"empty"`
	Carousel   CarouselState       `json:"carousel"`
	SelectedID string              `json:"selectedId,omitempty"`
	Fit        *FrameFit           `json:"fit,omitempty"`
}

// Session owns the controller, carousel and lightbox of one mounted view and
// keeps them consistent: every change of the visible list resizes or resets the
// carousel before the lock is released.
type Session struct {
	mu         sync.Mutex
	controller *Controller
	carousel   *Carousel
	lightbox   *Lightbox
	onChange   func(SessionState)
	version    uint64
	unmounted  bool
}

// NewSession mounts a view. onChange, if set, receives a snapshot after every
// change, including autoplay ticks; it is called without the session lock held.
func NewSession(cfg SessionConfig, onChange func(SessionState)) *Session {
	s := &Session{
		controller: NewController(cfg.PageSize),
		onChange:   onChange,
	}

	opts := []CarouselOption{WithOnChange(s.carouselChanged)}
	if cfg.Ticker != nil {
		opts = append(opts, WithTicker(cfg.Ticker))
	}
	s.carousel = NewCarousel(cfg.Interval, opts...)
	s.lightbox = NewLightbox(s.controller.View, s.carousel)

	return s
}

// Unmount cancels autoplay. A session never changes state afterwards, so late
// fetch results are dropped.
func (s *Session) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unmounted = true
	s.carousel.Close()
}

// SetEntries installs a new feed snapshot. It reports false when the session
// is already unmounted.
func (s *Session) SetEntries(entries []models.MediaEntry) bool {
	return s.update(func() {
		s.controller.SetEntries(entries)
		s.replaced()
	})
}

func (s *Session) SetCategory(category string) bool {
	return s.update(func() {
		if s.controller.SetCategory(category) {
			s.replaced()
		}
	})
}

func (s *Session) SetSearch(search string) bool {
	return s.update(func() {
		if s.controller.SetSearch(search) {
			s.replaced()
		}
	})
}

func (s *Session) LoadMore() bool {
	return s.update(func() {
		s.controller.LoadMore()
		s.carousel.Resize(len(s.controller.View()))
	})
}

func (s *Session) Open(id string) bool {
	var ok bool
	s.update(func() { ok = s.lightbox.Open(id) })
	return ok
}

func (s *Session) Close() bool {
	return s.update(s.lightbox.Close)
}

// HandleKey reports whether the key was bound.
func (s *Session) HandleKey(key Key) bool {
	var ok bool
	s.update(func() { ok = s.lightbox.HandleKey(key) })
	return ok
}

// Next and Prev move the lightbox when it is open, the carousel otherwise.
func (s *Session) Next() bool {
	var ok bool
	s.update(func() {
		if s.lightbox.IsOpen() {
			ok = s.lightbox.Next()
			return
		}
		ok = s.carousel.Next()
	})
	return ok
}

func (s *Session) Prev() bool {
	var ok bool
	s.update(func() {
		if s.lightbox.IsOpen() {
			ok = s.lightbox.Prev()
			return
		}
		ok = s.carousel.Prev()
	})
	return ok
}

func (s *Session) GoTo(i int) bool {
	var ok bool
	s.update(func() {
		if ok = s.carousel.GoTo(i); ok {
			s.lightbox.Follow(i)
		}
	})
	return ok
}

func (s *Session) Play() bool {
	var ok bool
	s.update(func() { ok = s.carousel.Play() })
	return ok
}

func (s *Session) Pause() bool {
	var ok bool
	s.update(func() { ok = s.carousel.Pause() })
	return ok
}

func (s *Session) TogglePlay() bool {
	var playing bool
	s.update(func() { playing = s.carousel.Toggle() })
	return playing
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// update runs fn under the lock and publishes the resulting snapshot.
func (s *Session) update(fn func()) bool {
	s.mu.Lock()
	if s.unmounted {
		s.mu.Unlock()
		return false
	}
	fn()
	s.version++
	st := s.stateLocked()
	s.mu.Unlock()

	s.publish(st)
	return true
}

// replaced resets the carousel to the new visible list and drops a lightbox
// selection that left it. A selection that survived keeps the carousel on it.
func (s *Session) replaced() {
	view := s.controller.View()
	s.carousel.Replace(len(view))
	s.lightbox.Reconcile()
	if i := indexOf(view, s.lightbox.SelectedID()); i > 0 {
		s.carousel.GoTo(i)
	}
}

// carouselChanged only reacts to autoplay; every other change originates from
// a session method that publishes on its own.
func (s *Session) carouselChanged(st CarouselState, reason ChangeReason) {
	if reason != ReasonAutoplay {
		return
	}

	s.mu.Lock()
	if s.unmounted {
		s.mu.Unlock()
		return
	}
	s.lightbox.Follow(s.carousel.State().Index)
	s.version++
	snapshot := s.stateLocked()
	s.mu.Unlock()

	s.publish(snapshot)
}

func (s *Session) stateLocked() SessionState {
	view := s.controller.View()
	carousel := s.carousel.State()

	st := SessionState{
		Version:    s.version,
		Category:   s.controller.Category(),
		Search:     s.controller.Search(),
		Entries:    view,
		Total:      s.controller.Total(),
		HasMore:    s.controller.HasMore(),
		Empty:      len(view) == 0,
		Carousel:   carousel,
		SelectedID: s.lightbox.SelectedID(),
	}

	current := carousel.Index
	if selected := indexOf(view, st.SelectedID); selected >= 0 {
		current = selected
	}
	if current < len(view) {
		if fit, ok := FitForEntry(view[current]); ok {
			st.Fit = &fit
		}
	}

	return st
}

func (s *Session) publish(st SessionState) {
	if s.onChange != nil {
		s.onChange(st)
	}
}
