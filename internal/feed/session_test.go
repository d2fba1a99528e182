package feed

import (
	"sync"
	"testing"
	"time"

	"bio_showcase/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stateRecorder struct {
	mu     sync.Mutex
	states []SessionState
	ch     chan SessionState
}

func newStateRecorder() *stateRecorder {
	return &stateRecorder{ch: make(chan SessionState, 64)}
}

func (r *stateRecorder) record(st SessionState) {
	r.mu.Lock()
	r.states = append(r.states, st)
	r.mu.Unlock()
	r.ch <- st
}

func (r *stateRecorder) last() SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[len(r.states)-1]
}

func newTestSession(t *testing.T) (*Session, *tickerSource, *stateRecorder) {
	t.Helper()
	src := newTickerSource()
	rec := newStateRecorder()
	s := NewSession(SessionConfig{PageSize: 4, Interval: time.Second, Ticker: src.new}, rec.record)
	t.Cleanup(s.Unmount)
	return s, src, rec
}

func TestSession_SetEntriesResetsCarousel(t *testing.T) {
	s, src, _ := newTestSession(t)

	require.True(t, s.SetEntries(numbered(10)))
	require.True(t, s.GoTo(3))
	require.True(t, s.Play())
	src.next(t)

	require.True(t, s.SetEntries(numbered(6)))
	st := s.State()
	assert.Equal(t, 0, st.Carousel.Index)
	assert.Equal(t, 4, st.Carousel.Length)
	assert.False(t, st.Carousel.Playing)
	assert.Equal(t, 6, st.Total)
	assert.True(t, st.HasMore)
}

func TestSession_FilterChangeResets(t *testing.T) {
	s, _, _ := newTestSession(t)

	entries := numbered(6)
	entries[1].Category = models.CategoryAwards
	entries[1].SourceType = models.SourceAward
	s.SetEntries(entries)
	s.LoadMore()
	s.GoTo(5)
	require.True(t, s.Open("e5"))

	s.SetCategory(models.CategoryAwards)
	st := s.State()
	assert.Equal(t, []string{"e1"}, ids(st.Entries))
	assert.Equal(t, CarouselState{Index: 0, Length: 1, Active: true}, st.Carousel)
	assert.Empty(t, st.SelectedID, "selection left the view")

	s.SetSearch("nothing matches")
	st = s.State()
	assert.True(t, st.Empty)
	assert.False(t, st.Carousel.Active)
}

func TestSession_FilterChangeKeepsCarouselOnSelection(t *testing.T) {
	tests := []struct {
		name      string
		open      string
		change    func(s *Session)
		wantIndex int
		wantAfter string
	}{
		{
			name:      "search keeps the whole page",
			open:      "e2",
			change:    func(s *Session) { s.SetSearch("title") },
			wantIndex: 2,
			wantAfter: "e3",
		},
		{
			name:      "category narrows the view",
			open:      "e3",
			change:    func(s *Session) { s.SetCategory(models.CategoryAwards) },
			wantIndex: 1,
			wantAfter: "e1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, src, rec := newTestSession(t)

			entries := numbered(6)
			for _, i := range []int{1, 3} {
				entries[i].Category = models.CategoryAwards
				entries[i].SourceType = models.SourceAward
			}
			s.SetEntries(entries)
			require.True(t, s.Open(tt.open))

			tt.change(s)
			st := s.State()
			require.Equal(t, tt.open, st.SelectedID)
			assert.Equal(t, tt.wantIndex, st.Carousel.Index)
			assert.False(t, st.Carousel.Playing)

			require.True(t, s.HandleKey(KeySpace))
			tk := src.next(t)
			before := s.State().Version
			tk.c <- time.Now()

			require.Eventually(t, func() bool { return rec.last().Version > before }, time.Second, 5*time.Millisecond)
			assert.Equal(t, tt.wantAfter, s.State().SelectedID)
		})
	}
}

func TestSession_LoadMoreKeepsPosition(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.SetEntries(numbered(10))
	s.GoTo(2)

	s.LoadMore()
	st := s.State()
	assert.Len(t, st.Entries, 8)
	assert.Equal(t, 2, st.Carousel.Index)
	assert.Equal(t, 8, st.Carousel.Length)
}

func TestSession_AutoplayMovesLightbox(t *testing.T) {
	s, src, rec := newTestSession(t)
	s.SetEntries(numbered(3))
	require.True(t, s.Open("e0"))
	require.True(t, s.HandleKey(KeySpace))
	tk := src.next(t)

	before := s.State().Version
	tk.c <- time.Now()

	require.Eventually(t, func() bool { return rec.last().Version > before }, time.Second, 5*time.Millisecond)
	st := s.State()
	assert.Equal(t, 1, st.Carousel.Index)
	assert.Equal(t, "e1", st.SelectedID)
	assert.True(t, st.Carousel.Playing)
}

func TestSession_NextPrevRouting(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.SetEntries(numbered(3))

	require.True(t, s.Next())
	assert.Equal(t, 1, s.State().Carousel.Index)
	assert.Empty(t, s.State().SelectedID)

	require.True(t, s.Open("e1"))
	require.True(t, s.Prev())
	st := s.State()
	assert.Equal(t, "e0", st.SelectedID)
	assert.Equal(t, 0, st.Carousel.Index)

	require.True(t, s.GoTo(2))
	assert.Equal(t, "e2", s.State().SelectedID)

	s.Close()
	assert.Empty(t, s.State().SelectedID)
}

func TestSession_Fit(t *testing.T) {
	s, _, _ := newTestSession(t)
	entries := numbered(2)
	w, h := 800, 600
	entries[1].Width, entries[1].Height = &w, &h
	s.SetEntries(entries)

	assert.Nil(t, s.State().Fit)

	s.Next()
	fit := s.State().Fit
	require.NotNil(t, fit)
	assert.Equal(t, Landscape, fit.Orientation)
}

func TestSession_UnmountIgnoresLateResults(t *testing.T) {
	s, src, rec := newTestSession(t)
	s.SetEntries(numbered(3))
	s.Play()
	tk := src.next(t)

	s.Unmount()
	assert.Eventually(t, tk.isStopped, time.Second, 5*time.Millisecond)

	published := len(rec.ch)
	assert.False(t, s.SetEntries(numbered(8)))
	assert.False(t, s.Next())
	assert.Equal(t, published, len(rec.ch))
	assert.Equal(t, 3, s.State().Total)
}

func TestSession_VersionsIncrease(t *testing.T) {
	s, _, rec := newTestSession(t)
	s.SetEntries(numbered(5))
	s.Next()
	s.SetSearch("e1")

	var last uint64
	for len(rec.ch) > 0 {
		st := <-rec.ch
		assert.Greater(t, st.Version, last)
		last = st.Version
	}
	assert.Equal(t, uint64(3), last)
}
