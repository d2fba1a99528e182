package feed

import "bio_showcase/internal/domain/models"

// Key is a KeyboardEvent.key value.
type Key string

const (
	KeyEscape     Key = "Escape"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeySpace      Key = " "
)

// ParseKey accepts the browser key value plus the "Space"/"Esc" spellings some
// clients send.
func ParseKey(s string) Key {
	switch s {
	case " ", "Space", "Spacebar":
		return KeySpace
	case "Esc":
		return KeyEscape
	case "Left":
		return KeyArrowLeft
	case "Right":
		return KeyArrowRight
	}
	return Key(s)
}

// Lightbox is the full-size viewer over the entries a view currently shows.
// Navigation goes through the carousel, so the lightbox and the carousel
// never disagree about position. Not safe for concurrent use.
type Lightbox struct {
	view       func() []models.MediaEntry
	carousel   *Carousel
	selectedID string
}

func NewLightbox(view func() []models.MediaEntry, carousel *Carousel) *Lightbox {
	return &Lightbox{view: view, carousel: carousel}
}

func (l *Lightbox) IsOpen() bool { return l.selectedID != "" }

func (l *Lightbox) SelectedID() string { return l.selectedID }

// Selected returns the selected entry as it is in the current view.
func (l *Lightbox) Selected() (models.MediaEntry, bool) {
	if !l.IsOpen() {
		return models.MediaEntry{}, false
	}
	entries := l.view()
	if i := indexOf(entries, l.selectedID); i >= 0 {
		return entries[i], true
	}
	return models.MediaEntry{}, false
}

// Open selects id if the current view contains it.
func (l *Lightbox) Open(id string) bool {
	i := indexOf(l.view(), id)
	if i < 0 {
		return false
	}
	l.selectedID = id
	l.carousel.GoTo(i)
	return true
}

// Close clears the selection and stops autoplay.
func (l *Lightbox) Close() {
	l.selectedID = ""
	l.carousel.Pause()
}

func (l *Lightbox) Next() bool { return l.step(1) }

func (l *Lightbox) Prev() bool { return l.step(-1) }

func (l *Lightbox) step(delta int) bool {
	if !l.IsOpen() {
		return false
	}
	entries := l.view()
	i := indexOf(entries, l.selectedID)
	if i < 0 {
		l.selectedID = ""
		return false
	}
	n := len(entries)
	if n <= 1 {
		return false
	}
	i = (i + delta + n) % n
	l.selectedID = entries[i].ID
	l.carousel.GoTo(i)
	return true
}

// HandleKey applies a key press and reports whether it was consumed. Keys are
// only bound while the lightbox is open.
func (l *Lightbox) HandleKey(key Key) bool {
	if !l.IsOpen() {
		return false
	}
	switch key {
	case KeyEscape:
		l.Close()
	case KeyArrowLeft:
		l.Prev()
	case KeyArrowRight:
		l.Next()
	case KeySpace:
		l.carousel.Toggle()
	default:
		return false
	}
	return true
}

// Follow moves the selection to the carousel position after an autoplay tick.
func (l *Lightbox) Follow(index int) {
	if !l.IsOpen() {
		return
	}
	entries := l.view()
	if index >= 0 && index < len(entries) {
		l.selectedID = entries[index].ID
	}
}

// Reconcile drops the selection when the view no longer contains it and
// reports whether it did.
func (l *Lightbox) Reconcile() bool {
	if !l.IsOpen() {
		return false
	}
	if indexOf(l.view(), l.selectedID) >= 0 {
		return false
	}
	l.selectedID = ""
	return true
}

func indexOf(entries []models.MediaEntry, id string) int {
	if id == "" {
		return -1
	}
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
