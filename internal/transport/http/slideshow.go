package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"bio_showcase/internal/domain/models"
	"bio_showcase/internal/feed"
	"bio_showcase/internal/lib/logger/sl"
	"bio_showcase/internal/metrics"
	"bio_showcase/internal/transport/http/dto/response"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 32
	loadTimeout    = 15 * time.Second
)

// Slideshow views. Each one has its own autoplay interval and initial filter.
const (
	ViewGallery = "gallery"
	ViewRecent  = "recent"
	ViewAwards  = "awards"
)

type SlideshowConfig struct {
	GalleryInterval time.Duration
	RecentInterval  time.Duration
	AwardsInterval  time.Duration
	PageSize        int
	AllowedOrigins  []string
	// Ticker overrides the autoplay ticker of every session.
	Ticker feed.TickerFunc
}

func (c SlideshowConfig) withDefaults() SlideshowConfig {
	if c.GalleryInterval <= 0 {
		c.GalleryInterval = 3 * time.Second
	}
	if c.RecentInterval <= 0 {
		c.RecentInterval = 4 * time.Second
	}
	if c.AwardsInterval <= 0 {
		c.AwardsInterval = 4 * time.Second
	}
	return c
}

type viewPreset struct {
	interval time.Duration
	category string
}

func (c SlideshowConfig) preset(view string) (viewPreset, bool) {
	switch view {
	case "", ViewGallery:
		return viewPreset{interval: c.GalleryInterval, category: models.CategoryAll}, true
	case ViewRecent:
		return viewPreset{interval: c.RecentInterval, category: models.CategoryAll}, true
	case ViewAwards:
		return viewPreset{interval: c.AwardsInterval, category: models.CategoryAwards}, true
	}
	return viewPreset{}, false
}

// SlideshowCommand is a client frame.
type SlideshowCommand struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
	Index *int   `json:"index,omitempty"`
}

// SlideshowFrame is a server frame: either a full state or an error.
type SlideshowFrame struct {
	Type  string             `json:"type"`
	State *feed.SessionState `json:"state,omitempty"`
	Error string             `json:"error,omitempty"`
}

type slideshowConn struct {
	log     *slog.Logger
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	once    sync.Once
	session *feed.Session
}

// Slideshow godoc
// @Summary Живая сессия карусели и лайтбокса
// @Param view query string false "gallery | recent | awards"
// @Router /api/v1/slideshow/ws [get]
func (r *Routers) Slideshow(c echo.Context) error {
	const op = "http.routers.Slideshow"

	view := c.QueryParam("view")
	preset, ok := r.slideshow.preset(view)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "unknown view: "+view))
	}

	log := r.log.With(
		slog.String("op", op),
		slog.String("view", view),
	)

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     r.checkOrigin,
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Warn("websocket upgrade failed", sl.Err(err))
		return nil
	}

	client := &slideshowConn{
		log:  log,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	client.session = feed.NewSession(feed.SessionConfig{
		PageSize: r.slideshow.PageSize,
		Interval: preset.interval,
		Ticker:   r.slideshow.Ticker,
	}, client.pushState)

	metrics.SlideshowSessions.Inc()
	log.Debug("slideshow session opened")

	client.session.SetCategory(preset.category)

	go client.writer()
	go r.loadSnapshot(client)

	client.reader()
	return nil
}

func (r *Routers) checkOrigin(req *http.Request) bool {
	origin := req.Header.Get("Origin")

	if len(r.slideshow.AllowedOrigins) == 0 || origin == "" {
		return true
	}

	for _, allowed := range r.slideshow.AllowedOrigins {
		if allowed == "*" || origin == allowed {
			return true
		}
	}

	r.log.Warn("websocket origin rejected", slog.String("origin", origin))
	return false
}

// loadSnapshot fills the session once the feed is available. A session closed
// in the meantime ignores the result.
func (r *Routers) loadSnapshot(client *slideshowConn) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	go func() {
		select {
		case <-client.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	entries, err := r.FeedService.Snapshot(ctx, false)
	if err != nil {
		client.log.Warn("failed to load feed", sl.Err(err))
		client.pushError("feed_unavailable")
		return
	}
	client.session.SetEntries(entries)
}

func (s *slideshowConn) reader() {
	defer s.close()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read error", sl.Err(err))
			}
			return
		}

		var cmd SlideshowCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			s.pushError("invalid_command")
			continue
		}

		if errCode := s.apply(cmd); errCode != "" {
			s.pushError(errCode)
		}
	}
}

// apply runs one command and returns an error code for the client, if any.
// Every successful command publishes a fresh state frame through the session.
func (s *slideshowConn) apply(cmd SlideshowCommand) string {
	sess := s.session

	switch cmd.Type {
	case "state":
		s.pushState(sess.State())
	case "filter":
		sess.SetCategory(cmd.Value)
	case "search":
		sess.SetSearch(cmd.Value)
	case "load_more":
		sess.LoadMore()
	case "open":
		if !sess.Open(cmd.Value) {
			return "not_found"
		}
	case "close":
		sess.Close()
	case "key":
		sess.HandleKey(feed.ParseKey(cmd.Value))
	case "next":
		sess.Next()
	case "prev":
		sess.Prev()
	case "goto":
		if cmd.Index == nil || !sess.GoTo(*cmd.Index) {
			return "out_of_range"
		}
	case "play":
		sess.Play()
	case "pause":
		sess.Pause()
	case "toggle":
		sess.TogglePlay()
	default:
		return "unknown_command"
	}
	return ""
}

func (s *slideshowConn) writer() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.close()
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.close()
				return
			}

		case <-s.done:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (s *slideshowConn) pushState(st feed.SessionState) {
	s.push(SlideshowFrame{Type: "state", State: &st})
}

func (s *slideshowConn) pushError(code string) {
	s.push(SlideshowFrame{Type: "error", Error: code})
}

// push never blocks. A slow client loses the oldest queued frames, the newest
// one always gets queued: every state frame is complete, so the last one is
// all the client needs.
func (s *slideshowConn) push(frame SlideshowFrame) {
	data, err := json.Marshal(frame)
	if err != nil {
		s.log.Error("failed to encode frame", sl.Err(err))
		return
	}

	for {
		select {
		case <-s.done:
			return
		default:
		}

		select {
		case s.send <- data:
			return
		default:
		}

		select {
		case <-s.send:
			s.log.Debug("slideshow frame dropped")
		default:
		}
	}
}

// close stops the session. The writer sends the close frame and releases the
// connection.
func (s *slideshowConn) close() {
	s.once.Do(func() {
		close(s.done)
		s.session.Unmount()
		metrics.SlideshowSessions.Dec()
		s.log.Debug("slideshow session closed")
	})
}
