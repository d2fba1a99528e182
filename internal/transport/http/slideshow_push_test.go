package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"bio_showcase/internal/feed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlideshowConn_PushKeepsNewestFrames(t *testing.T) {
	tests := []struct {
		name   string
		buffer int
		pushed int
		closed bool
		want   []uint64
	}{
		{name: "room for everything", buffer: 4, pushed: 2, want: []uint64{1, 2}},
		{name: "full buffer drops oldest", buffer: 2, pushed: 5, want: []uint64{4, 5}},
		{name: "single slot holds the latest", buffer: 1, pushed: 3, want: []uint64{3}},
		{name: "closed connection queues nothing", buffer: 2, pushed: 3, closed: true, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &slideshowConn{
				log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
				send: make(chan []byte, tt.buffer),
				done: make(chan struct{}),
			}
			if tt.closed {
				close(s.done)
			}

			for v := 1; v <= tt.pushed; v++ {
				s.pushState(feed.SessionState{Version: uint64(v)})
			}

			var got []uint64
			for len(s.send) > 0 {
				var frame SlideshowFrame
				require.NoError(t, json.Unmarshal(<-s.send, &frame))
				require.NotNil(t, frame.State)
				got = append(got, frame.State.Version)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
