package s3storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method      string
	path        string
	body        string
	contentType string
}

func fakeS3(t *testing.T, status int) (*httptest.Server, func() []recordedRequest) {
	t.Helper()

	var mu sync.Mutex
	var reqs []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			body:        string(body),
			contentType: r.Header.Get("Content-Type"),
		})
		mu.Unlock()

		if status >= 300 {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>denied</Message></Error>`)
			return
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func newTestStorage(t *testing.T, endpoint, publicURL string) *Storage {
	t.Helper()

	s, err := New(context.Background(), Config{
		Endpoint:        endpoint,
		Region:          "us-east-1",
		Bucket:          "media",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		PublicURL:       publicURL,
	})
	require.NoError(t, err)
	return s
}

func TestStorage_Put(t *testing.T) {
	srv, requests := fakeS3(t, http.StatusOK)
	s := newTestStorage(t, srv.URL, "https://cdn.example.org/")

	url, size, err := s.Put(context.Background(), "/gallery/a.jpg", strings.NewReader("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.org/gallery/a.jpg", url)
	assert.Equal(t, int64(10), size)

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPut, reqs[0].method)
	assert.Equal(t, "/media/gallery/a.jpg", reqs[0].path)
	assert.Equal(t, "image/jpeg", reqs[0].contentType)
	assert.Contains(t, reqs[0].body, "jpeg-bytes")
}

func TestStorage_PutError(t *testing.T) {
	srv, _ := fakeS3(t, http.StatusForbidden)
	s := newTestStorage(t, srv.URL, "")

	_, _, err := s.Put(context.Background(), "a.jpg", strings.NewReader("x"), "image/jpeg")
	assert.Error(t, err)
}

func TestStorage_Delete(t *testing.T) {
	srv, requests := fakeS3(t, http.StatusNoContent)
	s := newTestStorage(t, srv.URL, "")

	require.NoError(t, s.Delete(context.Background(), "about/b.png"))

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodDelete, reqs[0].method)
	assert.Equal(t, "/media/about/b.png", reqs[0].path)
}

func TestStorage_URL(t *testing.T) {
	s := newTestStorage(t, "http://minio:9000", "")
	assert.Equal(t, "http://minio:9000/media/x.jpg", s.URL("x.jpg"))
	assert.Equal(t, "s3", s.Name())

	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}
