// Package contentapi fetches the four content lists the feed is built from.
package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bio_showcase/internal/config"
	"bio_showcase/internal/domain/models"
	"bio_showcase/internal/lib/logger/sl"
	"bio_showcase/internal/metrics"

	"golang.org/x/sync/errgroup"
)

const maxBodySize = 8 << 20

var ErrUnexpectedStatus = errors.New("unexpected status")

// GalleryQuery is forwarded to the gallery endpoint as query parameters.
type GalleryQuery struct {
	Category string
	Limit    int
}

type Client struct {
	log     *slog.Logger
	http    *http.Client
	baseURL string
	paths   map[models.SourceType]string
}

func New(log *slog.Logger, cfg config.ContentAPIConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		log:     log,
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		paths: map[models.SourceType]string{
			models.SourceGallery: cfg.GalleryPath,
			models.SourceAward:   cfg.AwardsPath,
			models.SourceService: cfg.ServicesPath,
			models.SourceAbout:   cfg.AboutPath,
		},
	}
}

// FetchAll requests the four lists concurrently and waits for all of them.
// A source that fails for any reason comes back as an empty list; FetchAll
// itself never fails.
func (c *Client) FetchAll(ctx context.Context, q GalleryQuery) models.RawContent {
	const op = "contentapi.Client.FetchAll"

	log := c.log.With(slog.String("op", op))

	var raw models.RawContent

	// goroutines never return an error so one failure cannot cancel the others
	var g errgroup.Group
	g.Go(func() error {
		raw.Gallery = orEmpty(c.FetchGallery(ctx, q))
		return nil
	})
	g.Go(func() error {
		raw.Awards = orEmpty(c.FetchAwards(ctx))
		return nil
	})
	g.Go(func() error {
		raw.Services = orEmpty(c.FetchServices(ctx))
		return nil
	})
	g.Go(func() error {
		raw.About = orEmpty(c.FetchAbout(ctx))
		return nil
	})
	_ = g.Wait()

	log.Debug("content fetched",
		slog.Int("gallery", len(raw.Gallery)),
		slog.Int("awards", len(raw.Awards)),
		slog.Int("services", len(raw.Services)),
		slog.Int("about", len(raw.About)),
	)

	return raw
}

func (c *Client) FetchGallery(ctx context.Context, q GalleryQuery) ([]models.GalleryItem, error) {
	params := url.Values{}
	if q.Category != "" && q.Category != models.CategoryAll {
		params.Set("category", q.Category)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	return fetchList[models.GalleryItem](ctx, c, models.SourceGallery, params)
}

func (c *Client) FetchAwards(ctx context.Context) ([]models.Award, error) {
	return fetchList[models.Award](ctx, c, models.SourceAward, nil)
}

func (c *Client) FetchServices(ctx context.Context) ([]models.Service, error) {
	return fetchList[models.Service](ctx, c, models.SourceService, nil)
}

func (c *Client) FetchAbout(ctx context.Context) ([]models.AboutSection, error) {
	return fetchList[models.AboutSection](ctx, c, models.SourceAbout, nil)
}

func fetchList[T any](ctx context.Context, c *Client, source models.SourceType, params url.Values) ([]T, error) {
	const op = "contentapi.Client.fetchList"

	log := c.log.With(
		slog.String("op", op),
		slog.String("source", string(source)),
	)

	start := time.Now()
	items, skipped, err := getList[T](ctx, c, c.endpoint(source, params))
	metrics.ContentFetchDuration.WithLabelValues(string(source)).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ContentFetchTotal.WithLabelValues(string(source), "error").Inc()
		log.Warn("content source unavailable", sl.Err(err))
		return nil, fmt.Errorf("%s: %s: %w", op, source, err)
	}

	if skipped > 0 {
		metrics.ContentRecordsSkipped.WithLabelValues(string(source)).Add(float64(skipped))
		log.Warn("malformed records skipped", slog.Int("skipped", skipped), slog.Int("kept", len(items)))
	}

	metrics.ContentFetchTotal.WithLabelValues(string(source), "ok").Inc()
	return items, nil
}

func getList[T any](ctx context.Context, c *Client, endpoint string) ([]T, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, 0, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, 0, err
	}

	return decodeList[T](body)
}

// decodeList accepts a bare array or an object carrying the array in "data".
// Records are decoded one by one: a record that does not fit T is skipped
// and counted, the rest of the list survives.
func decodeList[T any](body []byte) ([]T, int, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []T{}, 0, nil
	}

	if body[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, 0, err
		}
		return decodeList[T](envelope.Data)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, 0, err
	}

	items := make([]T, 0, len(records))
	skipped := 0
	for _, record := range records {
		var item T
		if err := json.Unmarshal(record, &item); err != nil {
			skipped++
			continue
		}
		items = append(items, item)
	}
	return items, skipped, nil
}

func (c *Client) endpoint(source models.SourceType, params url.Values) string {
	u := c.baseURL + c.paths[source]
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func orEmpty[T any](items []T, err error) []T {
	if err != nil || items == nil {
		return []T{}
	}
	return items
}
