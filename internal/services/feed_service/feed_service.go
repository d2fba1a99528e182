package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bio_showcase/internal/contentapi"
	"bio_showcase/internal/domain/models"
	"bio_showcase/internal/feed"
	"bio_showcase/internal/lib/logger/sl"
	"bio_showcase/internal/metrics"
	"bio_showcase/internal/repository"
	"bio_showcase/internal/storage"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const snapshotKey = "feed"

// ContentFetcher returns the raw content of all four sources.
type ContentFetcher interface {
	FetchAll(ctx context.Context, q contentapi.GalleryQuery) models.RawContent
}

// FeedQuery selects one page of the feed. Limit <= 0 means the configured page size.
type FeedQuery struct {
	Category string
	Search   string
	Limit    int
	Refresh  bool
}

type FeedPage struct {
	Category string              `json:"category"`
	Search   string              `json:"search"`
	Entries  []models.MediaEntry `json:"entries"`
	Shown    int                 `json:"shown"`
	Total    int                 `json:"total"`
	HasMore  bool                `json:"hasMore"`
	Empty    bool                `json:"empty"`
}

type CacheOptions struct {
	LocalTTL        time.Duration
	CleanupInterval time.Duration
	SharedTTL       time.Duration
	// RebuildTimeout bounds one fetch of all sources. It does not depend on
	// the caller that triggered the rebuild.
	RebuildTimeout time.Duration
}

const defaultRebuildTimeout = 30 * time.Second

// FeedService builds normalized feed snapshots and keeps them in a local
// cache backed by an optional shared one.
type FeedService struct {
	log        *slog.Logger
	fetcher    ContentFetcher
	normalizer *feed.Normalizer
	local      *cache.Cache
	shared     repository.SnapshotCache
	sharedTTL  time.Duration
	pageSize   int
	timeout    time.Duration
	group      singleflight.Group
}

func NewFeedService(
	log *slog.Logger,
	fetcher ContentFetcher,
	normalizer *feed.Normalizer,
	shared repository.SnapshotCache,
	pageSize int,
	opts CacheOptions,
) *FeedService {
	if pageSize <= 0 {
		pageSize = feed.DefaultPageSize
	}
	if normalizer == nil {
		normalizer = feed.NewNormalizer()
	}
	timeout := opts.RebuildTimeout
	if timeout <= 0 {
		timeout = defaultRebuildTimeout
	}

	return &FeedService{
		log:        log,
		fetcher:    fetcher,
		normalizer: normalizer,
		local:      cache.New(opts.LocalTTL, opts.CleanupInterval),
		shared:     shared,
		sharedTTL:  opts.SharedTTL,
		pageSize:   pageSize,
		timeout:    timeout,
	}
}

func (s *FeedService) PageSize() int { return s.pageSize }

// Snapshot returns the full normalized feed. With refresh set both cache levels
// are bypassed and overwritten.
func (s *FeedService) Snapshot(ctx context.Context, refresh bool) ([]models.MediaEntry, error) {
	const op = "service.FeedService.Snapshot"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !refresh {
		if entries, ok := s.fromLocal(); ok {
			return entries, nil
		}
		if entries, ok := s.fromShared(ctx); ok {
			s.local.SetDefault(snapshotKey, entries)
			return entries, nil
		}
	}

	// пересборка живет дольше запроса, который ее запустил
	ch := s.group.DoChan(snapshotKey, func() (interface{}, error) {
		return s.rebuild(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("%s: %w", op, res.Err)
		}
		return res.Val.([]models.MediaEntry), nil
	}
}

// View returns one filtered page of the feed. An empty result is not an error.
func (s *FeedService) View(ctx context.Context, q FeedQuery) (FeedPage, error) {
	const op = "service.FeedService.View"

	entries, err := s.Snapshot(ctx, q.Refresh)
	if err != nil {
		return FeedPage{}, fmt.Errorf("%s: %w", op, err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = s.pageSize
	}

	category := q.Category
	if category == "" {
		category = models.CategoryAll
	}

	filtered := feed.Filter(entries, category, q.Search)
	page := filtered
	if limit < len(filtered) {
		page = filtered[:limit]
	}

	return FeedPage{
		Category: category,
		Search:   q.Search,
		Entries:  page,
		Shown:    len(page),
		Total:    len(filtered),
		HasMore:  len(page) < len(filtered),
		Empty:    len(page) == 0,
	}, nil
}

func (s *FeedService) Categories(ctx context.Context) ([]feed.CategoryCount, error) {
	const op = "service.FeedService.Categories"

	entries, err := s.Snapshot(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return feed.Categories(entries), nil
}

// Invalidate drops both cache levels. Shared cache errors are only logged.
func (s *FeedService) Invalidate(ctx context.Context) {
	const op = "service.FeedService.Invalidate"

	s.local.Delete(snapshotKey)

	if s.shared == nil {
		return
	}
	if err := s.shared.InvalidateSnapshot(ctx); err != nil {
		s.log.Warn("failed to invalidate shared snapshot", slog.String("op", op), sl.Err(err))
	}
}

// rebuild caches nothing when the fetch ran out of time: sources cut short
// come back empty and would blank the feed for every reader.
func (s *FeedService) rebuild(ctx context.Context) ([]models.MediaEntry, error) {
	const op = "service.FeedService.rebuild"
	log := s.log.With(slog.String("op", op))

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw := s.fetcher.FetchAll(ctx, contentapi.GalleryQuery{})
	if err := ctx.Err(); err != nil {
		log.Warn("feed rebuild timed out", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	entries := s.normalizer.Normalize(raw)

	metrics.FeedEntries.Set(float64(len(entries)))
	s.local.SetDefault(snapshotKey, entries)

	if s.shared != nil {
		if err := s.shared.SaveSnapshot(ctx, entries, s.sharedTTL); err != nil {
			log.Warn("failed to save shared snapshot", sl.Err(err))
		}
	}

	log.Debug("feed rebuilt", slog.Int("entries", len(entries)))
	return entries, nil
}

func (s *FeedService) fromLocal() ([]models.MediaEntry, bool) {
	if v, ok := s.local.Get(snapshotKey); ok {
		metrics.FeedCacheTotal.WithLabelValues("local", "hit").Inc()
		return v.([]models.MediaEntry), true
	}
	metrics.FeedCacheTotal.WithLabelValues("local", "miss").Inc()
	return nil, false
}

func (s *FeedService) fromShared(ctx context.Context) ([]models.MediaEntry, bool) {
	const op = "service.FeedService.fromShared"

	if s.shared == nil {
		return nil, false
	}

	entries, err := s.shared.GetSnapshot(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrCacheMiss) {
			s.log.Warn("shared snapshot unavailable", slog.String("op", op), sl.Err(err))
		}
		metrics.FeedCacheTotal.WithLabelValues("shared", "miss").Inc()
		return nil, false
	}

	metrics.FeedCacheTotal.WithLabelValues("shared", "hit").Inc()
	return entries, true
}
