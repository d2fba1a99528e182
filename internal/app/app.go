package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpapp "bio_showcase/internal/app/http"
	"bio_showcase/internal/config"
	"bio_showcase/internal/contentapi"
	"bio_showcase/internal/lib/logger/sl"
	"bio_showcase/internal/repository"
	"bio_showcase/internal/services/auth"
	content "bio_showcase/internal/services/content_service"
	feedsvc "bio_showcase/internal/services/feed_service"
	media "bio_showcase/internal/services/media_service"
	"bio_showcase/internal/services/translation"
	"bio_showcase/internal/storage/filestorage"
	"bio_showcase/internal/storage/postgresql"
	redisapp "bio_showcase/internal/storage/redis"
	"bio_showcase/internal/storage/s3storage"
	httprouters "bio_showcase/internal/transport/http"
)

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	storage    *postgresql.Storage
	redis      *redisapp.Client
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	if cfg.Admin.JWTSecret == "" {
		return nil, fmt.Errorf("%s: admin jwt secret is required", op)
	}

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := storage.Migrate(ctx); err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repo := repository.NewRepository(storage.Pool())

	// redis необязателен: без него живет только локальный кэш
	var (
		redisClient *redisapp.Client
		shared      repository.SnapshotCache
	)
	if cfg.Redis.RedisAddr != "" {
		redisClient = redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
		if err := redisClient.HealthCheck(ctx); err != nil {
			log.Warn("redis is unavailable, shared feed cache disabled", sl.Err(err))
		}
		shared = repository.NewRedisSnapshotRepo(redisClient)
	}

	authService := auth.New(log, repo.Admins, repo.Admins, cfg.Admin.JWTSecret, cfg.Admin.TokenTTL)
	if cfg.Admin.PasswordHash != "" {
		if _, err := authService.EnsureAdmin(ctx, cfg.Admin.Username, []byte(cfg.Admin.PasswordHash)); err != nil {
			storage.Stop()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	fetcher := contentapi.New(log, cfg.ContentAPI, nil)
	feedService := feedsvc.NewFeedService(log, fetcher, nil, shared, cfg.Feed.PageSize, feedsvc.CacheOptions{
		LocalTTL:        cfg.Cache.TTL,
		CleanupInterval: cfg.Cache.CleanupInterval,
		SharedTTL:       cfg.Cache.RedisTTL,
		RebuildTimeout:  cfg.Cache.RebuildTimeout,
	})

	contentService := content.NewContentService(log, repo.Gallery, repo.Awards, repo.Services, repo.About, feedService)

	host, static, err := imageHost(ctx, cfg.ImageHost)
	if err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	mediaService := media.NewMediaService(log, host, cfg.ImageHost.MaxSize)

	languages := translation.NewCookieService(cfg.Translation.Languages, cfg.Translation.CookieTTL)

	routers := httprouters.NewRouter(log, contentService, feedService, mediaService, authService, languages,
		httprouters.SlideshowConfig{
			GalleryInterval: cfg.Carousel.GalleryInterval,
			RecentInterval:  cfg.Carousel.RecentInterval,
			AwardsInterval:  cfg.Carousel.AwardsInterval,
			PageSize:        cfg.Feed.PageSize,
			AllowedOrigins:  cfg.HTTP.AllowedOrigins,
		})
	routers.AddHealthCheck("postgres", storage)
	if redisClient != nil {
		routers.AddHealthCheck("redis", redisClient)
	}

	log.Info("image host ready", slog.String("driver", host.Name()))

	return &App{
		log:        log,
		HTTPServer: httpapp.New(log, cfg.HTTP, routers, static),
		storage:    storage,
		redis:      redisClient,
	}, nil
}

func imageHost(ctx context.Context, cfg config.ImageHostConfig) (media.ImageHost, httpapp.Static, error) {
	switch cfg.Driver {
	case "", "local":
		local, err := filestorage.NewLocalFileStorage(cfg.Local.BaseDir, cfg.Local.BaseURL)
		if err != nil {
			return nil, httpapp.Static{}, err
		}
		return local, httpapp.Static{Prefix: cfg.Local.BaseURL, Dir: local.BaseDir()}, nil
	case "s3":
		remote, err := s3storage.New(ctx, s3storage.Config{
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PublicURL:       cfg.S3.PublicURL,
		})
		if err != nil {
			return nil, httpapp.Static{}, err
		}
		return remote, httpapp.Static{}, nil
	}
	return nil, httpapp.Static{}, fmt.Errorf("unknown image host driver %q", cfg.Driver)
}

// Stop shuts the server down first, then releases storage.
func (a *App) Stop() error {
	const op = "app.Stop"

	var errs []error
	if err := a.HTTPServer.Stop(); err != nil {
		errs = append(errs, err)
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.storage.Stop()

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
