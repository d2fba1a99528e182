package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"bio_showcase/internal/domain/models"
	"bio_showcase/internal/feed"
	"bio_showcase/internal/lib/logger/sl"
	"bio_showcase/internal/services/auth"
	content "bio_showcase/internal/services/content_service"
	feedsvc "bio_showcase/internal/services/feed_service"
	media "bio_showcase/internal/services/media_service"
	"bio_showcase/internal/storage"
	"bio_showcase/internal/transport/http/dto/request"
	"bio_showcase/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

type ContentService interface {
	CreateGalleryItem(ctx context.Context, item models.GalleryItem) (string, error)
	UpdateGalleryItem(ctx context.Context, item models.GalleryItem) error
	DeleteGalleryItem(ctx context.Context, id string) error
	GetGalleryItem(ctx context.Context, id string) (models.GalleryItem, error)
	ListGalleryItems(ctx context.Context, category string, limit int) ([]models.GalleryItem, error)

	CreateAward(ctx context.Context, award models.Award) (string, error)
	UpdateAward(ctx context.Context, award models.Award) error
	DeleteAward(ctx context.Context, id string) error
	GetAward(ctx context.Context, id string) (models.Award, error)
	ListAwards(ctx context.Context) ([]models.Award, error)

	CreateService(ctx context.Context, service models.Service) (string, error)
	UpdateService(ctx context.Context, service models.Service) error
	DeleteService(ctx context.Context, id string) error
	GetService(ctx context.Context, id string) (models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)

	CreateAboutSection(ctx context.Context, section models.AboutSection) (string, error)
	UpdateAboutSection(ctx context.Context, section models.AboutSection) error
	DeleteAboutSection(ctx context.Context, id string) error
	GetAboutSection(ctx context.Context, id string) (models.AboutSection, error)
	ListAboutSections(ctx context.Context) ([]models.AboutSection, error)
}

type FeedService interface {
	Snapshot(ctx context.Context, refresh bool) ([]models.MediaEntry, error)
	View(ctx context.Context, q feedsvc.FeedQuery) (feedsvc.FeedPage, error)
	Categories(ctx context.Context) ([]feed.CategoryCount, error)
	PageSize() int
}

type MediaService interface {
	Upload(ctx context.Context, input media.UploadInput) (media.UploadResult, error)
	Delete(ctx context.Context, key string) error
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Verify(token string) (models.AdminClaims, error)
}

type LanguageService interface {
	SetLanguage(code string) (*http.Cookie, error)
	Languages() []string
}

// HealthChecker is a dependency reported by /health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Routers struct {
	log             *slog.Logger
	ContentService  ContentService
	FeedService     FeedService
	MediaService    MediaService
	AuthService     AuthService
	LanguageService LanguageService
	health          map[string]HealthChecker
	slideshow       SlideshowConfig
}

func NewRouter(
	log *slog.Logger,
	contentService ContentService,
	feedService FeedService,
	mediaService MediaService,
	authService AuthService,
	languageService LanguageService,
	slideshow SlideshowConfig,
) *Routers {
	return &Routers{
		log:             log,
		ContentService:  contentService,
		FeedService:     feedService,
		MediaService:    mediaService,
		AuthService:     authService,
		LanguageService: languageService,
		health:          make(map[string]HealthChecker),
		slideshow:       slideshow.withDefaults(),
	}
}

// AddHealthCheck registers a named dependency for /health. Not safe to call
// once the server is running.
func (r *Routers) AddHealthCheck(name string, hc HealthChecker) {
	r.health[name] = hc
}

const adminClaimsKey = "admin"

// Health reports 503 when any registered dependency fails.
func (r *Routers) Health(c echo.Context) error {
	const op = "http.routers.Health"

	checks := make(map[string]string, len(r.health))
	status := http.StatusOK

	for name, hc := range r.health {
		if err := hc.HealthCheck(c.Request().Context()); err != nil {
			r.log.Warn("health check failed", slog.String("op", op), slog.String("dependency", name), sl.Err(err))
			checks[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "up"
	}

	result := "ok"
	if status != http.StatusOK {
		result = "degraded"
	}

	return c.JSON(status, response.Response{
		Status: result,
		Data:   checks,
	})
}

// Login выдает JWT администратору
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", slog.String("username", req.Username))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	token, err := r.AuthService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
		}
		log.Error("login failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]string{
		"access_token": token,
		"token_type":   "Bearer",
	}))
}

// AdminOnly пропускает только запросы с валидным Bearer токеном администратора
func (r *Routers) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
		}

		claims, err := r.AuthService.Verify(strings.TrimSpace(token))
		if err != nil {
			r.log.Debug("rejected admin token", sl.Err(err))
			return c.JSON(http.StatusUnauthorized, response.ErrUnauthorized)
		}

		c.Set(adminClaimsKey, claims)
		return next(c)
	}
}

func (r *Routers) Languages(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse(r.LanguageService.Languages()))
}

func (r *Routers) SetLanguage(c echo.Context) error {
	var req request.LanguageRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	cookie, err := r.LanguageService.SetLanguage(req.Language)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("unsupported_language", req.Language))
	}

	c.SetCookie(cookie)
	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "language updated"})
}

// fail maps service errors to HTTP responses.
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrFileNotFound):
		return c.JSON(http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, content.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	case errors.Is(err, storage.ErrFileTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
	case errors.Is(err, storage.ErrInvalidFileType):
		return c.JSON(http.StatusUnsupportedMediaType, response.ErrUnsupportedMedia)
	case errors.Is(err, context.Canceled):
		// клиент ушел
		return c.NoContent(499)
	}

	log.Error("request failed", sl.Err(err))
	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}

// bindValid writes a 400 and reports false when req cannot be bound or validated.
func bindValid(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}
	return true, nil
}
