package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"bio_showcase/internal/domain/models"
	"bio_showcase/internal/lib/logger/sl"
	"bio_showcase/internal/repository"
	"bio_showcase/internal/storage"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

// FeedInvalidator drops cached feed snapshots after content changes.
type FeedInvalidator interface {
	Invalidate(ctx context.Context)
}

type ContentService struct {
	log      *slog.Logger
	gallery  repository.GalleryRepository
	awards   repository.AwardRepository
	services repository.ServiceRepository
	about    repository.AboutRepository
	feed     FeedInvalidator
}

func NewContentService(
	log *slog.Logger,
	gallery repository.GalleryRepository,
	awards repository.AwardRepository,
	services repository.ServiceRepository,
	about repository.AboutRepository,
	feed FeedInvalidator,
) *ContentService {
	return &ContentService{
		log:      log,
		gallery:  gallery,
		awards:   awards,
		services: services,
		about:    about,
		feed:     feed,
	}
}

// Галерея

func (s *ContentService) CreateGalleryItem(ctx context.Context, item models.GalleryItem) (string, error) {
	const op = "service.ContentService.CreateGalleryItem"
	log := s.log.With(
		slog.String("op", op),
		slog.String("title", item.Title),
	)

	if err := requireFields(map[string]string{"title": item.Title, "image": item.Image}); err != nil {
		log.Warn("invalid gallery item", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.gallery.CreateGalleryItem(ctx, item)
	if err != nil {
		log.Error("failed to create gallery item", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.changed(ctx)
	log.Info("gallery item created", slog.String("id", id))
	return id, nil
}

func (s *ContentService) UpdateGalleryItem(ctx context.Context, item models.GalleryItem) error {
	const op = "service.ContentService.UpdateGalleryItem"
	log := s.log.With(
		slog.String("op", op),
		slog.String("id", item.ID),
	)

	if err := checkID(item.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := requireFields(map[string]string{"title": item.Title, "image": item.Image}); err != nil {
		log.Warn("invalid gallery item", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.gallery.UpdateGalleryItem(ctx, item); err != nil {
		log.Error("failed to update gallery item", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.changed(ctx)
	log.Info("gallery item updated")
	return nil
}

func (s *ContentService) DeleteGalleryItem(ctx context.Context, id string) error {
	const op = "service.ContentService.DeleteGalleryItem"
	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id),
	)

	if err := checkID(id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.gallery.DeleteGalleryItem(ctx, id); err != nil {
		log.Error("failed to delete gallery item", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.changed(ctx)
	log.Info("gallery item deleted")
	return nil
}

func (s *ContentService) GetGalleryItem(ctx context.Context, id string) (models.GalleryItem, error) {
	const op = "service.ContentService.GetGalleryItem"

	if err := checkID(id); err != nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item, err := s.gallery.GetGalleryItem(ctx, id)
	if err != nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// ListGalleryItems returns the newest items first. Category "all" means no filter.
func (s *ContentService) ListGalleryItems(ctx context.Context, category string, limit int) ([]models.GalleryItem, error) {
	const op = "service.ContentService.ListGalleryItems"

	filter := repository.GalleryFilter{Limit: max(limit, 0)}
	if category != models.CategoryAll {
		filter.Category = strings.TrimSpace(category)
	}

	items, err := s.gallery.ListGalleryItems(ctx, filter)
	if err != nil {
		s.log.Error("failed to list gallery items", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// Награды

func (s *ContentService) CreateAward(ctx context.Context, award models.Award) (string, error) {
	const op = "service.ContentService.CreateAward"
	log := s.log.With(
		slog.String("op", op),
		slog.String("title", award.Title),
	)

	if err := requireFields(map[string]string{"title": award.Title}); err != nil {
		log.Warn("invalid award", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.awards.CreateAward(ctx, award)
	if err != nil {
		log.Error("failed to create award", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.changed(ctx)
	log.Info("award created", slog.String("id", id))
	return id, nil
}

func (s *ContentService) UpdateAward(ctx context.Context, award models.Award) error {
	const op = "service.ContentService.UpdateAward"
	log := s.log.With(
		slog.String("op", op),
		slog.String("id", award.ID),
	)

	if err := checkID(award.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := requireFields(map[string]string{"title": award.Title}); err != nil {
		log.Warn("invalid award", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.awards.UpdateAward(ctx, award); err != nil {
		log.Error("failed to update award", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.changed(ctx)
	log.Info("award updated")
	return nil
}

func (s *ContentService) DeleteAward(ctx context.Context, id string) error {
	const op = "service.ContentService.DeleteAward"
	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id),
	)

	if err := checkID(id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.awards.DeleteAward(ctx, id); err != nil {
		log.Error("failed to delete award", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.changed(ctx)
	log.Info("award deleted")
	return nil
}

func (s *ContentService) GetAward(ctx context.Context, id string) (models.Award, error) {
	const op = "service.ContentService.GetAward"

	if err := checkID(id); err != nil {
		return models.Award{}, fmt.Errorf("%s: %w", op, err)
	}

	award, err := s.awards.GetAward(ctx, id)
	if err != nil {
		return models.Award{}, fmt.Errorf("%s: %w", op, err)
	}
	return award, nil
}

func (s *ContentService) ListAwards(ctx context.Context) ([]models.Award, error) {
	const op = "service.ContentService.ListAwards"

	awards, err := s.awards.ListAwards(ctx)
	if err != nil {
		s.log.Error("failed to list awards", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return awards, nil
}

// Услуги

func (s *ContentService) CreateService(ctx context.Context, service models.Service) (string, error) {
	const op = "service.ContentService.CreateService"
	log := s.log.With(
		slog.String("op", op),
		slog.String("title", service.Title),
	)

	if err := requireFields(map[string]string{"title": service.Title}); err != nil {
		log.Warn("invalid service", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.services.CreateService(ctx, service)
	if err != nil {
		log.Error("failed to create service", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.changed(ctx)
	log.Info("service created", slog.String("id", id))
	return id, nil
}

func (s *ContentService) UpdateService(ctx context.Context, service models.Service) error {
	const op = "service.ContentService.UpdateService"
	log := s.log.With(
		slog.String("op", op),
		slog.String("id", service.ID),
	)

	if err := checkID(service.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := requireFields(map[string]string{"title": service.Title}); err != nil {
		log.Warn("invalid service", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.services.UpdateService(ctx, service); err != nil {
		log.Error("failed to update service", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.changed(ctx)
	log.Info("service updated")
	return nil
}

func (s *ContentService) DeleteService(ctx context.Context, id string) error {
	const op = "service.ContentService.DeleteService"
	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id),
	)

	if err := checkID(id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.services.DeleteService(ctx, id); err != nil {
		log.Error("failed to delete service", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.changed(ctx)
	log.Info("service deleted")
	return nil
}

func (s *ContentService) GetService(ctx context.Context, id string) (models.Service, error) {
	const op = "service.ContentService.GetService"

	if err := checkID(id); err != nil {
		return models.Service{}, fmt.Errorf("%s: %w", op, err)
	}

	service, err := s.services.GetService(ctx, id)
	if err != nil {
		return models.Service{}, fmt.Errorf("%s: %w", op, err)
	}
	return service, nil
}

func (s *ContentService) ListServices(ctx context.Context) ([]models.Service, error) {
	const op = "service.ContentService.ListServices"

	services, err := s.services.ListServices(ctx)
	if err != nil {
		s.log.Error("failed to list services", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return services, nil
}

// О себе

func (s *ContentService) CreateAboutSection(ctx context.Context, section models.AboutSection) (string, error) {
	const op = "service.ContentService.CreateAboutSection"
	log := s.log.With(
		slog.String("op", op),
		slog.String("title", section.Title),
	)

	if err := requireFields(map[string]string{"title": section.Title}); err != nil {
		log.Warn("invalid about section", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.about.CreateAboutSection(ctx, section)
	if err != nil {
		log.Error("failed to create about section", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.changed(ctx)
	log.Info("about section created", slog.String("id", id))
	return id, nil
}

func (s *ContentService) UpdateAboutSection(ctx context.Context, section models.AboutSection) error {
	const op = "service.ContentService.UpdateAboutSection"
	log := s.log.With(
		slog.String("op", op),
		slog.String("id", section.ID),
	)

	if err := checkID(section.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := requireFields(map[string]string{"title": section.Title}); err != nil {
		log.Warn("invalid about section", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.about.UpdateAboutSection(ctx, section); err != nil {
		log.Error("failed to update about section", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.changed(ctx)
	log.Info("about section updated")
	return nil
}

func (s *ContentService) DeleteAboutSection(ctx context.Context, id string) error {
	const op = "service.ContentService.DeleteAboutSection"
	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id),
	)

	if err := checkID(id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.about.DeleteAboutSection(ctx, id); err != nil {
		log.Error("failed to delete about section", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.changed(ctx)
	log.Info("about section deleted")
	return nil
}

func (s *ContentService) GetAboutSection(ctx context.Context, id string) (models.AboutSection, error) {
	const op = "service.ContentService.GetAboutSection"

	if err := checkID(id); err != nil {
		return models.AboutSection{}, fmt.Errorf("%s: %w", op, err)
	}

	section, err := s.about.GetAboutSection(ctx, id)
	if err != nil {
		return models.AboutSection{}, fmt.Errorf("%s: %w", op, err)
	}
	return section, nil
}

func (s *ContentService) ListAboutSections(ctx context.Context) ([]models.AboutSection, error) {
	const op = "service.ContentService.ListAboutSections"

	sections, err := s.about.ListAboutSections(ctx)
	if err != nil {
		s.log.Error("failed to list about sections", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sections, nil
}

func (s *ContentService) changed(ctx context.Context) {
	if s.feed != nil {
		s.feed.Invalidate(ctx)
	}
}

// checkID maps malformed ids to storage.ErrNotFound: such a record cannot exist.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return storage.ErrNotFound
	}
	return nil
}

func requireFields(fields map[string]string) error {
	for _, name := range []string{"title", "image"} {
		value, ok := fields[name]
		if ok && strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
		}
	}
	return nil
}
