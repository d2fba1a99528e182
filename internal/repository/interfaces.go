package repository

import (
	"context"
	"time"

	"bio_showcase/internal/domain/models"
)

// GalleryFilter narrows ListGalleryItems. Zero values mean no restriction.
type GalleryFilter struct {
	Category string
	Limit    int
}

type GalleryRepository interface {
	CreateGalleryItem(ctx context.Context, item models.GalleryItem) (string, error)
	UpdateGalleryItem(ctx context.Context, item models.GalleryItem) error
	DeleteGalleryItem(ctx context.Context, id string) error
	GetGalleryItem(ctx context.Context, id string) (models.GalleryItem, error)
	ListGalleryItems(ctx context.Context, filter GalleryFilter) ([]models.GalleryItem, error)
}

type AwardRepository interface {
	CreateAward(ctx context.Context, award models.Award) (string, error)
	UpdateAward(ctx context.Context, award models.Award) error
	DeleteAward(ctx context.Context, id string) error
	GetAward(ctx context.Context, id string) (models.Award, error)
	ListAwards(ctx context.Context) ([]models.Award, error)
}

type ServiceRepository interface {
	CreateService(ctx context.Context, service models.Service) (string, error)
	UpdateService(ctx context.Context, service models.Service) error
	DeleteService(ctx context.Context, id string) error
	GetService(ctx context.Context, id string) (models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)
}

type AboutRepository interface {
	CreateAboutSection(ctx context.Context, section models.AboutSection) (string, error)
	UpdateAboutSection(ctx context.Context, section models.AboutSection) error
	DeleteAboutSection(ctx context.Context, id string) error
	GetAboutSection(ctx context.Context, id string) (models.AboutSection, error)
	ListAboutSections(ctx context.Context) ([]models.AboutSection, error)
}

type AdminRepository interface {
	SaveAdmin(ctx context.Context, username string, passHash []byte) (string, error)
	Admin(ctx context.Context, username string) (models.Admin, error)
	TouchLogin(ctx context.Context, id string) error
}

// SnapshotCache keeps the last normalized feed shared between instances.
type SnapshotCache interface {
	SaveSnapshot(ctx context.Context, entries []models.MediaEntry, ttl time.Duration) error
	GetSnapshot(ctx context.Context) ([]models.MediaEntry, error)
	InvalidateSnapshot(ctx context.Context) error
}
