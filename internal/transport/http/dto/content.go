package dto

import (
	"bio_showcase/internal/domain/models"
)

// GalleryItemRequest тело запроса на создание или изменение элемента галереи
type GalleryItemRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Image       string          `json:"image" validate:"required"`
	Width       *int            `json:"width" validate:"omitempty,gt=0"`
	Height      *int            `json:"height" validate:"omitempty,gt=0"`
	Category    string          `json:"category" validate:"omitempty,max=64"`
	CreatedAt   models.FlexTime `json:"createdAt"`
}

func (r GalleryItemRequest) ToModel(id string) models.GalleryItem {
	return models.GalleryItem{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		Width:       r.Width,
		Height:      r.Height,
		Category:    r.Category,
		CreatedAt:   r.CreatedAt,
	}
}

// AwardRequest награда: главное изображение плюс дополнительные
type AwardRequest struct {
	Title        string            `json:"title" validate:"required"`
	Description  string            `json:"description"`
	Organization string            `json:"organization"`
	Year         models.FlexYear   `json:"year" validate:"gte=0,lte=9999"`
	MainImage    string            `json:"mainImage"`
	Images       []models.ImageRef `json:"images" validate:"dive"`
	CreatedAt    models.FlexTime   `json:"createdAt"`
}

func (r AwardRequest) ToModel(id string) models.Award {
	return models.Award{
		ID:           id,
		Title:        r.Title,
		Description:  r.Description,
		Organization: r.Organization,
		Year:         r.Year,
		MainImage:    r.MainImage,
		Images:       r.Images,
		CreatedAt:    r.CreatedAt,
	}
}

type ServiceRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description"`
	Features    []string          `json:"features"`
	Year        models.FlexYear   `json:"year" validate:"gte=0,lte=9999"`
	MainImage   string            `json:"mainImage"`
	Images      []models.ImageRef `json:"images" validate:"dive"`
	CreatedAt   models.FlexTime   `json:"createdAt"`
}

func (r ServiceRequest) ToModel(id string) models.Service {
	return models.Service{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Features:    r.Features,
		Year:        r.Year,
		MainImage:   r.MainImage,
		Images:      r.Images,
		CreatedAt:   r.CreatedAt,
	}
}

type AboutSectionRequest struct {
	Title     string          `json:"title" validate:"required"`
	Content   string          `json:"content"`
	Image     string          `json:"image"`
	Position  int             `json:"position" validate:"gte=0"`
	CreatedAt models.FlexTime `json:"createdAt"`
}

func (r AboutSectionRequest) ToModel(id string) models.AboutSection {
	return models.AboutSection{
		ID:        id,
		Title:     r.Title,
		Content:   r.Content,
		Image:     r.Image,
		Position:  r.Position,
		CreatedAt: r.CreatedAt,
	}
}

// CreatedResponse id созданной записи
type CreatedResponse struct {
	ID string `json:"id"`
}
