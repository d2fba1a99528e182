package models

import "time"

// SourceType is the coarse origin of a MediaEntry.
type SourceType string

const (
	SourceGallery SourceType = "gallery"
	SourceAward   SourceType = "award"
	SourceService SourceType = "service"
	SourceAbout   SourceType = "about"
)

// Filter-facing categories. Gallery items may carry finer ones of their own.
const (
	CategoryAll      = "all"
	CategoryGallery  = "gallery"
	CategoryAwards   = "awards"
	CategoryServices = "services"
	CategoryAbout    = "about"
	CategoryGeneral  = "general"
)

// Bucket is the coarse category chip a source type belongs to.
func (s SourceType) Bucket() string {
	switch s {
	case SourceGallery:
		return CategoryGallery
	case SourceAward:
		return CategoryAwards
	case SourceService:
		return CategoryServices
	case SourceAbout:
		return CategoryAbout
	default:
		return string(s)
	}
}

// MediaEntry is one displayable image drawn from any content source.
type MediaEntry struct {
	ID          string     `json:"id"`
	ImageURL    string     `json:"imageUrl"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	SourceType  SourceType `json:"sourceType"`
	Timestamp   time.Time  `json:"timestamp"`
	IsPrimary   bool       `json:"isPrimary"`
	Width       *int       `json:"width,omitempty"`
	Height      *int       `json:"height,omitempty"`
}
