package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ImageRef is one entry of a record's images array.
type ImageRef struct {
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
	Width  *int   `json:"width,omitempty"`
	Height *int   `json:"height,omitempty"`
}

// ImageRefs is stored as JSONB.
type ImageRefs []ImageRef

// Value implements driver.Valuer for JSONB columns.
func (r ImageRefs) Value() (driver.Value, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner for JSONB columns.
func (r *ImageRefs) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*r = nil
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("images: unsupported scan type %T", value)
	}
}

// GalleryItem is a single-image record of the gallery section.
type GalleryItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image"`
	Width       *int     `json:"width,omitempty"`
	Height      *int     `json:"height,omitempty"`
	Category    string   `json:"category,omitempty"`
	CreatedAt   FlexTime `json:"createdAt"`
}

// Award carries a main image plus an images array.
type Award struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Organization string    `json:"organization,omitempty"`
	Year         FlexYear  `json:"year,omitempty"`
	MainImage    string    `json:"mainImage,omitempty"`
	Images       ImageRefs `json:"images,omitempty"`
	CreatedAt    FlexTime  `json:"createdAt"`
}

// Service has the same image layout as Award.
type Service struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Features    []string  `json:"features,omitempty"`
	Year        FlexYear  `json:"year,omitempty"`
	MainImage   string    `json:"mainImage,omitempty"`
	Images      ImageRefs `json:"images,omitempty"`
	CreatedAt   FlexTime  `json:"createdAt"`
}

// AboutSection holds at most one optional image.
type AboutSection struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content,omitempty"`
	Image     string   `json:"image,omitempty"`
	Position  int      `json:"position"`
	CreatedAt FlexTime `json:"createdAt"`
}

// RawContent is the result of one fetch pass over the four content endpoints.
// Every list may be empty independently of the others.
type RawContent struct {
	Gallery  []GalleryItem  `json:"gallery"`
	Awards   []Award        `json:"awards"`
	Services []Service      `json:"services"`
	About    []AboutSection `json:"about"`
}
