// Package feed turns raw site content into a unified image feed and drives the
// views that display it: filtering, paging, carousel and lightbox.
package feed

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"bio_showcase/internal/domain/models"
)

// SourcePrecedence decides which record keeps an image URL shared by several
// sources. Earlier wins.
var SourcePrecedence = []models.SourceType{
	models.SourceGallery,
	models.SourceAward,
	models.SourceService,
	models.SourceAbout,
}

const (
	mainAwardSuffix   = " - Main Award Image"
	mainServiceSuffix = " - Main Service Image"
)

// variant emits the candidate entries of one record kind, in encounter order.
type variant func(raw models.RawContent, now time.Time) []models.MediaEntry

var variants = map[models.SourceType]variant{
	models.SourceGallery: galleryEntries,
	models.SourceAward:   awardEntries,
	models.SourceService: serviceEntries,
	models.SourceAbout:   aboutEntries,
}

type Normalizer struct {
	now func() time.Time
}

type NormalizerOption func(*Normalizer)

// WithClock sets the time used for records that carry no timestamp.
func WithClock(now func() time.Time) NormalizerOption {
	return func(n *Normalizer) {
		n.now = now
	}
}

func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize flattens raw into entries de-duplicated by image URL and sorted
// newest first. Ties keep encounter order.
func (n *Normalizer) Normalize(raw models.RawContent) []models.MediaEntry {
	now := n.now().UTC()

	seen := make(map[string]struct{})
	entries := make([]models.MediaEntry, 0, len(raw.Gallery)+len(raw.Awards)+len(raw.Services)+len(raw.About))

	for _, source := range SourcePrecedence {
		for _, entry := range variants[source](raw, now) {
			if _, dup := seen[entry.ImageURL]; dup {
				continue
			}
			seen[entry.ImageURL] = struct{}{}
			entries = append(entries, entry)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	return entries
}

func galleryEntries(raw models.RawContent, now time.Time) []models.MediaEntry {
	var out []models.MediaEntry
	for pos, item := range raw.Gallery {
		url := strings.TrimSpace(item.Image)
		if url == "" {
			continue
		}

		category := strings.TrimSpace(item.Category)
		if category == "" {
			category = models.CategoryGeneral
		}

		out = append(out, models.MediaEntry{
			ID:          "gallery-" + recordID(item.ID, pos),
			ImageURL:    url,
			Title:       item.Title,
			Description: item.Description,
			Category:    category,
			SourceType:  models.SourceGallery,
			Timestamp:   firstTime(now, item.CreatedAt.Time),
			Width:       item.Width,
			Height:      item.Height,
		})
	}
	return out
}

func awardEntries(raw models.RawContent, now time.Time) []models.MediaEntry {
	var out []models.MediaEntry
	for pos, award := range raw.Awards {
		out = append(out, expandImages(multiImageRecord{
			source:      models.SourceAward,
			category:    models.CategoryAwards,
			mainSuffix:  mainAwardSuffix,
			id:          recordID(award.ID, pos),
			title:       award.Title,
			description: award.Description,
			mainImage:   award.MainImage,
			images:      award.Images,
			timestamp:   firstTime(now, award.CreatedAt.Time, award.Year.Time()),
		})...)
	}
	return out
}

func serviceEntries(raw models.RawContent, now time.Time) []models.MediaEntry {
	var out []models.MediaEntry
	for pos, service := range raw.Services {
		out = append(out, expandImages(multiImageRecord{
			source:      models.SourceService,
			category:    models.CategoryServices,
			mainSuffix:  mainServiceSuffix,
			id:          recordID(service.ID, pos),
			title:       service.Title,
			description: service.Description,
			mainImage:   service.MainImage,
			images:      service.Images,
			timestamp:   firstTime(now, service.CreatedAt.Time, service.Year.Time()),
		})...)
	}
	return out
}

func aboutEntries(raw models.RawContent, now time.Time) []models.MediaEntry {
	var out []models.MediaEntry
	for pos, section := range raw.About {
		url := strings.TrimSpace(section.Image)
		if url == "" {
			continue
		}

		out = append(out, models.MediaEntry{
			ID:          "about-" + recordID(section.ID, pos),
			ImageURL:    url,
			Title:       section.Title,
			Description: section.Content,
			Category:    models.CategoryAbout,
			SourceType:  models.SourceAbout,
			Timestamp:   firstTime(now, section.CreatedAt.Time),
		})
	}
	return out
}

type multiImageRecord struct {
	source      models.SourceType
	category    string
	mainSuffix  string
	id          string
	title       string
	description string
	mainImage   string
	images      models.ImageRefs
	timestamp   time.Time
}

// expandImages emits the main image first, then every images entry whose URL
// differs from it.
func expandImages(r multiImageRecord) []models.MediaEntry {
	prefix := string(r.source) + "-" + r.id

	var out []models.MediaEntry
	main := strings.TrimSpace(r.mainImage)
	if main != "" {
		out = append(out, models.MediaEntry{
			ID:          prefix + "-main",
			ImageURL:    main,
			Title:       mainTitle(r.title, r.mainSuffix),
			Description: r.description,
			Category:    r.category,
			SourceType:  r.source,
			Timestamp:   r.timestamp,
			IsPrimary:   true,
		})
	}

	for i, img := range r.images {
		url := strings.TrimSpace(img.URL)
		if url == "" || url == main {
			continue
		}

		title := img.Title
		if title == "" {
			title = r.title
		}

		out = append(out, models.MediaEntry{
			ID:          prefix + "-img-" + strconv.Itoa(i),
			ImageURL:    url,
			Title:       title,
			Description: r.description,
			Category:    r.category,
			SourceType:  r.source,
			Timestamp:   r.timestamp,
			Width:       img.Width,
			Height:      img.Height,
		})
	}

	return out
}

func mainTitle(title, suffix string) string {
	if title = strings.TrimSpace(title); title == "" {
		return strings.TrimPrefix(suffix, " - ")
	}
	return title + suffix
}

func recordID(id string, pos int) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return strconv.Itoa(pos)
}

// firstTime returns the first non-zero candidate, or fallback.
func firstTime(fallback time.Time, candidates ...time.Time) time.Time {
	for _, t := range candidates {
		if !t.IsZero() {
			return t.UTC()
		}
	}
	return fallback
}
