package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"bio_showcase/internal/feed"
	"bio_showcase/internal/lib/logger/sl"
	"bio_showcase/internal/metrics"
	"bio_showcase/internal/storage"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxSize = 10 << 20
	// стороны больше этого значения уменьшаются перед загрузкой
	maxSide     = 2560
	jpegQuality = 85
)

// ImageHost stores uploaded images and serves them under a public URL.
type ImageHost interface {
	Name() string
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, int64, error)
	Delete(ctx context.Context, key string) error
}

type UploadInput struct {
	Filename string
	// Folder groups uploads, e.g. "gallery" or "awards".
	Folder string
	Body   io.Reader
}

type UploadResult struct {
	Key         string           `json:"key"`
	URL         string           `json:"url"`
	ContentType string           `json:"contentType"`
	Size        int64            `json:"size"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Orientation feed.Orientation `json:"orientation"`
	Fit         feed.FrameFit    `json:"fit"`
}

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type MediaService struct {
	log     *slog.Logger
	host    ImageHost
	maxSize int64
	now     func() time.Time
}

func NewMediaService(log *slog.Logger, host ImageHost, maxSize int64) *MediaService {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &MediaService{
		log:     log,
		host:    host,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Upload validates an image, measures it and stores it on the image host.
// The type is sniffed from the content, the filename is only used for logs.
func (s *MediaService) Upload(ctx context.Context, input UploadInput) (UploadResult, error) {
	const op = "media_service.Upload"

	log := s.log.With(
		slog.String("op", op),
		slog.String("filename", input.Filename),
		slog.String("host", s.host.Name()),
	)

	log.Info("upload image")

	result, err := s.upload(ctx, input)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(s.host.Name(), "error").Inc()
		log.Warn("upload failed", sl.Err(err))

		return UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.UploadsTotal.WithLabelValues(s.host.Name(), "ok").Inc()
	log.Info("image uploaded",
		slog.String("url", result.URL),
		slog.Int("width", result.Width),
		slog.Int("height", result.Height),
	)

	return result, nil
}

func (s *MediaService) upload(ctx context.Context, input UploadInput) (UploadResult, error) {
	data, err := io.ReadAll(io.LimitReader(input.Body, s.maxSize+1))
	if err != nil {
		return UploadResult{}, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return UploadResult{}, storage.ErrFileTooLarge
	}

	contentType := http.DetectContentType(data)
	ext, ok := allowedTypes[contentType]
	if !ok {
		return UploadResult{}, fmt.Errorf("%w: %s", storage.ErrInvalidFileType, contentType)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", storage.ErrInvalidFileType, err)
	}

	if shrunk, shrunkType, ok := downscale(img, contentType); ok {
		data, contentType = shrunk, shrunkType
		ext = allowedTypes[contentType]
		img = nil
	}

	width, height, err := dimensions(img, data)
	if err != nil {
		return UploadResult{}, err
	}

	key := s.key(input.Folder, ext)
	url, size, err := s.host.Put(ctx, key, bytes.NewReader(data), contentType)
	if err != nil {
		return UploadResult{}, err
	}

	return UploadResult{
		Key:         key,
		URL:         url,
		ContentType: contentType,
		Size:        size,
		Width:       width,
		Height:      height,
		Orientation: feed.Classify(width, height),
		Fit:         feed.FitFor(width, height),
	}, nil
}

// Delete removes a previously uploaded image by key.
func (s *MediaService) Delete(ctx context.Context, key string) error {
	const op = "media_service.Delete"

	if err := s.host.Delete(ctx, key); err != nil {
		s.log.Warn("failed to delete image",
			slog.String("op", op),
			slog.String("key", key),
			sl.Err(err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *MediaService) key(folder, ext string) string {
	folder = strings.Trim(path.Clean("/"+strings.TrimSpace(folder)), "/")
	if folder == "" {
		folder = "media"
	}
	now := s.now().UTC()
	return path.Join(folder, now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
}

// downscale re-encodes images with a side above maxSide. PNG stays PNG, every
// other format becomes JPEG.
func downscale(img image.Image, contentType string) ([]byte, string, bool) {
	b := img.Bounds()
	if b.Dx() <= maxSide && b.Dy() <= maxSide {
		return nil, "", false
	}
	// анимированный gif не трогаем
	if contentType == "image/gif" {
		return nil, "", false
	}

	resized := imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)

	format, outType := imaging.JPEG, "image/jpeg"
	if contentType == "image/png" {
		format, outType = imaging.PNG, "image/png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, "", false
	}
	return buf.Bytes(), outType, true
}

// dimensions reports the display size. img is nil after a downscale, in which
// case the new bytes are measured.
func dimensions(img image.Image, data []byte) (int, int, error) {
	if img != nil {
		b := img.Bounds()
		return b.Dx(), b.Dy(), nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", storage.ErrInvalidFileType, err)
	}
	return cfg.Width, cfg.Height, nil
}
