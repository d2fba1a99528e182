package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"bio_showcase/internal/storage"
)

// LocalFileStorage хранит загруженные изображения на диске и раздает их через baseURL
type LocalFileStorage struct {
	baseDir string // например: "./uploads"
	baseURL string // например: "http://localhost:8080/uploads"
}

func NewLocalFileStorage(baseDir, baseURL string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *LocalFileStorage) Name() string { return "local" }

// Put копирует r в файл key и возвращает публичный URL и размер
func (s *LocalFileStorage) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	rel, err := cleanKey(key)
	if err != nil {
		return "", 0, err
	}
	filePath := filepath.Join(s.baseDir, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directories: %w", err)
	}

	dst, err := os.Create(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(dst, r)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(filePath)
			return "", 0, fmt.Errorf("failed to copy file: %w", copyErr)
		}
	case <-ctx.Done():
		_ = os.Remove(filePath)
		return "", 0, ctx.Err()
	}

	return s.URL(rel), size, nil
}

func (s *LocalFileStorage) Delete(ctx context.Context, key string) error {
	rel, err := cleanKey(key)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(rel))); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return storage.ErrFileNotFound
		}
		return err
	}
	return nil
}

func (s *LocalFileStorage) URL(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s.baseURL + "/" + strings.Join(parts, "/")
}

func (s *LocalFileStorage) BaseDir() string {
	return s.baseDir
}

// cleanKey не дает ключу выйти за пределы baseDir
func cleanKey(key string) (string, error) {
	rel := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(key, "\\", "/")), "/")
	if rel == "" || rel == "." {
		return "", fmt.Errorf("empty file key")
	}
	return rel, nil
}
