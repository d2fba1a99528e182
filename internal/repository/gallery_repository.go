package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bio_showcase/internal/domain/models"
	"bio_showcase/internal/storage"
	"bio_showcase/internal/storage/postgresql"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var galleryColumns = []string{
	"id::text",
	"title",
	"description",
	"image",
	"width",
	"height",
	"category",
	"created_at",
}

type GalleryRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewGalleryRepo(db *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateGalleryItem создает запись галереи и возвращает её ID
func (r *GalleryRepo) CreateGalleryItem(ctx context.Context, item models.GalleryItem) (string, error) {
	const op = "repository.GalleryRepo.CreateGalleryItem"

	query, args, err := r.sb.Insert(postgresql.GalleryTable).
		Columns(
			"title",
			"description",
			"image",
			"width",
			"height",
			"category",
			"created_at",
		).
		Values(
			item.Title,
			item.Description,
			item.Image,
			item.Width,
			item.Height,
			categoryOrDefault(item.Category),
			createdAtOrNow(item.CreatedAt),
		).
		Suffix("RETURNING id::text").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var id string
	err = r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *GalleryRepo) UpdateGalleryItem(ctx context.Context, item models.GalleryItem) error {
	const op = "repository.GalleryRepo.UpdateGalleryItem"

	query, args, err := r.sb.Update(postgresql.GalleryTable).
		Set("title", item.Title).
		Set("description", item.Description).
		Set("image", item.Image).
		Set("width", item.Width).
		Set("height", item.Height).
		Set("category", categoryOrDefault(item.Category)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return execAffecting(ctx, r.db, op, query, args...)
}

func (r *GalleryRepo) DeleteGalleryItem(ctx context.Context, id string) error {
	const op = "repository.GalleryRepo.DeleteGalleryItem"

	query, args, err := r.sb.Delete(postgresql.GalleryTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return execAffecting(ctx, r.db, op, query, args...)
}

func (r *GalleryRepo) GetGalleryItem(ctx context.Context, id string) (models.GalleryItem, error) {
	const op = "repository.GalleryRepo.GetGalleryItem"

	query, args, err := r.sb.Select(galleryColumns...).
		From(postgresql.GalleryTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	item, err := scanGalleryItem(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.GalleryItem{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.GalleryItem{}, fmt.Errorf("%s: %w", op, err)
	}

	return item, nil
}

// ListGalleryItems возвращает записи галереи, новые первыми
func (r *GalleryRepo) ListGalleryItems(ctx context.Context, filter GalleryFilter) ([]models.GalleryItem, error) {
	const op = "repository.GalleryRepo.ListGalleryItems"

	builder := r.sb.Select(galleryColumns...).
		From(postgresql.GalleryTable).
		OrderBy("created_at DESC", "id")

	if filter.Category != "" && filter.Category != models.CategoryAll {
		builder = builder.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]models.GalleryItem, 0)
	for rows.Next() {
		item, err := scanGalleryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

func scanGalleryItem(row pgx.Row) (models.GalleryItem, error) {
	var (
		item      models.GalleryItem
		createdAt time.Time
	)

	err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.Image,
		&item.Width,
		&item.Height,
		&item.Category,
		&createdAt,
	)
	if err != nil {
		return models.GalleryItem{}, err
	}
	item.CreatedAt = models.NewFlexTime(createdAt.UTC())

	return item, nil
}

func categoryOrDefault(category string) string {
	if category == "" {
		return models.CategoryGeneral
	}
	return category
}
