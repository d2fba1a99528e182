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

var aboutColumns = []string{
	"id::text",
	"title",
	"content",
	"image",
	"position",
	"created_at",
}

type AboutRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewAboutRepo(db *pgxpool.Pool) *AboutRepo {
	return &AboutRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *AboutRepo) CreateAboutSection(ctx context.Context, section models.AboutSection) (string, error) {
	const op = "repository.AboutRepo.CreateAboutSection"

	query, args, err := r.sb.Insert(postgresql.AboutTable).
		Columns("title", "content", "image", "position", "created_at").
		Values(section.Title, section.Content, section.Image, section.Position, createdAtOrNow(section.CreatedAt)).
		Suffix("RETURNING id::text").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var id string
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *AboutRepo) UpdateAboutSection(ctx context.Context, section models.AboutSection) error {
	const op = "repository.AboutRepo.UpdateAboutSection"

	query, args, err := r.sb.Update(postgresql.AboutTable).
		Set("title", section.Title).
		Set("content", section.Content).
		Set("image", section.Image).
		Set("position", section.Position).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": section.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return execAffecting(ctx, r.db, op, query, args...)
}

func (r *AboutRepo) DeleteAboutSection(ctx context.Context, id string) error {
	const op = "repository.AboutRepo.DeleteAboutSection"

	query, args, err := r.sb.Delete(postgresql.AboutTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return execAffecting(ctx, r.db, op, query, args...)
}

func (r *AboutRepo) GetAboutSection(ctx context.Context, id string) (models.AboutSection, error) {
	const op = "repository.AboutRepo.GetAboutSection"

	query, args, err := r.sb.Select(aboutColumns...).
		From(postgresql.AboutTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.AboutSection{}, fmt.Errorf("%s: %w", op, err)
	}

	section, err := scanAboutSection(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.AboutSection{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.AboutSection{}, fmt.Errorf("%s: %w", op, err)
	}

	return section, nil
}

// ListAboutSections returns sections in page order.
func (r *AboutRepo) ListAboutSections(ctx context.Context) ([]models.AboutSection, error) {
	const op = "repository.AboutRepo.ListAboutSections"

	query, args, err := r.sb.Select(aboutColumns...).
		From(postgresql.AboutTable).
		OrderBy("position", "created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	sections := make([]models.AboutSection, 0)
	for rows.Next() {
		section, err := scanAboutSection(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		sections = append(sections, section)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sections, nil
}

func scanAboutSection(row pgx.Row) (models.AboutSection, error) {
	var (
		section   models.AboutSection
		createdAt time.Time
	)

	err := row.Scan(
		&section.ID,
		&section.Title,
		&section.Content,
		&section.Image,
		&section.Position,
		&createdAt,
	)
	if err != nil {
		return models.AboutSection{}, err
	}
	section.CreatedAt = models.NewFlexTime(createdAt.UTC())

	return section, nil
}
