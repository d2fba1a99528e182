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

var awardColumns = []string{
	"id::text",
	"title",
	"description",
	"organization",
	"year",
	"main_image",
	"images",
	"created_at",
}

type AwardRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewAwardRepo(db *pgxpool.Pool) *AwardRepo {
	return &AwardRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *AwardRepo) CreateAward(ctx context.Context, award models.Award) (string, error) {
	const op = "repository.AwardRepo.CreateAward"

	query, args, err := r.sb.Insert(postgresql.AwardsTable).
		Columns(
			"title",
			"description",
			"organization",
			"year",
			"main_image",
			"images",
			"created_at",
		).
		Values(
			award.Title,
			award.Description,
			award.Organization,
			int(award.Year),
			award.MainImage,
			award.Images,
			createdAtOrNow(award.CreatedAt),
		).
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

func (r *AwardRepo) UpdateAward(ctx context.Context, award models.Award) error {
	const op = "repository.AwardRepo.UpdateAward"

	query, args, err := r.sb.Update(postgresql.AwardsTable).
		Set("title", award.Title).
		Set("description", award.Description).
		Set("organization", award.Organization).
		Set("year", int(award.Year)).
		Set("main_image", award.MainImage).
		Set("images", award.Images).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": award.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return execAffecting(ctx, r.db, op, query, args...)
}

func (r *AwardRepo) DeleteAward(ctx context.Context, id string) error {
	const op = "repository.AwardRepo.DeleteAward"

	query, args, err := r.sb.Delete(postgresql.AwardsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return execAffecting(ctx, r.db, op, query, args...)
}

func (r *AwardRepo) GetAward(ctx context.Context, id string) (models.Award, error) {
	const op = "repository.AwardRepo.GetAward"

	query, args, err := r.sb.Select(awardColumns...).
		From(postgresql.AwardsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Award{}, fmt.Errorf("%s: %w", op, err)
	}

	award, err := scanAward(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Award{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.Award{}, fmt.Errorf("%s: %w", op, err)
	}

	return award, nil
}

func (r *AwardRepo) ListAwards(ctx context.Context) ([]models.Award, error) {
	const op = "repository.AwardRepo.ListAwards"

	query, args, err := r.sb.Select(awardColumns...).
		From(postgresql.AwardsTable).
		OrderBy("year DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	awards := make([]models.Award, 0)
	for rows.Next() {
		award, err := scanAward(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		awards = append(awards, award)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return awards, nil
}

func scanAward(row pgx.Row) (models.Award, error) {
	var (
		award     models.Award
		year      int
		createdAt time.Time
	)

	err := row.Scan(
		&award.ID,
		&award.Title,
		&award.Description,
		&award.Organization,
		&year,
		&award.MainImage,
		&award.Images,
		&createdAt,
	)
	if err != nil {
		return models.Award{}, err
	}
	award.Year = models.FlexYear(year)
	award.CreatedAt = models.NewFlexTime(createdAt.UTC())

	return award, nil
}
