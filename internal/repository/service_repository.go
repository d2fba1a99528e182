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
	"github.com/lib/pq"
)

var serviceColumns = []string{
	"id::text",
	"title",
	"description",
	"features",
	"year",
	"main_image",
	"images",
	"created_at",
}

type ServiceRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewServiceRepo(db *pgxpool.Pool) *ServiceRepo {
	return &ServiceRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ServiceRepo) CreateService(ctx context.Context, service models.Service) (string, error) {
	const op = "repository.ServiceRepo.CreateService"

	query, args, err := r.sb.Insert(postgresql.ServicesTable).
		Columns(
			"title",
			"description",
			"features",
			"year",
			"main_image",
			"images",
			"created_at",
		).
		Values(
			service.Title,
			service.Description,
			pq.Array(nonNil(service.Features)),
			int(service.Year),
			service.MainImage,
			service.Images,
			createdAtOrNow(service.CreatedAt),
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

func (r *ServiceRepo) UpdateService(ctx context.Context, service models.Service) error {
	const op = "repository.ServiceRepo.UpdateService"

	query, args, err := r.sb.Update(postgresql.ServicesTable).
		Set("title", service.Title).
		Set("description", service.Description).
		Set("features", pq.Array(nonNil(service.Features))).
		Set("year", int(service.Year)).
		Set("main_image", service.MainImage).
		Set("images", service.Images).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": service.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return execAffecting(ctx, r.db, op, query, args...)
}

func (r *ServiceRepo) DeleteService(ctx context.Context, id string) error {
	const op = "repository.ServiceRepo.DeleteService"

	query, args, err := r.sb.Delete(postgresql.ServicesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return execAffecting(ctx, r.db, op, query, args...)
}

func (r *ServiceRepo) GetService(ctx context.Context, id string) (models.Service, error) {
	const op = "repository.ServiceRepo.GetService"

	query, args, err := r.sb.Select(serviceColumns...).
		From(postgresql.ServicesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Service{}, fmt.Errorf("%s: %w", op, err)
	}

	service, err := scanService(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Service{}, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return models.Service{}, fmt.Errorf("%s: %w", op, err)
	}

	return service, nil
}

func (r *ServiceRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	const op = "repository.ServiceRepo.ListServices"

	query, args, err := r.sb.Select(serviceColumns...).
		From(postgresql.ServicesTable).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	services := make([]models.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return services, nil
}

func scanService(row pgx.Row) (models.Service, error) {
	var (
		service   models.Service
		year      int
		createdAt time.Time
	)

	err := row.Scan(
		&service.ID,
		&service.Title,
		&service.Description,
		&service.Features,
		&year,
		&service.MainImage,
		&service.Images,
		&createdAt,
	)
	if err != nil {
		return models.Service{}, err
	}
	service.Year = models.FlexYear(year)
	service.CreatedAt = models.NewFlexTime(createdAt.UTC())

	return service, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
