package repository

import (
	"context"
	"errors"
	"fmt"

	"bio_showcase/internal/domain/models"
	"bio_showcase/internal/storage"
	"bio_showcase/internal/storage/postgresql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type AdminRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewAdminRepo(db *pgxpool.Pool) *AdminRepo {
	return &AdminRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveAdmin creates the admin or replaces its password.
func (r *AdminRepo) SaveAdmin(ctx context.Context, username string, passHash []byte) (string, error) {
	const op = "repository.admin_repository.SaveAdmin"

	query, args, err := r.sb.Insert(postgresql.AdminsTable).
		Columns("username", "password").
		Values(username, passHash).
		Suffix("ON CONFLICT (username) DO UPDATE SET password = EXCLUDED.password RETURNING id::text").
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

func (r *AdminRepo) Admin(ctx context.Context, username string) (models.Admin, error) {
	const op = "repository.admin_repository.Admin"

	query, args, err := r.sb.Select("id::text", "username", "password", "created_at", "COALESCE(last_login, created_at)").
		From(postgresql.AdminsTable).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return models.Admin{}, fmt.Errorf("%s: can't build sql:%w", op, err)
	}

	var admin models.Admin
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&admin.ID,
		&admin.Username,
		&admin.Password,
		&admin.CreatedAt,
		&admin.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Admin{}, fmt.Errorf("%s: %w", op, storage.ErrAdminNotFound)
		}
		return models.Admin{}, fmt.Errorf("%s: %w", op, err)
	}

	return admin, nil
}

func (r *AdminRepo) TouchLogin(ctx context.Context, id string) error {
	const op = "repository.admin_repository.TouchLogin"

	query, args, err := r.sb.Update(postgresql.AdminsTable).
		Set("last_login", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return execAffecting(ctx, r.db, op, query, args...)
}
