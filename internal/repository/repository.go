package repository

import (
	"context"
	"fmt"
	"time"

	"bio_showcase/internal/domain/models"
	"bio_showcase/internal/storage"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Repository struct {
	db       *pgxpool.Pool
	Gallery  GalleryRepository
	Awards   AwardRepository
	Services ServiceRepository
	About    AboutRepository
	Admins   AdminRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:       db,
		Gallery:  NewGalleryRepo(db),
		Awards:   NewAwardRepo(db),
		Services: NewServiceRepo(db),
		About:    NewAboutRepo(db),
		Admins:   NewAdminRepo(db),
	}
}

func (r *Repository) Close() {
	r.db.Close()
}

// execAffecting runs a single-row write and maps "no row touched" to ErrNotFound.
func execAffecting(ctx context.Context, db *pgxpool.Pool, op, query string, args ...interface{}) error {
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}

func createdAtOrNow(t models.FlexTime) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
