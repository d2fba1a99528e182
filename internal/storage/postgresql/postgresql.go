package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
)

const (
	// tables
	GalleryTable  = "gallery_items"
	AwardsTable   = "awards"
	ServicesTable = "services"
	AboutTable    = "about_sections"
	AdminsTable   = "admins"
)

type Storage struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Storage, error) {
	const op = "storage.postgresql.New"

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cfg.MaxConnIdleTime = 5 * time.Minute

	db, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.db
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Storage) Stop() {
	s.db.Close()
}

// Migrate creates the content schema if it does not exist yet.
func (s *Storage) Migrate(ctx context.Context) error {
	return Migrate(ctx, s.db)
}

func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	const op = "storage.postgresql.Migrate"

	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS gallery_items (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL,
		width INT,
		height INT,
		category TEXT NOT NULL DEFAULT 'general',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS gallery_items_category_idx ON gallery_items (category)`,
	`CREATE TABLE IF NOT EXISTS awards (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		organization TEXT NOT NULL DEFAULT '',
		year INT NOT NULL DEFAULT 0,
		main_image TEXT NOT NULL DEFAULT '',
		images JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		features TEXT[] NOT NULL DEFAULT '{}',
		year INT NOT NULL DEFAULT 0,
		main_image TEXT NOT NULL DEFAULT '',
		images JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS about_sections (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		position INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS admins (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		username TEXT NOT NULL UNIQUE,
		password BYTEA NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_login TIMESTAMPTZ
	)`,
}
