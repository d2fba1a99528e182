package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bio_showcase/internal/domain/models"
	"bio_showcase/internal/storage"
	redisapp "bio_showcase/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "feed:snapshot:v1"

type RedisSnapshotRepo struct {
	Client *redisapp.Client
}

func NewRedisSnapshotRepo(client *redisapp.Client) *RedisSnapshotRepo {
	return &RedisSnapshotRepo{Client: client}
}

func (r *RedisSnapshotRepo) SaveSnapshot(ctx context.Context, entries []models.MediaEntry, ttl time.Duration) error {
	const op = "repository.RedisSnapshotRepo.SaveSnapshot"

	if entries == nil {
		entries = []models.MediaEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.Client.Set(ctx, snapshotKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSnapshot returns storage.ErrCacheMiss when nothing is cached.
func (r *RedisSnapshotRepo) GetSnapshot(ctx context.Context) ([]models.MediaEntry, error) {
	const op = "repository.RedisSnapshotRepo.GetSnapshot"

	data, err := r.Client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrCacheMiss)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var entries []models.MediaEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}

func (r *RedisSnapshotRepo) InvalidateSnapshot(ctx context.Context) error {
	const op = "repository.RedisSnapshotRepo.InvalidateSnapshot"

	if err := r.Client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
