package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/jobflow/jobflow/internal/job"
	"github.com/redis/go-redis/v9"
)

// RedisJobCache wraps a job.Repository with Redis caching for search results.
// Search is the hot path; single-job reads and writes pass through, and any
// write invalidates all cached searches.
type RedisJobCache struct {
	store  job.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisJobCache creates a Redis-cached job repository decorator.
func NewRedisJobCache(store job.Repository, client *redis.Client, ttl time.Duration) *RedisJobCache {
	return &RedisJobCache{
		store:  store,
		client: client,
		prefix: "jobsearch:",
		ttl:    ttl,
	}
}

// Create stores a job in the underlying store and invalidates cached searches.
func (r *RedisJobCache) Create(ctx context.Context, j *job.Job) error {
	if err := r.store.Create(ctx, j); err != nil {
		return err
	}

	r.invalidate(ctx)

	return nil
}

// GetByID passes through to the underlying store.
func (r *RedisJobCache) GetByID(ctx context.Context, id string) (*job.Job, error) {
	return r.store.GetByID(ctx, id)
}

// Search returns cached results for the given parameters when available,
// falling back to the underlying store on a miss.
func (r *RedisJobCache) Search(ctx context.Context, params job.Search) ([]*job.Job, error) {
	key := r.searchKey(params)

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var jobs []*job.Job
		if err := json.Unmarshal(raw, &jobs); err == nil {
			return jobs, nil
		}
	}

	jobs, err := r.store.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(jobs); err == nil {
		_ = r.client.Set(ctx, key, raw, r.ttl).Err()
	}

	return jobs, nil
}

func (r *RedisJobCache) searchKey(params job.Search) string {
	raw, _ := json.Marshal(params)
	sum := sha256.Sum256(raw)

	return r.prefix + hex.EncodeToString(sum[:])
}

func (r *RedisJobCache) invalidate(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		_ = r.client.Del(ctx, iter.Val()).Err()
	}
}

// Compile-time check.
var _ job.Repository = (*RedisJobCache)(nil)
