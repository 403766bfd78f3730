// Package redis keeps every redirect as a JSON field of one Redis hash.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/wadjakorntonsri/seo-redirects/pkg/core/domain"
	"github.com/wadjakorntonsri/seo-redirects/pkg/ports"
)

type RedisRepository struct {
	client *redis.Client
	key    string
}

var _ ports.RedirectRepository = (*RedisRepository)(nil)

func NewRedisRepository(client *redis.Client, key string) *RedisRepository {
	return &RedisRepository{client: client, key: key}
}

func (r *RedisRepository) Get(ctx context.Context, slug string) (*domain.Redirect, error) {
	data, err := r.client.HGet(ctx, r.key, slug).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var redirect domain.Redirect
	if err := json.Unmarshal([]byte(data), &redirect); err != nil {
		return nil, fmt.Errorf("decode %q: %w", slug, err)
	}
	return &redirect, nil
}

func (r *RedisRepository) GetAll(ctx context.Context) (map[string]domain.Redirect, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, err
	}

	redirects := make(map[string]domain.Redirect, len(fields))
	for slug, data := range fields {
		var redirect domain.Redirect
		if err := json.Unmarshal([]byte(data), &redirect); err != nil {
			return nil, fmt.Errorf("decode %q: %w", slug, err)
		}
		redirects[slug] = redirect
	}
	return redirects, nil
}

func (r *RedisRepository) Save(ctx context.Context, slug string, redirect domain.Redirect) error {
	data, err := json.Marshal(redirect)
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, r.key, slug, data).Err()
}

func (r *RedisRepository) Delete(ctx context.Context, slug string) (bool, error) {
	n, err := r.client.HDel(ctx, r.key, slug).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
