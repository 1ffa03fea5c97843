package rstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ValentinKolb/rksok/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/redis/go-redis/v9"
)

var log = logger.GetLogger("store")

type storeImpl struct {
	client *redis.Client
	prefix string
}

// Open connects to redis, checks the connection and returns the store
func Open(ctx context.Context, c store.RedisConfig) (store.IStore, error) {
	client, err := Connect(ctx, c.URL)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	log.Infof("connected to redis")
	return NewRedisStore(client, c.Prefix), nil
}

// NewRedisStore creates a store on top of an existing client.
// Every key is stored as prefix+name.
func NewRedisStore(client *redis.Client, prefix string) store.IStore {
	return &storeImpl{client: client, prefix: prefix}
}

// Connect initializes a Redis client from URL or host:port input.
func Connect(_ context.Context, redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

// --------------------------------------------------------------------------
// Interface Methods (docs see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Lookup(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, store.WrapError(store.RetCUnavailable, "lookup", err)
	}
	return val, true, nil
}

func (s *storeImpl) Store(ctx context.Context, key, value string) (bool, error) {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return false, store.WrapError(store.RetCUnavailable, "store", err)
	}
	return true, nil
}

func (s *storeImpl) Remove(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Del(ctx, s.prefix+key).Result()
	if err != nil {
		return false, store.WrapError(store.RetCUnavailable, "remove", err)
	}
	return n > 0, nil
}

func (s *storeImpl) Close() error {
	return s.client.Close()
}
