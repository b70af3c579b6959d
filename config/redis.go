package config

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects to REDIS_ADDR, which may be a host:port pair or a
// redis:// / rediss:// URL.
func NewRedis(ctx context.Context, s *Settings) (*redis.Client, error) {
	var rdb *redis.Client
	if strings.HasPrefix(s.RedisAddr, "redis://") || strings.HasPrefix(s.RedisAddr, "rediss://") {
		opt, err := redis.ParseURL(s.RedisAddr)
		if err != nil {
			return nil, err
		}
		rdb = redis.NewClient(opt)
	} else {
		rdb = redis.NewClient(&redis.Options{Addr: s.RedisAddr})
	}

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
