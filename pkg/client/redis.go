package client

import (
	"context"
	"fmt"
	"time"

	"studybuddy/config"
	"studybuddy/pkg/log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects and pings redis. The returned cleanup closes the pool.
func NewRedisClient(conf *config.Config) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.Redis.Address, conf.Redis.Port),
		Password: conf.Redis.Password,
		Username: conf.Redis.Username,
		DB:       conf.Redis.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	log.L.Info("redis client success", zap.String("addr", client.Options().Addr))

	return client, func() {
		if err := client.Close(); err != nil {
			log.L.Warn("close redis", zap.Error(err))
		}
	}, nil
}
