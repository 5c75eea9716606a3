package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"biosys/config"
	"biosys/internal/calendar"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCache(cfg config.RedisConfig, logger *zap.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("no se pudo conectar a redis: %w", err)
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
		logger: logger,
	}, nil
}

func horariosKey(fecha time.Time) string {
	return "horarios:" + fecha.Format(calendar.FormatoFecha)
}

func (c *RedisCache) Get(ctx context.Context, fecha time.Time) ([]calendar.Horario, bool) {
	data, err := c.client.Get(ctx, horariosKey(fecha)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("error al leer la caché de horarios", zap.Error(err))
		}
		return nil, false
	}

	var horarios []calendar.Horario
	if err := json.Unmarshal(data, &horarios); err != nil {
		c.logger.Warn("entrada de caché corrupta", zap.String("key", horariosKey(fecha)), zap.Error(err))
		return nil, false
	}

	return horarios, true
}

func (c *RedisCache) Set(ctx context.Context, fecha time.Time, horarios []calendar.Horario) {
	data, err := json.Marshal(horarios)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, horariosKey(fecha), data, c.ttl).Err(); err != nil {
		c.logger.Warn("error al escribir la caché de horarios", zap.Error(err))
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, fecha time.Time) {
	if err := c.client.Del(ctx, horariosKey(fecha)).Err(); err != nil {
		c.logger.Warn("error al invalidar la caché de horarios", zap.Error(err))
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
