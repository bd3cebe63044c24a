// Package redis provides Redis client utilities.
package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/GunarsK-portfolio/blog-service/internal/config"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// NewClient creates a Redis client and verifies the connection.
func NewClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       0,
	}

	// Managed Redis in production requires TLS alongside auth
	if cfg.RedisPassword != "" && cfg.IsProduction() {
		options.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", options.Addr, err)
	}

	return client, nil
}
