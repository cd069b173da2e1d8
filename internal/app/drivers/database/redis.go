package database

import (
	"context"
	"log"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/config"
)

// NewRedisClient opens the client behind upsert locking and the reference
// cache. It returns nil when no host is configured.
func NewRedisClient(driverConfig *config.DriverConfig) *redis.Client {
	cfg := driverConfig.Redis
	if cfg.Host == "" {
		log.Println("Redis host not set, upsert locking and reference cache disabled")
		return nil
	}

	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not reach Redis at %s: %v", addr, err)
	}
	log.Printf("Connected to Redis at %s", addr)
	return client
}
