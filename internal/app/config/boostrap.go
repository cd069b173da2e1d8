package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Bootstrap carries the opened drivers. Optional drivers are nil when their
// host is not configured.
type Bootstrap struct {
	Router         *chi.Mux
	Redis          *redis.Client
	Logger         *zap.Logger
	AuditLogger    *logrus.Logger
	RabbitMQ       *amqp091.Connection
	MongoDB        *mongo.Client
	Minio          *minio.Client
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.Redis != nil {
		if err := b.Redis.Close(); err != nil {
			return err
		}
		log.Println("Successfully closing Redis")
	}

	if b.RabbitMQ != nil {
		if err := b.RabbitMQ.Close(); err != nil {
			return err
		}
		log.Println("Successfully closing RabbitMQ")
	}

	if b.MongoDB != nil {
		if err := b.MongoDB.Disconnect(ctx); err != nil {
			return err
		}
		log.Println("Successfully closing MongoDB")
	}

	// Sync returns EINVAL for console sinks.
	_ = b.Logger.Sync()
	log.Println("Successfully closing Logger")

	return nil
}
