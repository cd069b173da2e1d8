package database

import (
	"context"
	"log"
	"net"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/config"
)

const mongoConnectTimeout = 10 * time.Second

// NewMongoDB opens the HL7 v2 message journal connection. It returns nil when
// no host is configured.
func NewMongoDB(driverConfig *config.DriverConfig) *mongo.Client {
	cfg := driverConfig.MongoDB
	if cfg.Host == "" {
		log.Println("MongoDB host not set, HL7 v2 message journal disabled")
		return nil
	}

	uri := url.URL{Scheme: "mongodb", Host: net.JoinHostPort(cfg.Host, cfg.Port)}
	if cfg.Username != "" {
		uri.User = url.UserPassword(cfg.Username, cfg.Password)
	}

	opts := options.Client().
		ApplyURI(uri.String()).
		SetServerSelectionTimeout(mongoConnectTimeout).
		SetRetryWrites(true)

	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB at %s: %v", uri.Host, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("Failed to ping MongoDB primary at %s: %v", uri.Host, err)
	}
	log.Printf("Connected to MongoDB at %s", uri.Host)
	return client
}
