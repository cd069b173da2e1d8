package storage

import (
	"log"
	"net"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/config"
)

// NewMinio builds the client for the Binary payload archive. It returns nil
// when no host is configured. Connectivity is checked later when the bucket
// is provisioned.
func NewMinio(driverConfig *config.DriverConfig) *minio.Client {
	cfg := driverConfig.Minio
	if cfg.Host == "" {
		log.Println("Minio host not set, Binary archive disabled")
		return nil
	}

	endpoint := net.JoinHostPort(cfg.Host, cfg.Port)
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Username, cfg.Password, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Minio client for %s: %v", endpoint, err)
	}
	return client
}
