package messaging

import (
	"log"
	"net"
	"net/url"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/app/config"
)

// NewRabbitMQ opens the connection AuditEvents are published on. It returns
// nil when no host is configured.
func NewRabbitMQ(driverConfig *config.DriverConfig) *amqp091.Connection {
	cfg := driverConfig.RabbitMQ
	if cfg.Host == "" {
		log.Println("RabbitMQ host not set, AuditEvent publishing disabled")
		return nil
	}

	uri := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, cfg.Port),
		Path:   "/",
	}

	properties := amqp091.NewConnectionProperties()
	properties.SetClientConnectionName("trust-integration-engine")

	conn, err := amqp091.DialConfig(uri.String(), amqp091.Config{
		Heartbeat:  10 * time.Second,
		Locale:     "en_US",
		Properties: properties,
	})
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ at %s: %v", uri.Host, err)
	}
	log.Printf("Connected to RabbitMQ at %s", uri.Host)
	return conn
}
