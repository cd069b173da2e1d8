package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/exceptions"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/utils"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", ""),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", ""),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
			AuditFileName:       utils.GetEnvString("LOGGER_AUDIT_FILENAME", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", ""),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", ""),
			Username: utils.GetEnvString("MINIO_USERNAME", ""),
			Password: utils.GetEnvString("MINIO_PASSWORD", ""),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Name:                       utils.GetEnvString("APP_NAME", "Trust Integration Engine"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Publisher:                  utils.GetEnvString("APP_PUBLISHER", "NHS England"),
			BaseUrl:                    utils.GetEnvString("APP_BASE_URL", "http://localhost:8080"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Europe/London"),
			APIKey:                     utils.GetEnvString("APP_API_KEY", ""),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 1),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 10),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			CORSAllowedOrigins:         utils.GetEnvString("APP_CORS_ALLOWED_ORIGINS", ""),
		},
		FHIR: AppFHIR{
			BaseUrl:           utils.GetEnvString("FHIR_BASE_URL", "http://localhost:5555/FHIR/R4"),
			Timeout:           utils.GetEnvDuration("FHIR_TIMEOUT", 30*time.Second),
			RequestsPerSecond: utils.GetEnvFloat("FHIR_REQUESTS_PER_SECOND", 20),
			Burst:             utils.GetEnvInt("FHIR_BURST", 10),
		},
		Auth: AppAuth{
			CognitoRegion:   utils.GetEnvString("AUTH_COGNITO_REGION", "eu-west-2"),
			CognitoClientID: utils.GetEnvString("AUTH_COGNITO_CLIENT_ID", ""),
			CognitoEndpoint: utils.GetEnvString("AUTH_COGNITO_ENDPOINT", ""),
			Username:        utils.GetEnvString("AUTH_USERNAME", ""),
			Password:        utils.GetEnvString("AUTH_PASSWORD", ""),
			APIKey:          utils.GetEnvString("AUTH_API_KEY", ""),
			StaticToken:     utils.GetEnvString("AUTH_STATIC_TOKEN", ""),
		},
		Retry: AppRetry{
			MaxAttempts:     utils.GetEnvInt("RETRY_MAX_ATTEMPTS", 3),
			InitialInterval: utils.GetEnvDuration("RETRY_INITIAL_INTERVAL", 500*time.Millisecond),
			MaxInterval:     utils.GetEnvDuration("RETRY_MAX_INTERVAL", 5*time.Second),
		},
		Upsert: AppUpsert{
			LockTTL:  utils.GetEnvDuration("UPSERT_LOCK_TTL", 30*time.Second),
			LockWait: utils.GetEnvDuration("UPSERT_LOCK_WAIT", 5*time.Second),
			CacheTTL: utils.GetEnvDuration("UPSERT_CACHE_TTL", 5*time.Minute),
		},
		Minio: AppMinio{
			BucketName: utils.GetEnvString("APP_MINIO_BUCKET_NAME", "tie-binary"),
			Region:     utils.GetEnvString("APP_MINIO_REGION", "eu-west-2"),
		},
		RabbitMQ: AppRabbitMQ{
			AuditQueue: utils.GetEnvString("APP_RABBITMQ_AUDIT_QUEUE", "tie.audit"),
		},
		MongoDB: AppMongoDB{
			JournalDBName: utils.GetEnvString("APP_MONGODB_JOURNAL_DB_NAME", "tie"),
		},
	}
}

var validate = validator.New()

// Validate checks both configs before any driver is opened.
func Validate(internalConfig *InternalConfig, driverConfig *DriverConfig) error {
	if err := validate.Struct(internalConfig); err != nil {
		return exceptions.ErrInvalidConfig(err)
	}
	if err := validate.Struct(driverConfig); err != nil {
		return exceptions.ErrInvalidConfig(err)
	}
	return nil
}
