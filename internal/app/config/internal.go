package config

import "time"

type InternalConfig struct {
	App      App         `mapstructure:"app"`
	FHIR     AppFHIR     `mapstructure:"fhir"`
	Auth     AppAuth     `mapstructure:"auth"`
	Retry    AppRetry    `mapstructure:"retry"`
	Upsert   AppUpsert   `mapstructure:"upsert"`
	Minio    AppMinio    `mapstructure:"minio"`
	RabbitMQ AppRabbitMQ `mapstructure:"rabbitmq"`
	MongoDB  AppMongoDB  `mapstructure:"mongodb"`
}

type App struct {
	Env                        string `mapstructure:"env" validate:"required"`
	Port                       string `mapstructure:"port" validate:"required"`
	Name                       string `mapstructure:"name" validate:"required"`
	Version                    string `mapstructure:"version"`
	Publisher                  string `mapstructure:"publisher"`
	BaseUrl                    string `mapstructure:"base_url" validate:"omitempty,url"`
	Timezone                   string `mapstructure:"timezone"`
	APIKey                     string `mapstructure:"api_key"`
	MaxRequests                int    `mapstructure:"max_requests" validate:"gte=0"`
	MaxTimeRequestsPerSeconds  int    `mapstructure:"max_time_requests_per_seconds" validate:"gte=0"`
	RequestBodyLimitInMegabyte int    `mapstructure:"request_body_limit_in_megabyte" validate:"gt=0"`
	ShutdownTimeoutInSeconds   int    `mapstructure:"shutdown_timeout_in_seconds" validate:"gt=0"`
	// CORSAllowedOrigins is a CSV list; empty allows any origin.
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
}

type AppFHIR struct {
	// BaseUrl is the clinical data repository the engine writes to.
	BaseUrl           string        `mapstructure:"base_url" validate:"required,url"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" validate:"gte=0"`
	Burst             int           `mapstructure:"burst" validate:"gte=0"`
}

// AppAuth configures the bearer credential for the repository. Without a
// Cognito client id the static token (possibly empty) is sent instead.
type AppAuth struct {
	CognitoRegion   string `mapstructure:"cognito_region"`
	CognitoClientID string `mapstructure:"cognito_client_id"`
	CognitoEndpoint string `mapstructure:"cognito_endpoint" validate:"omitempty,url"`
	Username        string `mapstructure:"username" validate:"required_with=CognitoClientID"`
	Password        string `mapstructure:"password" validate:"required_with=CognitoClientID"`
	APIKey          string `mapstructure:"api_key"`
	StaticToken     string `mapstructure:"static_token"`
}

type AppRetry struct {
	MaxAttempts     int           `mapstructure:"max_attempts" validate:"gte=1"`
	InitialInterval time.Duration `mapstructure:"initial_interval" validate:"gt=0"`
	MaxInterval     time.Duration `mapstructure:"max_interval" validate:"gtefield=InitialInterval"`
}

type AppUpsert struct {
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
	LockWait time.Duration `mapstructure:"lock_wait"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type AppMinio struct {
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type AppRabbitMQ struct {
	AuditQueue string `mapstructure:"audit_queue"`
}

type AppMongoDB struct {
	JournalDBName string `mapstructure:"journal_db_name"`
}
