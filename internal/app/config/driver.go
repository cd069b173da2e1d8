package config

type DriverConfig struct {
	MongoDB  MongoDB  `mapstructure:"mongodb"`
	Redis    Redis    `mapstructure:"redis"`
	Logger   Logger   `mapstructure:"logger"`
	RabbitMQ RabbitMQ `mapstructure:"rabbitmq"`
	Minio    Minio    `mapstructure:"minio"`
}

// An empty Host disables the driver; the component behind it falls back to a
// no-op implementation.
type (
	MongoDB struct {
		Port     string `mapstructure:"port"`
		Host     string `mapstructure:"host"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
	}
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	}
	Logger struct {
		Level               string `mapstructure:"level" validate:"oneof=debug info warn error"`
		OutputFileName      string `mapstructure:"output_file_name"`
		OutputErrorFileName string `mapstructure:"output_error_file_name"`
		AuditFileName       string `mapstructure:"audit_file_name"`
	}
	RabbitMQ struct {
		Port     string `mapstructure:"port"`
		Host     string `mapstructure:"host"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
	}
	Minio struct {
		Port     string `mapstructure:"port"`
		Host     string `mapstructure:"host"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		UseSSL   bool   `mapstructure:"use_ssl"`
	}
)
